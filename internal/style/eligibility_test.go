package style

import (
	"testing"

	"github.com/hpungsan/satchel/internal/wardrobe"
)

func TestIsEligible_Masculine(t *testing.T) {
	tests := []struct {
		name string
		item wardrobe.Item
		want bool
	}{
		{
			name: "dress shirt is not a dress",
			item: wardrobe.Item{Name: "White Dress Shirt", MainCategory: "Tops", Subcategory: "Dress Shirt"},
			want: true,
		},
		{
			name: "dress shoes are shoes",
			item: wardrobe.Item{Name: "Oxford Dress Shoes", MainCategory: "Shoes", Subcategory: "Dress Shoes"},
			want: true,
		},
		{
			name: "dress pants",
			item: wardrobe.Item{Name: "Navy Dress Pants", MainCategory: "Bottoms"},
			want: true,
		},
		{
			name: "dresses category",
			item: wardrobe.Item{Name: "Summer Slip", MainCategory: "Dresses"},
			want: false,
		},
		{
			name: "skirts category",
			item: wardrobe.Item{Name: "Pleated", MainCategory: "Skirts"},
			want: false,
		},
		{
			name: "heels by subcategory",
			item: wardrobe.Item{Name: "Black Shoes", MainCategory: "Shoes", Subcategory: "Heels"},
			want: false,
		},
		{
			name: "blouse by name",
			item: wardrobe.Item{Name: "Silk Blouse", MainCategory: "Tops"},
			want: false,
		},
		{
			name: "earrings",
			item: wardrobe.Item{Name: "Pearl Earrings", MainCategory: "Accessories"},
			want: false,
		},
		{
			name: "uncategorized dress by name",
			item: wardrobe.Item{Name: "Linen Dress"},
			want: false,
		},
		{
			name: "wheel is not heel",
			item: wardrobe.Item{Name: "Wheel Print Tee", MainCategory: "Tops"},
			want: true,
		},
		{
			name: "plain chinos",
			item: wardrobe.Item{Name: "Chinos", MainCategory: "Bottoms"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEligible(tt.item, Masculine); got != tt.want {
				t.Errorf("IsEligible(%q, masculine) = %v, want %v", tt.item.Name, got, tt.want)
			}
		})
	}
}

func TestIsEligible_NonMasculineAcceptsEverything(t *testing.T) {
	dress := wardrobe.Item{Name: "Gown", MainCategory: "Dresses"}
	for _, p := range []Presentation{Feminine, Mixed} {
		if !IsEligible(dress, p) {
			t.Errorf("IsEligible(dress, %s) = false, want true", p)
		}
	}
}

func TestFilterEligibleItems(t *testing.T) {
	items := []wardrobe.Item{
		{ID: "1", Name: "Oxford", MainCategory: "Tops"},
		{ID: "2", Name: "Midi", MainCategory: "Dresses"},
		{ID: "3", Name: "Jeans", MainCategory: "Bottoms"},
	}

	got := FilterEligibleItems(items, Masculine)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("FilterEligibleItems(masculine) = %v", got)
	}

	if got := FilterEligibleItems(items, Mixed); len(got) != 3 {
		t.Errorf("FilterEligibleItems(mixed) len = %d, want 3", len(got))
	}
}

func TestHasFeminineOverride(t *testing.T) {
	tests := map[string]bool{
		"pack a DRESS for the gala": true,
		"I want heels":              true,
		"women's cut jeans":         true,
		"pronouns she/her":          true,
		"halter top please":         true,
		"pack shirts":               false,
		"business trip, two suits":  false,
		"":                          false,
	}
	for prompt, want := range tests {
		if got := HasFeminineOverride(prompt); got != want {
			t.Errorf("HasFeminineOverride(%q) = %v, want %v", prompt, got, want)
		}
	}
}

func TestEffective(t *testing.T) {
	if got := Effective(Masculine, "bring a skirt"); got != Mixed {
		t.Errorf("Effective(masculine, override) = %s, want mixed", got)
	}
	if got := Effective(Masculine, "pack shirts"); got != Masculine {
		t.Errorf("Effective(masculine, no override) = %s, want masculine", got)
	}
	if got := Effective(Feminine, "bring a skirt"); got != Feminine {
		t.Errorf("Effective(feminine) = %s, want feminine", got)
	}
}

func TestInferGarmentFlags_OnePiece(t *testing.T) {
	if !InferGarmentFlags(wardrobe.Item{MainCategory: "TraditionalWear", Name: "Kimono"}).OnePiece {
		t.Error("TraditionalWear should be one-piece")
	}
	if InferGarmentFlags(wardrobe.Item{MainCategory: "Tops", Name: "Dress Shirt"}).OnePiece {
		t.Error("a dress shirt is not one-piece")
	}
}
