package capsule

import (
	"fmt"

	"github.com/hpungsan/satchel/internal/wardrobe"
	"github.com/hpungsan/satchel/internal/weather"
)

func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func stringPtr(s string) *string  { return &s }

// testWardrobe returns a small mixed wardrobe with every bucket represented.
func testWardrobe() []wardrobe.Item {
	return []wardrobe.Item{
		{ID: "t1", Name: "Oxford Shirt", MainCategory: "Tops", LocationID: "home"},
		{ID: "t2", Name: "Linen Tee", MainCategory: "Tops", LocationID: "home"},
		{ID: "t3", Name: "Merino Sweater", MainCategory: "Tops", LocationID: "home"},
		{ID: "b1", Name: "Chinos", MainCategory: "Bottoms", LocationID: "home"},
		{ID: "b2", Name: "Jeans", MainCategory: "Bottoms", LocationID: "home"},
		{ID: "d1", Name: "Wrap Dress", MainCategory: "Dresses", LocationID: "home"},
		{ID: "d2", Name: "Sundress", MainCategory: "Dresses", LocationID: "home"},
		{ID: "s1", Name: "Sneakers", MainCategory: "Shoes", LocationID: "home"},
		{ID: "s2", Name: "Loafers", MainCategory: "Shoes", LocationID: "home"},
		{ID: "s3", Name: "Sandals", MainCategory: "Shoes", LocationID: "home"},
		{ID: "s4", Name: "Boots", MainCategory: "Shoes", LocationID: "home"},
		{ID: "o1", Name: "Wool Coat", MainCategory: "Outerwear", LocationID: "home", ThermalRating: floatPtr(80)},
		{ID: "o2", Name: "Rain Shell", MainCategory: "Outerwear", LocationID: "home", RainOK: boolPtr(true)},
		{ID: "a1", Name: "Scarf", MainCategory: "Accessories", LocationID: "home"},
		{ID: "a2", Name: "Watch", MainCategory: "Accessories", LocationID: "home"},
		{ID: "x1", Name: "Pajamas", MainCategory: "Sleepwear", LocationID: "home"},
	}
}

// forecast returns n mild, dry days.
func forecast(n int) []weather.DayWeather {
	days := make([]weather.DayWeather, n)
	for i := range days {
		days[i] = weather.DayWeather{
			Date:       fmt.Sprintf("2026-06-%02d", i+1),
			DayLabel:   fmt.Sprintf("Day %d", i+1),
			HighF:      72,
			LowF:       60,
			Condition:  weather.ConditionSunny,
			RainChance: 10,
		}
	}
	return days
}

// packingItems builds outfit items from (id, main category) pairs.
func packingItems(pairs ...string) []PackingItem {
	items := make([]PackingItem, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		items = append(items, PackingItem{
			ID:             PackingItemID(pairs[i]),
			WardrobeItemID: pairs[i],
			Name:           pairs[i],
			MainCategory:   pairs[i+1],
		})
	}
	return items
}
