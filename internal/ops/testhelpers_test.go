package ops

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/hpungsan/satchel/internal/config"
	"github.com/hpungsan/satchel/internal/db"
	"github.com/hpungsan/satchel/internal/wardrobe"
	"github.com/hpungsan/satchel/internal/weather"
)

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func newTestPlanner(t *testing.T) (*Planner, *sql.DB) {
	t.Helper()
	database := openTestDB(t)
	return NewPlanner(database, config.DefaultConfig(), nil), database
}

// testWardrobe is a small mixed wardrobe stored at "home", in the loosely
// typed shape wardrobe services return.
func testWardrobe() []wardrobe.RawItem {
	return []wardrobe.RawItem{
		{"id": "t1", "name": "White Tee", "mainCategory": "Tops", "subcategory": "T-Shirt", "locationId": "home"},
		{"id": "t2", "name": "Oxford Shirt", "mainCategory": "Tops", "subcategory": "Button-Down", "locationId": "home", "formalityScore": "60"},
		{"id": "b1", "name": "Chinos", "main_category": "Bottoms", "locationId": "home"},
		{"id": "b2", "name": "Jeans", "main_category": "Bottoms", "locationId": "home"},
		{"id": "d1", "name": "Sundress", "mainCategory": "Dresses", "locationId": "home"},
		{"id": "s1", "name": "Sneakers", "mainCategory": "Shoes", "subcategory": "Sneakers", "locationId": "home"},
		{"id": "s2", "name": "Loafers", "mainCategory": "Shoes", "locationId": "home"},
		{"id": "o1", "name": "Wool Coat", "mainCategory": "Outerwear", "locationId": "home", "thermalRating": 80},
		{"id": "a1", "name": "Watch", "mainCategory": "Accessories", "locationId": "home"},
	}
}

// testForecast returns n mild, dry days.
func testForecast(n int) []weather.DayWeather {
	days := make([]weather.DayWeather, n)
	for i := range days {
		days[i] = weather.DayWeather{
			Date:      fmt.Sprintf("2026-06-%02d", i+1),
			DayLabel:  fmt.Sprintf("Day %d", i+1),
			HighF:     75,
			LowF:      62,
			Condition: weather.ConditionSunny,
		}
	}
	return days
}

func testPlanInput(name string) PlanInput {
	return PlanInput{
		Name:       name,
		Wardrobe:   testWardrobe(),
		Weather:    testForecast(4),
		Activities: []string{"casual", "dinner"},
	}
}
