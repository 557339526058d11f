package weather

import "strings"

// Condition is a normalized daily weather condition.
type Condition string

const (
	ConditionSunny        Condition = "sunny"
	ConditionPartlyCloudy Condition = "partly_cloudy"
	ConditionCloudy       Condition = "cloudy"
	ConditionRainy        Condition = "rainy"
	ConditionStormy       Condition = "stormy"
	ConditionSnowy        Condition = "snowy"
)

// Thresholds used by Analyze and by the per-day outerwear decision.
const (
	ColdLowF       = 55.0
	HotHighF       = 80.0
	RainChanceMinP = 50.0
)

// DayWeather is the forecast for one trip day. RainChance is a percentage.
type DayWeather struct {
	Date       string    `json:"date"`
	DayLabel   string    `json:"day_label"`
	HighF      float64   `json:"high_f"`
	LowF       float64   `json:"low_f"`
	Condition  Condition `json:"condition"`
	RainChance float64   `json:"rain_chance"`
}

// IsCold reports whether the day calls for a warm layer.
func (d DayWeather) IsCold() bool { return d.LowF < ColdLowF }

// IsRainy reports whether the day calls for a rain layer.
func (d DayWeather) IsRainy() bool { return d.RainChance > RainChanceMinP }

// IsHot reports whether the day is hot.
func (d DayWeather) IsHot() bool { return d.HighF > HotHighF }

// Needs summarizes packing needs across a forecast window.
type Needs struct {
	NeedsWarmLayer bool `json:"needs_warm_layer"`
	NeedsRainLayer bool `json:"needs_rain_layer"`
	IsHot          bool `json:"is_hot"`
	IsCold         bool `json:"is_cold"`
}

// Analyze derives packing needs. An empty forecast needs nothing.
func Analyze(days []DayWeather) Needs {
	var n Needs
	for _, d := range days {
		if d.IsCold() {
			n.NeedsWarmLayer = true
			n.IsCold = true
		}
		if d.IsRainy() {
			n.NeedsRainLayer = true
		}
		if d.IsHot() {
			n.IsHot = true
		}
	}
	return n
}

// ParseCondition maps a free-form condition string to a Condition.
// Unrecognized values fall back to partly cloudy.
func ParseCondition(s string) Condition {
	switch normalizeKey(s) {
	case "sunny", "clear":
		return ConditionSunny
	case "partly_cloudy", "partlycloudy":
		return ConditionPartlyCloudy
	case "cloudy", "overcast":
		return ConditionCloudy
	case "rainy", "rain", "drizzle", "showers":
		return ConditionRainy
	case "stormy", "storm", "thunderstorm":
		return ConditionStormy
	case "snowy", "snow", "sleet":
		return ConditionSnowy
	default:
		return ConditionPartlyCloudy
	}
}

// UnmarshalText lets JSON and YAML forecasts carry free-form condition names.
func (c *Condition) UnmarshalText(text []byte) error {
	*c = ParseCondition(string(text))
	return nil
}

var keyReplacer = strings.NewReplacer("-", "_", " ", "_")

func normalizeKey(s string) string {
	return keyReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}
