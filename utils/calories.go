package utils

import "strings"

// calorieTable maps common foods to a typical single-serving calorie count.
// Serves as a deterministic fast path so everyday log entries do not need an
// AI round trip.
var calorieTable = map[string]float64{
	"apple":                  95,
	"banana":                 105,
	"orange":                 62,
	"pear":                   101,
	"grapes":                 104,
	"strawberries":           49,
	"blueberries":            85,
	"egg":                    78,
	"boiled egg":             78,
	"scrambled eggs":         180,
	"toast":                  75,
	"bagel":                  245,
	"oatmeal":                150,
	"cereal":                 200,
	"yogurt":                 150,
	"greek yogurt":           100,
	"milk":                   150,
	"glass of milk":          150,
	"coffee":                 5,
	"black coffee":           5,
	"latte":                  120,
	"tea":                    2,
	"orange juice":           110,
	"rice":                   206,
	"brown rice":             216,
	"pasta":                  220,
	"bread":                  79,
	"sandwich":               350,
	"salad":                  150,
	"caesar salad":           360,
	"soup":                   170,
	"pizza":                  285,
	"slice of pizza":         285,
	"burger":                 550,
	"cheeseburger":           600,
	"fries":                  365,
	"chicken breast":         165,
	"grilled chicken":        165,
	"grilled chicken breast": 165,
	"fried chicken":          320,
	"steak":                  420,
	"salmon":                 208,
	"tuna":                   132,
	"shrimp":                 85,
	"tofu":                   94,
	"avocado":                240,
	"peanut butter":          190,
	"almonds":                164,
	"protein shake":          160,
	"protein bar":            200,
	"chocolate":              210,
	"cookie":                 78,
	"ice cream":              270,
	"cake":                   350,
	"donut":                  250,
	"chips":                  150,
	"popcorn":                100,
	"granola bar":            120,
	"smoothie":               180,
	"beer":                   154,
	"wine":                   125,
	"soda":                   140,
	"water":                  0,
}

// LookupCalories returns a calorie value for a food description when it
// matches the built-in table. Matching is exact on the normalized
// description, with a plural-trimming retry.
func LookupCalories(food string) (float64, bool) {
	key := NormalizeFood(food)
	if key == "" {
		return 0, false
	}
	if cal, ok := calorieTable[key]; ok {
		return cal, true
	}
	// "apples" -> "apple", "cookies" -> "cookie"
	if trimmed := strings.TrimSuffix(key, "s"); trimmed != key {
		if cal, ok := calorieTable[trimmed]; ok {
			return cal, true
		}
	}
	return 0, false
}

// NormalizeFood lowercases a description and drops leading articles and
// quantifier words so table lookups are stable.
func NormalizeFood(food string) string {
	s := strings.ToLower(strings.TrimSpace(food))
	s = strings.Trim(s, ".,!?")
	for _, prefix := range []string{"a ", "an ", "the ", "some ", "my ", "one "} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
			break
		}
	}
	return s
}
