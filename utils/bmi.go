package utils

import (
	"errors"
	"math"
	"strings"
)

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	// Sanity checks to avoid garbage input
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, errors.New("height/weight out of plausible range")
	}

	h := heightCm / 100.0 // to meters
	bmi := weightKg / (h * h)
	return bmi, nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}

var activityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// EstimateDailyCalories computes a maintenance calorie target with the
// Mifflin-St Jeor equation scaled by activity level. Used when the user does
// not supply a daily calorie target of their own.
func EstimateDailyCalories(age int, gender string, weightKg, heightCm float64, activityLevel string) (int, error) {
	if age <= 0 || weightKg <= 0 || heightCm <= 0 {
		return 0, errors.New("age, weight and height must be positive")
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male", "m":
		bmr += 5
	case "female", "f":
		bmr -= 161
	default:
		// unknown gender: midpoint of the two offsets
		bmr -= 78
	}

	factor, ok := activityFactors[strings.ToLower(strings.TrimSpace(activityLevel))]
	if !ok {
		factor = activityFactors["sedentary"]
	}

	return int(math.Round(bmr * factor)), nil
}
