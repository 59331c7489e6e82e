package models

import "math"

// BMICategory labels the four ordered bands a BMI value falls into.
// Bands are closed below and open above: 18.5 is "normal", 25.0 is
// "overweight", 30.0 is "obese".
type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight" // bmi < 18.5
	BMINormal      BMICategory = "normal"      // 18.5 <= bmi < 25
	BMIOverweight  BMICategory = "overweight"  // 25 <= bmi < 30
	BMIObese       BMICategory = "obese"       // bmi >= 30
)

// CalculateBMI computes weight(kg) / height(m)^2 rounded to one decimal
// place. The boolean result is false when either input is non-positive, in
// which case the BMI is undefined and must not be persisted.
//
// This is the only BMI implementation in the codebase; checkup creation,
// updates, exports and the PDF report all go through it so the boundaries
// cannot drift between call sites.
func CalculateBMI(weightKg float64, heightCm int) (float64, bool) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, false
	}
	meters := float64(heightCm) / 100
	bmi := weightKg / (meters * meters)
	return math.Round(bmi*10) / 10, true
}

// CategoryForBMI classifies a BMI value into its band.
func CategoryForBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}
