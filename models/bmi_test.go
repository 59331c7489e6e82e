package models

import (
	"testing"
)

func TestCalculateBMI(t *testing.T) {
	tests := []struct {
		name    string
		weight  float64
		height  int
		wantBMI float64
		wantOK  bool
	}{
		{"typical normal", 70.5, 170, 24.4, true},
		{"obese", 80, 160, 31.3, true},
		{"after weight loss", 60, 160, 23.4, true},
		{"tall underweight", 50, 185, 14.6, true},
		{"zero weight undefined", 0, 170, 0, false},
		{"zero height undefined", 70, 0, 0, false},
		{"negative weight undefined", -5, 170, 0, false},
		{"negative height undefined", 70, -170, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CalculateBMI(tt.weight, tt.height)
			if ok != tt.wantOK {
				t.Fatalf("CalculateBMI(%v, %v) ok = %v, want %v", tt.weight, tt.height, ok, tt.wantOK)
			}
			if got != tt.wantBMI {
				t.Errorf("CalculateBMI(%v, %v) = %v, want %v", tt.weight, tt.height, got, tt.wantBMI)
			}
		})
	}
}

// Band boundaries are closed below and open above.
func TestCategoryForBMI_Boundaries(t *testing.T) {
	tests := []struct {
		bmi  float64
		want BMICategory
	}{
		{14.0, BMIUnderweight},
		{18.4, BMIUnderweight},
		{18.5, BMINormal}, // lower bound belongs to the band above
		{24.4, BMINormal},
		{24.9, BMINormal},
		{25.0, BMIOverweight},
		{29.9, BMIOverweight},
		{30.0, BMIObese},
		{45.2, BMIObese},
	}

	for _, tt := range tests {
		if got := CategoryForBMI(tt.bmi); got != tt.want {
			t.Errorf("CategoryForBMI(%v) = %q, want %q", tt.bmi, got, tt.want)
		}
	}
}
