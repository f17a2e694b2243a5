package errors

import (
	"math"
	"testing"
)

func TestValidateViewport(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"desktop", 1200, 800, false},
		{"square", 400, 400, false},
		{"tiny", 1, 1, false},

		{"zero width", 0, 400, true},
		{"negative height", 400, -1, true},
		{"NaN", math.NaN(), 400, true},
		{"infinite", 400, math.Inf(1), true},
		{"too large", 400, 1e9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateViewport(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateViewport(%v, %v) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidLayout) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidLayout)
			}
		})
	}
}

func TestValidateRotation(t *testing.T) {
	if err := ValidateRotation(math.Pi); err != nil {
		t.Errorf("ValidateRotation(pi) = %v", err)
	}
	if err := ValidateRotation(-12.5); err != nil {
		t.Errorf("ValidateRotation(-12.5) = %v", err)
	}
	if err := ValidateRotation(math.NaN()); err == nil {
		t.Error("ValidateRotation(NaN) should fail")
	}
}

func TestValidateMargin(t *testing.T) {
	tests := []struct {
		margin  float64
		wantErr bool
	}{
		{0, false},
		{40, false},
		{-1, true},
		{math.Inf(1), true},
	}
	for _, tt := range tests {
		if err := ValidateMargin(tt.margin); (err != nil) != tt.wantErr {
			t.Errorf("ValidateMargin(%v) error = %v, wantErr %v", tt.margin, err, tt.wantErr)
		}
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "roster.json", false},
		{"nested", "data/class/roster.yaml", false},
		{"absolute", "/tmp/roster.json", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"null byte", "roster\x00.json", true},
		{"newline", "roster\n.json", true},
		{"too long", string(make([]byte, 5000)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
