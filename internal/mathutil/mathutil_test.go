package mathutil

import "testing"

func TestRounding(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) float64
		in   float64
		want float64
	}{
		{"Round2 up", Round2, 3.006, 3.01},
		{"Round2 down", Round2, 3.004, 3.00},
		{"Round2 negative", Round2, -2.678, -2.68},
		{"Round3 up", Round3, -12.8335, -12.833},
		{"Round3 exact", Round3, 42.133, 42.133},
		{"Round4 payout", Round4, 6.66666666, 6.6667},
		{"Round4 exact", Round4, 17.0, 17.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		x, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{-40, -40, 20, -40},
		{20, -40, 20, 20},
		{25, -40, 20, 20},
	}

	for _, tt := range tests {
		if got := Clamp(tt.x, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.x, tt.lo, tt.hi, got, tt.want)
		}
	}
}
