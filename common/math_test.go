package common

import "testing"

func TestClamp01(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{3, 1},
	}
	for _, c := range cases {
		if got := Clamp01(c.in); got != c.want {
			t.Fatalf("Clamp01(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0, 1, 0.5); got != 0.5 {
		t.Fatalf("Lerp(0, 1, 0.5) = %v", got)
	}
	if got := Lerp(0.2, 0.8, 0); got != 0.2 {
		t.Fatalf("Lerp(0.2, 0.8, 0) = %v", got)
	}
}
