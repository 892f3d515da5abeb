package common

import "testing"

func TestLerp(t *testing.T) {
	cases := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.25, 2.5},
		{10, 0, 0.5, 5},
	}
	for _, c := range cases {
		if got := Lerp(c.a, c.b, c.t); got != c.want {
			t.Fatalf("Lerp(%v, %v, %v): expected %v, got %v", c.a, c.b, c.t, c.want, got)
		}
	}
	if got := Lerp[float32](2, 4, 0.5); got != 3 {
		t.Fatalf("expected float32 lerp 3, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-1.0, 0, 5); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := Clamp(7.0, 0, 5); got != 5 {
		t.Fatalf("expected 5, got %v", got)
	}
	if got := Clamp(3.0, 0, 5); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
}
