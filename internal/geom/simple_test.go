package geom

import "testing"

func TestIsSimple(t *testing.T) {
	tests := []struct {
		name   string
		cs     []Coordinate
		expect bool
	}{
		{
			name:   "simple open line",
			cs:     []Coordinate{{0, 0}, {1, 0}, {1, 1}},
			expect: true,
		},
		{
			name:   "closed ring is simple",
			cs:     []Coordinate{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}},
			expect: true,
		},
		{
			name:   "self-crossing figure-eight",
			cs:     []Coordinate{{0, 0}, {1, 1}, {1, 0}, {0, 1}},
			expect: false,
		},
		{
			name:   "spike back on itself",
			cs:     []Coordinate{{0, 0}, {2, 0}, {1, 0}},
			expect: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSimple(tt.cs); got != tt.expect {
				t.Errorf("IsSimple(%v) = %v, want %v", tt.cs, got, tt.expect)
			}
		})
	}
}
