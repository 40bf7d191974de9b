package geom

import "testing"

func TestIntersects(t *testing.T) {
	tests := []struct {
		name        string
		cs1, cs2    []Coordinate
		expect      bool
		description string
	}{
		{
			name:        "crossing segments",
			cs1:         []Coordinate{{0, 0}, {2, 2}},
			cs2:         []Coordinate{{0, 2}, {2, 0}},
			expect:      true,
			description: "diagonal X shape",
		},
		{
			name:        "disjoint segments",
			cs1:         []Coordinate{{0, 0}, {1, 0}},
			cs2:         []Coordinate{{0, 5}, {1, 5}},
			expect:      false,
			description: "parallel, far apart",
		},
		{
			name:        "touching at endpoint",
			cs1:         []Coordinate{{0, 0}, {1, 0}},
			cs2:         []Coordinate{{1, 0}, {1, 1}},
			expect:      true,
			description: "shared endpoint",
		},
		{
			name:        "collinear overlap",
			cs1:         []Coordinate{{0, 0}, {2, 0}},
			cs2:         []Coordinate{{1, 0}, {3, 0}},
			expect:      true,
			description: "overlapping collinear segments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Intersects(tt.cs1, tt.cs2)
			if got != tt.expect {
				t.Errorf("%s: Intersects() = %v, want %v", tt.description, got, tt.expect)
			}
		})
	}
}

func TestRelate(t *testing.T) {
	t.Run("crosses", func(t *testing.T) {
		rel := Relate([]Coordinate{{0, 0}, {2, 2}}, []Coordinate{{0, 2}, {2, 0}})
		if !rel.Crosses {
			t.Error("expected Crosses to be true")
		}
		if rel.Coincident {
			t.Error("expected Coincident to be false")
		}
	})

	t.Run("coincident", func(t *testing.T) {
		rel := Relate([]Coordinate{{0, 0}, {2, 0}}, []Coordinate{{1, 0}, {3, 0}})
		if !rel.Coincident {
			t.Error("expected Coincident to be true")
		}
		if rel.Crosses {
			t.Error("expected Crosses to be false")
		}
	})

	t.Run("touches", func(t *testing.T) {
		rel := Relate([]Coordinate{{0, 0}, {1, 0}}, []Coordinate{{1, 0}, {1, 1}})
		if !rel.Touches {
			t.Error("expected Touches to be true")
		}
		if rel.Crosses || rel.Coincident {
			t.Error("expected only Touches to be true")
		}
	})

	t.Run("no relation", func(t *testing.T) {
		rel := Relate([]Coordinate{{0, 0}, {1, 0}}, []Coordinate{{5, 5}, {6, 6}})
		if rel.Crosses || rel.Coincident || rel.Touches {
			t.Error("expected no relation between disjoint segments")
		}
	})
}
