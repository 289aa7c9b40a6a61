package grid

import (
	"image"
	"slices"
	"testing"
)

func collect(g *Grid, r image.Rectangle) [][2]int {
	var got [][2]int
	for it := g.Iterate(r); it.Valid(); it.Next() {
		i, j := it.Index()
		got = append(got, [2]int{i, j})
	}
	return got
}

func collectDifference(g *Grid, consider, ignore image.Rectangle) [][2]int {
	var got [][2]int
	for it := g.Difference(consider, ignore); it.Valid(); it.Next() {
		i, j := it.Index()
		got = append(got, [2]int{i, j})
	}
	return got
}

// =============================================================================
// Iterator Tests
// =============================================================================

func TestIterator_RowMajor(t *testing.T) {
	g := New(image.Pt(64, 64), image.Pt(200, 200), 0)

	tests := []struct {
		name string
		rect image.Rectangle
		want [][2]int
	}{
		{
			name: "two columns three rows",
			rect: image.Rect(60, 60, 70, 130),
			want: [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}, {1, 2}},
		},
		{
			name: "single tile",
			rect: image.Rect(10, 10, 20, 20),
			want: [][2]int{{0, 0}},
		},
		{
			name: "clipped negative origin",
			rect: image.Rect(-10, -10, 5, 5),
			want: [][2]int{{0, 0}},
		},
		{
			name: "last row partial tile",
			rect: image.Rect(190, 195, 400, 400),
			want: [][2]int{{2, 3}, {3, 3}},
		},
		{
			name: "outside content",
			rect: image.Rect(300, 300, 400, 400),
			want: nil,
		},
		{
			name: "empty rect",
			rect: image.Rect(10, 10, 10, 50),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(g, tt.rect)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Iterate(%v) = %v, want %v", tt.rect, got, tt.want)
			}
		})
	}
}

func TestIterator_ZeroValueExhausted(t *testing.T) {
	var it Iterator
	if it.Valid() {
		t.Error("zero Iterator should not be valid")
	}
	it.Next()
	if it.Valid() {
		t.Error("Next on exhausted Iterator made it valid")
	}
}

func TestIterator_EmptyGrid(t *testing.T) {
	g := New(image.Pt(64, 64), image.Point{}, 0)
	if got := collect(g, image.Rect(0, 0, 100, 100)); got != nil {
		t.Errorf("Iterate on empty grid = %v, want none", got)
	}
}

func TestGrid_ForEachInRect(t *testing.T) {
	g := New(image.Pt(64, 64), image.Pt(100, 100), 0)
	var got [][2]int
	g.ForEachInRect(image.Rect(0, 0, 100, 100), func(i, j int) {
		got = append(got, [2]int{i, j})
	})
	want := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	if !slices.Equal(got, want) {
		t.Errorf("ForEachInRect = %v, want %v", got, want)
	}
}

// =============================================================================
// DifferenceIterator Tests
// =============================================================================

func TestDifferenceIterator(t *testing.T) {
	g := New(image.Pt(64, 64), image.Pt(200, 200), 0)

	tests := []struct {
		name     string
		consider image.Rectangle
		ignore   image.Rectangle
		want     [][2]int
	}{
		{
			name:     "hole in first row",
			consider: image.Rect(0, 0, 200, 64),
			ignore:   image.Rect(64, 0, 128, 10),
			want:     [][2]int{{0, 0}, {2, 0}, {3, 0}},
		},
		{
			name:     "empty ignore",
			consider: image.Rect(0, 0, 100, 100),
			ignore:   image.Rectangle{},
			want:     [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		},
		{
			name:     "ignore covers consider",
			consider: image.Rect(10, 10, 100, 100),
			ignore:   image.Rect(0, 0, 200, 200),
			want:     nil,
		},
		{
			name:     "ignore covers first index",
			consider: image.Rect(0, 0, 130, 64),
			ignore:   image.Rect(0, 0, 10, 10),
			want:     [][2]int{{1, 0}, {2, 0}},
		},
		{
			name:     "shrinking region",
			consider: image.Rect(0, 0, 200, 200),
			ignore:   image.Rect(0, 0, 128, 128),
			want:     [][2]int{{2, 0}, {3, 0}, {2, 1}, {3, 1}, {0, 2}, {1, 2}, {2, 2}, {3, 2}, {0, 3}, {1, 3}, {2, 3}, {3, 3}},
		},
		{
			name:     "empty consider",
			consider: image.Rectangle{},
			ignore:   image.Rect(0, 0, 10, 10),
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectDifference(g, tt.consider, tt.ignore)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Difference(%v, %v) = %v, want %v", tt.consider, tt.ignore, got, tt.want)
			}
		})
	}
}
