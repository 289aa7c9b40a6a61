package grid

import (
	"image"
	"testing"
)

// =============================================================================
// Grid Layout Tests
// =============================================================================

func TestGrid_NumTiles(t *testing.T) {
	tests := []struct {
		name   string
		max    image.Point
		total  image.Point
		border int
		wantX  int
		wantY  int
	}{
		{"empty", image.Pt(64, 64), image.Pt(0, 0), 0, 0, 0},
		{"exact single tile", image.Pt(64, 64), image.Pt(64, 64), 0, 1, 1},
		{"two by two", image.Pt(64, 64), image.Pt(100, 100), 0, 2, 2},
		{"non-square", image.Pt(64, 64), image.Pt(200, 10), 0, 4, 1},
		{"border single", image.Pt(64, 64), image.Pt(50, 50), 1, 1, 1},
		{"border many", image.Pt(64, 64), image.Pt(200, 200), 1, 4, 4},
		{"degenerate inner fits", image.Pt(2, 2), image.Pt(1, 1), 1, 1, 1},
		{"degenerate inner too small", image.Pt(2, 2), image.Pt(5, 5), 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.max, tt.total, tt.border)
			if g.NumTilesX() != tt.wantX || g.NumTilesY() != tt.wantY {
				t.Errorf("NumTiles = (%d,%d), want (%d,%d)",
					g.NumTilesX(), g.NumTilesY(), tt.wantX, tt.wantY)
			}
			if g.TileCount() != tt.wantX*tt.wantY {
				t.Errorf("TileCount() = %d, want %d", g.TileCount(), tt.wantX*tt.wantY)
			}
		})
	}
}

func TestGrid_TileBoundsNoBorder(t *testing.T) {
	g := New(image.Pt(64, 64), image.Pt(100, 100), 0)

	tests := []struct {
		i, j int
		want image.Rectangle
	}{
		{0, 0, image.Rect(0, 0, 64, 64)},
		{1, 0, image.Rect(64, 0, 100, 64)},
		{0, 1, image.Rect(0, 64, 64, 100)},
		{1, 1, image.Rect(64, 64, 100, 100)},
	}

	for _, tt := range tests {
		if got := g.TileBounds(tt.i, tt.j); got != tt.want {
			t.Errorf("TileBounds(%d,%d) = %v, want %v", tt.i, tt.j, got, tt.want)
		}
		if got := g.TileBoundsWithBorder(tt.i, tt.j); got != tt.want {
			t.Errorf("TileBoundsWithBorder(%d,%d) = %v, want %v", tt.i, tt.j, got, tt.want)
		}
	}
}

func TestGrid_TileBoundsWithBorder(t *testing.T) {
	g := New(image.Pt(64, 64), image.Pt(200, 200), 1)

	tests := []struct {
		i          int
		wantBounds image.Rectangle
		wantBorder image.Rectangle
	}{
		{0, image.Rect(0, 0, 63, 63), image.Rect(0, 0, 64, 64)},
		{1, image.Rect(63, 0, 125, 63), image.Rect(62, 0, 126, 64)},
		{2, image.Rect(125, 0, 187, 63), image.Rect(124, 0, 188, 64)},
		{3, image.Rect(187, 0, 200, 63), image.Rect(186, 0, 200, 64)},
	}

	for _, tt := range tests {
		if got := g.TileBounds(tt.i, 0); got != tt.wantBounds {
			t.Errorf("TileBounds(%d,0) = %v, want %v", tt.i, got, tt.wantBounds)
		}
		got := g.TileBoundsWithBorder(tt.i, 0)
		if got != tt.wantBorder {
			t.Errorf("TileBoundsWithBorder(%d,0) = %v, want %v", tt.i, got, tt.wantBorder)
		}
		if got.Dx() > g.MaxTextureSize().X {
			t.Errorf("TileBoundsWithBorder(%d,0) width %d exceeds max %d", tt.i, got.Dx(), g.MaxTextureSize().X)
		}
	}
}

func TestGrid_TilesCoverContentExactly(t *testing.T) {
	for _, border := range []int{0, 1, 2} {
		g := New(image.Pt(64, 48), image.Pt(333, 217), border)
		area := 0
		for j := range g.NumTilesY() {
			for i := range g.NumTilesX() {
				r := g.TileBounds(i, j)
				area += r.Dx() * r.Dy()
				if i > 0 && g.TileBounds(i-1, j).Max.X != r.Min.X {
					t.Errorf("border %d: gap between columns %d and %d", border, i-1, i)
				}
				if j > 0 && g.TileBounds(i, j-1).Max.Y != r.Min.Y {
					t.Errorf("border %d: gap between rows %d and %d", border, j-1, j)
				}
			}
		}
		if area != 333*217 {
			t.Errorf("border %d: tile area = %d, want %d", border, area, 333*217)
		}
	}
}

func TestGrid_IndexFromSrcCoord(t *testing.T) {
	tests := []struct {
		name   string
		border int
		total  int
		src    int
		want   int
	}{
		{"origin", 0, 100, 0, 0},
		{"last of first", 0, 100, 63, 0},
		{"first of second", 0, 100, 64, 1},
		{"last pixel", 0, 100, 99, 1},
		{"beyond total clamps", 0, 100, 1000, 1},
		{"negative clamps", 0, 100, -5, 0},
		{"far negative clamps", 0, 100, -500, 0},
		{"border inside first", 1, 200, 62, 0},
		{"border second start", 1, 200, 63, 1},
		{"border second end", 1, 200, 124, 1},
		{"border third start", 1, 200, 125, 2},
		{"border last", 1, 200, 199, 3},
		{"single tile", 1, 50, 49, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(image.Pt(64, 64), image.Pt(tt.total, tt.total), tt.border)
			if got := g.TileXIndexFromSrcCoord(tt.src); got != tt.want {
				t.Errorf("TileXIndexFromSrcCoord(%d) = %d, want %d", tt.src, got, tt.want)
			}
			if got := g.TileYIndexFromSrcCoord(tt.src); got != tt.want {
				t.Errorf("TileYIndexFromSrcCoord(%d) = %d, want %d", tt.src, got, tt.want)
			}
		})
	}
}

func TestGrid_SettersRecompute(t *testing.T) {
	g := New(image.Pt(64, 64), image.Pt(100, 100), 0)

	g.SetTotalSize(image.Pt(60, 200))
	if g.NumTilesX() != 1 || g.NumTilesY() != 4 {
		t.Errorf("after SetTotalSize NumTiles = (%d,%d), want (1,4)", g.NumTilesX(), g.NumTilesY())
	}

	g.SetMaxTextureSize(image.Pt(256, 256))
	if g.NumTilesX() != 1 || g.NumTilesY() != 1 {
		t.Errorf("after SetMaxTextureSize NumTiles = (%d,%d), want (1,1)", g.NumTilesX(), g.NumTilesY())
	}

	g.SetBorderTexels(-3)
	if g.BorderTexels() != 0 {
		t.Errorf("BorderTexels() = %d, want 0 for negative input", g.BorderTexels())
	}
}

func TestGrid_Clone(t *testing.T) {
	g := New(image.Pt(64, 64), image.Pt(100, 100), 1)
	c := g.Clone()
	c.SetTotalSize(image.Pt(10, 10))

	if g.TotalSize() != image.Pt(100, 100) {
		t.Errorf("original TotalSize() = %v after clone mutation", g.TotalSize())
	}
	if c.NumTilesX() != 1 {
		t.Errorf("clone NumTilesX() = %d, want 1", c.NumTilesX())
	}
}

func TestGrid_TileBoundsPanicsOutOfRange(t *testing.T) {
	g := New(image.Pt(64, 64), image.Pt(100, 100), 0)
	defer func() {
		if recover() == nil {
			t.Error("TileBounds(2,0) did not panic")
		}
	}()
	_ = g.TileBounds(2, 0)
}

func TestGrid_ZeroTilesYieldsNoIndices(t *testing.T) {
	tests := []struct {
		name    string
		maxSize image.Point
		border  int
	}{
		{"texture no wider than both borders", image.Pt(2, 2), 1},
		{"zero texture size", image.Point{}, 0},
		{"zero texture width", image.Pt(0, 64), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.maxSize, image.Pt(5, 5), tt.border)
			if g.TileCount() != 0 {
				t.Fatalf("TileCount() = %d, want 0", g.TileCount())
			}
			if _, _, _, _, ok := g.IndexRange(image.Rect(0, 0, 5, 5)); ok {
				t.Error("IndexRange() ok = true, want false")
			}
			if it := g.Iterate(image.Rect(0, 0, 5, 5)); it.Valid() {
				t.Error("Iterate() is valid on a grid without tiles")
			}
			if d := g.Difference(image.Rect(0, 0, 5, 5), image.Rectangle{}); d.Valid() {
				t.Error("Difference() is valid on a grid without tiles")
			}
		})
	}
}
