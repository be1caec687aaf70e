package systems

import "testing"

func TestNewGridRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 5},
		{"zero height", 5, 0},
		{"both zero", 0, 0},
		{"negative width", -1, 5},
		{"negative height", 5, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGrid(tt.width, tt.height); err == nil {
				t.Errorf("NewGrid(%d, %d) expected error, got nil", tt.width, tt.height)
			}
		})
	}
}

func TestNeighborSymmetry(t *testing.T) {
	dims := []struct{ w, h int }{
		{3, 3},
		{5, 7},
		{10, 10},
	}

	for _, d := range dims {
		g, err := NewGrid(d.w, d.h)
		if err != nil {
			t.Fatalf("NewGrid(%d, %d): %v", d.w, d.h, err)
		}

		for idx := 0; idx < g.Len(); idx++ {
			if len(g.Neighbors(idx)) != 8 {
				t.Fatalf("%dx%d: site %d has %d neighbors, want 8", d.w, d.h, idx, len(g.Neighbors(idx)))
			}
			for _, n := range g.Neighbors(idx) {
				found := false
				for _, back := range g.Neighbors(n) {
					if back == idx {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("%dx%d: site %d lists neighbor %d, but not vice versa", d.w, d.h, idx, n)
				}
			}
		}
	}
}

func TestSiteAtBounds(t *testing.T) {
	g, err := NewGrid(4, 3)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		x, y int
		ok   bool
	}{
		{"origin", 0, 0, true},
		{"far corner", 3, 2, true},
		{"x too large", 4, 0, false},
		{"y too large", 0, 3, false},
		{"negative x", -1, 0, false},
		{"negative y", 0, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site, ok := g.SiteAt(tt.x, tt.y)
			if ok != tt.ok {
				t.Fatalf("SiteAt(%d, %d) ok = %v, want %v", tt.x, tt.y, ok, tt.ok)
			}
			if ok && (site.Pos.X != tt.x || site.Pos.Y != tt.y) {
				t.Errorf("SiteAt(%d, %d) returned site at (%d, %d)", tt.x, tt.y, site.Pos.X, site.Pos.Y)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	g, err := NewGrid(10, 6)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		x, y           int
		wantX, wantY   int
	}{
		{"in range", 3, 4, 3, 4},
		{"x over", 12, 0, 2, 0},
		{"y over", 0, 7, 0, 1},
		{"x negative", -1, 0, 9, 0},
		{"y negative", 0, -2, 0, 4},
		{"far negative", -21, -13, 9, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := g.Wrap(tt.x, tt.y)
			if gotX != tt.wantX || gotY != tt.wantY {
				t.Errorf("Wrap(%d, %d) = (%d, %d), want (%d, %d)", tt.x, tt.y, gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestIndexRoundTrip(t *testing.T) {
	g, err := NewGrid(7, 5)
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			site := g.Site(g.Index(x, y))
			if site.Pos.X != x || site.Pos.Y != y {
				t.Fatalf("Site(Index(%d, %d)) is at (%d, %d)", x, y, site.Pos.X, site.Pos.Y)
			}
		}
	}
}
