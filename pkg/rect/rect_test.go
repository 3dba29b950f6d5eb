package rect

import (
	"slices"
	"testing"
)

func TestFind_Containment(t *testing.T) {
	f := Finder{MaxDistance: 10, Tolerance: 0}
	rects := []Rect{{X: 0, Y: 0, Width: 4, Height: 4}}
	got := f.Find(rects, []Point{{X: 1, Y: -1}})

	if len(got[0]) != 1 || got[0][0].Distance != 0 {
		t.Errorf("point inside rectangle: got %v, want distance 0", got[0])
	}
}

func TestFind_Horizontal(t *testing.T) {
	f := Finder{MaxDistance: 100, Tolerance: 1}
	rects := []Rect{
		{X: 0, Y: 0, Width: 2, Height: 2},  // right edge at x=1
		{X: 13, Y: 0, Width: 2, Height: 2}, // left edge at x=12
	}
	point := []Point{{X: 6, Y: 0}} // distances 5 and 6

	got := f.Find(rects, point)
	want := []Match{{Index: 0, Distance: 5}, {Index: 1, Distance: 6}}
	if !slices.Equal(got[0], want) {
		t.Errorf("tolerance 1: got %v, want %v", got[0], want)
	}

	f.Tolerance = 0.5
	got = f.Find(rects, point)
	want = want[:1]
	if !slices.Equal(got[0], want) {
		t.Errorf("tolerance 0.5: got %v, want %v", got[0], want)
	}
}

func TestFind_Vertical(t *testing.T) {
	f := Finder{MaxDistance: 100, Tolerance: 0}
	rects := []Rect{
		{X: 0, Y: 4, Width: 2, Height: 2},  // bottom edge at y=3
		{X: 0, Y: -4, Width: 2, Height: 2}, // top edge at y=-3
	}
	got := f.Find(rects, []Point{{X: 0, Y: 0}})

	// Both rectangles are exactly 3 away, one above and one below.
	want := []Match{{Index: 0, Distance: 3}, {Index: 1, Distance: 3}}
	if !slices.Equal(got[0], want) {
		t.Errorf("got %v, want %v", got[0], want)
	}
}

func TestFind_MaxDistance(t *testing.T) {
	f := Finder{MaxDistance: 2, Tolerance: 0}
	rects := []Rect{{X: 0, Y: 0, Width: 2, Height: 2}}
	got := f.Find(rects, []Point{{X: 10, Y: 0}})

	if got[0] != nil {
		t.Errorf("point beyond MaxDistance: got %v, want no matches", got[0])
	}
}

func TestFind_Empty(t *testing.T) {
	f := Finder{MaxDistance: 10, Tolerance: 0}
	if got := f.Find(nil, []Point{{X: 0, Y: 0}}); got[0] != nil {
		t.Errorf("no rectangles: got %v", got[0])
	}
	if got := f.Find([]Rect{{Width: 1, Height: 1}}, nil); len(got) != 0 {
		t.Errorf("no points: got %v", got)
	}
}

func TestFind_MatchesSimple(t *testing.T) {
	f := Finder{MaxDistance: 50, Tolerance: 0}
	rects := []Rect{
		{X: 0, Y: 0, Width: 4, Height: 2},
		{X: 10, Y: 3, Width: 2, Height: 6},
		{X: -5, Y: -8, Width: 6, Height: 2},
		{X: 3, Y: 12, Width: 2, Height: 2},
		{X: 8, Y: -4, Width: 4, Height: 4},
	}
	points := []Point{
		{X: 0, Y: 0}, {X: 6, Y: 1}, {X: -2, Y: -5}, {X: 11, Y: 10},
		{X: 3, Y: 7}, {X: -9, Y: -9}, {X: 8, Y: 0}, {X: 0.5, Y: -2.5},
	}

	fast := f.Find(rects, points)
	simple := f.FindSimple(rects, points)

	for i := range points {
		if len(simple[i]) == 0 {
			if len(fast[i]) != 0 {
				t.Errorf("point %d: Find returned %v, FindSimple nothing", i, fast[i])
			}
			continue
		}
		want := simple[i][0]
		if len(fast[i]) == 0 {
			t.Errorf("point %d: Find found nothing, want %v", i, want)
			continue
		}
		// With zero tolerance every returned match sits at the true minimum.
		for _, m := range fast[i] {
			if m.Distance != want.Distance {
				t.Errorf("point %d: match %v, want distance %v", i, m, want.Distance)
			}
		}
		if !slices.ContainsFunc(fast[i], func(m Match) bool { return m.Index == want.Index }) {
			t.Errorf("point %d: matches %v missing nearest %v", i, fast[i], want)
		}
	}
}
