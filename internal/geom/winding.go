package geom

// Quadrants around the query point:
//
//	1 | 0
//	-----
//	2 | 3
func whichQuad(pt, orig Vertex) int {
	if pt.X < orig.X {
		if pt.Y < orig.Y {
			return 2
		}
		return 1
	}
	if pt.Y < orig.Y {
		return 3
	}
	return 0
}

// Winding returns the quadrant winding count of verts around pt. The
// result is non-zero when pt lies inside the ring. Transitions across two
// quadrants at once are resolved by intersecting the edge with the
// horizontal line through pt, which makes concave and self-touching rings
// behave.
func Winding(pt Vertex, verts []Vertex) int {
	if len(verts) == 0 {
		return 0
	}
	wind := 0
	last := verts[len(verts)-1]
	oldQuad := whichQuad(last, pt)
	for _, this := range verts {
		newQuad := whichQuad(this, pt)
		if oldQuad != newQuad {
			switch {
			case (oldQuad+1)&3 == newQuad:
				wind++
			case (newQuad+1)&3 == oldQuad:
				wind--
			default:
				a := (last.Y - this.Y) * (pt.X - last.X)
				b := last.X - this.X
				a += last.Y * b
				b *= pt.Y
				if a > b {
					wind += 2
				} else {
					wind -= 2
				}
			}
			oldQuad = newQuad
		}
		last = this
	}
	return wind
}

// PointInContour reports whether pt is inside the closed ring verts. bounds
// must be the ring's bounding rectangle and is used for early rejection.
// Rings with fewer than three vertices never contain anything.
func PointInContour(pt Vertex, verts []Vertex, bounds Rect) bool {
	if len(verts) < 3 {
		return false
	}
	if !bounds.Contains(pt) {
		return false
	}
	return Winding(pt, verts) != 0
}
