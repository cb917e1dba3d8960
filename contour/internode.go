package contour

// direction is the 8-way heading between two consecutive boundary points.
type direction int

const (
	dirE direction = iota
	dirSE
	dirS
	dirSW
	dirW
	dirNW
	dirN
	dirNE
)

// inode is one "internode": the midpoint between a boundary point and its
// successor, tagged with the direction of travel to that successor.
type inode struct {
	P   Point
	Dir direction
}

// internodes converts a closed point loop into its internode sequence, per
// the spec's definition: thispoint_i = midpoint(path_i, path_{i+1 mod L}).
func internodes(path []Point) []inode {
	n := len(path)
	out := make([]inode, n)
	for i := 0; i < n; i++ {
		next := path[(i+1)%n]
		cur := path[i]
		out[i] = inode{
			P:   Point{(cur.X + next.X) / 2, (cur.Y + next.Y) / 2},
			Dir: directionOf(next.X-cur.X, next.Y-cur.Y),
		}
	}
	return out
}

func directionOf(dx, dy float64) direction {
	switch {
	case dx > 0 && dy == 0:
		return dirE
	case dx > 0 && dy > 0:
		return dirSE
	case dx == 0 && dy > 0:
		return dirS
	case dx < 0 && dy > 0:
		return dirSW
	case dx < 0 && dy == 0:
		return dirW
	case dx < 0 && dy < 0:
		return dirNW
	case dx == 0 && dy < 0:
		return dirN
	default:
		return dirNE
	}
}
