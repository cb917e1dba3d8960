package tilecache

import "fmt"

// RelativePath builds the cache key for tile (x,y,z): the zoom, then (for
// z >= 8) the tile's ancestor at zoom 8 as a two-level shard prefix, then
// x/y, bounding directory fan-out at high zoom levels.
func RelativePath(x, y, z int) string {
	if z < 8 {
		return fmt.Sprintf("%d/%d/%d", z, x, y)
	}
	shift := uint(z - 8)
	t0 := x >> shift
	t1 := y >> shift
	return fmt.Sprintf("%d/%d/%d/%d/%d", z, t0, t1, x, y)
}
