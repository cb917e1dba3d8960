// Command heattile renders a tile from a GPX track: it projects the track
// into a slippy-map tile frame, builds a heatmap from its points, extracts
// iso-density contours, and writes the PNG through the on-disk tile cache.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"tilekit/contour"
	"tilekit/geotrail"
	"tilekit/heatmap"
	"tilekit/projection"
	"tilekit/tilecache"
	"tilekit/tileframe"
	"tilekit/tkconfig"
)

func main() {
	var (
		gpxPath        = flag.String("gpx", "", "path to a GPX track file")
		z              = flag.Int("z", 14, "tile zoom")
		x              = flag.Int("x", 0, "tile x")
		y              = flag.Int("y", 0, "tile y")
		tileSize       = flag.Int("size", 256, "tile pixel size")
		outPath        = flag.String("out", "", "optional direct PNG output path (bypasses the cache)")
		contourPercent = flag.Float64("contour-percentile", 80, "contour percentile to report")
	)
	flag.Parse()

	if *gpxPath == "" {
		fmt.Fprintln(os.Stderr, "usage: heattile -gpx track.gpx [-z Z -x X -y Y]")
		os.Exit(1)
	}

	data, err := os.ReadFile(*gpxPath)
	if err != nil {
		fatal("read gpx: %v", err)
	}

	trail, err := geotrail.Parse(data)
	if err != nil {
		fatal("parse gpx: %v", err)
	}
	fmt.Printf("loaded %d points, %.1fm, +%.0fm/-%.0fm\n",
		len(trail.Points), trail.DistanceMeter, trail.ElevationGain, trail.ElevationLoss)

	bound := projection.TileXY{X: int64(*x), Y: int64(*y)}.Bound(*z)
	frame, err := tileframe.New(bound.MinLon, bound.MinLat, bound.MaxLon, bound.MaxLat, *tileSize, *tileSize, 4326)
	if err != nil {
		fatal("build tile frame: %v", err)
	}

	points := geotrail.ToHeatmapPoints(trail, frame)

	cfg := tkconfig.Load()

	h := heatmap.New(frame.Width(), frame.Height())
	if err := h.SetRadius(cfg.Heatmap.DefaultRadius); err != nil {
		fatal("configure radius: %v", err)
	}
	if err := h.SetIntensity(cfg.Heatmap.DefaultIntensity); err != nil {
		fatal("configure intensity: %v", err)
	}
	if err := h.SetBlur(cfg.Heatmap.DefaultBlur); err != nil {
		fatal("configure blur: %v", err)
	}
	h.AddPoints(points)

	contours, err := contour.Extract(h, contour.Breakpoint{Percentile: *contourPercent})
	if err != nil {
		fatal("extract contours: %v", err)
	}
	for _, c := range contours {
		fmt.Printf("contour at threshold %d: %d polygons\n", c.Threshold, len(c.Polygons))
	}

	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fatal("create output: %v", err)
		}
		defer f.Close()
		if err := png.Encode(f, h.Render()); err != nil {
			fatal("encode png: %v", err)
		}
		fmt.Printf("wrote %s\n", *outPath)
		return
	}

	if err := cfg.Validate(); err != nil {
		fatal("cache config: %v", err)
	}
	cache, err := tilecache.New(cfg.Cache.Dir, cfg.Cache.MaxAgeMillis, cfg.Cache.MaxSize)
	if err != nil {
		fatal("open cache: %v", err)
	}
	defer cache.Stop()

	key := tilecache.RelativePath(*x, *y, *z)
	path, err := cache.GetOrCreate(key, func() (image.Image, error) {
		return h.Render(), nil
	}, cfg.Cache.SaveEmptyTile)
	if err != nil {
		fatal("cache tile: %v", err)
	}
	fmt.Printf("cached at %s\n", path)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
