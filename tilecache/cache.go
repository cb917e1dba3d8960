// Package tilecache implements a disk-backed tile cache that guarantees a
// producer runs exactly once per key even under concurrent requests, with
// atomic publication so readers never observe a partially written file.
package tilecache

import (
	"bytes"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"tilekit/tkerrors"
)

// Producer renders the tile image for a key. It may return (nil, nil) to
// signal an intentionally empty tile.
type Producer func() (image.Image, error)

// TileCache is a disk-backed, single-producer-per-key tile cache.
type TileCache struct {
	dir string

	mu       sync.Mutex
	entries  map[string]*cacheEntry
	requests map[string]int64 // key -> last request time, unix millis

	maxAge  int64 // ms
	maxSize int

	stopSweep chan struct{}
	sweepOnce sync.Once
}

// New creates a cache rooted at dir, creating the directory if needed.
func New(dir string, maxAgeMillis int64, maxSize int) (*TileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, tkerrors.New("tilecache.New", tkerrors.KindInvalidCacheDir, err)
	}
	c := &TileCache{
		dir:       dir,
		entries:   make(map[string]*cacheEntry),
		requests:  make(map[string]int64),
		maxAge:    maxAgeMillis,
		maxSize:   maxSize,
		stopSweep: make(chan struct{}),
	}
	go c.sweepLoop()
	return c, nil
}

// Stop halts the background sweeper. Safe to call multiple times.
func (c *TileCache) Stop() {
	c.sweepOnce.Do(func() { close(c.stopSweep) })
}

func (c *TileCache) entryFor(key string) *cacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests[key] = time.Now().UnixMilli()
	e, ok := c.entries[key]
	if !ok {
		e = newCacheEntry()
		c.entries[key] = e
	}
	return e
}

// GetOrCreate returns the on-disk path for key, invoking producer exactly
// once across any number of concurrent callers. If the produced image is
// fully transparent, the file is omitted unless saveEmptyTile is set, in
// which case a zero-byte marker file is written.
func (c *TileCache) GetOrCreate(key string, producer Producer, saveEmptyTile bool) (string, error) {
	entry := c.entryFor(key)

	if path, becomeProducer := entry.awaitProducerSlot(); !becomeProducer {
		return path, nil
	}

	img, err := callProducer(entry, producer)
	if err != nil {
		entry.abortProduction()
		return "", tkerrors.New("TileCache.GetOrCreate", tkerrors.KindProducerFailed, err)
	}

	finalPath := filepath.Join(c.dir, key+".png")

	if img == nil || isEmptyImage(img) {
		if !saveEmptyTile {
			entry.publish(finalPath)
			return finalPath, nil
		}
		if err := c.publishAtomic(finalPath, nil); err != nil {
			entry.abortProduction()
			return "", tkerrors.New("TileCache.GetOrCreate", tkerrors.KindIO, err)
		}
		entry.publish(finalPath)
		return finalPath, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		entry.abortProduction()
		return "", tkerrors.New("TileCache.GetOrCreate", tkerrors.KindIO, err)
	}
	if err := c.publishAtomic(finalPath, buf.Bytes()); err != nil {
		entry.abortProduction()
		return "", tkerrors.New("TileCache.GetOrCreate", tkerrors.KindIO, err)
	}

	entry.publish(finalPath)
	return finalPath, nil
}

// callProducer runs producer under a scoped guard: a panic inside producer
// resets the entry to absent and wakes waiters before propagating, so a
// crashing producer never leaves the entry stuck in statusProducing forever.
func callProducer(entry *cacheEntry, producer Producer) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			entry.abortProduction()
			panic(r)
		}
	}()
	return producer()
}

// Remove deletes key's file (waiting for any in-flight producer first) and
// drops the entry so the next GetOrCreate invokes the producer again. Safe
// to call repeatedly on an already-removed key.
func (c *TileCache) Remove(key string) error {
	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return nil
	}

	path, known := entry.awaitIdle()

	c.mu.Lock()
	delete(c.entries, key)
	delete(c.requests, key)
	c.mu.Unlock()

	if !known || path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return tkerrors.New("TileCache.Remove", tkerrors.KindIO, err)
	}
	return nil
}

// publishAtomic writes data (nil means a zero-byte marker file) to a
// uuid-named file in a sibling temp directory, then renames it into place.
// Rename within the same filesystem is atomic, so readers never observe a
// partially written file.
func (c *TileCache) publishAtomic(finalPath string, data []byte) error {
	tempDir := c.dir + "_temp"
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return err
	}
	tmpPath := filepath.Join(tempDir, uuid.New().String()+".tmp")
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if err := os.MkdirAll(filepath.Dir(finalPath), 0o755); err != nil {
		return err
	}
	return os.Rename(tmpPath, finalPath)
}

func isEmptyImage(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a != 0 {
				return false
			}
		}
	}
	return true
}

func (c *TileCache) sweepLoop() {
	ticker := time.NewTicker(time.Duration(c.maxAge) * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopSweep:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

// sweep evicts entries whose last request predates maxAge, but only runs
// its scan once the request index holds at least maxSize keys.
func (c *TileCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.requests) < c.maxSize {
		return
	}
	cutoff := time.Now().UnixMilli() - c.maxAge
	evicted := 0
	for key, last := range c.requests {
		if last < cutoff {
			delete(c.requests, key)
			delete(c.entries, key)
			evicted++
		}
	}
	if evicted > 0 {
		log.Printf("tilecache: swept %d stale entries", evicted)
	}
}
