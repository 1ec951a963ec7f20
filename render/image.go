package render

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"sync"
	"sync/atomic"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/lixenwraith/hearth/core"
)

// Image is a decorative raster resource loaded in the background
// Draws must consult Complete first; a failed load never completes
type Image struct {
	path     string
	complete atomic.Bool

	mu  sync.RWMutex
	img image.Image
}

// NewImage creates an unloaded image reference
func NewImage(path string) *Image {
	return &Image{path: path}
}

// NewLoadedImage wraps an already decoded image, marked complete
func NewLoadedImage(img image.Image) *Image {
	i := &Image{img: img}
	i.complete.Store(img != nil)
	return i
}

// Path returns the source path
func (i *Image) Path() string {
	return i.path
}

// Load reads and decodes the file synchronously
func (i *Image) Load() error {
	f, err := os.Open(i.path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode image %s: %w", i.path, err)
	}

	i.mu.Lock()
	i.img = img
	i.mu.Unlock()
	i.complete.Store(true)

	log.Printf("Loaded decorative image %s (%s, %dx%d)", i.path, format, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

// LoadAsync starts Load on a crash-guarded goroutine
// Failures are logged and leave the image incomplete; no retry
func (i *Image) LoadAsync() {
	core.Go(func() {
		if err := i.Load(); err != nil {
			log.Printf("Decorative image unavailable: %v", err)
		}
	})
}

// Complete reports whether the image finished loading
func (i *Image) Complete() bool {
	if i == nil {
		return false
	}
	return i.complete.Load()
}

// Source returns the decoded image, nil until complete
func (i *Image) Source() image.Image {
	if !i.Complete() {
		return nil
	}
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.img
}
