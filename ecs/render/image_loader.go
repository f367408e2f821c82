package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/milk9111/seasons/assets"
)

// ImageCache decodes tileset images once per path.
type ImageCache struct {
	images map[string]image.Image
}

func NewImageCache() *ImageCache {
	return &ImageCache{images: make(map[string]image.Image)}
}

// Load returns the decoded image for key, from assets or the filesystem.
func (c *ImageCache) Load(key string) (image.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("empty image key")
	}
	if c.images == nil {
		c.images = make(map[string]image.Image)
	}
	if img, ok := c.images[key]; ok {
		return img, nil
	}
	img, err := loadImageFromAssetsOrFS(key)
	if err != nil {
		return nil, err
	}
	c.images[key] = img
	return img, nil
}

// Put registers an already decoded image under key.
func (c *ImageCache) Put(key string, img image.Image) {
	if key == "" || img == nil {
		return
	}
	if c.images == nil {
		c.images = make(map[string]image.Image)
	}
	c.images[key] = img
}

func loadImageFromAssetsOrFS(path string) (image.Image, error) {
	if img, err := assets.DecodeImage(path); err == nil {
		return img, nil
	}
	tried := []string{path, filepath.Join("assets", path), filepath.Base(path)}
	for _, p := range tried {
		if b, err := os.ReadFile(p); err == nil {
			if im, _, err := image.Decode(bytes.NewReader(b)); err == nil {
				return im, nil
			}
		}
	}
	return nil, fmt.Errorf("failed to load image %s", path)
}
