package opengl

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"

	"shadowcaster/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// LoadTexture loads a 2D texture from a file
func LoadTexture(path string) (uint32, int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	rgba, err := gpu.DecodeRGBA(file)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%s: %w", path, err)
	}
	size := rgba.Rect.Size()
	return UploadRGBA(rgba), size.X, size.Y, nil
}

// SolidTexture creates a 1x1 texture filled with c.
func SolidTexture(c color.RGBA) uint32 {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return UploadRGBA(img)
}

// UploadRGBA copies img into a new repeating, linearly filtered texture.
func UploadRGBA(img *image.RGBA) uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(img.Rect.Size().X),
		int32(img.Rect.Size().Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texture
}

// DeleteTextures frees textures, skipping zero handles.
func DeleteTextures(textures ...uint32) {
	for _, t := range textures {
		if t != 0 {
			gl.DeleteTextures(1, &t)
		}
	}
}

// TextureCache shares loaded textures between models that reference the
// same file.
type TextureCache struct {
	mu       sync.RWMutex
	textures map[string]uint32
}

func NewTextureCache() *TextureCache {
	return &TextureCache{textures: make(map[string]uint32)}
}

// Get returns the texture for path, loading it on first use.
func (c *TextureCache) Get(path string) (uint32, error) {
	c.mu.RLock()
	if tex, ok := c.textures[path]; ok {
		c.mu.RUnlock()
		return tex, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double check locking
	if tex, ok := c.textures[path]; ok {
		return tex, nil
	}

	tex, _, _, err := LoadTexture(path)
	if err != nil {
		return 0, err
	}
	c.textures[path] = tex
	return tex, nil
}

// Purge deletes every cached texture.
func (c *TextureCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for path, tex := range c.textures {
		DeleteTextures(tex)
		delete(c.textures, path)
	}
}
