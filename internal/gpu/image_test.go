package gpu

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func checkerboard() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
	}
	return img
}

func TestDecodeRGBAFromBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, checkerboard()); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}

	rgba, err := DecodeRGBA(&buf)
	if err != nil {
		t.Fatalf("DecodeRGBA: %v", err)
	}
	if got := rgba.Rect.Size(); got != (image.Point{4, 2}) {
		t.Fatalf("size: got %v, want 4x2", got)
	}
	if c := rgba.RGBAAt(0, 0); c.R != 255 || c.B != 0 {
		t.Errorf("pixel (0,0): got %v, want red", c)
	}
	if c := rgba.RGBAAt(1, 0); c.B != 255 || c.R != 0 {
		t.Errorf("pixel (1,0): got %v, want blue", c)
	}
	if rgba.Stride != 16 {
		t.Errorf("stride: got %d, want 16", rgba.Stride)
	}
}

func TestDecodeRGBAFromPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, checkerboard()); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	rgba, err := DecodeRGBA(&buf)
	if err != nil {
		t.Fatalf("DecodeRGBA: %v", err)
	}
	if c := rgba.RGBAAt(3, 1); c.R != 255 {
		t.Errorf("pixel (3,1): got %v, want red", c)
	}
}

func TestDecodeRGBARejectsGarbage(t *testing.T) {
	if _, err := DecodeRGBA(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatal("expected an error for undecodable input")
	}
}

func TestShadowTypeViews(t *testing.T) {
	if ShadowSimple.Views() != 1 || ShadowCube.Views() != 6 {
		t.Fatalf("views: simple=%d cube=%d", ShadowSimple.Views(), ShadowCube.Views())
	}
	if ShadowCube.TextureTarget() != TextureCubeMap || ShadowSimple.TextureTarget() != Texture2D {
		t.Fatal("unexpected texture targets")
	}
	if ShadowCube.String() != "CUBE" || ShadowSimple.String() != "SIMPLE" {
		t.Fatalf("names: %s %s", ShadowSimple, ShadowCube)
	}
}

func TestProgramPaths(t *testing.T) {
	main := ProgramPaths("shaders", MainProgram)
	if main.Vertex != filepath.Join("shaders", "main.vert") || main.Fragment != filepath.Join("shaders", "main.frag") {
		t.Errorf("main stages: %+v", main)
	}
	if main.Geometry != "" {
		t.Errorf("main has a geometry stage: %q", main.Geometry)
	}
	if cube := ProgramPaths("shaders", CubeShadowProgram); cube.Geometry != filepath.Join("shaders", "shadow_cube.geom") {
		t.Errorf("cube geometry stage: %q", cube.Geometry)
	}
}
