package image

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}

	path := filepath.Join(dir, "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestFileLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, 4, 3)

	img, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("Load() bounds = %v, want 4x3", b)
	}
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "missing file", path: filepath.Join(dir, "missing.png")},
		{name: "directory", path: dir},
		{name: "not an image", path: bad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFileLoader().Load(tt.path); err == nil {
				t.Errorf("Load(%q) expected error", tt.path)
			}
			if err := ValidateImagePath(tt.path); err == nil {
				t.Errorf("ValidateImagePath(%q) expected error", tt.path)
			}
		})
	}
}

func TestValidateImagePath(t *testing.T) {
	path := writePNG(t, t.TempDir(), 2, 2)
	if err := ValidateImagePath(path); err != nil {
		t.Errorf("ValidateImagePath() error = %v", err)
	}
}

func TestDecodeBytes(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 5))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	got, err := DecodeBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if b := got.Bounds(); b.Dx() != 2 || b.Dy() != 5 {
		t.Errorf("DecodeBytes() bounds = %v, want 2x5", b)
	}

	if _, err := DecodeBytes(nil); err == nil {
		t.Error("DecodeBytes(nil) expected error")
	}
}

func TestDimensions(t *testing.T) {
	path := writePNG(t, t.TempDir(), 7, 9)
	w, h, err := Dimensions(path)
	if err != nil {
		t.Fatal(err)
	}
	if w != 7 || h != 9 {
		t.Errorf("Dimensions() = %dx%d, want 7x9", w, h)
	}
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "a.png", want: true},
		{path: "a.JPG", want: true},
		{path: "a.webp", want: true},
		{path: "a.txt", want: false},
		{path: "png", want: false},
	}
	for _, tt := range tests {
		if got := IsImageFile(tt.path); got != tt.want {
			t.Errorf("IsImageFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
