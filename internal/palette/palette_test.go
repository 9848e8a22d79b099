package palette

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/colourtype/internal/colour"
)

// stripes builds a 10-pixel-wide image with one row per entry in rows.
func stripes(rows ...color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 10, len(rows)))
	for y, c := range rows {
		for x := 0; x < 10; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func repeat(c color.Color, n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		out[i] = c
	}
	return out
}

var (
	red   = color.NRGBA{R: 200, G: 10, B: 10, A: 255}
	blue  = color.NRGBA{R: 10, G: 10, B: 200, A: 255}
	green = color.NRGBA{R: 10, G: 200, B: 10, A: 255}
)

func threeColourImage() *image.NRGBA {
	var rows []color.Color
	rows = append(rows, repeat(blue, 3)...)
	rows = append(rows, repeat(red, 6)...)
	rows = append(rows, green)
	return stripes(rows...)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default", cfg: DefaultConfig()},
		{name: "kmeans", cfg: Config{Algorithm: AlgorithmKMeans, Count: 256, Precision: 1}},
		{name: "unknown algorithm", cfg: Config{Algorithm: "median", Count: 5, Precision: 5}, wantErr: true},
		{name: "zero count", cfg: Config{Algorithm: AlgorithmDominant, Count: 0, Precision: 5}, wantErr: true},
		{name: "count too large", cfg: Config{Algorithm: AlgorithmDominant, Count: 257, Precision: 5}, wantErr: true},
		{name: "zero precision", cfg: Config{Algorithm: AlgorithmDominant, Count: 5, Precision: 0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDominantExtract(t *testing.T) {
	got, err := NewDominantExtractor().Extract(threeColourImage(), 5, 1)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	want := []colour.RGB{{R: 200, G: 10, B: 10}, {R: 10, G: 10, B: 200}, {R: 10, G: 200, B: 10}}
	if len(got) != len(want) {
		t.Fatalf("Extract() returned %d colours, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Extract()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDominantExtractLimit(t *testing.T) {
	got, err := NewDominantExtractor().Extract(threeColourImage(), 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != (colour.RGB{R: 200, G: 10, B: 10}) || got[1] != (colour.RGB{R: 10, G: 10, B: 200}) {
		t.Errorf("Extract() = %v, want red then blue", got)
	}
}

func TestDominantGroupsNearShades(t *testing.T) {
	img := stripes(color.NRGBA{R: 200, G: 10, B: 10, A: 255}, color.NRGBA{R: 201, G: 11, B: 11, A: 255})
	got, err := NewDominantExtractor().Extract(img, 5, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != (colour.RGB{R: 200, G: 10, B: 10}) {
		t.Errorf("Extract() = %v, want a single averaged shade", got)
	}
}

func TestExtractSkipsTransparent(t *testing.T) {
	img := stripes(color.NRGBA{}, color.NRGBA{}, blue)
	got, err := NewDominantExtractor().Extract(img, 5, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != (colour.RGB{R: 10, G: 10, B: 200}) {
		t.Errorf("Extract() = %v, want only blue", got)
	}

	for _, alg := range ValidAlgorithms() {
		ex, err := NewExtractor(alg)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := ex.Extract(stripes(color.NRGBA{}), 5, 1); !errors.Is(err, ErrNoPixels) {
			t.Errorf("%s: Extract(transparent) error = %v, want ErrNoPixels", alg, err)
		}
	}
}

func TestExtractPrecisionSamples(t *testing.T) {
	// Rows alternate red and blue; stepping by two only ever sees red.
	var rows []color.Color
	for i := 0; i < 6; i++ {
		rows = append(rows, red, blue)
	}
	got, err := NewDominantExtractor().Extract(stripes(rows...), 5, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != (colour.RGB{R: 200, G: 10, B: 10}) {
		t.Errorf("Extract() = %v, want only red", got)
	}
}

func TestExtractInvalidArgs(t *testing.T) {
	for _, alg := range ValidAlgorithms() {
		ex, _ := NewExtractor(alg)
		if _, err := ex.Extract(nil, 5, 1); err == nil {
			t.Errorf("%s: Extract(nil) expected error", alg)
		}
		if _, err := ex.Extract(threeColourImage(), 0, 1); err == nil {
			t.Errorf("%s: Extract(count=0) expected error", alg)
		}
		if _, err := ex.Extract(threeColourImage(), 5, 0); err == nil {
			t.Errorf("%s: Extract(precision=0) expected error", alg)
		}
	}
}

func TestKMeansFewUniqueColours(t *testing.T) {
	got, err := NewKMeansExtractorWithSeed(1).Extract(threeColourImage(), 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []colour.RGB{{R: 10, G: 10, B: 200}, {R: 200, G: 10, B: 10}, {R: 10, G: 200, B: 10}}
	if len(got) != len(want) {
		t.Fatalf("Extract() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Extract()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestKMeansClusters(t *testing.T) {
	var rows []color.Color
	rows = append(rows, repeat(color.NRGBA{R: 250, A: 255}, 5)...)
	rows = append(rows, color.NRGBA{R: 240, A: 255})
	rows = append(rows, repeat(color.NRGBA{B: 250, A: 255}, 4)...)

	got, err := NewKMeansExtractorWithSeed(42).Extract(stripes(rows...), 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("Extract() = %v, want 2 colours", got)
	}
	if got[0].R < 200 || got[0].B > 50 {
		t.Errorf("Extract()[0] = %v, want the larger red cluster first", got[0])
	}
	if got[1].B < 200 || got[1].R > 50 {
		t.Errorf("Extract()[1] = %v, want the blue cluster", got[1])
	}
}

func TestPalette(t *testing.T) {
	p := FromRGB([]colour.RGB{{R: 255}, {G: 255}, {B: 0x10}})

	if p.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", p.Len())
	}

	wantHTML := []string{"#ff0000", "#00ff00", "#000010"}
	for i, h := range p.HTML() {
		if h != wantHTML[i] {
			t.Errorf("HTML()[%d] = %q, want %q", i, h, wantHTML[i])
		}
	}
	if rgb := p.RGB(); rgb[1] != (colour.RGB{G: 255}) {
		t.Errorf("RGB()[1] = %v", rgb[1])
	}

	colors := p.Colors()
	colors[0] = colour.New(0)
	if p.Colors()[0] != colour.New(0xff0000) {
		t.Error("Colors() must return a copy")
	}

	if !strings.Contains(p.String(), "#00ff00") {
		t.Errorf("String() = %q", p.String())
	}
	if New(nil).String() != "Empty palette" {
		t.Errorf("String() of empty palette = %q", New(nil).String())
	}
}

func TestPaletteJSON(t *testing.T) {
	data, err := FromRGB([]colour.RGB{{R: 255, G: 0, B: 0}}).ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Count != 1 || doc.Colors[0].Hex != "#ff0000" || doc.Colors[0].Decimal != 0xff0000 {
		t.Errorf("ToJSON() = %s", data)
	}
	if doc.Colors[0].HSL.S != 1 || doc.Colors[0].HSL.L != 0.5 {
		t.Errorf("ToJSON() hsl = %+v", doc.Colors[0].HSL)
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stripes.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, threeColourImage()); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cfg := Config{Algorithm: AlgorithmDominant, Count: 2, Precision: 1}
	p, err := FromFile(context.Background(), path, cfg, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}
	got := p.HTML()
	if len(got) != 2 || got[0] != "#c80a0a" || got[1] != "#0a0ac8" {
		t.Errorf("FromFile().HTML() = %v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FromFile(ctx, path, cfg, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("FromFile(cancelled) error = %v, want context.Canceled", err)
	}

	if _, err := FromFile(context.Background(), filepath.Join(t.TempDir(), "missing.png"), cfg, nil); err == nil {
		t.Error("FromFile(missing) expected error")
	}
	if _, err := FromFile(context.Background(), path, Config{}, nil); err == nil {
		t.Error("FromFile(zero config) expected error")
	}
}

func TestFromBytes(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, stripes(green)); err != nil {
		t.Fatal(err)
	}
	p, err := FromBytes(context.Background(), buf.Bytes(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("FromBytes() error = %v", err)
	}
	if p.Len() != 1 || p.HTML()[0] != "#0ac80a" {
		t.Errorf("FromBytes().HTML() = %v", p.HTML())
	}
}

type memoryLoader map[string]image.Image

func (m memoryLoader) Load(path string) (image.Image, error) {
	img, ok := m[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return img, nil
}

func TestFromLoader(t *testing.T) {
	loader := memoryLoader{"wallpaper": threeColourImage()}
	cfg := Config{Algorithm: AlgorithmDominant, Count: 1, Precision: 1}

	p, err := FromLoader(context.Background(), loader, "wallpaper", cfg, nil)
	if err != nil {
		t.Fatalf("FromLoader() error = %v", err)
	}
	if got := p.HTML(); len(got) != 1 || got[0] != "#c80a0a" {
		t.Errorf("FromLoader().HTML() = %v", got)
	}

	if _, err := FromLoader(context.Background(), loader, "missing", cfg, nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("FromLoader(missing) error = %v, want os.ErrNotExist", err)
	}
	if _, err := FromLoader(context.Background(), nil, "wallpaper", cfg, nil); err == nil {
		t.Error("FromLoader(nil loader) expected error")
	}
}

func TestFromImageNil(t *testing.T) {
	if _, err := FromImage(nil, DefaultConfig(), nil); err == nil {
		t.Error("FromImage(nil) expected error")
	}
}
