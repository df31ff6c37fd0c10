package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gpl")
	content := `GIMP Palette
Name: test
Columns: 1
# comment
  0   0   0	black
255 255 255	white
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadGPL(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "test" {
		t.Errorf("Name = %q, want test", p.Name)
	}
	if len(p.Colors) != 2 {
		t.Fatalf("got %d colors, want 2", len(p.Colors))
	}
	if p.Colors[0] != (RGB{0, 0, 0}) || p.Colors[1] != (RGB{255, 255, 255}) {
		t.Fatalf("colors = %v", p.Colors)
	}
}

func TestLoadGPLOrDefaultFallsBack(t *testing.T) {
	p := LoadGPLOrDefault("/nonexistent/nope.gpl")
	if p.Name != "acid" || len(p.Colors) == 0 {
		t.Fatalf("fallback palette = %+v", p)
	}
}

func TestLookupEndpointsAndMidpoint(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}

	if p.Lookup(-1) != (RGB{0, 0, 0}) || p.Lookup(0) != (RGB{0, 0, 0}) {
		t.Fatal("low endpoint wrong")
	}
	if p.Lookup(1) != (RGB{200, 100, 50}) || p.Lookup(2) != (RGB{200, 100, 50}) {
		t.Fatal("high endpoint wrong")
	}
	mid := p.Lookup(0.5)
	if mid[0] != 100 || mid[1] != 50 || mid[2] != 25 {
		t.Fatalf("midpoint = %v", mid)
	}
}

func TestHex(t *testing.T) {
	if got := (RGB{255, 0, 16}).Hex(); got != "#ff0010" {
		t.Fatalf("Hex = %q", got)
	}
}
