package theme

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
# comment
Name: Night
background: #101010
ButtonSelected: #11223380
DropTarget: lime
Unknown: #FFFFFF
not a pair
`
	th, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.Name != "Night" {
		t.Errorf("Expected name 'Night', got %q", th.Name)
	}
	if th.Background != (color.RGBA{0x10, 0x10, 0x10, 0xFF}) {
		t.Errorf("Unexpected Background: %+v", th.Background)
	}
	if th.ButtonSelected != (color.RGBA{0x11, 0x22, 0x33, 0x80}) {
		t.Errorf("Unexpected ButtonSelected: %+v", th.ButtonSelected)
	}
	if th.DropTarget != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("Unexpected DropTarget: %+v", th.DropTarget)
	}
	if th.Foreground != Default().Foreground {
		t.Errorf("Missing keys should keep defaults, got %+v", th.Foreground)
	}
}

func TestParseInvalidColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Background: #12")); err == nil {
		t.Fatal("expected error for short hex")
	}
	if _, err := Parse(strings.NewReader("Background: notacolor")); err == nil {
		t.Fatal("expected error for unknown name")
	}
}

func TestEmbeddedThemesParse(t *testing.T) {
	l := &Loader{}
	names := l.Names()
	if len(names) < 2 {
		t.Fatalf("expected embedded themes, got %v", names)
	}
	for _, n := range names {
		th, err := l.Load(n)
		if err != nil {
			t.Fatalf("load %s: %v", n, err)
		}
		if th.Name == "" {
			t.Errorf("theme %s has no name", n)
		}
	}
}

func TestDefaultThemeFileMatchesDefault(t *testing.T) {
	th, err := (&Loader{}).Load("default")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default().Fields()
	got := th.Fields()
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("%s: file %v, code %v", want[i].Name, got[i].Color, want[i].Color)
		}
	}
}

func TestLoaderSearchOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mine.theme"), []byte("Name: Mine\nBackground: #010203\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{Dirs: []string{filepath.Join(dir, "missing"), dir}}

	th, err := l.Load("mine")
	if err != nil {
		t.Fatalf("load from config dir: %v", err)
	}
	if th.Background != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("Unexpected Background: %+v", th.Background)
	}

	th, err = l.Load(filepath.Join(dir, "mine.theme"))
	if err != nil || th.Name != "Mine" {
		t.Fatalf("load by path: %v %+v", err, th)
	}

	th, err = l.Load("")
	if err != nil || th.Name != "Default" {
		t.Fatalf("empty name should give default: %v %+v", err, th)
	}

	if _, err := l.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "broken.theme"), []byte("Background: #zz\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Load("broken"); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoaderNames(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"mine.theme", "dark.theme", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("Name: x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	names := (&Loader{Dirs: []string{dir}}).Names()
	want := append((&Loader{}).Names(), "mine")
	sort.Strings(want)
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("names %v, want %v", names, want)
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.RGBA{0xAB, 0xCD, 0xEF, 0xFF}); got != "#ABCDEF" {
		t.Errorf("got %s", got)
	}
	if got := Hex(color.RGBA{1, 2, 3, 4}); got != "#01020304" {
		t.Errorf("got %s", got)
	}
}
