package svgconfig

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ForceRepaint != (runtime.GOOS == "darwin") {
		t.Errorf("unexpected force repaint %v on %s", cfg.ForceRepaint, runtime.GOOS)
	}
	if cfg.Systems == nil || len(cfg.Systems) != 0 {
		t.Errorf("unexpected systems %v", cfg.Systems)
	}
}

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("testdata/config.yaml")
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		ForceRepaint: true,
		Systems: map[string]System{
			"English Stenotype": {SVG: ":/en_layout.svg", KeyMap: "builtin:english", Scale: 150},
			"Custom":            {SVG: "/layouts/custom.svg", KeyMap: "/layouts/custom.yaml", Scale: 100},
			"Tiny":              {SVG: "tiny.svg", Scale: 5},
			"Huge":              {Scale: 10000},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("systems: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ForceRepaint != Default().ForceRepaint {
		t.Error("force repaint should keep its default when absent")
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("systems: [1, 2]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.ForceRepaint = !cfg.ForceRepaint
	cfg.SetSystem("English Stenotype", System{SVG: "en.svg", Scale: 80})
	cfg.SetSystem("Other", System{KeyMap: "builtin:english"})
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("(-saved +loaded):\n%s", diff)
	}

	// no temporary file left over
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected a single file, got %d entries", len(entries))
	}
}

func TestCopy(t *testing.T) {
	cfg := Default()
	cfg.SetSystem("A", System{SVG: "a.svg"})
	cp := cfg.Copy()
	cp.SetSystem("A", System{SVG: "b.svg"})
	cp.SetSystem("B", System{})
	cp.ForceRepaint = !cfg.ForceRepaint

	if sys, _ := cfg.System("A"); sys.SVG != "a.svg" {
		t.Errorf("copy shares its systems: %v", sys)
	}
	if _, ok := cfg.System("B"); ok {
		t.Error("copy shares its systems")
	}
}

func TestSetSystem(t *testing.T) {
	var cfg Config
	cfg.SetSystem("A", System{Scale: 0})
	cfg.SetSystem("B", System{Scale: 3})
	cfg.SetSystem("C", System{Scale: 99999})
	for name, want := range map[string]int{"A": 100, "B": 5, "C": 10000} {
		sys, ok := cfg.System(name)
		if !ok || sys.Scale != want {
			t.Errorf("%s: got %v, want scale %d", name, sys, want)
		}
	}
	if _, ok := cfg.System("D"); ok {
		t.Error("unexpected system D")
	}
}
