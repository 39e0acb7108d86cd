package svgdraw

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/svglayout/svgconfig"
	"github.com/benoitkugler/svglayout/svgkeys"
	"github.com/benoitkugler/svglayout/svgregion"
)

const twoKeys = `<svg width="200" height="100"><g id="l"><rect width="100" height="100"/></g><g id="l_n"/><g id="r"><rect x="100" width="100" height="100"/></g><g id="r_n"/></svg>`

const twoKeysTable = `
- {key: L-, pressed: l, released: l_n}
- {key: -R, pressed: r, released: r_n}
`

// recorder keeps the presented frames.
type recorder struct {
	frames []Frame
	err    error
}

func (r *recorder) Present(f Frame) error {
	r.frames = append(r.frames, f)
	return r.err
}

func (r *recorder) last(t *testing.T) Frame {
	t.Helper()
	if len(r.frames) == 0 {
		t.Fatal("no frame presented")
	}
	return r.frames[len(r.frames)-1]
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func noRepaint() *svgconfig.Config {
	cfg := svgconfig.Default()
	cfg.ForceRepaint = false
	return cfg
}

func TestEnglishDefault(t *testing.T) {
	rec := new(recorder)
	tool, err := New(noRepaint(), svgconfig.EnglishStenotype, rec)
	if err != nil {
		t.Fatal(err)
	}
	f := rec.last(t)
	if f.Placeholder {
		t.Fatal("the default layout should load")
	}
	if f.Size != (svgregion.Size{W: 452, H: 188}) || f.Width != 452 {
		t.Errorf("unexpected frame size %s (width %d)", f.Size, f.Width)
	}
	if !strings.Contains(f.Document, `<g id="ls_n">`) || strings.Contains(f.Document, `<g id="ls">`) {
		t.Error("an empty stroke should display released keys")
	}

	if err := tool.Stroke([]string{"S-", "-Z"}, ""); err != nil {
		t.Fatal(err)
	}
	f = rec.last(t)
	for _, id := range []string{"ls", "rz", "lt_n", "star_n"} {
		if !strings.Contains(f.Document, `<g id="`+id+`">`) {
			t.Errorf("region %s not displayed", id)
		}
	}
	if strings.Contains(f.Document, `<g id="ls_n">`) {
		t.Error("pressed key displayed as released")
	}
	if len(rec.frames) != 2 {
		t.Errorf("expected 2 frames, got %d", len(rec.frames))
	}
}

func TestConfiguredSystem(t *testing.T) {
	cfg := noRepaint()
	cfg.SetSystem("Two", svgconfig.System{
		SVG:    writeFile(t, "two.svg", twoKeys),
		KeyMap: writeFile(t, "two.yaml", twoKeysTable),
		Scale:  50,
	})
	rec := new(recorder)
	tool, err := New(cfg, "Two", rec, WithSizer(fixedSizer{200, 100}))
	if err != nil {
		t.Fatal(err)
	}
	if f := rec.last(t); f.Size != (svgregion.Size{W: 100, H: 50}) {
		t.Errorf("unexpected size %s", f.Size)
	}
	if err := tool.Stroke([]string{"-R"}, "previous"); err != nil {
		t.Fatal(err)
	}
	want := "<svg width=\"200\" height=\"100\">\n<g id=\"l_n\"/>\n<g id=\"r\"><rect x=\"100\" width=\"100\" height=\"100\"/></g>\n</svg>"
	if got := rec.last(t).Document; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNoKeyTable(t *testing.T) {
	cfg := noRepaint()
	cfg.SetSystem("Plain", svgconfig.System{SVG: writeFile(t, "two.svg", twoKeys)})
	rec := new(recorder)
	tool, err := New(cfg, "Plain", rec, WithSizer(fixedSizer{200, 100}))
	if err != nil {
		t.Fatal(err)
	}
	full := tool.Renderer().State().Document
	if err := tool.Stroke([]string{"L-"}, ""); err != nil {
		t.Fatal(err)
	}
	for _, f := range rec.frames {
		if f.Document != full {
			t.Errorf("without key table the full layout should stay displayed, got %q", f.Document)
		}
	}
	if len(rec.frames) != 2 {
		t.Errorf("every stroke should still be presented, got %d frames", len(rec.frames))
	}
}

func TestInvalidKeyTable(t *testing.T) {
	cfg := noRepaint()
	cfg.SetSystem("Broken", svgconfig.System{
		SVG:    writeFile(t, "two.svg", twoKeys),
		KeyMap: writeFile(t, "bad.yaml", "not: [a, table"),
	})
	rec := new(recorder)
	if _, err := New(cfg, "Broken", rec, WithSizer(fixedSizer{200, 100})); err != nil {
		t.Fatal(err)
	}
	if f := rec.last(t); f.Placeholder || !strings.Contains(f.Document, `<g id="l">`) {
		t.Errorf("the layout should be displayed in full, got %q", f.Document)
	}
}

func TestUnknownSystem(t *testing.T) {
	rec := new(recorder)
	tool, err := New(noRepaint(), "Melani", rec, WithSizer(fixedSizer{200, 100}))
	if err != nil {
		t.Fatal(err)
	}
	if !rec.last(t).Placeholder {
		t.Error("expected the placeholder for an unconfigured system")
	}
	if err := tool.Stroke([]string{"S-"}, ""); err != nil {
		t.Fatal(err)
	}
	if f := rec.last(t); !f.Placeholder || f.Document != rec.frames[0].Document {
		t.Error("the placeholder should stay displayed")
	}
}

func TestEnglishPartialConfig(t *testing.T) {
	cfg := noRepaint()
	cfg.SetSystem(svgconfig.EnglishStenotype, svgconfig.System{Scale: 50})
	rec := new(recorder)
	if _, err := New(cfg, svgconfig.EnglishStenotype, rec); err != nil {
		t.Fatal(err)
	}
	f := rec.last(t)
	if f.Placeholder || f.Size != (svgregion.Size{W: 226, H: 94}) {
		t.Errorf("unexpected frame %s, placeholder: %v", f.Size, f.Placeholder)
	}
	if !strings.Contains(f.Document, `<g id="num_n">`) {
		t.Error("the built-in key table should be used")
	}
}

func TestForceRepaint(t *testing.T) {
	cfg := svgconfig.Default()
	cfg.ForceRepaint = true
	rec := new(recorder)
	tool, err := New(cfg, "Unknown", rec, WithSizer(fixedSizer{200, 100}))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := tool.Stroke(nil, ""); err != nil {
			t.Fatal(err)
		}
	}
	var widths []int
	for _, f := range rec.frames {
		widths = append(widths, f.Width)
		if f.Size.W != 200 {
			t.Errorf("the layout size should not change, got %s", f.Size)
		}
	}
	want := []int{201, 200, 201, 200}
	if len(widths) != len(want) {
		t.Fatalf("unexpected widths %v", widths)
	}
	for i := range want {
		if widths[i] != want[i] {
			t.Fatalf("unexpected widths %v, want %v", widths, want)
		}
	}
}

func TestSetSystem(t *testing.T) {
	cfg := noRepaint()
	cfg.SetSystem("Two", svgconfig.System{SVG: writeFile(t, "two.svg", twoKeys), KeyMap: svgkeys.EnglishRef})
	rec := new(recorder)
	tool, err := New(cfg, "Two", rec, WithSizer(fixedSizer{200, 100}))
	if err != nil {
		t.Fatal(err)
	}
	if err := tool.SetSystem("Two"); err != nil {
		t.Fatal(err)
	}
	if len(rec.frames) != 1 {
		t.Errorf("same system should not reload, got %d frames", len(rec.frames))
	}

	if err := tool.SetSystem("Other"); err != nil {
		t.Fatal(err)
	}
	if len(rec.frames) != 2 || !rec.last(t).Placeholder || tool.System() != "Other" {
		t.Error("a new system should reload")
	}
}

func TestSetConfig(t *testing.T) {
	rec := new(recorder)
	tool, err := New(noRepaint(), "Two", rec, WithSizer(fixedSizer{200, 100}))
	if err != nil {
		t.Fatal(err)
	}
	if !rec.last(t).Placeholder {
		t.Fatal("expected the placeholder")
	}

	cfg := tool.Config()
	cfg.SetSystem("Two", svgconfig.System{SVG: writeFile(t, "two.svg", twoKeys)})
	if _, ok := tool.Config().System("Two"); ok {
		t.Error("Config should return a copy")
	}
	if err := tool.SetConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if rec.last(t).Placeholder {
		t.Error("the new configuration should be applied")
	}
}

func TestDriverError(t *testing.T) {
	rec := &recorder{err: errors.New("window closed")}
	tool, err := New(noRepaint(), "Any", rec, WithSizer(fixedSizer{1, 1}))
	if err == nil || tool == nil {
		t.Fatalf("expected the tool and the driver error, got %v, %v", tool, err)
	}
	if err := tool.Stroke(nil, ""); !errors.Is(err, rec.err) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestNilConfig(t *testing.T) {
	var frames int
	tool, err := New(nil, svgconfig.EnglishStenotype, DriverFunc(func(Frame) error { frames++; return nil }))
	if err != nil {
		t.Fatal(err)
	}
	if err := tool.SetConfig(nil); err != nil {
		t.Fatal(err)
	}
	if frames != 2 {
		t.Errorf("expected 2 frames, got %d", frames)
	}
}
