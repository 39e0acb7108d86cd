package svgdraw

import (
	"sync"

	"github.com/benoitkugler/svglayout/svgconfig"
	"github.com/benoitkugler/svglayout/svgkeys"
	"github.com/benoitkugler/svglayout/svgraster"
	"github.com/benoitkugler/svglayout/svgregion"
)

// Option configures a Tool.
type Option func(*Tool)

// WithSizer sets the surface measuring layouts.
// It defaults to svgraster.Surface{}.
func WithSizer(s svgregion.Sizer) Option {
	return func(t *Tool) { t.sizer = s }
}

// WithRendererOptions forwards opts to the layout renderer.
func WithRendererOptions(opts ...svgregion.Option) Option {
	return func(t *Tool) { t.rendererOpts = append(t.rendererOpts, opts...) }
}

// Tool displays the active steno system's layout, following its strokes.
// Its methods may be called from any goroutine.
type Tool struct {
	sizer        svgregion.Sizer
	rendererOpts []svgregion.Option
	renderer     *svgregion.Renderer
	driver       Driver

	mu     sync.Mutex
	cfg    *svgconfig.Config
	system string
	mapper svgkeys.Mapper // nil when the system has no key table
	doc    string         // currently displayed
	offset bool           // alternates with every frame
}

// New returns a tool displaying system according to cfg, and presents
// its first frame. A nil cfg stands for svgconfig.Default().
func New(cfg *svgconfig.Config, system string, d Driver, opts ...Option) (*Tool, error) {
	if cfg == nil {
		cfg = svgconfig.Default()
	}
	t := &Tool{sizer: svgraster.Surface{}, driver: d, cfg: cfg, system: system}
	for _, opt := range opts {
		opt(t)
	}
	t.renderer = svgregion.NewRenderer(t.sizer, t.rendererOpts...)
	if err := t.Reload(); err != nil {
		return t, err
	}
	return t, nil
}

// Renderer returns the renderer holding the active layout.
func (t *Tool) Renderer() *svgregion.Renderer { return t.renderer }

// System returns the name of the displayed system.
func (t *Tool) System() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.system
}

// Reload loads the layout and key table of the current system,
// and presents the display for an empty stroke.
func (t *Tool) Reload() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reload()
}

// layoutFor returns what to load for the current system. The English
// system falls back on the layout and table shipped with the packages.
func (t *Tool) layoutFor() (path, keymap string, scale int) {
	sys, ok := t.cfg.System(t.system)
	path, keymap, scale = sys.SVG, sys.KeyMap, sys.Scale
	if t.system == svgconfig.EnglishStenotype {
		if !ok || path == "" {
			path = svgregion.DefaultLayout
			if keymap == "" {
				keymap = svgkeys.EnglishRef
			}
		}
	}
	if scale <= 0 {
		scale = svgregion.DefaultScale
	}
	return path, keymap, scale
}

func (t *Tool) reload() error {
	path, keymap, scale := t.layoutFor()
	logger := svgregion.Logger()

	mapper, err := svgkeys.Resolve(keymap)
	if err != nil {
		logger.Warn("svgdraw: key table ignored", "system", t.system, "keymap", keymap, "error", err)
		mapper = nil
	}
	t.mapper = mapper
	t.doc, _ = t.renderer.LoadAndScale(path, scale)
	logger.Debug("svgdraw: system loaded", "system", t.system, "layout", path, "keymap", keymap, "scale", scale)
	return t.stroke(nil, "")
}

// Stroke updates the display for a stroke made of keys.
// prevOutput is the text of the previous translation.
// Without a key table, the display is presented unchanged.
func (t *Tool) Stroke(keys []string, prevOutput string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stroke(keys, prevOutput)
}

func (t *Tool) stroke(keys []string, prevOutput string) error {
	if t.mapper != nil {
		t.doc = t.renderer.UpdateActive(t.mapper.Regions(keys, prevOutput))
	}
	return t.present()
}

func (t *Tool) present() error {
	t.offset = !t.offset
	st := t.renderer.State()
	width := st.Size.W
	if t.cfg.ForceRepaint && t.offset {
		width++
	}
	return t.driver.Present(Frame{
		Document:    t.doc,
		Size:        st.Size,
		Width:       width,
		Placeholder: st.Placeholder,
	})
}

// SetSystem switches to the system name, reloading only
// when it differs from the current one.
func (t *Tool) SetSystem(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if name == t.system {
		return nil
	}
	t.system = name
	return t.reload()
}

// Config returns a copy of the configuration in use.
func (t *Tool) Config() *svgconfig.Config {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cfg.Copy()
}

// SetConfig replaces the configuration and reloads.
// A nil cfg stands for svgconfig.Default().
func (t *Tool) SetConfig(cfg *svgconfig.Config) error {
	if cfg == nil {
		cfg = svgconfig.Default()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cfg = cfg
	return t.reload()
}
