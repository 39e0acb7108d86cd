package svgregion

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync/atomic"
)

var (
	errNoLayout = errors.New("no layout configured")
	errNoSizer  = errors.New("no rendering surface to measure the layout")
)

// placeholderSize is used when even the placeholder cannot be measured.
var placeholderSize = Size{W: 200, H: 100}

// Sizer is the rendering surface: it reports the natural (unscaled)
// size of a complete document.
type Sizer interface {
	NaturalSize(doc string) (Size, error)
}

// State describes what a Renderer currently displays.
// A State is never modified once published.
type State struct {
	Table       *Table // nil for the placeholder
	Path        string
	Scale       int    // percent
	Size        Size   // scaled size of the full layout
	Placeholder bool   // the layout could not be loaded
	Document    string // full composite, or the placeholder document
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithResources sets the file system used for paths starting
// with ResourcePrefix. It defaults to Resources.
func WithResources(fsys fs.FS) Option {
	return func(r *Renderer) { r.resources = fsys }
}

// WithPlaceholder replaces the document displayed when a layout
// fails to load. doc must be a complete, valid document.
func WithPlaceholder(doc string) Option {
	return func(r *Renderer) { r.placeholder = doc }
}

// Renderer owns the loaded layout and composes the document to display
// for every key state.
// LoadAndScale builds the new state aside and publishes it with a single
// atomic store, so that UpdateActive never observes a partial reload.
// A single goroutine is expected to call LoadAndScale; UpdateActive and
// the accessors may be called from any goroutine.
type Renderer struct {
	sizer       Sizer
	resources   fs.FS
	placeholder string

	state atomic.Pointer[State]
}

// NewRenderer returns a renderer measuring documents with sizer.
// Nothing is loaded until LoadAndScale is called.
func NewRenderer(sizer Sizer, opts ...Option) *Renderer {
	r := &Renderer{sizer: sizer, resources: Resources, placeholder: placeholderSVG}
	for _, opt := range opts {
		opt(r)
	}
	r.state.Store(&State{Scale: DefaultScale})
	return r
}

// LoadAndScale loads the layout at path, scaled by scalePercent, and makes
// it the active one. It returns the full document and its scaled size.
// On any failure, including a blank path, the placeholder document is
// activated instead: LoadAndScale never fails.
// scalePercent is clamped to [MinScale, MaxScale].
func (r *Renderer) LoadAndScale(path string, scalePercent int) (string, Size) {
	scale := ClampScale(scalePercent)
	st, err := r.load(path, scale)
	if err != nil {
		Logger().Warn("svgregion: displaying placeholder", "path", path, "error", err)
		st = r.fallback(scale)
	} else {
		Logger().Info("svgregion: layout loaded", "path", path, "regions", st.Table.Len(), "size", st.Size.String())
	}
	r.state.Store(st)
	return st.Document, st.Size
}

func (r *Renderer) load(path string, scale int) (*State, error) {
	table, err := r.open(path)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, errNoLayout
	}
	doc := table.CompositeAll()
	natural, err := r.measure(doc)
	if err != nil {
		return nil, err
	}
	return &State{
		Table:    table,
		Path:     path,
		Scale:    scale,
		Size:     natural.ScaleKeepAspect(scale),
		Document: doc,
	}, nil
}

func (r *Renderer) open(path string) (*Table, error) {
	if name, ok := strings.CutPrefix(path, ResourcePrefix); ok {
		if r.resources == nil {
			return nil, &ParseError{Path: path, Err: fs.ErrNotExist}
		}
		return LoadFS(r.resources, name)
	}
	return LoadFile(path)
}

// measure shields the load path from a failing rendering surface.
func (r *Renderer) measure(doc string) (size Size, err error) {
	if r.sizer == nil {
		return Size{}, errNoSizer
	}
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("measuring layout: %v", v)
		}
	}()
	size, err = r.sizer.NaturalSize(doc)
	if err == nil && size.Empty() {
		err = fmt.Errorf("measuring layout: empty size %s", size)
	}
	return size, err
}

func (r *Renderer) fallback(scale int) *State {
	natural, err := r.measure(r.placeholder)
	if err != nil {
		natural = placeholderSize
	}
	return &State{
		Scale:       scale,
		Size:        natural.ScaleKeepAspect(scale),
		Placeholder: true,
		Document:    r.placeholder,
	}
}

// UpdateActive returns the document made of the regions ids of the active
// layout, in the order given. While the placeholder is active, the
// placeholder document is returned whatever ids is.
// It only performs table lookups and string concatenation.
func (r *Renderer) UpdateActive(ids []string) string {
	st := r.state.Load()
	if st.Placeholder {
		return st.Document
	}
	return st.Table.Composite(ids)
}

// State returns the active state.
func (r *Renderer) State() State { return *r.state.Load() }

// IntrinsicSize returns the scaled size of the active layout.
func (r *Renderer) IntrinsicSize() Size { return r.state.Load().Size }

// IsPlaceholder reports whether the placeholder is active.
func (r *Renderer) IsPlaceholder() bool { return r.state.Load().Placeholder }
