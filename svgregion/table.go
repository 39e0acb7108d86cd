// Extracts the top level groups of an SVG layout into independently
// addressable regions, and composes documents made of a subset of them.
// A layout is loaded once into an immutable Table, which is then queried
// on every key state change.
package svgregion

import (
	"errors"
)

var (
	errNoRoot          = errors.New("no root element")
	errUnknownEncoding = errors.New("unsupported encoding")
)

// ParseError is returned when a layout could not be read or decoded.
type ParseError struct {
	Path string // may be empty for in-memory sources
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return "svgregion: " + e.Err.Error()
	}
	return "svgregion: " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Region is a named top level group of a layout.
type Region struct {
	ID       string
	Fragment string // serialized <g> element, with its whole subtree
}

// Table holds the regions of one layout, in document order.
// It is never modified once returned by a parsing function,
// so it may be shared freely between goroutines.
type Table struct {
	rootAttrs string
	regions   []Region
	index     map[string]int
}

func newTable() *Table {
	return &Table{index: make(map[string]int)}
}

// set stores the fragment for id. An id seen before keeps its position
// and takes the new fragment.
func (t *Table) set(id, fragment string) {
	if i, ok := t.index[id]; ok {
		t.regions[i].Fragment = fragment
		return
	}
	t.index[id] = len(t.regions)
	t.regions = append(t.regions, Region{ID: id, Fragment: fragment})
}

// RootAttributes returns the attribute text of the root element, exactly
// as written in the source (including its leading space, if any).
func (t *Table) RootAttributes() string {
	if t == nil {
		return ""
	}
	return t.rootAttrs
}

// Fragment returns the serialized group for id.
func (t *Table) Fragment(id string) (string, bool) {
	if t == nil {
		return "", false
	}
	i, ok := t.index[id]
	if !ok {
		return "", false
	}
	return t.regions[i].Fragment, true
}

// IDs returns the region ids in document order.
func (t *Table) IDs() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.regions))
	for i, r := range t.regions {
		out[i] = r.ID
	}
	return out
}

// Regions returns a copy of the regions, in document order.
func (t *Table) Regions() []Region {
	if t == nil {
		return nil
	}
	return append([]Region(nil), t.regions...)
}

// Len returns the number of regions.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.regions)
}
