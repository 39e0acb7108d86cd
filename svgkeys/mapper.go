// Package svgkeys maps the keys of a stroke to the layout regions
// displaying them.
package svgkeys

import "strings"

// Mapper chooses the regions to display for a stroke.
// keys are the steno keys of the stroke, prevOutput the text of the
// previous translation, possibly empty.
type Mapper interface {
	Regions(keys []string, prevOutput string) []string
}

// MapperFunc adapts a function to the Mapper interface.
type MapperFunc func(keys []string, prevOutput string) []string

func (f MapperFunc) Regions(keys []string, prevOutput string) []string { return f(keys, prevOutput) }

// KeyRegion binds a key to the region shown when it is pressed
// and the one shown when it is not.
type KeyRegion struct {
	Key      string `yaml:"key"`
	Pressed  string `yaml:"pressed"`
	Released string `yaml:"released"`
}

// KeyTable is a Mapper showing, for every key, its pressed or
// released region, in table order.
type KeyTable []KeyRegion

var _ Mapper = KeyTable(nil)

// Regions ignores prevOutput. Empty region ids are skipped.
func (t KeyTable) Regions(keys []string, _ string) []string {
	pressed := make(map[string]bool, len(keys))
	for _, k := range keys {
		pressed[k] = true
	}
	out := make([]string, 0, len(t))
	for _, kr := range t {
		id := kr.Released
		if pressed[kr.Key] {
			id = kr.Pressed
		}
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

// ParseStroke splits a stroke line into its keys. Keys are separated
// by spaces, commas or slashes.
func ParseStroke(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		switch r {
		case ' ', '\t', '\r', '\n', ',', '/':
			return true
		}
		return false
	})
}
