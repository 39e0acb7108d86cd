package svgregion

import "strings"

const (
	docOpen  = "<svg"
	docClose = "</svg>"
)

// Composite returns a standalone document made of the regions named by ids,
// stacked in the order of ids. Unknown ids are skipped.
// The root element reuses the source root attributes verbatim, so that
// the composite keeps the geometry and namespaces of the layout.
// The result is always a complete document, with an empty body when no
// id matches.
func (t *Table) Composite(ids []string) string {
	fragments := make([]string, 0, len(ids))
	size := 0
	for _, id := range ids {
		if frag, ok := t.Fragment(id); ok {
			fragments = append(fragments, frag)
			size += len(frag) + 1
		}
	}
	return t.wrap(fragments, size)
}

// CompositeAll returns the document made of every region, in document order.
func (t *Table) CompositeAll() string {
	if t == nil {
		return t.wrap(nil, 0)
	}
	fragments := make([]string, len(t.regions))
	size := 0
	for i, r := range t.regions {
		fragments[i] = r.Fragment
		size += len(r.Fragment) + 1
	}
	return t.wrap(fragments, size)
}

// wrap writes <svg{root}>\n{fragments joined by \n}\n</svg>
func (t *Table) wrap(fragments []string, size int) string {
	root := t.RootAttributes()
	var b strings.Builder
	b.Grow(len(docOpen) + len(root) + 2 + size + len(docClose))
	b.WriteString(docOpen)
	b.WriteString(root)
	b.WriteString(">\n")
	for i, frag := range fragments {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(frag)
	}
	b.WriteByte('\n')
	b.WriteString(docClose)
	return b.String()
}
