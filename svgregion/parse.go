package svgregion

import (
	"encoding/xml"
	"io"
	"io/fs"
	"os"
	"strings"
)

// LoadFile reads and parses the layout stored at path.
// A blank path means that no layout is configured: both the table
// and the error are nil.
// Read and decoding failures are reported as a *ParseError; malformed
// markup is not an error, as much structure as possible is recovered.
func LoadFile(path string) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return parseBytes(path, raw)
}

// LoadFS is the same as LoadFile, for a file of the given file system.
func LoadFS(fsys fs.FS, name string) (*Table, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}
	return parseBytes(name, raw)
}

// Parse reads a whole layout from r.
func Parse(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return parseBytes("", raw)
}

// ParseString parses an already decoded layout.
func ParseString(src string) (*Table, error) {
	src = strings.ToValidUTF8(strings.TrimPrefix(src, "\ufeff"), "\uFFFD")
	t, err := parseSource(src)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return t, nil
}

func parseBytes(path string, raw []byte) (*Table, error) {
	src, err := decodeSource(raw)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	t, err := parseSource(src)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return t, nil
}

func newDecoder(r io.Reader) *xml.Decoder {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false
	decoder.Entity = xml.HTMLEntity
	// the source is decoded to UTF-8 before tokenizing
	decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }
	return decoder
}

// regionParser walks the raw token stream of a layout. It keeps its own
// element stack, so that it may resynchronize after a syntax error and
// close elements left open by the source.
type regionParser struct {
	src  string
	base int // offset in src of the decoder input
	dec  *xml.Decoder

	stack    []string // raw (prefixed) names of the open elements, root first
	rootSeen bool
	done     bool

	cur   *strings.Builder // fragment of the region being read, if any
	curID string

	table     *Table
	recovered int
}

func (p *regionParser) resume(offset int) {
	p.base = offset
	p.dec = newDecoder(strings.NewReader(p.src[offset:]))
}

func (p *regionParser) offset() int { return p.base + int(p.dec.InputOffset()) }

func parseSource(src string) (*Table, error) {
	p := regionParser{src: src, table: newTable()}
	p.resume(0)
	for !p.done {
		start := p.offset()
		tok, err := p.dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			p.recovered++
			Logger().Debug("svgregion: skipping malformed markup", "offset", start, "error", err)
			if start+1 >= len(src) {
				break
			}
			next := strings.IndexByte(src[start+1:], '<')
			if next < 0 {
				break
			}
			p.resume(start + 1 + next)
			continue
		}
		p.handle(tok, src[start:p.offset()])
	}
	if len(p.stack) != 0 {
		p.recovered++
		p.closeFrom(0)
	}

	if !p.rootSeen {
		return nil, errNoRoot
	}
	if p.recovered != 0 {
		Logger().Debug("svgregion: layout parsed with recovery", "recoveries", p.recovered, "regions", p.table.Len())
	}
	return p.table, nil
}

func (p *regionParser) handle(tok xml.Token, raw string) {
	switch tok := tok.(type) {
	case xml.StartElement:
		p.startElement(tok, raw)
	case xml.EndElement:
		p.endElement(tok, raw)
	default: // text, comments, processing instructions, directives
		if p.cur != nil {
			p.cur.WriteString(raw)
		}
	}
}

func (p *regionParser) startElement(se xml.StartElement, raw string) {
	name := rawName(se.Name)
	switch {
	case !p.rootSeen:
		p.rootSeen = true
		p.table.rootAttrs = rootAttributes(raw, name)
	case len(p.stack) == 1:
		if id := groupID(se); id != "" {
			p.cur = new(strings.Builder)
			p.curID = id
		}
	}
	if p.cur != nil {
		p.cur.WriteString(raw)
	}
	p.stack = append(p.stack, name)
}

func (p *regionParser) endElement(ee xml.EndElement, raw string) {
	name := rawName(ee.Name)
	i := len(p.stack) - 1
	for i >= 0 && p.stack[i] != name {
		i--
	}
	if i < 0 {
		p.recovered++
		Logger().Debug("svgregion: dropping unmatched end tag", "tag", name)
		return
	}
	if i != len(p.stack)-1 {
		p.recovered++
		p.closeFrom(i + 1)
	}
	p.pop(raw)
}

// closeFrom closes every open element at depth >= depth,
// synthesizing their end tags.
func (p *regionParser) closeFrom(depth int) {
	for len(p.stack) > depth {
		p.pop("</" + p.stack[len(p.stack)-1] + ">")
	}
}

// pop closes the innermost open element, with the given end tag.
func (p *regionParser) pop(endTag string) {
	if p.cur != nil {
		p.cur.WriteString(endTag)
	}
	p.stack = p.stack[:len(p.stack)-1]
	switch len(p.stack) {
	case 1: // a child of the root is complete
		if p.cur != nil {
			p.table.set(p.curID, p.cur.String())
			p.cur = nil
		}
	case 0: // anything after the root element is ignored
		p.done = true
	}
}

// rawName returns the element name as written in the source:
// RawToken does not resolve prefixes, it only splits them off.
func rawName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// localName strips the namespace prefix of a tag. The tokenizer only
// splits names with a single colon, so the local part is cut again.
func localName(n xml.Name) string {
	if i := strings.LastIndexByte(n.Local, ':'); i >= 0 {
		return n.Local[i+1:]
	}
	return n.Local
}

// groupID returns the id of a region candidate: a <g> element (with or
// without namespace prefix) carrying a non-empty, unprefixed id.
func groupID(se xml.StartElement) string {
	if localName(se.Name) != "g" {
		return ""
	}
	for _, attr := range se.Attr {
		if attr.Name.Space == "" && attr.Name.Local == "id" {
			return attr.Value
		}
	}
	return ""
}

// rootAttributes slices the attribute text out of the raw root start tag:
// from just after the tag name to the closing '>', byte for byte.
func rootAttributes(raw, name string) string {
	attrs := strings.TrimSuffix(raw[1+len(name):], ">")
	return strings.TrimSuffix(attrs, "/")
}
