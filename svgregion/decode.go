package svgregion

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

func hasBOM(raw []byte) bool {
	return bytes.HasPrefix(raw, bomUTF8) ||
		bytes.HasPrefix(raw, bomUTF16BE) ||
		bytes.HasPrefix(raw, bomUTF16LE)
}

// decodeSource returns the document as UTF-8 text.
// A byte order mark wins over the XML declaration; without one the
// declared encoding is honored, and UTF-8 is assumed otherwise.
func decodeSource(raw []byte) (string, error) {
	if hasBOM(raw) {
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
		if err != nil {
			return "", fmt.Errorf("decoding: %w", err)
		}
		return strings.ToValidUTF8(string(out), "\uFFFD"), nil
	}

	if label := declaredEncoding(raw); label != "" && !isUTF8Label(label) {
		enc, name := charset.Lookup(label)
		if enc == nil {
			return "", fmt.Errorf("%w: %q", errUnknownEncoding, label)
		}
		out, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("decoding %s: %w", name, err)
		}
		return string(out), nil
	}

	if utf8.Valid(raw) {
		return string(raw), nil
	}
	return strings.ToValidUTF8(string(raw), "\uFFFD"), nil
}

func isUTF8Label(label string) bool {
	return strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "utf8")
}

// declaredEncoding returns the encoding named by a leading
// <?xml ... encoding="..."?> declaration, or "".
func declaredEncoding(raw []byte) string {
	if !bytes.HasPrefix(raw, []byte("<?xml")) {
		return ""
	}
	end := bytes.Index(raw, []byte("?>"))
	if end < 0 {
		return ""
	}
	decl := raw[:end]
	i := bytes.Index(decl, []byte("encoding"))
	if i < 0 {
		return ""
	}
	rest := bytes.TrimLeft(decl[i+len("encoding"):], " \t\r\n")
	if len(rest) == 0 || rest[0] != '=' {
		return ""
	}
	rest = bytes.TrimLeft(rest[1:], " \t\r\n")
	if len(rest) == 0 || (rest[0] != '"' && rest[0] != '\'') {
		return ""
	}
	quote := rest[0]
	j := bytes.IndexByte(rest[1:], quote)
	if j < 0 {
		return ""
	}
	return string(rest[1 : 1+j])
}
