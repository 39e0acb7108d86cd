package svgkeys

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// BuiltinPrefix introduces the name of a built-in table in Resolve.
const BuiltinPrefix = "builtin:"

// EnglishRef refers to EnglishStenotype.
const EnglishRef = BuiltinPrefix + "english"

var builtins = map[string]KeyTable{
	"english": EnglishStenotype,
}

var errEmptyKey = errors.New("empty key")

// ParseKeyTable reads a YAML sequence of key regions:
//
//	- key: S-
//	  pressed: ls
//	  released: ls_n
func ParseKeyTable(data []byte) (KeyTable, error) {
	var table KeyTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("svgkeys: invalid key table: %w", err)
	}
	seen := make(map[string]bool, len(table))
	for i, kr := range table {
		if strings.TrimSpace(kr.Key) == "" {
			return nil, fmt.Errorf("svgkeys: entry %d: %w", i, errEmptyKey)
		}
		if seen[kr.Key] {
			return nil, fmt.Errorf("svgkeys: entry %d: duplicate key %q", i, kr.Key)
		}
		seen[kr.Key] = true
	}
	return table, nil
}

// LoadKeyTable reads the YAML key table stored in the file at path.
func LoadKeyTable(path string) (KeyTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("svgkeys: %w", err)
	}
	table, err := ParseKeyTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Resolve returns the mapper designated by ref: a built-in table for
// "builtin:<name>", the key table file at ref otherwise.
// A blank ref designates no mapper and returns nil, nil.
func Resolve(ref string) (Mapper, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}
	if name, ok := strings.CutPrefix(ref, BuiltinPrefix); ok {
		table, ok := builtins[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("svgkeys: unknown built-in table %q", name)
		}
		return table, nil
	}
	table, err := LoadKeyTable(ref)
	if err != nil {
		return nil, err
	}
	return table, nil
}
