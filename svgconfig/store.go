package svgconfig

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// Schema of the settings table. Keys are "force_repaint", and
// "<system>/<field>" for the fields svg, keymap and scale.
const Schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

const keyForceRepaint = "force_repaint"

// IsDBPath reports whether path names a settings database
// rather than a YAML file.
func IsDBPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// OpenDB opens the SQLite settings database at path,
// creating the settings table if needed.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("svgconfig: creating schema: %w", err)
	}
	return db, nil
}

// LoadDB reads the configuration stored in the settings table.
// Unknown keys are ignored.
func LoadDB(ctx context.Context, db *sql.DB) (*Config, error) {
	rows, err := db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cfg := Default()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		if err := cfg.setField(key, value); err != nil {
			return nil, fmt.Errorf("svgconfig: setting %s: %w", key, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) setField(key, value string) error {
	if key == keyForceRepaint {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		c.ForceRepaint = b
		return nil
	}
	i := strings.LastIndexByte(key, '/')
	if i < 0 {
		return nil
	}
	name, field := key[:i], key[i+1:]
	sys := c.Systems[name]
	switch field {
	case "svg":
		sys.SVG = value
	case "keymap":
		sys.KeyMap = value
	case "scale":
		scale, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		sys.Scale = scale
	default:
		return nil
	}
	c.Systems[name] = sys
	return nil
}

// SaveDB replaces the content of the settings table by c.
func (c *Config) SaveDB(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM settings`); err != nil {
		return err
	}
	insert := func(key, value string) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)`, key, value)
		return err
	}
	if err := insert(keyForceRepaint, strconv.FormatBool(c.ForceRepaint)); err != nil {
		return err
	}
	for name, sys := range c.Systems {
		if sys.SVG != "" {
			if err := insert(name+"/svg", sys.SVG); err != nil {
				return err
			}
		}
		if sys.KeyMap != "" {
			if err := insert(name+"/keymap", sys.KeyMap); err != nil {
				return err
			}
		}
		if err := insert(name+"/scale", strconv.Itoa(sys.normalized().Scale)); err != nil {
			return err
		}
	}
	return tx.Commit()
}
