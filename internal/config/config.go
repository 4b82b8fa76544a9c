// Package config loads formatter settings from a lumefmt.toml manifest
// discovered upward from the formatted file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"lumefmt/internal/format"
)

// FileName is the manifest file looked up on the way to the filesystem root.
const FileName = "lumefmt.toml"

// widthConfig is the [width] table; zero entries keep the defaults.
type widthConfig struct {
	Arguments int `toml:"arguments"`
	Infix     int `toml:"infix"`
	List      int `toml:"list"`
	Record    int `toml:"record"`
	IfElse    int `toml:"if_else"`
	Match     int `toml:"match"`
}

// Config mirrors the manifest layout. Absent keys stay zero and fall back
// to the built-in defaults when converted to format.Options.
type Config struct {
	MaxLineWidth       int         `toml:"max_line_width"`
	IndentSize         int         `toml:"indent_size"`
	InsertFinalNewline *bool       `toml:"insert_final_newline"`
	Defines            []string    `toml:"defines"`
	Width              widthConfig `toml:"width"`

	// Path is where the manifest was found; empty for the zero Config.
	Path string `toml:"-"`
}

// Find walks from startDir toward the root and returns the first
// lumefmt.toml encountered. ok is false when none exists.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses the manifest at path.
func Load(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, key.String())
	}
	cfg.Path = path
	return cfg, nil
}

// Discover combines Find and Load. A missing manifest is not an error;
// the zero Config is returned and ok is false.
func Discover(startDir string) (Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Config{}, ok, err
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, true, err
	}
	return cfg, true, nil
}

// Options converts the manifest values into formatting options, filling
// every unset key from the defaults.
func (c Config) Options() format.Options {
	opt := format.DefaultOptions()
	if c.MaxLineWidth > 0 {
		opt.MaxLineWidth = c.MaxLineWidth
	}
	if c.IndentSize > 0 {
		opt.IndentSize = c.IndentSize
	}
	if c.InsertFinalNewline != nil {
		opt.InsertFinalNewline = *c.InsertFinalNewline
	}
	if c.Width.Arguments > 0 {
		opt.Widths.Arguments = c.Width.Arguments
	}
	if c.Width.Infix > 0 {
		opt.Widths.Infix = c.Width.Infix
	}
	if c.Width.List > 0 {
		opt.Widths.List = c.Width.List
	}
	if c.Width.Record > 0 {
		opt.Widths.Record = c.Width.Record
	}
	if c.Width.IfElse > 0 {
		opt.Widths.IfElse = c.Width.IfElse
	}
	if c.Width.Match > 0 {
		opt.Widths.Match = c.Width.Match
	}
	return opt
}

// DefineSet folds the manifest defines and extra command-line defines into
// the set consumed by the lexer's directive evaluation. Later entries win;
// a "NAME=off" form disables an earlier enable.
func (c Config) DefineSet(extra []string) map[string]bool {
	set := make(map[string]bool, len(c.Defines)+len(extra))
	add := func(raw string) {
		name, on := raw, true
		for i := 0; i < len(raw); i++ {
			if raw[i] == '=' {
				name = raw[:i]
				on = raw[i+1:] != "off" && raw[i+1:] != "false" && raw[i+1:] != "0"
				break
			}
		}
		if name != "" {
			set[name] = on
		}
	}
	for _, d := range c.Defines {
		add(d)
	}
	for _, d := range extra {
		add(d)
	}
	return set
}
