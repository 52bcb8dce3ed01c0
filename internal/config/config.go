// Package config loads default flag values for the calc command from a YAML
// file.
//
// Nested mappings are flattened by joining keys with hyphens, so
//
//	log:
//	  level: debug
//	serve:
//	  addr: ":8080"
//
// sets --log-level for every command and --addr for the serve command.
// Command-line flags and environment variables override the file.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// Name is the directory and file stem used for the default config path.
const Name = "calc"

// DefaultPath returns the location of the user's config file. It is empty if
// the platform has no user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, Name, "config.yaml")
}

// Values holds flattened config values keyed by hyphenated path.
type Values map[string]any

// Load is a [kong.ConfigurationLoader] for YAML config files.
func Load(r io.Reader) (kong.Resolver, error) {
	v, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Decode reads a YAML document and flattens it. An empty document gives empty
// values.
func Decode(r io.Reader) (Values, error) {
	var doc map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	v := make(Values)
	v.flatten("", doc)
	return v, nil
}

func (v Values) flatten(prefix string, m map[string]any) {
	for k, x := range m {
		key := strings.ReplaceAll(strings.ToLower(k), "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}
		switch x := x.(type) {
		case map[string]any:
			v.flatten(key, x)
		case map[any]any:
			sub := make(map[string]any, len(x))
			for k, y := range x {
				sub[fmt.Sprint(k)] = y
			}
			v.flatten(key, sub)
		case bool, nil:
			v[key] = x
		default:
			// kong parses scalars from their text.
			v[key] = fmt.Sprint(x)
		}
	}
}

// Validate implements [kong.Resolver].
func (v Values) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver]. A flag of a command is looked up first
// under the command's name, then by itself.
func (v Values) Resolve(_ *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
	if parent != nil && parent.Command != nil {
		if x, ok := v[parent.Command.Name+"-"+flag.Name]; ok {
			return x, nil
		}
	}
	if x, ok := v[flag.Name]; ok {
		return x, nil
	}
	return nil, nil
}
