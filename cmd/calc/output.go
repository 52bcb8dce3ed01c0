package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/zephyrtronium/calc/internal/report"
)

// Output formats.
const outputFormats = "text,json,yaml"

// printer writes evaluation results in some format.
type printer interface {
	print(report.Result) error
}

func newPrinter(format string, w io.Writer) (printer, error) {
	switch format {
	case "", "text":
		return textPrinter{w}, nil
	case "json":
		return jsonPrinter{json.NewEncoder(w)}, nil
	case "yaml":
		return yamlPrinter{w}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// textPrinter writes one line per result. The parse tree, if present,
// precedes the value.
type textPrinter struct {
	w io.Writer
}

func (p textPrinter) print(r report.Result) error {
	if r.Tree != "" {
		if _, err := fmt.Fprintf(p.w, "%s : ", r.Tree); err != nil {
			return err
		}
	}
	var err error
	if r.Error != nil {
		_, err = fmt.Fprintf(p.w, "%s error: %s\n", r.Error.Kind, r.Error.Message)
	} else {
		_, err = fmt.Fprintln(p.w, r.Value)
	}
	return err
}

// jsonPrinter writes one JSON object per line.
type jsonPrinter struct {
	enc *json.Encoder
}

func (p jsonPrinter) print(r report.Result) error {
	return p.enc.Encode(r)
}

// yamlPrinter writes each result as its own YAML document.
type yamlPrinter struct {
	w io.Writer
}

func (p yamlPrinter) print(r report.Result) error {
	b, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(p.w, "---\n"); err != nil {
		return err
	}
	_, err = p.w.Write(b)
	return err
}
