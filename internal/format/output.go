// Package format renders CLI results as json, edn or yaml.
package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	JSON = "json"
	EDN  = "edn"
	YAML = "yaml"
)

// Formats lists the accepted --format values.
var Formats = []string{JSON, EDN, YAML}

// Normalize lowercases f and maps "" and "yml" to their canonical names.
func Normalize(f string) (string, error) {
	f = strings.ToLower(strings.TrimSpace(f))
	switch f {
	case "":
		return JSON, nil
	case "yml":
		return YAML, nil
	case JSON, EDN, YAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want %s)", f, strings.Join(Formats, "|"))
	}
}

// Write writes v in the requested format, followed by a newline.
func Write(w io.Writer, v any, format string, pretty bool) error {
	f, err := Normalize(format)
	if err != nil {
		return err
	}
	switch f {
	case EDN:
		return WriteEDN(w, v, pretty)
	case YAML:
		return WriteYAML(w, v)
	default:
		return WriteJSON(w, v, pretty)
	}
}

// WriteJSON writes strict JSON.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// WriteYAML writes a YAML document. Struct fields use their yaml tags.
func WriteYAML(w io.Writer, v any) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
