package arrangegraph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/arrange/lib/geo"
)

// Document is a serialized layout request.
type Document struct {
	Strategy  Strategy   `json:"strategy,omitempty" yaml:"strategy,omitempty" toml:"strategy,omitempty"`
	Options   Options    `json:"options" yaml:"options" toml:"options"`
	Items     []Item     `json:"items" yaml:"items" toml:"items"`
	Relations []Relation `json:"relations,omitempty" yaml:"relations,omitempty" toml:"relations,omitempty"`
	// Colors maps a category to a CSS color used by previews.
	Colors map[string]string `json:"colors,omitempty" yaml:"colors,omitempty" toml:"colors,omitempty"`
}

// Result is a serialized layout response.
type Result struct {
	Strategy Strategy `json:"strategy" yaml:"strategy" toml:"strategy"`
	Items    []Item   `json:"items" yaml:"items" toml:"items"`
	Bounds   *geo.Box `json:"bounds,omitempty" yaml:"bounds,omitempty" toml:"bounds,omitempty"`
}

func NewResult(strategy Strategy, items []Item) Result {
	return Result{
		Strategy: strategy,
		Items:    items,
		Bounds:   BoundingBox(items),
	}
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the codec for path by extension. Unknown extensions are JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

func ParseDocument(path string, data []byte) (_ *Document, err error) {
	defer xdefer.Errorf(&err, "failed to parse %s", path)

	doc := &Document{}
	switch FormatOf(path) {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(doc)
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), doc)
		if err == nil {
			if undec := md.Undecoded(); len(undec) > 0 {
				err = fmt.Errorf("unknown key %q", undec[0].String())
			}
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(doc)
	}
	if err != nil {
		return nil, err
	}
	err = doc.Validate()
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate canonicalizes the named fields of doc the way the command line
// flags are parsed. Empty fields stay empty and fall back to defaults later.
func (doc *Document) Validate() (err error) {
	if doc.Strategy != "" {
		doc.Strategy, err = ParseStrategy(string(doc.Strategy))
		if err != nil {
			return err
		}
	}
	if doc.Options.Direction != "" {
		doc.Options.Direction, err = ParseDirection(string(doc.Options.Direction))
		if err != nil {
			return err
		}
	}
	if doc.Options.SortBy != "" {
		doc.Options.SortBy, err = ParseSortKey(string(doc.Options.SortBy))
		if err != nil {
			return err
		}
	}
	return nil
}

// Marshal encodes v in format.
func Marshal(format Format, v interface{}) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatTOML:
		buf := &bytes.Buffer{}
		err := toml.NewEncoder(buf).Encode(v)
		if err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	}
}
