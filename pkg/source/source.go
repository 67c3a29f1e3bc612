// Package source loads declarative option lists from YAML, TOML and JSONC
// documents.
package source

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/muhammadmuzzammil1998/jsonc"
	"gopkg.in/yaml.v3"

	apperrors "github.com/odvcencio/selectsync/pkg/errors"
	"github.com/odvcencio/selectsync/pkg/option"
)

// Format names a document encoding.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
	FormatJSONC Format = "jsonc"
)

// Document is a declared select field.
type Document struct {
	Name        string       `json:"name" yaml:"name" toml:"name"`
	Multiple    bool         `json:"multiple" yaml:"multiple" toml:"multiple"`
	ClassPrefix string       `json:"class_prefix" yaml:"class_prefix" toml:"class_prefix"`
	Options     []option.Raw `json:"options" yaml:"options" toml:"options"`
}

// FormatFor picks a format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json", ".jsonc":
		return FormatJSONC, nil
	default:
		return "", apperrors.New(apperrors.ErrCodeSourceFormat, "unsupported option source").
			WithContext("path", path)
	}
}

// LoadFile reads and decodes an option document.
func LoadFile(path string) (*Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSourceRead, "read option source").
			WithContext("path", path)
	}

	doc, err := Decode(data, format)
	if err != nil {
		if e, ok := err.(*apperrors.Error); ok {
			return nil, e.WithContext("path", path)
		}
		return nil, err
	}
	return doc, nil
}

// Decode parses data in the given format. A bare list of options is accepted
// as well as a full document.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error

	switch format {
	case FormatYAML:
		err = decodeYAML(data, &doc)
	case FormatTOML:
		_, err = toml.Decode(string(data), &doc)
	case FormatJSONC:
		err = decodeJSON(jsonc.ToJSON(data), &doc)
	default:
		return nil, apperrors.New(apperrors.ErrCodeSourceFormat, "unsupported format").
			WithContext("format", string(format))
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSourceParse, "decode option source").
			WithContext("format", string(format))
	}
	return &doc, nil
}

func decodeYAML(data []byte, doc *Document) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}
	if len(node.Content) == 0 {
		return nil
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		return node.Content[0].Decode(&doc.Options)
	}
	return node.Content[0].Decode(doc)
}

func decodeJSON(data []byte, doc *Document) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &doc.Options)
	}
	return json.Unmarshal(trimmed, doc)
}
