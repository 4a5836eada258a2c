package loader

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DecodeTOML reads path from fsys and decodes it into v.
func DecodeTOML(fsys FileSystem, path string, v any) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return UnmarshalTOML(path, data, v)
}

// UnmarshalTOML decodes data into v, reporting failures as *ParseError.
func UnmarshalTOML(source string, data []byte, v any) error {
	if err := toml.Unmarshal(data, v); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		return pe
	}
	return nil
}

// LoadTOMLMap decodes a TOML file into a generic map.
// A missing file yields nil, nil.
func LoadTOMLMap(fsys FileSystem, path string) (map[string]any, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var m map[string]any
	if err := UnmarshalTOML(path, data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeYAML reads path from fsys and decodes it into v.
func DecodeYAML(fsys FileSystem, path string, v any) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DeepMerge recursively merges src into dst.
// Values in src override values in dst.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = srcVal
	}
	return dst
}
