package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when there is nothing to decode.
	ErrEmptyInput = errors.New("empty input")
	// ErrUnexpectedFormat is returned when the input is neither a
	// [context, book] pair nor an object carrying a "book" member.
	ErrUnexpectedFormat = errors.New("unexpected input format")
)

// Context describes the build that invoked the preprocessor. It is read,
// never written back.
type Context struct {
	Root          string          `json:"root"`
	Config        json.RawMessage `json:"config"`
	Renderer      string          `json:"renderer"`
	MdbookVersion string          `json:"mdbook_version"`
}

// PreprocessorConfig returns the raw [preprocessor.<name>] table from the
// book configuration, if there is one.
func (c *Context) PreprocessorConfig(name string) (json.RawMessage, bool, error) {
	if c == nil || len(c.Config) == 0 || string(c.Config) == "null" {
		return nil, false, nil
	}
	var cfg struct {
		Preprocessor map[string]json.RawMessage `json:"preprocessor"`
	}
	if err := json.Unmarshal(c.Config, &cfg); err != nil {
		return nil, false, fmt.Errorf("book config: %w", err)
	}
	table, ok := cfg.Preprocessor[name]
	if !ok || string(table) == "null" {
		return nil, false, nil
	}
	return table, true, nil
}

// ParseInput decodes what mdBook writes to a preprocessor's stdin: a JSON
// array [context, book]. An object of the form {"book": ..., "context": ...}
// is accepted too; its context is optional.
func ParseInput(data []byte) (*Context, *Book, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil, ErrEmptyInput
	}

	switch data[0] {
	case '[':
		var pair []json.RawMessage
		if err := json.Unmarshal(data, &pair); err != nil {
			return nil, nil, err
		}
		if len(pair) != 2 {
			return nil, nil, fmt.Errorf("%w: expected array of length 2, got %d", ErrUnexpectedFormat, len(pair))
		}
		var ctx Context
		if err := json.Unmarshal(pair[0], &ctx); err != nil {
			return nil, nil, fmt.Errorf("context: %w", err)
		}
		var b Book
		if err := json.Unmarshal(pair[1], &b); err != nil {
			return nil, nil, err
		}
		return &ctx, &b, nil

	case '{':
		var obj struct {
			Context *Context `json:"context"`
			Book    *Book    `json:"book"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, nil, err
		}
		if obj.Book == nil {
			return nil, nil, fmt.Errorf("%w: object has no \"book\" member", ErrUnexpectedFormat)
		}
		if obj.Context == nil {
			obj.Context = &Context{}
		}
		return obj.Context, obj.Book, nil
	}

	return nil, nil, ErrUnexpectedFormat
}
