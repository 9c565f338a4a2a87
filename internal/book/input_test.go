package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInput_LegacyObject(t *testing.T) {
	ctx, b, err := ParseInput([]byte(`{"book":{"sections":[{"Chapter":{"name":"A","content":"[[x]]","sub_items":[]}}]}}`))
	require.NoError(t, err)
	require.NotNil(t, ctx)
	assert.Empty(t, ctx.Renderer)
	require.Len(t, b.Sections, 1)
	assert.Equal(t, "[[x]]", b.Sections[0].Chapter.Content)
}

func TestParseInput_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		is    error
	}{
		{"empty", "", ErrEmptyInput},
		{"whitespace", " \n\t", ErrEmptyInput},
		{"wrong array length", `[{}]`, ErrUnexpectedFormat},
		{"three elements", `[{}, {}, {}]`, ErrUnexpectedFormat},
		{"object without book", `{"sections":[]}`, ErrUnexpectedFormat},
		{"null book", `{"book":null}`, ErrUnexpectedFormat},
		{"scalar", `42`, ErrUnexpectedFormat},
		{"truncated", `[{"renderer":"html"}, {"sections":[`, nil},
		{"bad sections", `[{}, {"sections":{}}]`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseInput([]byte(tt.input))
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestContext_PreprocessorConfig(t *testing.T) {
	ctx, _, err := ParseInput([]byte(`[{"renderer":"html","config":{"preprocessor":{"wikilinks":{"extension":".html"}}}},{"sections":[]}]`))
	require.NoError(t, err)

	table, ok, err := ctx.PreprocessorConfig("wikilinks")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"extension":".html"}`, string(table))

	_, ok, err = ctx.PreprocessorConfig("other")
	require.NoError(t, err)
	assert.False(t, ok)

	var empty *Context
	_, ok, err = empty.PreprocessorConfig("wikilinks")
	require.NoError(t, err)
	assert.False(t, ok)

	bad := &Context{Config: []byte(`"not an object"`)}
	_, _, err = bad.PreprocessorConfig("wikilinks")
	assert.Error(t, err)
}
