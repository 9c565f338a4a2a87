package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookInput = `[
  {"root": "/book", "config": {"book": {"title": "Demo"}}, "renderer": "html", "mdbook_version": "0.4.40"},
  {"sections": [
    {"Chapter": {
      "name": "Intro",
      "content": "See [[Getting Started#First Steps|the guide]] and [[notes]].",
      "number": [1],
      "sub_items": [],
      "path": "intro.md",
      "source_path": "intro.md",
      "parent_names": []
    }}
  ], "__non_exhaustive": null}
]`

type streams struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func execute(t *testing.T, stdin string, args ...string) (int, *streams) {
	t.Helper()
	s := &streams{}
	g := &Global{Stdin: strings.NewReader(stdin), Stdout: &s.stdout, Stderr: &s.stderr}
	code := Execute(args, g)
	return code, s
}

func chapterContent(t *testing.T, out []byte) string {
	t.Helper()
	var book struct {
		Sections []struct {
			Chapter struct {
				Content string `json:"content"`
			} `json:"Chapter"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(out, &book))
	require.Len(t, book.Sections, 1)
	return book.Sections[0].Chapter.Content
}

func TestExecute_DefaultCommandRewritesBook(t *testing.T) {
	code, s := execute(t, bookInput)

	require.Equal(t, 0, code, s.stderr.String())
	assert.Equal(t,
		"See [the guide](Getting Started.md#first-steps) and [notes](notes.md).",
		chapterContent(t, s.stdout.Bytes()))
	assert.Contains(t, s.stdout.String(), `"__non_exhaustive":null`)
}

func TestExecute_ExplicitRunCommand(t *testing.T) {
	code, s := execute(t, bookInput, "run")

	require.Equal(t, 0, code, s.stderr.String())
	assert.Contains(t, chapterContent(t, s.stdout.Bytes()), "[notes](notes.md)")
}

func TestExecute_Supports(t *testing.T) {
	tests := []struct {
		renderer string
		want     int
	}{
		{"html", 0},
		{"markdown", 0},
		{"not-supported", 1},
	}
	for _, tt := range tests {
		t.Run(tt.renderer, func(t *testing.T) {
			code, s := execute(t, "", "supports", tt.renderer)
			assert.Equal(t, tt.want, code)
			assert.Empty(t, s.stdout.String())
		})
	}
}

func TestExecute_UnsupportedMessageOnStderr(t *testing.T) {
	code, s := execute(t, "", "supports", "not-supported")

	assert.Equal(t, 1, code)
	assert.Contains(t, s.stderr.String(), `renderer "not-supported" is not supported`)
}

func TestExecute_MalformedInput(t *testing.T) {
	code, s := execute(t, `{"not": "a book"`)

	assert.Equal(t, 2, code)
	assert.Empty(t, s.stdout.String())
	assert.Contains(t, s.stderr.String(), "Error:")
}

func TestExecute_InvalidLogLevel(t *testing.T) {
	code, s := execute(t, bookInput, "--log-level", "loud")

	assert.Equal(t, 2, code)
	assert.Empty(t, s.stdout.String())
}

func TestExecute_UnknownFlag(t *testing.T) {
	code, s := execute(t, bookInput, "--no-such-flag")

	assert.Equal(t, 2, code)
	assert.Empty(t, s.stdout.String())
}

func TestExecute_MissingConfigFile(t *testing.T) {
	code, s := execute(t, bookInput, "-c", filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, 7, code)
	assert.Empty(t, s.stdout.String())
}

func TestExecute_ConfigFileSetsExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wikilinks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extension: .html\n"), 0o600))

	code, s := execute(t, bookInput, "--config", path)

	require.Equal(t, 0, code, s.stderr.String())
	assert.Contains(t, chapterContent(t, s.stdout.Bytes()), "[notes](notes.html)")
}

func TestExecute_ConfigFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wikilinks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extension: .htm\n"), 0o600))
	t.Setenv("MDBOOK_WIKILINKS_CONFIG", path)

	code, s := execute(t, bookInput)

	require.Equal(t, 0, code, s.stderr.String())
	assert.Contains(t, chapterContent(t, s.stdout.Bytes()), "[notes](notes.htm)")
}

func TestExecute_JSONLogsStayOnStderr(t *testing.T) {
	code, s := execute(t, bookInput, "--log-format", "json", "-v")

	require.Equal(t, 0, code)
	require.NotEmpty(t, s.stderr.String())
	for _, line := range strings.Split(strings.TrimSpace(s.stderr.String()), "\n") {
		assert.True(t, json.Valid([]byte(line)), "not a JSON log line: %s", line)
	}
	assert.Contains(t, s.stderr.String(), `"chapter":"Intro"`)
	assert.True(t, json.Valid(s.stdout.Bytes()))
}

func TestExecute_LogLevelFromEnv(t *testing.T) {
	t.Setenv("MDBOOK_WIKILINKS_LOG_LEVEL", "error")

	code, s := execute(t, bookInput)

	require.Equal(t, 0, code)
	assert.Empty(t, s.stderr.String())
}
