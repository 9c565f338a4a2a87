package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyEdits_SingleReplacement(t *testing.T) {
	src := "See [[api]] for details.\n"
	idx := strings.Index(src, "[[api]]")
	require.NotEqual(t, -1, idx)

	out, err := ApplyEdits(src, []Edit{{Start: idx, End: idx + len("[[api]]"), Replacement: "[api](api.md)"}})
	require.NoError(t, err)
	require.Equal(t, "See [api](api.md) for details.\n", out)
}

func TestApplyEdits_UnorderedEdits(t *testing.T) {
	src := "A: [[a]]\nB: [[b]]\n"
	idxA := strings.Index(src, "[[a]]")
	idxB := strings.Index(src, "[[b]]")

	out, err := ApplyEdits(src, []Edit{
		{Start: idxB, End: idxB + 5, Replacement: "[b](b.md)"},
		{Start: idxA, End: idxA + 5, Replacement: "[a](a.md)"},
	})
	require.NoError(t, err)
	require.Equal(t, "A: [a](a.md)\nB: [b](b.md)\n", out)
}

func TestApplyEdits_CRLFInputPreserved(t *testing.T) {
	src := "A: [[x]]\r\nB: [[x]]\r\n"
	idx := strings.Index(src, "[[x]]")

	out, err := ApplyEdits(src, []Edit{{Start: idx, End: idx + 5, Replacement: "[x](x.md)"}})
	require.NoError(t, err)
	require.Equal(t, "A: [x](x.md)\r\nB: [[x]]\r\n", out)
}

func TestApplyEdits_NoEditsReturnsSource(t *testing.T) {
	out, err := ApplyEdits("unchanged", nil)
	require.NoError(t, err)
	require.Equal(t, "unchanged", out)
}

func TestApplyEdits_RejectsOverlappingEdits(t *testing.T) {
	_, err := ApplyEdits("abcdef", []Edit{
		{Start: 1, End: 4, Replacement: "X"},
		{Start: 3, End: 5, Replacement: "Y"},
	})
	require.Error(t, err)
}

func TestApplyEdits_RejectsOutOfBounds(t *testing.T) {
	_, err := ApplyEdits("abc", []Edit{{Start: 1, End: 9, Replacement: "X"}})
	require.Error(t, err)

	_, err = ApplyEdits("abc", []Edit{{Start: 2, End: 1, Replacement: "X"}})
	require.Error(t, err)
}
