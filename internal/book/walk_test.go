package book

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chapter(name string, sub ...BookItem) BookItem {
	return ChapterItem(&Chapter{Name: name, Content: name + " body", SubItems: sub})
}

func TestWalk_DepthFirstOrder(t *testing.T) {
	items := []BookItem{
		chapter("1", chapter("1.1", chapter("1.1.1")), chapter("1.2")),
		SeparatorItem(),
		PartTitleItem("Part"),
		chapter("2"),
	}

	var visited []string
	require.NoError(t, Walk(items, func(ch *Chapter) error {
		visited = append(visited, ch.Name)
		return nil
	}))
	assert.Equal(t, []string{"1", "1.1", "1.1.1", "1.2", "2"}, visited)
}

func TestWalk_MutatesInPlace(t *testing.T) {
	b := &Book{Sections: []BookItem{chapter("a", chapter("b")), SeparatorItem()}}

	require.NoError(t, b.ForEachChapter(func(ch *Chapter) error {
		ch.Content = "rewritten " + ch.Name
		return nil
	}))

	assert.Equal(t, "rewritten a", b.Sections[0].Chapter.Content)
	assert.Equal(t, "rewritten b", b.Sections[0].Chapter.SubItems[0].Chapter.Content)
	assert.True(t, b.Sections[1].Separator)
}

func TestWalk_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	items := []BookItem{chapter("a", chapter("b")), chapter("c")}

	var visited []string
	err := Walk(items, func(ch *Chapter) error {
		visited = append(visited, ch.Name)
		if ch.Name == "b" {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b"}, visited)
}

func TestWalk_Empty(t *testing.T) {
	called := false
	require.NoError(t, Walk(nil, func(*Chapter) error {
		called = true
		return nil
	}))
	assert.False(t, called)
}
