package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	variantChapter   = "Chapter"
	variantSeparator = "Separator"
	variantPartTitle = "PartTitle"
)

// Book is the root of the tree.
type Book struct {
	Sections []BookItem `json:"sections"`

	members members
}

type bookFields Book

// UnmarshalJSON implements json.Unmarshaler.
func (b *Book) UnmarshalJSON(data []byte) error {
	var f bookFields
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("book: %w", err)
	}
	m, err := decodeMembers(data)
	if err != nil {
		return fmt.Errorf("book: %w", err)
	}
	*b = Book(f)
	b.members = m
	return nil
}

// MarshalJSON implements json.Marshaler.
func (b Book) MarshalJSON() ([]byte, error) {
	return overlay(bookFields(b), b.members)
}

// ForEachChapter walks every chapter of the book depth-first.
func (b *Book) ForEachChapter(fn ChapterFunc) error {
	return Walk(b.Sections, fn)
}

// Chapter is a single page of the book. Number is nil for unnumbered
// chapters; Path and SourcePath are nil for draft chapters.
type Chapter struct {
	Name        string     `json:"name"`
	Content     string     `json:"content"`
	Number      []int      `json:"number"`
	SubItems    []BookItem `json:"sub_items"`
	Path        *string    `json:"path"`
	SourcePath  *string    `json:"source_path"`
	ParentNames []string   `json:"parent_names"`

	members members
}

type chapterFields Chapter

// UnmarshalJSON implements json.Unmarshaler.
func (c *Chapter) UnmarshalJSON(data []byte) error {
	var f chapterFields
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("chapter: %w", err)
	}
	m, err := decodeMembers(data)
	if err != nil {
		return fmt.Errorf("chapter: %w", err)
	}
	*c = Chapter(f)
	c.members = m
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Chapter) MarshalJSON() ([]byte, error) {
	return overlay(chapterFields(c), c.members)
}

// BookItem is one entry of Book.Sections or Chapter.SubItems: a chapter, a
// separator, a part title, or a variant this package does not know, which is
// carried through verbatim.
type BookItem struct {
	Chapter   *Chapter
	Separator bool
	PartTitle *string

	raw json.RawMessage
}

// ChapterItem wraps a chapter.
func ChapterItem(ch *Chapter) BookItem {
	return BookItem{Chapter: ch}
}

// SeparatorItem returns a separator.
func SeparatorItem() BookItem {
	return BookItem{Separator: true}
}

// PartTitleItem returns a part title.
func PartTitleItem(title string) BookItem {
	return BookItem{PartTitle: &title}
}

// IsUnknown reports whether the item is an unrecognized variant.
func (it BookItem) IsUnknown() bool {
	return it.raw != nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (it *BookItem) UnmarshalJSON(data []byte) error {
	*it = BookItem{}

	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag == variantSeparator {
			it.Separator = true
			return nil
		}
		it.raw = append(json.RawMessage(nil), data...)
		return nil
	}

	var variant members
	if err := json.Unmarshal(data, &variant); err != nil {
		return fmt.Errorf("book item: %w", err)
	}
	if len(variant) == 1 {
		if body, ok := variant[variantChapter]; ok && !isNull(body) {
			var ch Chapter
			if err := json.Unmarshal(body, &ch); err != nil {
				return err
			}
			it.Chapter = &ch
			return nil
		}
		if body, ok := variant[variantPartTitle]; ok && !isNull(body) {
			var title string
			if err := json.Unmarshal(body, &title); err != nil {
				return fmt.Errorf("part title: %w", err)
			}
			it.PartTitle = &title
			return nil
		}
	}
	it.raw = append(json.RawMessage(nil), data...)
	return nil
}

func isNull(body json.RawMessage) bool {
	return string(bytes.TrimSpace(body)) == "null"
}

// MarshalJSON implements json.Marshaler.
func (it BookItem) MarshalJSON() ([]byte, error) {
	switch {
	case it.Chapter != nil:
		return encode(map[string]*Chapter{variantChapter: it.Chapter})
	case it.Separator:
		return encode(variantSeparator)
	case it.PartTitle != nil:
		return encode(map[string]string{variantPartTitle: *it.PartTitle})
	case it.raw != nil:
		return it.raw, nil
	}
	return nil, errors.New("book item: empty item")
}
