package markdown

import (
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Range is a half-open byte range [Start, End) into a Markdown source.
type Range struct {
	Start int
	End   int
}

// Contains reports whether offset falls inside the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// CodeRanges parses a Markdown body with Goldmark and returns the byte ranges
// holding code: inline code spans, fenced code blocks and indented code blocks.
//
// Ranges cover the code text only (backticks and fences excluded) and are
// returned sorted by Start.
func CodeRanges(body []byte) []Range {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	ranges := make([]Range, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.CodeSpan:
			if r, ok := inlineSpan(node); ok {
				ranges = append(ranges, r)
			}
			return gmast.WalkSkipChildren, nil
		case *gmast.FencedCodeBlock, *gmast.CodeBlock:
			if r, ok := blockSpan(node.Lines()); ok {
				ranges = append(ranges, r)
			}
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})

	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start < ranges[j].Start
	})
	return ranges
}

// InAny reports whether offset falls inside any of the given ranges.
// ranges must be sorted by Start, as returned by CodeRanges.
func InAny(ranges []Range, offset int) bool {
	i := sort.Search(len(ranges), func(i int) bool {
		return ranges[i].End > offset
	})
	return i < len(ranges) && ranges[i].Contains(offset)
}

func inlineSpan(n gmast.Node) (Range, bool) {
	r := Range{Start: -1}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		t, ok := c.(*gmast.Text)
		if !ok {
			continue
		}
		if r.Start < 0 || t.Segment.Start < r.Start {
			r.Start = t.Segment.Start
		}
		if t.Segment.Stop > r.End {
			r.End = t.Segment.Stop
		}
	}
	return r, r.Start >= 0 && r.End > r.Start
}

func blockSpan(lines *text.Segments) (Range, bool) {
	if lines == nil || lines.Len() == 0 {
		return Range{}, false
	}
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	return Range{Start: first.Start, End: last.Stop}, last.Stop > first.Start
}
