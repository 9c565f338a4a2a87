// Package wikilink recognizes Obsidian-style wiki links and rewrites them into
// standard Markdown links.
//
// Four variants are recognized:
//
//	[[target]]                 -> [target](target.md)
//	[[target|text]]            -> [text](target.md)
//	[[target#Some Heading]]    -> [target](target.md#some-heading)
//	[[target#Some Heading|text]] -> [text](target.md#some-heading)
//
// Anything that does not match is left exactly as written.
package wikilink

import "strings"

const (
	openDelim  = "[["
	closeDelim = "]]"
)

// WikiLink is one parsed [[target#anchor|display]] occurrence.
// Anchor and Display are empty when absent.
type WikiLink struct {
	Target  string
	Anchor  string
	Display string

	// Start and End delimit the raw occurrence in the source, End exclusive.
	Start int
	End   int
}

// Text returns the visible link text: the display text if given, else the bare target.
func (l WikiLink) Text() string {
	if l.Display != "" {
		return l.Display
	}
	return l.Target
}

// Path returns the link destination: target plus extension, then the
// normalized anchor if one was given.
func (l WikiLink) Path(extension string) string {
	if l.Anchor == "" {
		return l.Target + extension
	}
	return l.Target + extension + "#" + NormalizeAnchor(l.Anchor)
}

// Markdown renders the link as [text](path).
func (l WikiLink) Markdown(extension string) string {
	return "[" + l.Text() + "](" + l.Path(extension) + ")"
}

// Parse returns every wiki link in s, left to right.
//
// The closing delimiter is the first "]]" after an opener. When several "[["
// precede that "]]", only the innermost one can start a link; the outer ones
// stay literal text.
func Parse(s string) []WikiLink {
	var links []WikiLink
	pos := 0
	for pos < len(s) {
		open := strings.Index(s[pos:], openDelim)
		if open < 0 {
			break
		}
		open += pos

		end := strings.Index(s[open+len(openDelim):], closeDelim)
		if end < 0 {
			// no "]]" left, so no later opener can close either
			break
		}
		end += open + len(openDelim)

		open += strings.LastIndex(s[open:end], openDelim)

		link, ok := parseInner(s[open+len(openDelim) : end])
		if !ok {
			pos = open + 1
			continue
		}
		link.Start = open
		link.End = end + len(closeDelim)
		links = append(links, link)
		pos = link.End
	}
	return links
}

// parseInner splits the text between the delimiters into target, anchor and
// display following the grammar
//
//	target ( "#" anchor )? ( "|" display )?
//
// where target excludes "]#|", anchor excludes "]|" and display excludes "]".
// Each present part must be non-empty. Line breaks never match.
func parseInner(inner string) (WikiLink, bool) {
	if strings.ContainsAny(inner, "]\r\n") {
		return WikiLink{}, false
	}

	target, rest := inner, ""
	if i := strings.IndexAny(inner, "#|"); i >= 0 {
		target, rest = inner[:i], inner[i:]
	}
	if target == "" {
		return WikiLink{}, false
	}

	var anchor, display string
	if strings.HasPrefix(rest, "#") {
		anchor, rest = rest[1:], ""
		if i := strings.IndexByte(anchor, '|'); i >= 0 {
			anchor, rest = anchor[:i], anchor[i:]
		}
		if anchor == "" {
			return WikiLink{}, false
		}
	}
	if strings.HasPrefix(rest, "|") {
		display = rest[1:]
		if display == "" {
			return WikiLink{}, false
		}
	}

	link := WikiLink{
		Target:  strings.TrimSpace(target),
		Anchor:  strings.TrimSpace(anchor),
		Display: strings.TrimSpace(display),
	}
	if link.Target == "" {
		return WikiLink{}, false
	}
	return link, true
}
