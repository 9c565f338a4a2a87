package book

// ChapterFunc is called once per chapter. Returning an error stops the walk.
type ChapterFunc func(ch *Chapter) error

// Walk visits every chapter in items depth-first: a chapter before its
// sub-items, siblings in order. Separators, part titles and unknown items are
// skipped. Chapters are visited in place, so changes made by fn are kept.
func Walk(items []BookItem, fn ChapterFunc) error {
	for i := range items {
		ch := items[i].Chapter
		if ch == nil {
			continue
		}
		if err := fn(ch); err != nil {
			return err
		}
		if err := Walk(ch.SubItems, fn); err != nil {
			return err
		}
	}
	return nil
}
