// Package corpus holds the book/chapter model and the parsing that turns a
// raw Project Gutenberg text dump into an ordered list of chapters.
package corpus

// Book is an immutable work from the corpus. Chapters are ordered as they
// appear in the source text.
type Book struct {
	Reference string
	Title     string
	Author    string
	Chapters  []Chapter
}

// Chapter is one unit of book text. Content is the raw chapter body with the
// Gutenberg boilerplate already stripped.
type Chapter struct {
	ID      string
	Title   string
	Content string
}
