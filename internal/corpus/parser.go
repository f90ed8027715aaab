package corpus

import (
	"strings"
	"unicode"
)

// Minimum words a chapter body needs to be kept. Gutenberg table-of-contents
// blocks and transcriber notes fall under this.
const minChapterWords = 100

// ParseBook splits a raw Gutenberg text dump into chapters. The header and
// footer boilerplate is removed first; the remaining lines are grouped under
// detected chapter headings. Text before the first heading is kept as a
// single leading chapter when it is long enough.
func ParseBook(reference, title, author, raw string) Book {
	lines := stripBoilerplate(strings.Split(raw, "\n"))

	type section struct {
		title string
		lines []string
	}

	sections := []section{{title: ""}}

	for _, line := range lines {
		if heading := detectChapterHeading(line); heading != "" {
			sections = append(sections, section{title: heading})
			continue
		}
		last := len(sections) - 1
		sections[last].lines = append(sections[last].lines, line)
	}

	book := Book{
		Reference: reference,
		Title:     title,
		Author:    author,
	}

	for _, s := range sections {
		content := strings.TrimSpace(strings.Join(s.lines, "\n"))
		if len(strings.Fields(content)) < minChapterWords {
			continue
		}
		book.Chapters = append(book.Chapters, Chapter{
			Title:   s.title,
			Content: content,
		})
	}

	return book
}

// stripBoilerplate removes the Project Gutenberg header and footer.
func stripBoilerplate(lines []string) []string {
	startIdx := 0
	endIdx := len(lines)

	for i, line := range lines {
		if strings.Contains(line, "*** START OF") ||
			strings.Contains(line, "***START OF") ||
			strings.Contains(line, "*END*THE SMALL PRINT") {
			startIdx = i + 1
			break
		}
	}

	for i := len(lines) - 1; i >= startIdx; i-- {
		if strings.Contains(lines[i], "*** END OF") ||
			strings.Contains(lines[i], "***END OF") ||
			strings.Contains(lines[i], "End of Project Gutenberg") ||
			strings.Contains(lines[i], "End of the Project Gutenberg") {
			endIdx = i
			break
		}
	}

	if startIdx >= endIdx {
		return lines
	}

	return lines[startIdx:endIdx]
}

// detectChapterHeading reports the heading text if the line opens a new
// chapter, or "" otherwise.
func detectChapterHeading(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}

	upper := strings.ToUpper(line)
	for _, prefix := range []string{"CHAPTER", "PART", "BOOK", "EPILOGUE", "PROLOGUE"} {
		if strings.HasPrefix(upper, prefix) {
			return line
		}
	}

	// Bare Roman numerals (I, II, XIV., ...) also open chapters.
	if len(line) <= 10 && isRomanNumeral(line) {
		return line
	}

	return ""
}

func isRomanNumeral(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	hasLetter := false
	for _, c := range s {
		if unicode.IsSpace(c) || c == '.' {
			continue
		}
		if !strings.ContainsRune("IVXLCDMivxlcdm", c) {
			return false
		}
		hasLetter = true
	}
	return hasLetter
}
