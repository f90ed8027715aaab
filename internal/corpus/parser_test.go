package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chapterBody(word string) string {
	return strings.TrimSpace(strings.Repeat(word+" ", 150))
}

func TestParseBook(t *testing.T) {
	t.Run("strips gutenberg boilerplate", func(t *testing.T) {
		raw := strings.Join([]string{
			"The Project Gutenberg eBook of Testing",
			"*** START OF THE PROJECT GUTENBERG EBOOK TESTING ***",
			"CHAPTER I",
			chapterBody("river"),
			"*** END OF THE PROJECT GUTENBERG EBOOK TESTING ***",
			"Donations are gratefully accepted.",
		}, "\n")

		book := ParseBook("1", "Testing", "Anon", raw)
		require.Len(t, book.Chapters, 1)
		assert.NotContains(t, book.Chapters[0].Content, "Project Gutenberg")
		assert.NotContains(t, book.Chapters[0].Content, "Donations")
	})

	t.Run("splits on chapter headings", func(t *testing.T) {
		raw := strings.Join([]string{
			"CHAPTER I",
			chapterBody("one"),
			"CHAPTER II",
			chapterBody("two"),
			"EPILOGUE",
			chapterBody("three"),
		}, "\n")

		book := ParseBook("1", "Testing", "Anon", raw)
		require.Len(t, book.Chapters, 3)
		assert.Equal(t, "CHAPTER I", book.Chapters[0].Title)
		assert.Equal(t, "CHAPTER II", book.Chapters[1].Title)
		assert.Equal(t, "EPILOGUE", book.Chapters[2].Title)
		assert.Contains(t, book.Chapters[1].Content, "two")
	})

	t.Run("roman numeral headings", func(t *testing.T) {
		raw := "I\n" + chapterBody("first") + "\nII.\n" + chapterBody("second")

		book := ParseBook("1", "Testing", "Anon", raw)
		require.Len(t, book.Chapters, 2)
		assert.Equal(t, "I", book.Chapters[0].Title)
		assert.Equal(t, "II.", book.Chapters[1].Title)
	})

	t.Run("drops short sections", func(t *testing.T) {
		raw := "CHAPTER I\ntoo short to keep\nCHAPTER II\n" + chapterBody("kept")

		book := ParseBook("1", "Testing", "Anon", raw)
		require.Len(t, book.Chapters, 1)
		assert.Equal(t, "CHAPTER II", book.Chapters[0].Title)
	})

	t.Run("keeps long preamble before first heading", func(t *testing.T) {
		raw := chapterBody("preamble") + "\nCHAPTER I\n" + chapterBody("body")

		book := ParseBook("1", "Testing", "Anon", raw)
		require.Len(t, book.Chapters, 2)
		assert.Equal(t, "", book.Chapters[0].Title)
	})
}

func TestLoadCatalog(t *testing.T) {
	t.Run("embedded default", func(t *testing.T) {
		catalog, err := LoadCatalog("")
		require.NoError(t, err)
		require.NotEmpty(t, catalog.Books)

		for _, b := range catalog.Books {
			assert.NotZero(t, b.ID)
			assert.NotEmpty(t, b.Title)
			assert.NotEmpty(t, b.Author)
			assert.NotEmpty(t, b.Emoticons, "book %q needs a reveal sequence", b.Title)
			assert.NotEmpty(t, b.NotableQuotes, "book %q needs quotes for hints", b.Title)
		}
	})

	t.Run("lookup by reference", func(t *testing.T) {
		catalog, err := LoadCatalog("")
		require.NoError(t, err)

		book, ok := catalog.ByReference(catalog.Books[0].Reference())
		assert.True(t, ok)
		assert.Equal(t, catalog.Books[0].Title, book.Title)

		_, ok = catalog.ByReference("no-such-book")
		assert.False(t, ok)
	})
}
