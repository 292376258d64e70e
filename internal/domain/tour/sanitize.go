package tour

import (
	"strings"

	"golang.org/x/net/html"
)

// titleUnescaper reverses the five entities produced by upstream escaping of
// quotes and markup characters. It is a single pass, so "&amp;quot;" becomes
// "&quot;" rather than a bare quote.
var titleUnescaper = strings.NewReplacer(
	"&amp;", "&",
	"&quot;", `"`,
	"&#039;", "'",
	"&#39;", "'",
	"&lt;", "<",
	"&gt;", ">",
)

// DecodeTitle undoes the double escaping applied to titles upstream.
func DecodeTitle(title string) string {
	return titleUnescaper.Replace(title)
}

// StripTags removes all markup from s, keeping text content verbatim.
// Entities are left untouched and comments are dropped.
func StripTags(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF; a strings.Reader produces no other error.
			return b.String()
		case html.TextToken:
			b.Write(z.Raw())
		default:
			// Start, end, self-closing, comment and doctype tokens are markup.
		}
	}
}
