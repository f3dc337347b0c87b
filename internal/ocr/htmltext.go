package ocr

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// ExtractText returns the plain text of an HTML fragment: tags stripped,
// whitespace collapsed, text nodes joined with single spaces. An empty
// fragment yields an empty string.
func ExtractText(fragment string) string {
	if fragment == "" {
		return ""
	}

	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var parts []string
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			if tokenizer.Err() == io.EOF {
				break
			}
			// Malformed markup: fall back to the regex tag strip.
			return stripTags(fragment)
		}
		if tt == html.TextToken {
			if text := collapseWhitespace(string(tokenizer.Text())); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}

func stripTags(fragment string) string {
	return collapseWhitespace(tagPattern.ReplaceAllString(fragment, " "))
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
