// Package util provides small helpers shared by modules and commands.
package util

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	lineBreak  = regexp.MustCompile(`(?i)<br\s*/?>`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// StripHTML returns the text content of an HTML fragment. Line breaks are kept.
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.TrimSpace(fragment)
	}

	fragment = lineBreak.ReplaceAllString(fragment, "\n")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}

	text := blankLines.ReplaceAllString(doc.Text(), "\n\n")
	return strings.TrimSpace(text)
}

// Quantify returns count followed by the singular or plural label.
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// Ignore calls f and discards its error.
func Ignore(f func() error) {
	_ = f()
}
