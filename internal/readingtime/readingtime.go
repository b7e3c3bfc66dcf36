// Package readingtime estimates how long a document takes to read.
package readingtime

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

const WordsPerMinute = 200

var markupTag = regexp.MustCompile(`<[^>]+>`)

// WordCount strips markup tags and counts whitespace separated tokens.
func WordCount(text string) int {
	if text == "" {
		return 0
	}
	return len(strings.Fields(markupTag.ReplaceAllString(text, "")))
}

// Minutes converts a word count to minutes, rounding half up, never below one.
func Minutes(words int) int {
	return max(1, int(math.Round(float64(words)/WordsPerMinute)))
}

// Format renders a word count as "<n> min read".
func Format(words int) string {
	return fmt.Sprintf("%d min read", Minutes(words))
}
