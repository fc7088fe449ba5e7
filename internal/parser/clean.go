package parser

import "strings"

// CleanName tidies an OCR name fragment: trims stray punctuation, collapses
// runs of whitespace, and strips single-character trailing debris left
// behind when numeric tokens are removed.
func CleanName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.Trim(name, ".,:;-*#|")
	name = strings.Join(strings.Fields(name), " ")

	words := strings.Fields(name)
	// OCR often leaves a dangling single letter where a column boundary was
	if len(words) > 1 && len(words[len(words)-1]) == 1 {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}
