package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ContainsPhrase reports whether phrase occurs in text as a whole word or phrase,
// ignoring case. Characters such as '+', '.' and '/' inside the phrase match literally.
func ContainsPhrase(text, phrase string) bool {
	return CountPhrase(text, phrase) > 0
}

// CountPhrase counts non-overlapping whole-word occurrences of phrase in text, ignoring case.
func CountPhrase(text, phrase string) int {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return 0
	}
	lower := strings.ToLower(text)

	count := 0
	for start := 0; start <= len(lower)-len(phrase); {
		idx := strings.Index(lower[start:], phrase)
		if idx < 0 {
			break
		}
		begin := start + idx
		end := begin + len(phrase)
		if isBoundary(lower, begin, end) {
			count++
			start = end
			continue
		}
		start = begin + 1
	}
	return count
}

// isBoundary reports whether s[begin:end] is not glued to a word on either side.
// A dot joins words ("react" inside "react.js") unless it ends the token.
func isBoundary(s string, begin, end int) bool {
	if begin > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:begin])
		if isWordRune(r) {
			return false
		}
		if r == '.' && begin-size > 0 {
			if prev, _ := utf8.DecodeLastRuneInString(s[:begin-size]); isWordRune(prev) {
				return false
			}
		}
	}
	if end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		if isWordRune(r) {
			return false
		}
		if r == '.' && end+size < len(s) {
			if next, _ := utf8.DecodeRuneInString(s[end+size:]); isWordRune(next) {
				return false
			}
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Tokenize splits text into lowercase words. Apostrophes stay inside words.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r) && r != '\''
	})
}

// SplitSentences breaks text into trimmed sentences. Line breaks always end a
// sentence; '.', '!' and '?' end one when followed by whitespace and a capital
// letter or digit, unless the preceding word looks like an abbreviation (B.S., Dr.).
func SplitSentences(text string) []string {
	var sentences []string
	for _, line := range strings.Split(text, "\n") {
		sentences = append(sentences, splitLine(line)...)
	}
	return sentences
}

func splitLine(line string) []string {
	var out []string
	runes := []rune(line)
	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 || j >= len(runes) {
			continue
		}
		next := runes[j]
		if !unicode.IsUpper(next) && !unicode.IsDigit(next) {
			continue
		}
		if r == '.' && isAbbreviation(runes[start:i]) {
			continue
		}
		out = appendSentence(out, string(runes[start:i+1]))
		start = j
		i = j - 1
	}
	return appendSentence(out, string(runes[start:]))
}

// isAbbreviation checks the last word before a period.
func isAbbreviation(prefix []rune) bool {
	fields := strings.Fields(string(prefix))
	if len(fields) == 0 {
		return false
	}
	word := fields[len(fields)-1]
	return strings.Contains(word, ".") || utf8.RuneCountInString(word) <= 2
}

func appendSentence(out []string, s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "-*•· \t")
	if s == "" {
		return out
	}
	return append(out, s)
}
