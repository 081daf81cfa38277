// Package ingestion reads uploaded and local documents into clean plain text.
package ingestion

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrNotText is returned for documents that are not valid UTF-8 text.
var ErrNotText = errors.New("document is not valid UTF-8 text")

var (
	innerSpace   = regexp.MustCompile(`[ \t\f\v]+`)
	excessBlanks = regexp.MustCompile(`\n{3,}`)
	bulletMarker = regexp.MustCompile(`^[•·▪◦‣*-]\s*`)
)

// CleanText normalizes a document while keeping its line structure:
// line endings become LF, a byte order mark and control characters are
// dropped, runs of spaces collapse, bullet markers become "- " and at most
// one blank line separates paragraphs.
func CleanText(content string) string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := excessBlanks.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.Map(func(r rune) rune {
		if r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, line)
	line = strings.TrimSpace(innerSpace.ReplaceAllString(line, " "))
	if loc := bulletMarker.FindStringIndex(line); loc != nil && loc[1] < len(line) {
		line = "- " + line[loc[1]:]
	}
	return line
}

// Clean validates that data is UTF-8 and returns it cleaned.
func Clean(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrNotText
	}
	return CleanText(string(data)), nil
}

// ReadDocument reads a local text file and returns its cleaned contents.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("document not found: %s", path)
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	text, err := Clean(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}
