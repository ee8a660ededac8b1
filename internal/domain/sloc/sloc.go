// Package sloc counts source lines of code and classifies files as source or tests.
package sloc

import (
	"path"
	"strings"

	"github.com/abdidvp/qualitygate/internal/domain"
	"github.com/fatih/camelcase"
)

// Count returns the number of non-blank lines that are not full-line comments.
// Full-line comments start with // or #, or belong to a /* */ block opened at
// the beginning of a line. Comments embedded after code are not detected.
func Count(content []byte) int {
	n := 0
	inBlock := false
	for _, line := range strings.Split(string(content), "\n") {
		t := strings.TrimSpace(line)
		if inBlock {
			idx := strings.Index(t, "*/")
			if idx < 0 {
				continue
			}
			inBlock = false
			if strings.TrimSpace(t[idx+2:]) != "" {
				n++
			}
			continue
		}
		switch {
		case t == "":
		case strings.HasPrefix(t, "//"), strings.HasPrefix(t, "#"):
		case strings.HasPrefix(t, "/*"):
			idx := strings.Index(t[2:], "*/")
			if idx < 0 {
				inBlock = true
			} else if strings.TrimSpace(t[2+idx+2:]) != "" {
				n++
			}
		default:
			n++
		}
	}
	return n
}

// Category classifies a slash-separated path as tests when any directory
// equals a marker, or any word of the path does. Words are split on
// separators, dots, underscores, dashes and camelCase boundaries.
func Category(p string, markers []string) string {
	if len(markers) == 0 {
		markers = domain.DefaultTestMarkers
	}
	set := make(map[string]bool, len(markers))
	for _, m := range markers {
		set[strings.ToLower(m)] = true
	}

	p = strings.ReplaceAll(p, "\\", "/")
	segments := strings.Split(path.Clean(p), "/")
	for i, seg := range segments {
		if i < len(segments)-1 && set[strings.ToLower(seg)] {
			return domain.CategoryTests
		}
		for _, word := range words(seg) {
			if set[strings.ToLower(word)] {
				return domain.CategoryTests
			}
		}
	}
	return domain.CategorySource
}

func words(segment string) []string {
	var out []string
	parts := strings.FieldsFunc(segment, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	for _, part := range parts {
		out = append(out, camelcase.Split(part)...)
	}
	return out
}
