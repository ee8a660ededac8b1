// Package checklist validates markdown task documents: required section
// headers and `- [ ]` / `- [x]` checklist completion.
package checklist

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abdidvp/qualitygate/internal/domain"
)

// Rules controls what a document must contain.
type Rules struct {
	// File is used to prefix messages; it is not read.
	File             string
	MinBytes         int
	RequiredSections []string
	RequireChecked   bool
}

// RulesFor builds Rules from a configured document rule.
func RulesFor(doc domain.DocumentRule, minBytes int) Rules {
	return Rules{
		File:             doc.File,
		MinBytes:         minBytes,
		RequiredSections: doc.RequiredSections,
		RequireChecked:   doc.RequireChecked,
	}
}

var (
	headerRe = regexp.MustCompile(`^(#{1,6})[ \t]+(.+?)[ \t#]*$`)
	itemRe   = regexp.MustCompile(`^\s*[-*+]\s+\[( |x|X)\]\s*(.*)$`)
)

type header struct {
	level int
	text  string
	line  int
}

type document struct {
	lines   []string
	headers []header
	items   []domain.ChecklistItem
}

// parse collects headers and checklist items outside fenced code blocks.
// Nested checklist items are flattened in order of appearance.
func parse(content []byte) document {
	var doc document
	inFence := false
	for _, line := range strings.Split(strings.TrimSuffix(string(content), "\n"), "\n") {
		line = strings.TrimRight(line, "\r")
		idx := len(doc.lines)
		doc.lines = append(doc.lines, line)

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if m := headerRe.FindStringSubmatch(line); m != nil {
			doc.headers = append(doc.headers, header{level: len(m[1]), text: strings.TrimSpace(m[2]), line: idx})
			continue
		}
		if m := itemRe.FindStringSubmatch(line); m != nil {
			doc.items = append(doc.items, domain.ChecklistItem{
				Text:    strings.TrimSpace(m[2]),
				Checked: m[1] != " ",
				Line:    idx + 1,
			})
		}
	}
	return doc
}

// findSection returns the index into doc.headers of the first header whose
// text contains name, case-insensitively.
func (d document) findSection(name string) (int, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range d.headers {
		if strings.Contains(strings.ToLower(h.text), want) {
			return i, true
		}
	}
	return 0, false
}

// sectionEmpty reports whether no non-blank line follows header i before the
// next header of the same or a higher level.
func (d document) sectionEmpty(i int) bool {
	h := d.headers[i]
	end := len(d.lines)
	for _, next := range d.headers[i+1:] {
		if next.level <= h.level {
			end = next.line
			break
		}
	}
	for _, line := range d.lines[h.line+1 : end] {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

// Validate checks content against rules. A document below MinBytes fails
// fast with a single error and no further checks.
func Validate(content []byte, rules Rules) domain.ValidationResult {
	result := domain.NewValidationResult()
	prefix := ""
	if rules.File != "" {
		prefix = rules.File + ": "
	}

	if len(content) < rules.MinBytes {
		result.AddError(fmt.Sprintf("%seffectively empty (%d bytes, minimum %d)", prefix, len(content), rules.MinBytes))
		return result
	}

	doc := parse(content)

	for _, name := range rules.RequiredSections {
		i, ok := doc.findSection(name)
		if !ok {
			result.AddError(fmt.Sprintf("%smissing required section %q", prefix, name))
			continue
		}
		if doc.sectionEmpty(i) {
			result.AddWarning(fmt.Sprintf("%ssection %q is empty", prefix, name))
		}
	}

	result.Items = doc.items
	result.Checklist.Total = len(doc.items)
	var unchecked []domain.ChecklistItem
	for _, item := range doc.items {
		if item.Checked {
			result.Checklist.Checked++
		} else {
			unchecked = append(unchecked, item)
		}
	}

	if len(unchecked) > 0 {
		msg := fmt.Sprintf("%s%d of %d checklist items unchecked", prefix, len(unchecked), len(doc.items))
		if rules.RequireChecked {
			result.AddError(msg)
		} else {
			result.AddWarning(msg)
		}
		for _, item := range unchecked {
			result.AddWarning(fmt.Sprintf("%sunchecked (line %d): %s", prefix, item.Line, item.Text))
		}
	}

	return result
}

// NotFound returns the result for a document that does not exist.
func NotFound(file string) domain.ValidationResult {
	result := domain.NewValidationResult()
	result.AddError(file + ": file not found")
	return result
}
