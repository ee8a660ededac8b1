// Package diagnostics turns raw linter and compiler output into structured
// error entries.
//
// Each supported output format is an isolated line scanner. Parse runs every
// scanner over the output and keeps the result of a single format for the
// whole text, chosen by majority of matched lines, so that mixed tool chatter
// is never parsed line-by-line with different rules.
package diagnostics

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/abdidvp/qualitygate/internal/domain"
)

// Format names a known diagnostic line format.
type Format string

const (
	// FormatColon is path:line:col: [severity] [CODE]: message.
	FormatColon Format = "colon"
	// FormatParen is path(line,col): severity CODE: message.
	FormatParen Format = "paren"
	// FormatStylish is eslint's stylish reporter.
	FormatStylish Format = "stylish"
	// FormatBare is path:line: message.
	FormatBare Format = "bare"
)

var (
	lintOrder  = []Format{FormatStylish, FormatColon, FormatParen, FormatBare}
	buildOrder = []Format{FormatParen, FormatColon, FormatStylish, FormatBare}
)

// Order returns the format priority used for a check kind.
func Order(kind string) []Format {
	if kind == domain.CheckLint {
		return lintOrder
	}
	return buildOrder
}

// scan is the result of one format over a whole output.
type scan struct {
	matched []int
	entries []domain.ErrorEntry
}

var scanners = map[Format]func(lines []string) scan{
	FormatColon:   scanColon,
	FormatParen:   scanParen,
	FormatStylish: scanStylish,
	FormatBare:    scanBare,
}

// Parse extracts error entries from text for the given check kind. It never
// returns nil and never derives pass/fail from the text.
func Parse(text, kind string) []domain.ErrorEntry {
	lines := splitLines(text)
	format, ok := detect(lines, Order(kind))
	if !ok {
		return []domain.ErrorEntry{}
	}
	return nonNil(scanners[format](lines).entries)
}

// Detect reports which format Parse would use for text, if any.
func Detect(text, kind string) (Format, bool) {
	return detect(splitLines(text), Order(kind))
}

func detect(lines []string, order []Format) (Format, bool) {
	candidates := make(map[int]bool)
	counts := make(map[Format]int, len(order))
	for _, f := range order {
		s := scanners[f](lines)
		counts[f] = len(s.matched)
		for _, i := range s.matched {
			candidates[i] = true
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	for _, f := range order {
		if 2*counts[f] > len(candidates) {
			return f, true
		}
	}

	best := order[0]
	for _, f := range order[1:] {
		if counts[f] > counts[best] {
			best = f
		}
	}
	return best, true
}

// ParseColon parses every colon-format line of text.
func ParseColon(text string) []domain.ErrorEntry {
	return nonNil(scanColon(splitLines(text)).entries)
}

// ParseParen parses every paren-format line of text.
func ParseParen(text string) []domain.ErrorEntry {
	return nonNil(scanParen(splitLines(text)).entries)
}

// ParseStylish parses eslint stylish output.
func ParseStylish(text string) []domain.ErrorEntry {
	return nonNil(scanStylish(splitLines(text)).entries)
}

// ParseBare parses every bare-format line of text.
func ParseBare(text string) []domain.ErrorEntry {
	return nonNil(scanBare(splitLines(text)).entries)
}

var (
	ansiRe     = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)
	colonRe    = regexp.MustCompile(`^\s*((?:[A-Za-z]:)?[^\s:()]+):(\d+):(\d+)(?::|\s+-)\s*(.*)$`)
	parenRe    = regexp.MustCompile(`^\s*([^\s()]+)\((\d+),(\d+)\):\s*(.*)$`)
	bareRe     = regexp.MustCompile(`^\s*((?:[A-Za-z]:)?[^\s:()]+):(\d+):\s+(.*)$`)
	stylishRe  = regexp.MustCompile(`^\s+(\d+):(\d+)\s+(error|warning)\s+(.+?)(?:\s{2,}(\S+))?\s*$`)
	headerRe   = regexp.MustCompile(`^\S*[./\\]\S*$`)
	severityRe = regexp.MustCompile(`(?i)^(fatal error|error|warning|warn|note|info)\b\s*`)
	codeRe     = regexp.MustCompile(`^([A-Z][A-Za-z]*\d+)\b\s*(?:\[\*\]\s*)?`)
)

func scanColon(lines []string) scan {
	var s scan
	for i, line := range lines {
		m := colonRe.FindStringSubmatch(line)
		if m == nil || !looksLikePath(m[1]) {
			continue
		}
		s.matched = append(s.matched, i)
		msg, code, warn := splitMessage(m[4])
		if warn || msg == "" {
			continue
		}
		s.entries = append(s.entries, domain.ErrorEntry{
			FilePath: m[1],
			Line:     atoi(m[2]),
			Column:   atoi(m[3]),
			Message:  msg,
			Code:     code,
		})
	}
	return s
}

func scanParen(lines []string) scan {
	var s scan
	for i, line := range lines {
		m := parenRe.FindStringSubmatch(line)
		if m == nil || !looksLikePath(m[1]) {
			continue
		}
		s.matched = append(s.matched, i)
		msg, code, warn := splitMessage(m[4])
		if warn || msg == "" {
			continue
		}
		s.entries = append(s.entries, domain.ErrorEntry{
			FilePath: m[1],
			Line:     atoi(m[2]),
			Column:   atoi(m[3]),
			Message:  msg,
			Code:     code,
		})
	}
	return s
}

func scanBare(lines []string) scan {
	var s scan
	for i, line := range lines {
		m := bareRe.FindStringSubmatch(line)
		if m == nil || !looksLikePath(m[1]) {
			continue
		}
		s.matched = append(s.matched, i)
		msg, code, warn := splitMessage(m[3])
		if warn || msg == "" {
			continue
		}
		s.entries = append(s.entries, domain.ErrorEntry{
			FilePath: m[1],
			Line:     atoi(m[2]),
			Message:  msg,
			Code:     code,
		})
	}
	return s
}

// scanStylish tracks the most recent file header; entries before any header
// carry no file path.
func scanStylish(lines []string) scan {
	var s scan
	file := ""
	for i, line := range lines {
		if m := stylishRe.FindStringSubmatch(line); m != nil {
			s.matched = append(s.matched, i)
			if m[3] == "warning" {
				continue
			}
			msg := strings.TrimSpace(m[4])
			if msg == "" {
				continue
			}
			s.entries = append(s.entries, domain.ErrorEntry{
				FilePath: file,
				Line:     atoi(m[1]),
				Column:   atoi(m[2]),
				Message:  msg,
				Rule:     m[5],
			})
			continue
		}
		if headerRe.MatchString(line) {
			file = line
		}
	}
	return s
}

// splitMessage strips a leading severity and diagnostic code from rest.
// warn is true when the line is labelled as a non-error.
func splitMessage(rest string) (msg, code string, warn bool) {
	rest = strings.TrimSpace(rest)
	if m := severityRe.FindStringSubmatch(rest); m != nil {
		switch strings.ToLower(m[1]) {
		case "warning", "warn", "note", "info":
			warn = true
		}
		rest = rest[len(m[0]):]
	}
	if m := codeRe.FindStringSubmatch(rest); m != nil {
		code = m[1]
		rest = rest[len(m[0]):]
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	return rest, code, warn
}

func looksLikePath(s string) bool {
	return strings.ContainsAny(s, "./\\") && !strings.Contains(s, "://")
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = ansiRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// atoi is only called on regexp digit groups.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func nonNil(entries []domain.ErrorEntry) []domain.ErrorEntry {
	if entries == nil {
		return []domain.ErrorEntry{}
	}
	return entries
}
