package tui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdidvp/qualitygate/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// ── Warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	checkStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// maxErrorsShown caps the diagnostics listed per check.
const maxErrorsShown = 20

// RenderGateReport formats a quality gate report for terminal output.
func RenderGateReport(report *domain.QualityGateReport) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("qualitygate")
	subtitle := dimStyle.Render(shortenPath(report.ProjectDir))
	verdict := verdictText(report.Passed, "PASSED", "FAILED")
	counts := dimStyle.Render(fmt.Sprintf("%d passed  %d failed  %d skipped",
		report.Summary.Passed, report.Summary.Failed, report.Summary.Skipped))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict + "\n" + counts))
	b.WriteString("\n\n")

	// ── Checks ──
	for _, name := range checkNames(report.Checks) {
		renderCheck(&b, name, report.Checks[name])
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n")
	if report.Commit != "" {
		b.WriteString("  " + faintStyle.Render("commit "+shortHash(report.Commit)+"  run "+report.RunID) + "\n")
	} else {
		b.WriteString("  " + faintStyle.Render("run "+report.RunID) + "\n")
	}
	return b.String()
}

func renderCheck(b *strings.Builder, name string, c domain.CheckResult) {
	label := checkStyle.Render(padRight(name, 8))

	if c.Skipped() {
		fmt.Fprintf(b, "  %s %s %s\n", skipStyle.Render("○"), skipStyle.Render(padRight(name, 8)), skipStyle.Render("skipped"))
		if c.SkippedReason != "" {
			fmt.Fprintf(b, "      %s\n", faintStyle.Render(c.SkippedReason))
		}
		return
	}

	icon := passStyle.Render("●")
	if c.Failed() {
		icon = failStyle.Render("●")
	}
	meta := dimStyle.Render(fmt.Sprintf("%s  exit %d  %dms", c.Command, c.ExitCode, c.DurationMs))
	fmt.Fprintf(b, "  %s %s %s\n", icon, label, meta)

	for i, e := range c.Errors {
		if i == maxErrorsShown {
			fmt.Fprintf(b, "      %s\n", faintStyle.Render(fmt.Sprintf("… %d more", len(c.Errors)-maxErrorsShown)))
			break
		}
		renderErrorEntry(b, e)
	}
}

func renderErrorEntry(b *strings.Builder, e domain.ErrorEntry) {
	tag := errorTagStyle.Render("error")
	loc := e.FilePath
	if loc != "" && e.Line > 0 {
		loc += fmt.Sprintf(":%d", e.Line)
		if e.Column > 0 {
			loc += fmt.Sprintf(":%d", e.Column)
		}
	}
	msg := e.Message
	if id := firstNonEmpty(e.Code, e.Rule); id != "" {
		msg += "  " + faintStyle.Render(id)
	}

	if loc != "" {
		fmt.Fprintf(b, "      %s %s\n", tag, fileStyle.Render(loc))
		fmt.Fprintf(b, "            %s\n", dimStyle.Render(msg))
	} else {
		fmt.Fprintf(b, "      %s %s\n", tag, dimStyle.Render(msg))
	}
}

// checkNames orders checks canonically, unknown names last.
func checkNames(checks map[string]domain.CheckResult) []string {
	rank := make(map[string]int, len(domain.ValidChecks))
	for i, c := range domain.ValidChecks {
		rank[c] = i
	}
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, okI := rank[names[i]]
		rj, okJ := rank[names[j]]
		switch {
		case okI && okJ:
			return ri < rj
		case okI != okJ:
			return okI
		default:
			return names[i] < names[j]
		}
	})
	return names
}

func verdictText(ok bool, yes, no string) string {
	if ok {
		return lipgloss.NewStyle().Bold(true).Foreground(success).Render(yes)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(danger).Render(no)
}

func coloredBar(pct, width int) string {
	filled := max(0, min(pct*width/100, width))
	empty := width - filled

	color := pctColor(pct)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func pctColor(pct int) lipgloss.Color {
	switch {
	case pct >= 100:
		return success
	case pct >= 60:
		return lipgloss.Color("#A3E635") // lime
	case pct >= 30:
		return warning
	default:
		return danger
	}
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
