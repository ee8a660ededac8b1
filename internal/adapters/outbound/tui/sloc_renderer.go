package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abdidvp/qualitygate/internal/domain"
)

// RenderSlocReport formats a SLOC baseline, update or final report.
func RenderSlocReport(report *domain.SlocReport) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("SLOC "+report.Action) + "  " + faintStyle.Render(report.BaselineFile) + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 64)) + "\n\n")

	if len(report.Rows) > 0 {
		for _, r := range report.Rows {
			renderSlocLine(&b, r.Path, r.Category, r.SlocEntry)
		}
	} else {
		for _, p := range report.Files.Paths() {
			renderSlocLine(&b, p, "", report.Files[p])
		}
	}

	if len(report.Categories) > 0 {
		b.WriteString("\n")
		cats := make([]string, 0, len(report.Categories))
		for c := range report.Categories {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		for _, c := range cats {
			t := report.Categories[c]
			fmt.Fprintf(&b, "  %s %s  %s\n",
				sectionHeaderStyle.Render(padRight(c, 8)),
				dimStyle.Render(fmt.Sprintf("%d files  %d → %d", t.Files, t.Baseline, t.Current)),
				deltaText(t.Delta),
			)
		}
	}

	s := report.Summary
	b.WriteString("\n  " + separatorLine + "\n")
	fmt.Fprintf(&b, "  %s %s  %s\n",
		titleStyle.Render(padRight("total", 8)),
		dimStyle.Render(fmt.Sprintf("%d files  %d → %d", s.Files, s.Baseline, s.Current)),
		deltaText(s.Delta),
	)
	return b.String()
}

func renderSlocLine(b *strings.Builder, path, category string, e domain.SlocEntry) {
	name := padRight(path, 40)
	if category == domain.CategoryTests {
		name = faintStyle.Render(name)
	} else {
		name = fileStyle.Render(name)
	}
	fmt.Fprintf(b, "  %s %s  %s\n",
		name,
		dimStyle.Render(fmt.Sprintf("%5d → %5d", e.Baseline, e.Current)),
		deltaText(e.Delta),
	)
}

func deltaText(delta int) string {
	switch {
	case delta > 0:
		return warnStyle.Render(fmt.Sprintf("↑%d", delta))
	case delta < 0:
		return passStyle.Render(fmt.Sprintf("↓%d", -delta))
	default:
		return faintStyle.Render("±0")
	}
}
