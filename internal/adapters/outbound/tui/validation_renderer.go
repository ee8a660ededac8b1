package tui

import (
	"fmt"
	"strings"

	"github.com/abdidvp/qualitygate/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)

// RenderTaskValidation renders a task validation report as a styled TUI string.
func RenderTaskValidation(report *domain.TaskValidationReport) string {
	var b strings.Builder

	// Header
	verdict := verdictText(report.Valid, "VALID", "INVALID")
	b.WriteString(boxStyle.Render(titleStyle.Render(report.Task) + "\n" + verdict))
	b.WriteString("\n")

	for _, doc := range report.Documents {
		renderDocument(&b, doc)
	}

	b.WriteString("\n")
	return b.String()
}

func renderDocument(b *strings.Builder, doc domain.DocumentResult) {
	r := doc.Result
	b.WriteString("\n")

	icon := passStyle.Render("●")
	if !r.Valid {
		icon = failStyle.Render("●")
	}
	fmt.Fprintf(b, "  %s %s\n", icon, sectionHeaderStyle.Render(doc.File))

	if r.Checklist.Total > 0 {
		pct := r.Checklist.Checked * 100 / r.Checklist.Total
		fmt.Fprintf(b, "    %s %s\n",
			coloredBar(pct, 20),
			dimStyle.Render(fmt.Sprintf("%d/%d checked", r.Checklist.Checked, r.Checklist.Total)),
		)
	}

	for _, e := range r.Errors {
		fmt.Fprintf(b, "    %s %s\n", errorTagStyle.Render("error"), dimStyle.Render(e))
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(b, "    %s %s\n", warnTagStyle.Render("warn "), dimStyle.Render(w))
	}
}
