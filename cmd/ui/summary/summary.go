// Package summary renders the detection result for interactive runs.
package summary

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hookforge/pkg/scanner"
)

var (
	titleStyle = lipgloss.NewStyle().Background(lipgloss.Color("#FFB454")).Foreground(lipgloss.Color("#030303")).Bold(true).Padding(0, 1, 0)
	techStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB454")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FFB454")).
			Padding(1, 2)

	highConfidence = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	midConfidence  = lipgloss.NewStyle().Foreground(lipgloss.Color("190"))
	lowConfidence  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Render produces a styled overview of the detected technologies.
func Render(det *scanner.Result) string {
	present := det.Present()

	var content strings.Builder
	if len(present) == 0 {
		content.WriteString(dimStyle.Render("No technologies detected; only base hooks will be generated."))
	}
	for _, tech := range present {
		tr := det.Techs[tech]
		content.WriteString(techStyle.Render(fmt.Sprintf("%-12s", tech)))
		content.WriteString(confidenceStyle(tr.Confidence).Render(fmt.Sprintf(" %3.0f%%", tr.Confidence*100)))
		content.WriteString(dimStyle.Render(fmt.Sprintf("  %d file(s)", tr.EvidenceCount)))
		if tr.Version != "" {
			content.WriteString(dimStyle.Render("  " + tr.Version))
		}
		content.WriteString("\n")
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Detected Technologies"))
	s.WriteString("\n\n")
	s.WriteString(boxStyle.Render(strings.TrimRight(content.String(), "\n")))
	if n := len(det.Warnings); n > 0 {
		s.WriteString("\n")
		s.WriteString(warnStyle.Render(fmt.Sprintf("%d file(s) skipped during scan, rerun with --verbose for details", n)))
	}
	return s.String()
}

func confidenceStyle(c float64) lipgloss.Style {
	switch {
	case c > 0.8:
		return highConfidence
	case c > 0.5:
		return midConfidence
	default:
		return lowConfidence
	}
}
