// Package table renders model definitions as a terminal table
package table

import (
	"fmt"
	"sort"
	"strings"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Models is a list of model definitions, in the order they are rendered
type Models []schema.ModelDefinition

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cellStyle   = lipgloss.NewStyle()
	borderStyle = lipgloss.NewStyle().Faint(true)
)

var header = []string{"MODEL", "ALIAS", "FAMILY", "CONTEXT", "MAX OUTPUT", "VISION", "DESCRIPTION"}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewModels returns the definitions sorted by model name
func NewModels(defs map[string]schema.ModelDefinition) Models {
	result := make(Models, 0, len(defs))
	for name, def := range defs {
		if def.Model == "" {
			def.Model = name
		}
		result = append(result, def)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Model < result[j].Model })
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Render returns the models as a table. When width is positive and the
// table is wider, columns are wrapped to fit.
func (m Models) Render(width int) string {
	t := lgtable.New().
		Headers(header...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == lgtable.HeaderRow:
				return headerStyle
			case col == 0:
				return nameStyle
			default:
				return cellStyle
			}
		})
	for _, def := range m {
		t.Row(cells(def)...)
	}

	result := t.Render()
	if width > 0 && widest(result) > width {
		t.Width(width)
		result = t.Render()
	}
	return result
}

// Text returns the models as tab separated lines, without styling
func (m Models) Text() string {
	var buf strings.Builder
	buf.WriteString(strings.Join(header, "\t"))
	for _, def := range m {
		buf.WriteString("\n")
		buf.WriteString(strings.Join(cells(def), "\t"))
	}
	return buf.String()
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func cells(def schema.ModelDefinition) []string {
	vision := "-"
	if def.HasVision() {
		vision = "yes"
	}
	return []string{
		def.Model,
		cell(def.Alias),
		cell(def.Family.String()),
		count(def.ContextWindow),
		count(def.MaxOutputTokens),
		vision,
		cell(def.Description),
	}
}

func cell(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return "-"
	}
	return v
}

func count(v int) string {
	if v <= 0 {
		return "-"
	}
	return fmt.Sprint(v)
}

func widest(v string) int {
	result := 0
	for _, line := range strings.Split(v, "\n") {
		result = max(result, lipgloss.Width(line))
	}
	return result
}
