package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bayleafwalker/operator-upgradepath/internal/graph"
)

// RenderPackageList renders the package names of a catalog under an
// OPERATORS heading.
func RenderPackageList(packages []string) string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("OPERATORS") + "\n")
	b.WriteString(styleMuted.Render(" "+strings.Repeat("-", 41)) + "\n")
	for _, name := range packages {
		b.WriteString(styleCell.Render(name) + "\n")
	}
	return b.String()
}

// RenderChannelTable renders the channels of a package with their bundles in
// source order. The default channel is highlighted and marked.
func RenderChannelTable(pkg *graph.Package) string {
	channels := pkg.Channels()
	rows := make([][]string, 0, len(channels))
	defaults := make([]bool, 0, len(channels))

	for i, ch := range channels {
		operator := ""
		if i == 0 {
			operator = pkg.Name()
		}
		name := ch.Name()
		isDefault := pkg.IsDefault(name)
		if isDefault {
			name += " (default)"
		}
		entries := ch.Entries()
		bundles := make([]string, len(entries))
		for j, e := range entries {
			bundles[j] = e.Name
		}
		rows = append(rows, []string{operator, name, strings.Join(bundles, "\n")})
		defaults = append(defaults, isDefault)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Headers("OPERATOR", "CHANNELS", "BUNDLES").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 1 && row >= 0 && row < len(defaults) && defaults[row]:
				return styleDefaultChannel
			}
			return styleCell
		})
	return t.Render() + "\n"
}
