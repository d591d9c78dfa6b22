package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# Tool database browser

| key | action |
|-----|--------|
| ` + "`/`" + ` | search tool names |
| ` + "`enter`" + ` | select or deselect the tool under the cursor |
| ` + "`f`" + ` | filter by family (essai part) of the tool under the cursor |
| ` + "`c`" + ` | filter by class (essai part and holder) |
| ` + "`x`" + ` | clear the family/class filter |
| ` + "`m`" + ` / ` + "`M`" + ` | next manufacturer / clear manufacturer filter |
| ` + "`tab`" + `, ` + "`1`" + `-` + "`3`" + ` | switch attribute schema |
| ` + "`s`" + ` | switch between local and online database |
| ` + "`r`" + ` | reload the database |
| ` + "`?`" + ` | toggle this help |
| ` + "`q`" + ` | quit |

A family or class filter replaces the search. The manufacturer filter
always applies. Reloading clears the selection and the tool and
manufacturer filters; the search text stays.
`

func renderHelp(width int) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := renderer.Render(helpMarkdown)
	if err != nil || strings.TrimSpace(out) == "" {
		return helpMarkdown
	}
	return out
}
