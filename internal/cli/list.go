package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/templer-labs/templer/internal/display"
	"github.com/templer-labs/templer/internal/registry"
)

// categories groups the registered templates by category, keeping the
// registry's order.
func categories(reg *registry.Registry) ([]string, map[string][]registry.Info) {
	var order []string
	groups := make(map[string][]registry.Info)
	for _, info := range reg.Templates() {
		cat := info.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		if _, ok := groups[cat]; !ok {
			order = append(order, cat)
		}
		groups[cat] = append(groups[cat], info)
	}
	return order, groups
}

// printableTemplates is the short template list embedded in the usage text.
func printableTemplates(reg *registry.Registry) string {
	order, groups := categories(reg)
	width := 0
	for _, info := range reg.Templates() {
		width = max(width, runewidth.StringWidth(info.Name))
	}

	var b strings.Builder
	for _, cat := range order {
		fmt.Fprintf(&b, "\n%s\n\n", cat)
		for _, info := range groups[cat] {
			fmt.Fprintf(&b, "|  %s:%s %s\n", info.Name, strings.Repeat(" ", width-runewidth.StringWidth(info.Name)), info.Summary)
		}
	}
	return b.String()
}

func printUsage(w io.Writer, reg *registry.Registry) {
	fmt.Fprintf(w, usageText, printableTemplates(reg))
}

// listVerbose prints every template with its summary and wrapped help.
func listVerbose(w io.Writer, reg *registry.Registry) error {
	order, groups := categories(reg)
	for _, cat := range order {
		fmt.Fprintf(w, "\n%s\n%s\n", display.Heading(cat), strings.Repeat("-", runewidth.StringWidth(cat)))
		for _, info := range groups[cat] {
			fmt.Fprintf(w, "\n%s: %s\n\n", display.Name(info.Name), info.Summary)
			t, err := reg.Template(info.FullName)
			if err != nil {
				return err
			}
			if help := display.WrapParagraphs(t.Help, display.Width, 3); help != "" {
				fmt.Fprint(w, help)
			}
		}
	}
	fmt.Fprintln(w)
	return nil
}
