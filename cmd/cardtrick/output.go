package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/cardtrick/trick"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(12)

	redSuitStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	blackSuitStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))

	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func renderCard(c trick.Card) string {
	if c.Suit() == trick.Hearts || c.Suit() == trick.Diamonds {
		return redSuitStyle.Render(c.String())
	}
	return blackSuitStyle.Render(c.String())
}

func renderCards(cards []trick.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = renderCard(c)
	}
	return strings.Join(parts, " ")
}

func numbers(cards []trick.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = fmt.Sprint(int(c))
	}
	return dimStyle.Render("(" + strings.Join(parts, " ") + ")")
}

func row(w io.Writer, label, value string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", labelStyle.Render(label), value)
}

func header(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, headerStyle.Render(title))
}

// caseRows prints parity case counts in a stable order.
func caseRows(w io.Writer, cases map[string]int, total int) {
	names := make([]string, 0, len(cases))
	for name := range cases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		n := cases[name]
		row(w, "case "+name, fmt.Sprintf("%d %s", n, dimStyle.Render(fmt.Sprintf("%.2f%%", 100*float64(n)/float64(max(total, 1))))))
	}
}
