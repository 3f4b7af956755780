package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"argentvault/internal/core"
)

var (
	ColorBorder    = lipgloss.Color("#575653")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorTextMuted = lipgloss.Color("#878580")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorYellow    = lipgloss.Color("#D0A215")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(ColorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorTextMuted)
	dimStyle    = lipgloss.NewStyle().Foreground(ColorBorder)
	goodStyle   = lipgloss.NewStyle().Foreground(ColorGreen)
	badStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)

	priorityStyles = map[core.Priority]lipgloss.Style{
		core.PriorityCritical: badStyle,
		core.PriorityHigh:     lipgloss.NewStyle().Foreground(ColorOrange),
		core.PriorityMedium:   lipgloss.NewStyle().Foreground(ColorYellow),
		core.PriorityLow:      mutedStyle,
	}
)

// Table is a bordered text table. The first column is left-aligned and
// the rest right-aligned. A row holding the single cell "---" draws a
// separator.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a title in a rounded box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}

func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = max(widths[i], utf8.RuneCountInString(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}
	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right) + "\n")
	}
	line := func(cells []string, style lipgloss.Style, alignRight bool) {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
			if alignRight && i > 0 {
				cell = pad + cell
			} else {
				cell += pad
			}
			b.WriteString(style.Render(" " + cell + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│") + "\n")
	}

	rule("╭", "┬", "╮")
	if len(t.Headers) > 0 {
		line(t.Headers, headerStyle, false)
		rule("├", "┼", "┤")
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}
		line(row, valueStyle, true)
	}
	rule("╰", "┴", "╯")
	return b.String()
}

// RenderBudget renders the expense breakdown, totals, chart bars and tips
// of one computation.
func RenderBudget(b core.BudgetComputation, tips []core.Tip) string {
	rows := make([][]string, 0, len(b.Expenses)+5)
	for _, e := range b.Expenses {
		rows = append(rows, []string{e.Name, core.FormatDollars(e.Amount), core.FormatPercent(e.Share)})
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Income", core.FormatDollars(b.Income), ""},
		[]string{"Total expenses", core.FormatDollars(b.TotalExpenses), core.FormatPercent(b.Chart.ExpenseShare)},
		[]string{"Remaining", core.FormatDollars(b.Remaining), core.FormatPercent(b.Chart.RemainingShare)},
		[]string{"Savings rate", core.FormatPercent(b.SavingsRate), ""},
	)

	var out strings.Builder
	out.WriteString(RenderTable(Table{
		Title:   "Budget",
		Headers: []string{"Expense", "Amount", "Of income"},
		Rows:    rows,
	}))
	out.WriteString("\n")

	status := goodStyle.Render("  Within budget")
	if b.InDeficit() {
		status = badStyle.Render("  Over budget by " + core.FormatDollars(b.Remaining.Neg()))
	}
	out.WriteString(status + "\n")

	if len(b.Chart.Detailed) > 0 && b.TotalExpenses.IsPositive() {
		out.WriteString("\n  " + headerStyle.Render("Share of expenses") + "\n")
		total := b.TotalExpenses.InexactFloat64()
		for _, s := range b.Chart.Detailed {
			out.WriteString(renderBar(s.Label, s.Value.InexactFloat64()/total*100, 30))
		}
	}

	if len(tips) > 0 {
		out.WriteString("\n" + RenderTips(tips))
	}
	return out.String()
}

// renderBar draws one percentage as a bar of at most width cells.
func renderBar(label string, pct float64, width int) string {
	n := int(pct / 100 * float64(width))
	n = min(max(n, 0), width)
	return fmt.Sprintf("  %-16s %s%s %5.1f%%\n",
		truncate(label, 16),
		goodStyle.Render(strings.Repeat("█", n)),
		dimStyle.Render(strings.Repeat("░", width-n)),
		pct)
}

func RenderTips(tips []core.Tip) string {
	var b strings.Builder
	b.WriteString("  " + headerStyle.Render("Tips") + "\n")
	for _, t := range tips {
		style, ok := priorityStyles[t.Priority]
		if !ok {
			style = mutedStyle
		}
		fmt.Fprintf(&b, "  %s %s\n", style.Render(fmt.Sprintf("[%s]", t.Priority)), titleStyle.Render(t.Title))
		fmt.Fprintf(&b, "    %s\n", mutedStyle.Render(t.Content))
	}
	return b.String()
}

// RenderSnapshots lists saved budgets newest first.
func RenderSnapshots(snaps []core.BudgetSnapshot) string {
	if len(snaps) == 0 {
		return mutedStyle.Render("  No saved budgets.") + "\n"
	}
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []string{
			s.IDString(),
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			core.FormatDollars(s.Income),
			core.FormatDollars(s.TotalExpenses),
			core.FormatDollars(s.Remaining),
			core.FormatPercent(s.SavingsRate),
		})
	}
	return RenderTable(Table{
		Title:   "Saved budgets",
		Headers: []string{"ID", "Date", "Income", "Expenses", "Remaining", "Savings"},
		Rows:    rows,
	})
}

func RenderVisit(v core.VisitOutcome) string {
	return fmt.Sprintf("  %s\n  %s\n",
		titleStyle.Render(v.Message),
		mutedStyle.Render(fmt.Sprintf("visit #%d, first seen %s", v.Record.VisitCount,
			v.Record.FirstVisitAt.Local().Format("2006-01-02"))))
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
