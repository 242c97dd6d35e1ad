package export

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"debt-planner/domain"
)

var (
	colorBorder = lipgloss.Color("#575653")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorOrange = lipgloss.Color("#DA702C")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(colorText)
	dimStyle    = lipgloss.NewStyle().Foreground(colorBorder)
	goodStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle   = lipgloss.NewStyle().Foreground(colorOrange)
)

// Table is a bordered text table. The first column is left-aligned and the
// rest right-aligned. A row holding the single cell "---" draws a separator.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Render draws t with box-drawing borders.
func (t Table) Render() string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(titleStyle.Render(t.Title))
		b.WriteString("\n")
	}

	border := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}
	line := func(cells []string, style lipgloss.Style) {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if i == 0 {
				b.WriteString(style.Render(" " + cell + pad + " "))
			} else {
				b.WriteString(style.Render(" " + pad + cell + " "))
			}
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	border("╭", "┬", "╮")
	if len(t.Headers) > 0 {
		line(t.Headers, headerStyle)
		border("├", "┼", "┤")
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			border("├", "┼", "┤")
			continue
		}
		line(row, valueStyle)
	}
	border("╰", "┴", "╯")
	return b.String()
}

// ScheduleTable lists the schedule month by month. With maxRows > 0 only the
// first and last months are shown around a separator.
func ScheduleTable(sched domain.Schedule, places int32, maxRows int) Table {
	t := Table{
		Title:   fmt.Sprintf("%s plan", strings.ToUpper(sched.Strategy.String())),
		Headers: []string{"Month", "Payment", "Principal", "Interest", "Balance"},
	}

	entries := sched.Entries
	skipFrom, skipTo := -1, -1
	if maxRows > 0 && len(entries) > maxRows {
		head := (maxRows + 1) / 2
		skipFrom, skipTo = head, len(entries)-(maxRows-head)
	}
	for i, e := range entries {
		if i == skipFrom {
			t.Rows = append(t.Rows, []string{"---"})
		}
		if i >= skipFrom && i < skipTo {
			continue
		}
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", e.Month),
			money(e.TotalPayment, places),
			money(e.TotalPrincipal, places),
			money(e.TotalInterest, places),
			money(e.RemainingBalance, places),
		})
	}
	return t
}

// RenderSummary prints the headline numbers of a schedule.
func RenderSummary(sched domain.Schedule, places int32) string {
	var b strings.Builder
	payoff := goodStyle.Render(sched.PayoffLabel())
	if sched.Exceeded() {
		payoff = warnStyle.Render(sched.PayoffLabel())
	}
	fmt.Fprintf(&b, "  Strategy:        %s\n", valueStyle.Render(sched.Strategy.String()))
	fmt.Fprintf(&b, "  Total debt:      %s\n", valueStyle.Render(money(sched.TotalDebt, places)))
	fmt.Fprintf(&b, "  Total interest:  %s\n", valueStyle.Render(money(sched.TotalInterest, places)))
	fmt.Fprintf(&b, "  Total paid:      %s\n", valueStyle.Render(money(sched.TotalPaid, places)))
	fmt.Fprintf(&b, "  Payoff:          %s\n", payoff)
	return b.String()
}

// ComparisonTable puts both strategies side by side.
func ComparisonTable(cmp domain.Comparison, places int32) Table {
	row := func(s domain.Schedule) []string {
		label := s.Strategy.String()
		if s.Strategy == cmp.Recommended {
			label += " *"
		}
		return []string{
			label,
			money(s.TotalInterest, places),
			money(s.TotalPaid, places),
			s.PayoffLabel(),
		}
	}
	return Table{
		Title:   "Strategy comparison",
		Headers: []string{"Strategy", "Interest", "Total paid", "Payoff"},
		Rows: [][]string{
			row(cmp.Avalanche),
			row(cmp.Snowball),
			{"---"},
			{"saved", money(cmp.InterestSaved, places), "", fmt.Sprintf("%d months", cmp.MonthsSaved)},
		},
	}
}

// NetWorthTable lists a net-worth projection.
func NetWorthTable(points []domain.NetWorthPoint, places int32) Table {
	t := Table{
		Title:   "Net worth projection",
		Headers: []string{"Month", "Assets", "Debt", "Net worth"},
	}
	for _, p := range points {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", p.Month),
			money(p.Assets, places),
			money(p.Debt, places),
			money(p.NetWorth, places),
		})
	}
	return t
}

// money formats an amount with thousands separators.
func money(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
