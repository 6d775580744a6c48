package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vnkhanh/survey-insights/analysis"
	"github.com/vnkhanh/survey-insights/survey"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	goodStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	badStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// Console prints results for people reading a terminal.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Title(s string) {
	fmt.Fprintln(c.w, titleStyle.Render(s))
}

// Table prints a sheet under its name.
func (c *Console) Table(s Sheet) {
	c.Title(s.Name)
	if len(s.Rows) == 0 {
		fmt.Fprintln(c.w, "  (no rows)")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(s.Header...).
		Rows(s.Records()...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(c.w, t.Render())
}

// NPS prints the headline score and the per-track table.
func (c *Console) NPS(s *analysis.Summary) {
	style := goodStyle
	if s.Overall.NPS < 0 {
		style = badStyle
	}
	fmt.Fprintf(c.w, "Overall NPS: %s (%d scored of %d, mean %.2f)\n",
		style.Render(strconv.FormatFloat(round2(s.Overall.NPS), 'f', 2, 64)),
		s.Overall.Responses, s.Participants, s.Overall.Mean)
	c.Table(NPSSheet(s))
}

// Import prints the shape and first rows of an imported table.
func (c *Console) Import(res *survey.ImportResult) {
	from := res.Source
	if res.FromBackup {
		from += " (backup)"
	}
	c.Title("Imported " + from)
	fmt.Fprintf(c.w, "Rows: %d  Columns: %d\n", res.Table.Len(), len(res.Table.Header))

	head := res.Table.Head(5)
	sh := Sheet{Name: "First rows", Header: head.Header}
	for _, row := range head.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = analysis.Truncate(v, 24)
		}
		sh.Rows = append(sh.Rows, cells)
	}
	c.Table(sh)
}
