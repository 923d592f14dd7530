package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/filtercodec"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// ui печатает в конкретный writer. Стили строятся от его renderer, поэтому
// при выводе в pipe или файл цвета и жирность пропадают сами.
type ui struct {
	w io.Writer

	title   lipgloss.Style
	value   lipgloss.Style
	number  lipgloss.Style
	dim     lipgloss.Style
	key     lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	command lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
}

func newUI(w io.Writer) *ui {
	r := lipgloss.NewRenderer(w)
	return &ui{
		w:       w,
		title:   r.NewStyle().Bold(true).Foreground(colorCyan),
		value:   r.NewStyle().Foreground(colorWhite),
		number:  r.NewStyle().Foreground(colorCyan),
		dim:     r.NewStyle().Foreground(colorDim),
		key:     r.NewStyle().Foreground(colorGray).Width(14),
		success: r.NewStyle().Foreground(colorGreen),
		warning: r.NewStyle().Foreground(colorYellow),
		info:    r.NewStyle().Foreground(colorGray),
		command: r.NewStyle().Foreground(colorBlue),
		header:  r.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
	}
}

func (u *ui) printSuccess(format string, args ...any) {
	fmt.Fprintln(u.w, u.success.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func (u *ui) printWarning(format string, args ...any) {
	fmt.Fprintln(u.w, u.warning.Render(iconWarning)+" "+u.warning.Render(fmt.Sprintf(format, args...)))
}

func (u *ui) printInfo(format string, args ...any) {
	fmt.Fprintln(u.w, u.info.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func (u *ui) printKeyValue(key, value string) {
	fmt.Fprintln(u.w, u.key.Render(key)+" "+u.value.Render(value))
}

func (u *ui) printItem(value string) {
	fmt.Fprintln(u.w, "  "+u.dim.Render(iconArrow)+" "+u.value.Render(value))
}

func (u *ui) printNextStep(description, cmd string) {
	fmt.Fprintln(u.w, u.dim.Render(description+":")+" "+u.command.Render(cmd))
}

func (u *ui) printNewline() {
	fmt.Fprintln(u.w)
}

// printPageHeader - "Page 2 of 3, showing 10-18 of 20".
func (u *ui) printPageHeader(view *domain.ListingView) {
	fmt.Fprintln(u.w,
		u.title.Render(fmt.Sprintf("Page %d of %d", view.Page, view.TotalPages))+
			u.dim.Render(", showing ")+
			u.number.Render(fmt.Sprintf("%d-%d", view.StartItem, view.EndItem))+
			u.dim.Render(" of ")+
			u.number.Render(fmt.Sprint(view.Total)))
}

func (u *ui) printPropertyTable(items []domain.Property) {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, []string{p.ID, p.Title, filtercodec.FormatPrice(p.Price), p.Distrito, p.Concelho, p.Status})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(u.dim).
		Headers("ID", "TITLE", "PRICE", "DISTRITO", "CONCELHO", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return u.header
			}
			return u.cell
		})
	fmt.Fprintln(u.w, t.String())
}
