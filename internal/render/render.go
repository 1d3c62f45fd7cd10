package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lululau/calview/internal/calendar"
	"github.com/lululau/calview/internal/datefmt"
	"github.com/lululau/calview/internal/textwidth"
)

const blockGap = 2

var (
	noColorMode bool // Global flag to disable all color output
)

// SetNoColor sets the global no-color flag
func SetNoColor(disable bool) {
	noColorMode = disable
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FEC260"))
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A5B4FC"))
	weekendHeaderStyle = headerStyle.Foreground(lipgloss.Color("#F472B6"))
	cellStyle          = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	dimCellStyle       = cellStyle.Foreground(lipgloss.Color("#6B7280"))
	weekendCellStyle   = cellStyle.Foreground(lipgloss.Color("#F472B6"))
	todayCellStyle     = cellStyle.Foreground(lipgloss.Color("#34D399")).Bold(true)
	holidayCellStyle   = cellStyle.Foreground(lipgloss.Color("#3B82F6"))
	workdayCellStyle   = cellStyle.Foreground(lipgloss.Color("#F97316"))
	helpStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	borderStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#475569"))
)

// MonthBlock packages rendered lines with their visual width/height.
type MonthBlock struct {
	Lines  []string
	Width  int
	Height int
}

// BuildBlocks renders each grid into a block.
func BuildBlocks(grids []calendar.Grid) []MonthBlock {
	blocks := make([]MonthBlock, len(grids))
	for i, grid := range grids {
		blocks[i] = BuildBlock(grid)
	}
	return blocks
}

// BuildBlock renders the title, weekday header and the visible weeks of a
// grid. Weeks made only of adjacent-month days are left out.
func BuildBlock(grid calendar.Grid) MonthBlock {
	rows := grid.VisibleRows()
	labels := hasLabels(rows)

	data := make([][]string, len(rows))
	for i, row := range rows {
		data[i] = make([]string, calendar.Columns)
		for j, cell := range row.Cells {
			data[i][j] = cellText(cell, labels)
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(plain(borderStyle)).
		BorderColumn(false).
		BorderRow(labels).
		Headers(datefmt.HeaderDayNames...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col == 0 || col == calendar.Columns-1 {
					return plain(weekendHeaderStyle).Padding(0, 1).Align(lipgloss.Right)
				}
				return plain(headerStyle).Padding(0, 1).Align(lipgloss.Right)
			}
			if row < 0 || row >= len(rows) {
				return cellStyle
			}
			return styleFor(rows[row].Cells[col])
		})

	body := strings.Split(t.Render(), "\n")
	width := 0
	for _, line := range body {
		width = max(width, textwidth.StringWidth(line))
	}

	title := textwidth.Center(grid.Title(), width)
	if !noColorMode {
		title = titleStyle.Render(title)
	}
	lines := append([]string{title}, body...)
	return MonthBlock{
		Lines:  lines,
		Width:  width,
		Height: len(lines),
	}
}

// Layout places blocks side by side, as many per band as fit in width.
func Layout(blocks []MonthBlock, width int) string {
	if len(blocks) == 0 {
		return ""
	}
	perBand := 1
	if w := blocks[0].Width; w > 0 {
		perBand = max(1, (width+blockGap)/(w+blockGap))
	}

	var out []string
	for start := 0; start < len(blocks); start += perBand {
		band := blocks[start:min(start+perBand, len(blocks))]
		height := 0
		for _, b := range band {
			height = max(height, b.Height)
		}
		for i := 0; i < height; i++ {
			parts := make([]string, len(band))
			for j, b := range band {
				line := ""
				if i < len(b.Lines) {
					line = b.Lines[i]
				}
				if j < len(band)-1 {
					line = textwidth.PadRight(line, b.Width)
				}
				parts[j] = line
			}
			out = append(out, strings.TrimRight(strings.Join(parts, strings.Repeat(" ", blockGap)), " "))
		}
		if start+perBand < len(blocks) {
			out = append(out, "")
		}
	}
	return strings.Join(out, "\n")
}

func hasLabels(rows []calendar.Row) bool {
	for _, row := range rows {
		for _, cell := range row.Cells {
			if cell.Label != "" {
				return true
			}
		}
	}
	return false
}

// cellText renders the day number. Without colors, brackets mark the
// selection and parentheses mark today.
func cellText(cell calendar.DayCell, labels bool) string {
	left, right := " ", " "
	if noColorMode {
		switch {
		case cell.IsSelected:
			left, right = "[", "]"
		case cell.IsToday:
			left, right = "(", ")"
		}
	}
	text := fmt.Sprintf("%s%2d%s", left, cell.Date.Day, right)
	if labels {
		label := cell.Label
		if label == "" {
			label = "  "
		}
		text += "\n" + label
	}
	return text
}

// styleFor picks the cell style. Holiday marks win over today, which wins
// over the weekend tint; the selection is drawn reversed on top.
func styleFor(cell calendar.DayCell) lipgloss.Style {
	if noColorMode {
		return cellStyle
	}
	style := cellStyle
	switch {
	case !cell.IsCurrentMonth:
		style = dimCellStyle
	case cell.Mark != nil && cell.Mark.Holiday:
		style = holidayCellStyle
	case cell.Mark != nil:
		style = workdayCellStyle
	case cell.IsToday:
		style = todayCellStyle
	case cell.IsWeekend:
		style = weekendCellStyle
	}
	if cell.IsSelected {
		style = style.Reverse(true)
	}
	return style
}

func plain(style lipgloss.Style) lipgloss.Style {
	if noColorMode {
		return lipgloss.NewStyle()
	}
	return style
}

// HelpLine describes the interactive key bindings.
func HelpLine(withTime bool) string {
	helpText := "←↓↑→/hjkl 移动  [ ] 上/下个月  { } 上/下一年  t 今天  Enter 选择  Esc 收起  q 退出"
	if withTime {
		helpText += "\n+/- 小时  >/< 分钟"
	}
	if noColorMode {
		return helpText
	}
	return helpStyle.Render(helpText)
}

// ColorLegend returns a legend explaining the color coding for holidays.
func ColorLegend() string {
	legend := "蓝色=节假日  橙色=调休日"
	if noColorMode {
		return legend
	}
	return helpStyle.Render(legend)
}
