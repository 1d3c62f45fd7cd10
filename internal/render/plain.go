package render

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/lululau/calview/internal/calendar"
	"github.com/lululau/calview/internal/picker"
)

// StaleHolidaysNotice is shown when holiday data is missing or outdated.
const StaleHolidaysNotice = "尚未下载节假日数据或节假日数据超过 6 个月未更新，运行 calview -u 获取最新数据"

// PlainOptions controls how the non-interactive renderer behaves.
type PlainOptions struct {
	Writer io.Writer
	// Picker supplies the month and the formatted value in month mode.
	Picker *picker.Picker
	// Service and Year select the year overview when Year is non-zero.
	Service       *calendar.Service
	Year          int
	Width         int
	ShowLegend    bool
	HolidaysStale bool
}

// RunPlain renders the requested view exactly once.
func RunPlain(opts PlainOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	width := opts.Width
	if width == 0 {
		width = DetectWidth()
	}

	var output string
	switch {
	case opts.Year != 0:
		svc := opts.Service
		if svc == nil {
			svc = calendar.NewService()
		}
		grids, err := svc.Year(opts.Year)
		if err != nil {
			return err
		}
		output = Layout(BuildBlocks(grids), width)
	case opts.Picker != nil:
		output = Layout([]MonthBlock{BuildBlock(opts.Picker.Grid())}, width) + "\n\n" + opts.Picker.Text()
	default:
		return fmt.Errorf("nothing to render")
	}

	if _, err := fmt.Fprintln(opts.Writer, output); err != nil {
		return err
	}
	if opts.ShowLegend {
		if _, err := fmt.Fprintln(opts.Writer, "\n"+ColorLegend()); err != nil {
			return err
		}
	}
	if opts.HolidaysStale {
		if _, err := fmt.Fprintln(opts.Writer, "\n"+StaleHolidaysNotice); err != nil {
			return err
		}
	}
	return nil
}

// DetectWidth tries to determine the terminal width, falling back to 100 cols.
func DetectWidth() int {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) {
		if w, _, err := term.GetSize(int(fd)); err == nil {
			return w
		}
	}
	return 100
}
