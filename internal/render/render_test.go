package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lululau/calview/internal/calendar"
	"github.com/lululau/calview/internal/civil"
	"github.com/lululau/calview/internal/lunar"
	"github.com/lululau/calview/internal/picker"
)

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)

func withNoColor(t *testing.T) {
	t.Helper()
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })
}

func fixedService(opts ...calendar.Option) *calendar.Service {
	opts = append([]calendar.Option{calendar.WithNow(func() time.Time { return now })}, opts...)
	return calendar.NewService(opts...)
}

func TestMonthBlockMarksSelectionAndToday(t *testing.T) {
	withNoColor(t)
	sel := civil.Date(2024, time.March, 15)
	grid := fixedService().Month(sel, &sel)
	output := strings.Join(BuildBlock(grid).Lines, "\n")
	for _, want := range []string{"March 2024", "[15]", "( 1)", "S", "31"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in block:\n%s", want, output)
		}
	}
}

func TestMonthBlockHidesForeignWeeks(t *testing.T) {
	withNoColor(t)
	svc := fixedService()
	four := BuildBlock(svc.Month(civil.Date(2015, time.February, 1), nil))
	five := BuildBlock(svc.Month(civil.Date(2024, time.April, 1), nil))
	if five.Height-four.Height != 1 {
		t.Fatalf("expected one extra line for one extra week, got %d vs %d", five.Height, four.Height)
	}
	if four.Width != five.Width {
		t.Fatalf("month blocks should share a width, got %d and %d", four.Width, five.Width)
	}
}

func TestMonthBlockContainsLunarLabels(t *testing.T) {
	withNoColor(t)
	svc := fixedService(calendar.WithAnnotators(lunar.Annotator{}))
	output := strings.Join(BuildBlock(svc.Month(civil.Date(2025, time.November, 1), nil)).Lines, "\n")
	if !strings.Contains(output, "初") && !strings.Contains(output, "廿") {
		t.Fatalf("expected lunar labels in layout, got:\n%s", output)
	}
}

func TestLayoutPacksBlocks(t *testing.T) {
	withNoColor(t)
	svc := fixedService()
	blocks := BuildBlocks([]calendar.Grid{
		svc.Month(civil.Date(2024, time.March, 1), nil),
		svc.Month(civil.Date(2024, time.March, 1), nil),
	})
	w, h := blocks[0].Width, blocks[0].Height

	wide := strings.Split(Layout(blocks, 2*w+blockGap), "\n")
	if len(wide) != h {
		t.Fatalf("side by side layout should be %d lines, got %d", h, len(wide))
	}
	narrow := strings.Split(Layout(blocks, w), "\n")
	if len(narrow) != 2*h+1 {
		t.Fatalf("stacked layout should be %d lines, got %d", 2*h+1, len(narrow))
	}
	if Layout(nil, 80) != "" {
		t.Fatalf("empty layout should render nothing")
	}
}

func TestRunPlainMonth(t *testing.T) {
	withNoColor(t)
	p := picker.New(fixedService(), picker.Config{})
	p.Bind("2024-03-15")
	var buf bytes.Buffer
	err := RunPlain(PlainOptions{Writer: &buf, Picker: p, Width: 80, HolidaysStale: true})
	if err != nil {
		t.Fatalf("RunPlain failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "2024-03-15") || !strings.Contains(out, "[15]") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, StaleHolidaysNotice) {
		t.Fatalf("expected stale holidays notice")
	}
}

func TestRunPlainYear(t *testing.T) {
	withNoColor(t)
	var buf bytes.Buffer
	if err := RunPlain(PlainOptions{Writer: &buf, Service: fixedService(), Year: 2024, Width: 200}); err != nil {
		t.Fatalf("RunPlain failed: %v", err)
	}
	for _, month := range []string{"January 2024", "June 2024", "December 2024"} {
		if !strings.Contains(buf.String(), month) {
			t.Fatalf("expected %q in year view", month)
		}
	}
	if err := RunPlain(PlainOptions{Writer: &buf, Service: fixedService(), Year: 1500, Width: 200}); err == nil {
		t.Fatalf("expected out of range error")
	}
}
