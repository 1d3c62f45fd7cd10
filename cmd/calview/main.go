package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lululau/calview/internal/calendar"
	"github.com/lululau/calview/internal/config"
	"github.com/lululau/calview/internal/holidays"
	"github.com/lululau/calview/internal/lunar"
	"github.com/lululau/calview/internal/picker"
	"github.com/lululau/calview/internal/render"
	"github.com/lululau/calview/internal/tui"
)

var (
	formatFlag     = flag.String("f", "", "日期格式，例如 %Y-%m-%d %H:%M")
	withTime       = flag.Bool("t", false, "同时选择时间（小时和分钟）")
	plain          = flag.Bool("n", false, "直接渲染并退出（非交互模式）")
	yearFlag       = flag.Bool("y", false, "显示全年日历")
	minYear        = flag.Int("min", 0, "可选的最小年份")
	maxYear        = flag.Int("max", 0, "可选的最大年份")
	configFile     = flag.String("c", "", "配置文件路径")
	noColor        = flag.Bool("N", false, "禁用所有颜色输出")
	noColorLong    = flag.Bool("no-color", false, "禁用所有颜色输出")
	lunarFlag      = flag.Bool("lunar", false, "显示农历和节气")
	updateHolidays = flag.Bool("u", false, "下载最新的节假日数据")
	holidaysFile   = flag.String("holidays-file", "", "指定节假日数据文件路径（用于调试）")
	debugFile      = flag.String("debug", "", "将调试日志写入指定文件")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "用法: %s [选项] [日期]\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), `
  无参数              从今天开始选择
  2024-03-15          从 2024-03-15 开始选择
  -t "2024-03-15 9:30"  同时选择时间
  -n March 15 2024    渲染一次并输出格式化后的日期
  -y 1983             展示1983年

选项:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}

func run() error {
	if *debugFile != "" {
		f, err := tea.LogToFile(*debugFile, "calview")
		if err != nil {
			return fmt.Errorf("打开调试日志失败: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	if *updateHolidays {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return holidays.RunDownload(ctx)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.NoColor {
		render.SetNoColor(true)
		tui.SetNoColor(true)
	}

	var annotators []calendar.Annotator
	if cfg.Lunar {
		annotators = append(annotators, lunar.Annotator{})
	}
	table, stale := loadHolidays(cfg.HolidaysFile)
	if table != nil {
		annotators = append(annotators, table)
	}

	svc := calendar.NewService(
		calendar.WithRange(cfg.MinYear, cfg.MaxYear),
		calendar.WithAnnotators(annotators...),
	)
	p := picker.New(svc, picker.Config{WithTime: cfg.WithTime, Pattern: cfg.Pattern()})
	text := strings.Join(flag.Args(), " ")
	if text != "" && p.Bind(text) {
		log.Printf("start at %s", p.Date())
	}

	if *plain || *yearFlag {
		opts := render.PlainOptions{
			Picker:        p,
			Service:       svc,
			ShowLegend:    table != nil,
			HolidaysStale: stale,
		}
		if *yearFlag {
			opts.Year = p.Date().Year
			if n, err := strconv.Atoi(text); err == nil {
				opts.Year = n
			}
		}
		return render.RunPlain(opts)
	}

	value, err := tui.Run(p, tui.Options{ShowLegend: table != nil, HolidaysStale: stale})
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

// loadConfig reads the config file and lets command-line flags override it.
func loadConfig() (*config.Config, error) {
	path := *configFile
	if path == "" {
		p, err := config.Path()
		if err != nil {
			log.Printf("no config dir: %v", err)
			return overrideConfig(config.Default())
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return overrideConfig(cfg)
}

func overrideConfig(cfg *config.Config) (*config.Config, error) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "f":
			cfg.DateFormat = *formatFlag
		case "t":
			cfg.WithTime = *withTime
		case "min":
			cfg.MinYear = *minYear
		case "max":
			cfg.MaxYear = *maxYear
		case "N", "no-color":
			cfg.NoColor = *noColor || *noColorLong
		case "lunar":
			cfg.Lunar = *lunarFlag
		case "holidays-file":
			cfg.HolidaysFile = *holidaysFile
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Printf("config: range %d..%d pattern %q", cfg.MinYear, cfg.MaxYear, cfg.Pattern().String())
	return cfg, nil
}

// loadHolidays loads an explicit file, or the download cache when it is
// fresh. stale reports that the cache is missing or out of date.
func loadHolidays(path string) (table holidays.Table, stale bool) {
	if path != "" {
		t, err := holidays.LoadFromFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "警告: 无法加载节假日文件 %s: %v\n", path, err)
			return nil, false
		}
		logCoverage(t)
		return t, false
	}
	cachePath, err := holidays.CachePath()
	if err != nil {
		return nil, false
	}
	if old, err := holidays.Stale(cachePath, holidays.MaxAge); err != nil || old {
		return nil, true
	}
	t, err := holidays.LoadFromFile(cachePath)
	if err != nil {
		log.Printf("holiday cache unreadable: %v", err)
		return nil, true
	}
	logCoverage(t)
	return t, false
}

func logCoverage(t holidays.Table) {
	if lo, hi, ok := t.Years(); ok {
		log.Printf("holiday data covers %d..%d", lo, hi)
	}
}
