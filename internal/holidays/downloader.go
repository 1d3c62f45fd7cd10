package holidays

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultURL serves the holiday data maintained alongside lucal.
const DefaultURL = "https://raw.githubusercontent.com/lululau/lucal/main/holidays.json"

// Download fetches url into dest and returns the parsed table. The file is
// written next to dest first and only renamed into place once it parses,
// so a failed download never clobbers good data. progress may be nil.
func Download(ctx context.Context, client *http.Client, url, dest string, progress func(done, total int64)) (Table, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to start download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %s", resp.Status)
	}

	var body bytes.Buffer
	reader := io.Reader(resp.Body)
	if progress != nil {
		reader = &countingReader{r: resp.Body, total: resp.ContentLength, report: progress}
	}
	if _, err := io.Copy(&body, reader); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	table, err := Parse(body.Bytes())
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, body.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		return nil, fmt.Errorf("failed to move file into place: %w", err)
	}
	return table, nil
}

type countingReader struct {
	r      io.Reader
	done   int64
	total  int64
	report func(done, total int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.done += int64(n)
	c.report(c.done, c.total)
	return n, err
}

type progressMsg struct{ done, total int64 }

type finishedMsg struct {
	table Table
	err   error
}

type downloadModel struct {
	dest  string
	done  int64
	total int64
	table Table
	err   error
	over  bool
}

func (m downloadModel) Init() tea.Cmd {
	return nil
}

func (m downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.over || msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case progressMsg:
		m.done, m.total = msg.done, msg.total
	case finishedMsg:
		m.table, m.err, m.over = msg.table, msg.err, true
	}
	return m, nil
}

func (m downloadModel) View() string {
	if !m.over {
		const barWidth = 40
		filled := 0
		if m.total > 0 {
			filled = int(float64(m.done) / float64(m.total) * barWidth)
			filled = min(filled, barWidth)
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		return fmt.Sprintf("正在下载节假日数据...\n\n[%s] %s\n\n按 Ctrl+C 取消\n", bar, formatBytes(m.done))
	}
	if m.err != nil {
		return fmt.Sprintf("❌ 下载失败: %v\n\n可手动下载 %s 并保存到 %s\n\n按任意键退出...\n", m.err, DefaultURL, m.dest)
	}
	msg := fmt.Sprintf("✅ 下载成功!\n\n保存位置: %s\n", m.dest)
	if lo, hi, ok := m.table.Years(); ok {
		msg += fmt.Sprintf("数据年份范围: %d 年 - %d 年\n", lo, hi)
	}
	return msg + "\n按任意键退出...\n"
}

// RunDownload downloads DefaultURL into the cache path while showing a
// progress screen.
func RunDownload(ctx context.Context) error {
	dest, err := CachePath()
	if err != nil {
		return err
	}
	prog := tea.NewProgram(downloadModel{dest: dest}, tea.WithAltScreen(), tea.WithContext(ctx))
	go func() {
		table, err := Download(ctx, nil, DefaultURL, dest, func(done, total int64) {
			prog.Send(progressMsg{done: done, total: total})
		})
		prog.Send(finishedMsg{table: table, err: err})
	}()
	final, err := prog.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(downloadModel); ok && m.err != nil {
		return m.err
	}
	return nil
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
