// Package logview follows the JSON log streams written by internal/log and
// prints them in a compact, coloured form.
package logview

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/ui"
)

// Entry is one decoded log line.
type Entry map[string]interface{}

// Viewer remembers how far each log file has been read.
type Viewer struct {
	dir        string
	filter     string
	visualizer *ui.Visualizer
	positions  map[string]int64
	known      map[string]bool
}

// NewViewer creates a viewer over the *.log files of dir. Only entries whose
// formatted text contains filter (case-insensitive) are printed.
func NewViewer(dir, filter string, out io.Writer, useColor bool) *Viewer {
	return &Viewer{
		dir:        dir,
		filter:     strings.ToLower(filter),
		visualizer: ui.NewVisualizer(out, useColor),
		positions:  make(map[string]int64),
		known:      make(map[string]bool),
	}
}

// FormatTimestamp shortens an RFC 3339 timestamp, returning it unchanged
// when it does not parse.
func FormatTimestamp(timestamp string) string {
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return timestamp
	}
	return t.Format("06-01-02 15:04:05.000")
}

func levelColor(level string) ui.Color {
	switch level {
	case "DEBUG":
		return ui.ColorLightBlue
	case "INFO":
		return ui.ColorLightGreen
	case "WARN":
		return ui.ColorLightYellow
	case "ERROR":
		return ui.ColorLightRed
	case "COMMAND":
		return ui.ColorLightPurple
	}
	return ui.ColorWhite
}

// FormatEntry renders an entry as a header line followed by one indented
// line per extra field, sorted by key.
func (v *Viewer) FormatEntry(entry Entry) string {
	timestamp, _ := entry["time"].(string)
	level, _ := entry["level"].(string)
	msg, _ := entry["msg"].(string)
	level = strings.ToUpper(level)

	var b strings.Builder
	b.WriteString(v.visualizer.Colorize(FormatTimestamp(timestamp), ui.ColorLightPurple))
	b.WriteString(" ")
	b.WriteString(v.visualizer.Colorize(fmt.Sprintf("%-7s", level), levelColor(level)))
	b.WriteString(" ")
	b.WriteString(msg)

	keys := make([]string, 0, len(entry))
	for key := range entry {
		if key != "time" && key != "level" && key != "msg" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, "\n    %s %v", v.visualizer.Colorize(key+":", ui.ColorLightBlue), entry[key])
	}
	return b.String()
}

// Poll prints the entries appended to every log file since the previous
// call. A file that shrank was rotated or truncated and is read again from
// the start.
func (v *Viewer) Poll() error {
	logFiles, err := filepath.Glob(filepath.Join(v.dir, "*.log"))
	if err != nil {
		return fmt.Errorf("error reading log directory: %w", err)
	}
	sort.Strings(logFiles)

	for _, filePath := range logFiles {
		if !v.known[filePath] {
			v.visualizer.Println(v.visualizer.Colorize("New log file detected: "+filepath.Base(filePath), ui.ColorGreen))
			v.known[filePath] = true
		}
		if err := v.readFile(filePath); err != nil {
			v.visualizer.Println(v.visualizer.Colorize(err.Error(), ui.ColorRed))
		}
	}
	return nil
}

func (v *Viewer) readFile(filePath string) error {
	name := filepath.Base(filePath)
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", name, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("error getting file stats for %s: %w", name, err)
	}
	if stat.Size() < v.positions[filePath] {
		v.visualizer.Println(v.visualizer.Colorize(name+" has been truncated, starting from beginning", ui.ColorYellow))
		v.positions[filePath] = 0
	}
	if _, err := file.Seek(v.positions[filePath], io.SeekStart); err != nil {
		return fmt.Errorf("error seeking in %s: %w", name, err)
	}

	reader := bufio.NewReader(file)
	pos := v.positions[filePath]
	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			// a partial line is picked up again on the next poll
			break
		}
		if err != nil {
			return fmt.Errorf("error reading %s: %w", name, err)
		}
		pos += int64(len(line))

		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			v.visualizer.Println(v.visualizer.Colorize(fmt.Sprintf("Error parsing log entry in %s: %v", name, err), ui.ColorRed))
			continue
		}
		formatted := v.FormatEntry(entry)
		if v.filter == "" || strings.Contains(strings.ToLower(formatted), v.filter) {
			v.visualizer.Println(formatted)
		}
	}
	v.positions[filePath] = pos
	return nil
}

// Follow polls every interval until ctx is cancelled.
func (v *Viewer) Follow(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := v.Poll(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
