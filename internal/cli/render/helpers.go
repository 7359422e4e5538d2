package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	headerStyle  = color.New(color.Bold, color.FgHiWhite)
	idStyle      = color.New(color.FgWhite, color.Bold)
	addressStyle = color.New(color.FgWhite)
	faintStyle   = color.New(color.Faint)
	validStyle   = color.New(color.FgGreen)
	invalidStyle = color.New(color.FgRed)
	moduleStyle  = color.New(color.FgCyan)
	warningStyle = color.New(color.FgYellow)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return warningStyle.Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Extract just the error message part (after the last colon if it's an error chain)
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	// Multi-line errors carry their detail after the first line
	if strings.Contains(message, "\n") {
		msg = message
	}

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// JSON writes v as indented JSON
func JSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return relPath
}

// newTable creates a borderless table writer
func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	return t
}

// truncateHex shortens long hex data to its head and tail
func truncateHex(s string, max int) string {
	if len(s) <= max || max < 8 {
		return s
	}
	half := (max - 3) / 2
	return s[:half] + "..." + s[len(s)-half:]
}
