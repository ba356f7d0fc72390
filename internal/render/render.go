// Package render formats a WorkingDirectoryStatus for the terminal or for
// downstream tooling.
package render

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/wtstatus/internal/models"
	"golang.org/x/term"
)

// Styles holds the per-kind lipgloss styles for text output.
type Styles struct {
	New        lipgloss.Style
	Modified   lipgloss.Style
	Deleted    lipgloss.Style
	Renamed    lipgloss.Style
	Untracked  lipgloss.Style
	Conflicted lipgloss.Style
	Muted      lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() Styles {
	return Styles{
		New:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Modified:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Deleted:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Renamed:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		Untracked:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Conflicted: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// PlainStyles returns styles that leave text untouched, for non-terminal
// output or --no-color.
func PlainStyles() Styles {
	return Styles{}
}

// StdoutIsTerminal reports whether stdout is attached to a terminal.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Text renders the status as a human-readable listing, one entry per line in
// backend order, followed by a summary.
func Text(status *models.WorkingDirectoryStatus, styles Styles) string {
	var b strings.Builder
	conflicted := 0
	for _, f := range status.Files {
		line, style := describeEntry(f, styles)
		b.WriteString(style.Render(line))
		b.WriteByte('\n')
		if f.Status.IsConflicted() {
			conflicted++
		}
	}

	summary := fmt.Sprintf("%d changed", len(status.Files))
	if conflicted > 0 {
		summary += fmt.Sprintf(", %d conflicted", conflicted)
	}
	b.WriteString(styles.Muted.Render(summary))
	b.WriteByte('\n')
	return b.String()
}

func describeEntry(f models.FileEntry, styles Styles) (string, lipgloss.Style) {
	kind := f.Status.Kind.String()
	switch f.Status.Kind {
	case models.FileStatusNew:
		return fmt.Sprintf("%-10s %s", kind, f.Path), styles.New
	case models.FileStatusModified:
		return fmt.Sprintf("%-10s %s", kind, f.Path), styles.Modified
	case models.FileStatusDeleted:
		return fmt.Sprintf("%-10s %s", kind, f.Path), styles.Deleted
	case models.FileStatusRenamed, models.FileStatusCopied:
		return fmt.Sprintf("%-10s %s <- %s", kind, f.Path, f.Status.OldPath), styles.Renamed
	case models.FileStatusUntracked:
		return fmt.Sprintf("%-10s %s", kind, f.Path), styles.Untracked
	case models.FileStatusConflicted:
		return fmt.Sprintf("%-10s %s (%s)", kind, f.Path, describeConflict(f.Status.Conflict)), styles.Conflicted
	default:
		return fmt.Sprintf("%-10s %s", kind, f.Path), lipgloss.Style{}
	}
}

func describeConflict(c *models.ConflictedEntry) string {
	if c == nil {
		return "unknown"
	}
	if !c.Textual() {
		return fmt.Sprintf("%s, manual", c.Action)
	}
	return fmt.Sprintf("%s, %d markers", c.Action, *c.MarkerCount)
}

type jsonConflict struct {
	Action      string `json:"action"`
	Us          string `json:"us"`
	Them        string `json:"them"`
	MarkerCount *int   `json:"markerCount,omitempty"`
}

type jsonEntry struct {
	Path     string        `json:"path"`
	Kind     string        `json:"kind"`
	OldPath  string        `json:"oldPath,omitempty"`
	Conflict *jsonConflict `json:"conflict,omitempty"`
}

type jsonStatus struct {
	Files []jsonEntry `json:"files"`
}

// JSON renders the status as indented JSON. Absent marker counts stay absent
// in the output; a zero count is emitted as 0.
func JSON(status *models.WorkingDirectoryStatus) (string, error) {
	out := jsonStatus{Files: make([]jsonEntry, 0, len(status.Files))}
	for _, f := range status.Files {
		entry := jsonEntry{
			Path:    f.Path,
			Kind:    f.Status.Kind.String(),
			OldPath: f.Status.OldPath,
		}
		if c := f.Status.Conflict; c != nil {
			entry.Conflict = &jsonConflict{
				Action:      c.Action.String(),
				Us:          c.Us.String(),
				Them:        c.Them.String(),
				MarkerCount: c.MarkerCount,
			}
		}
		out.Files = append(out.Files, entry)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
