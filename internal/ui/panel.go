package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
)

// OK prints a success line.
func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Success.Render(current.SymDone+" "+msg))
}

// Fail prints an error line.
func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Error.Render("✖ "+msg))
}

// Hint prints a muted follow-up line.
func Hint(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Muted.Render(msg))
}

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel draws a framed box using the current theme.
func Panel(lines []string) string {
	border := lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(current.BorderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

// Header is the one-line summary shown above a list.
func Header(l model.List) string {
	done, pending := l.Stats()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		current.Title.Render("Todos"),
		current.Success.Render(current.SymDone), done,
		current.Pending.Render(current.SymPending), pending,
		current.Accent.Render("Total"), len(l),
	)
}

// Checkbox returns the themed box for a task.
func Checkbox(t model.Task) string {
	if t.Completed {
		return current.Success.Render(current.BoxChecked)
	}
	return current.Muted.Render(current.BoxUnchecked)
}

// TaskLine renders "<id> <box> <title>", truncating long titles.
func TaskLine(t model.Task) string {
	title := Truncate(t.Title, 80)
	if t.Completed {
		title = current.Done.Render(title)
	}
	return fmt.Sprintf("%s %s %s", current.Muted.Render(fmt.Sprintf("%13d", t.ID)), Checkbox(t), title)
}

// Truncate shortens s to max runes, ending in "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 4 {
		return s
	}
	return string(r[:max-3]) + "..."
}

// FlatLines renders one line per task, or a placeholder when empty.
func FlatLines(l model.List) []string {
	if len(l) == 0 {
		return []string{current.Muted.Render("No tasks yet")}
	}
	out := make([]string, 0, len(l))
	for _, t := range l {
		out = append(out, TaskLine(t))
	}
	return out
}

// GroupLines splits the list into Pending and Done sections.
func GroupLines(l model.List) []string {
	var pend, done model.List
	for _, t := range l {
		if t.Completed {
			done = append(done, t)
		} else {
			pend = append(pend, t)
		}
	}
	var lines []string
	lines = append(lines, current.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, current.Muted.Render("(none)"))
	} else {
		lines = append(lines, FlatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, current.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, current.Muted.Render("(none)"))
	} else {
		lines = append(lines, FlatLines(done)...)
	}
	return lines
}
