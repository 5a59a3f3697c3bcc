package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tedit/internal/editor"
	"tedit/pkg/types"
)

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showPager {
		return m.renderPager()
	}

	var sb strings.Builder
	sb.WriteString(m.renderTextArea())
	sb.WriteString("\n")
	sb.WriteString(m.renderStatusBar())
	sb.WriteString("\n")
	sb.WriteString(m.renderCommandLine())
	return sb.String()
}

func (m *Model) textHeight() int {
	return max(m.height-2, 1)
}

// ensureVisible scrolls the text area so the cursor stays on screen.
func (m *Model) ensureVisible() {
	row, col := m.session.Buffer().Cursor()
	textH := m.textHeight()

	if row < m.top {
		m.top = row
	}
	if row >= m.top+textH {
		m.top = row - textH + 1
	}
	if col < m.left {
		m.left = col
	}
	if col >= m.left+m.width-1 {
		m.left = col - m.width + 2
	}
}

func (m *Model) renderTextArea() string {
	m.ensureVisible()
	buf := m.session.Buffer()
	cursorRow, cursorCol := buf.Cursor()
	textH := m.textHeight()

	rows := make([]string, 0, textH)
	for i := 0; i < textH; i++ {
		lineNo := m.top + i
		if lineNo >= buf.LineCount() {
			rows = append(rows, "")
			continue
		}
		rows = append(rows, m.renderLine(buf.Line(lineNo), lineNo == cursorRow, cursorCol))
	}
	return strings.Join(rows, "\n")
}

// renderLine clips a line to the horizontal viewport and paints the cursor
// cell on the cursor row.
func (m *Model) renderLine(line string, hasCursor bool, cursorCol int) string {
	runes := []rune(line)

	from := m.left
	if from > len(runes) {
		from = len(runes)
	}
	to := min(len(runes), m.left+max(m.width-1, 1))
	visible := runes[from:to]

	if !hasCursor {
		return string(visible)
	}

	at := cursorCol - m.left
	if at < 0 || at > len(visible) {
		return string(visible)
	}
	cell := " "
	rest := ""
	if at < len(visible) {
		cell = string(visible[at])
		rest = string(visible[at+1:])
	}
	return string(visible[:at]) + m.styles.Cursor.Render(cell) + rest
}

func (m *Model) renderStatusBar() string {
	buf := m.session.Buffer()
	row, col := buf.Cursor()

	name := buf.Path()
	if name == "" {
		name = "[no file]"
	}

	var sb strings.Builder
	sb.WriteString(m.styles.StatusBar.Render("tedit - " + name))
	if buf.Dirty() {
		sb.WriteString(m.styles.Dirty.Render(" *"))
	}
	sb.WriteString(m.styles.StatusBar.Render(fmt.Sprintf("  ln %d, col %d  ", row+1, col+1)))
	sb.WriteString(m.styles.ModeTag.Render("MODE: " + m.session.Mode().String()))
	if msg := m.session.Status(); msg != "" {
		sb.WriteString(m.styles.StatusBar.Render(" - "))
		sb.WriteString(m.messageStyle().Render(msg))
	}

	bar := sb.String()
	if w := lipgloss.Width(bar); w < m.width {
		bar += m.styles.StatusBar.Render(strings.Repeat(" ", m.width-w))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(bar)
}

func (m *Model) messageStyle() lipgloss.Style {
	switch m.session.StatusLevel() {
	case editor.StatusError:
		return m.styles.Error
	case editor.StatusWarn:
		return m.styles.Warning
	}
	return m.styles.Info
}

func (m *Model) renderCommandLine() string {
	if m.session.Mode() == types.CommandMode {
		line := m.session.CommandLine()
		if !strings.HasPrefix(line, ":") {
			line = ":" + line
		}
		return m.styles.CommandLine.Render(line)
	}
	return m.styles.Hint.Render("[esc] command mode  [arrows] move  (:help for commands)")
}

func (m *Model) renderPager() string {
	var sb strings.Builder
	sb.WriteString(m.styles.PagerTitle.Render("output"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Pager.Render(m.pager.View()))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Hint.Render("[esc] dismiss  [↑/↓] scroll"))
	return sb.String()
}
