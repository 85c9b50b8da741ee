//go:build linux

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/juliomoralesp/port-scanner/internal/output"
	"github.com/juliomoralesp/port-scanner/pkg/model"
)

type styles struct {
	title         lipgloss.Style
	status        lipgloss.Style
	footer        lipgloss.Style
	errText       lipgloss.Style
	detailBox     lipgloss.Style
	tableHeader   lipgloss.Style
	tableSelected lipgloss.Style
}

func newStyles(colorEnabled bool) styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return styles{
			title: plain, status: plain, footer: plain, errText: plain,
			detailBox:     plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
			tableHeader:   plain.Bold(true),
			tableSelected: plain.Reverse(true),
		}
	}
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5f5fd7")).
			Padding(0, 1),
		status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87d787")),
		footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676")),
		errText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff5f5f")).
			Bold(true),
		detailBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#585858")).
			Padding(0, 1),
		tableHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5f5fd7")).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("#585858")),
		tableSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#3a3a3a")).
			Bold(true),
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("ports"))
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(m.styles.errText.Render("error: " + m.errMsg))
		b.WriteString("\n")
	}

	if m.state == stateDetail && m.detail != nil {
		b.WriteString(m.detailView(*m.detail))
		b.WriteString("\n")
		b.WriteString(m.styles.footer.Render("esc back · q quit"))
		return b.String()
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.state == stateFilter {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(m.styles.footer.Render("enter apply · esc cancel"))
		return b.String()
	}

	b.WriteString(m.styles.status.Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(m.styles.footer.Render(
		"/ filter · a all states · s sort · r reverse · R refresh · enter detail · q quit"))
	return b.String()
}

func (m Model) statusLine() string {
	scope := "listening"
	if m.cfg.AllStates {
		scope = "all states"
	}
	line := fmt.Sprintf("%d sockets · %s · sort %s", len(m.visible), scope, m.query.Sort)
	if m.query.Reverse {
		line += " (desc)"
	}
	if m.query.Name != "" {
		line += fmt.Sprintf(" · name ~ %q", m.query.Name)
	}
	if m.query.Port > 0 {
		line += fmt.Sprintf(" · port %d", m.query.Port)
	}
	return line
}

func (m Model) detailView(r model.SocketRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s port %d on %s\n", r.Protocol, r.Port, r.LocalAddr)
	fmt.Fprintf(&b, "state: %s\n", model.StateName(r.State))
	fmt.Fprintf(&b, "inode: %d\n", r.SocketID)
	fmt.Fprintf(&b, "owners: %s", output.FormatOwners(r.Owners))

	width := m.width - 6
	if width < 20 {
		width = 20
	}
	return m.styles.detailBox.Render(wrap.String(b.String(), width))
}

// ownerCell is the compact owner summary shown in the table column.
func ownerCell(r model.SocketRecord) string {
	if len(r.Owners) == 0 {
		return output.NoOwnerMarker
	}
	o := r.Owners[0]
	cell := fmt.Sprintf("%s (pid %d)", o.Name, o.PID)
	if len(r.Owners) > 1 {
		cell += fmt.Sprintf(" +%d", len(r.Owners)-1)
	}
	return cell
}
