package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// View реализует tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Research Assistant"))
	if who, expired := m.svc.Auth.Identity(); who != "" {
		line := "  " + who
		if expired {
			line += " (토큰 만료)"
		}
		b.WriteString(m.styles.muted.Render(line))
	}
	b.WriteString("\n\n")

	switch m.screen {
	case screenAuth:
		b.WriteString(m.authView())
	case screenMenu:
		b.WriteString(m.menuView())
	case screenProjects:
		b.WriteString(m.projectsView())
	case screenDetail:
		b.WriteString(m.detailView())
	case screenStatus:
		b.WriteString(m.statusView())
	case screenCreate:
		b.WriteString(m.createView())
	case screenSubscription:
		b.WriteString(m.subscriptionView())
	case screenIntent:
		b.WriteString(m.intentView())
	case screenPayments:
		b.WriteString(m.paymentsView())
	case screenRefund:
		b.WriteString(m.refundView())
	}

	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString(m.styles.muted.Render("요청 중..."))
	case m.failure != "":
		b.WriteString(m.styles.failure.Render(m.failure))
	case m.notice != "":
		b.WriteString(m.styles.success.Render(m.notice))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) menuView() string {
	var b strings.Builder
	b.WriteString(m.styles.subtitle.Render("메뉴"))
	b.WriteString("\n\n")
	for i, item := range menuItems {
		if i == m.menuCursor {
			b.WriteString(m.styles.selected.Render("▸ " + item))
		} else {
			b.WriteString("  " + item)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.helpView(m.keys.Up, m.keys.Down, m.keys.Submit, m.keys.Logout, m.keys.Quit))
	return b.String()
}

func (m Model) helpView(bindings ...key.Binding) string {
	return m.styles.help.Render(m.help.ShortHelpView(bindings))
}
