package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/magabrotheeeer/research-assistant/internal/models"
	"github.com/magabrotheeeer/research-assistant/internal/services"
	"github.com/magabrotheeeer/research-assistant/internal/session"
)

func (m Model) loginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SwitchForm):
		m.svc.Auth.ShowSignup()
		m.signup.reset()
		m.notice, m.failure = "", ""
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.login.next()
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.login.prev()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		creds := models.Credentials{
			Email:    m.login.value(loginEmail),
			Password: m.login.value(loginPassword),
		}
		return m.begin(m.loginCmd(creds))
	}
	return m, m.login.update(msg)
}

func (m Model) signupKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SwitchForm), key.Matches(msg, m.keys.Back):
		m.svc.Auth.ShowLogin()
		m.notice, m.failure = "", ""
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.signup.next()
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.signup.prev()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		form := models.SignupForm{
			Email:           m.signup.value(signupEmail),
			FullName:        m.signup.value(signupName),
			Password:        m.signup.value(signupPassword),
			PasswordConfirm: m.signup.value(signupConfirm),
		}
		return m.begin(m.signupCmd(form))
	}
	return m, m.signup.update(msg)
}

func (m Model) onLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.fail(services.Message(msg.err, "로그인 실패")), nil
	}
	m.login.reset()
	m.screen = screenMenu
	m.menuCursor = 0
	return m.succeed("로그인 성공!"), nil
}

func (m Model) onSignup(msg signupMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.fail(services.Message(msg.err, "회원가입 실패")), nil
	}
	m.signup.reset()
	m.login.reset()
	return m.succeed("회원가입이 완료되었습니다! 로그인해주세요."), nil
}

func (m Model) authView() string {
	var b strings.Builder
	if m.session.Mode() == session.ModeSignup {
		b.WriteString(m.styles.subtitle.Render("회원가입"))
		b.WriteString("\n\n")
		b.WriteString(m.signup.view(m.styles))
		b.WriteString(m.helpView(m.keys.Next, m.keys.Submit, m.keys.Back, m.keys.Quit))
		return b.String()
	}
	b.WriteString(m.styles.subtitle.Render("Research Assistant Login"))
	b.WriteString("\n\n")
	b.WriteString(m.login.view(m.styles))
	b.WriteString(m.helpView(m.keys.Next, m.keys.Submit, m.keys.SwitchForm, m.keys.Quit))
	return b.String()
}
