package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/magabrotheeeer/research-assistant/internal/models"
)

// Результаты запросов. Каждая команда выполняет ровно один вызов сервиса.

type loginMsg struct{ err error }

type signupMsg struct{ err error }

type projectsMsg struct {
	projects []models.Project
	err      error
}

type detailMsg struct {
	detail *models.ProjectDetail
	err    error
}

type createdMsg struct {
	project *models.Project
	err     error
}

type executedMsg struct {
	id  models.ID
	err error
}

type statusMsg struct {
	status *models.ProjectStatus
	err    error
}

type subscriptionMsg struct {
	subscription *models.Subscription
	err          error
}

type cancelledMsg struct{ err error }

type intentMsg struct {
	intent *models.PaymentIntent
	err    error
}

type processedMsg struct{ err error }

type paymentsMsg struct {
	payments []models.Payment
	err      error
}

type refundedMsg struct{ err error }

func (m Model) loginCmd(creds models.Credentials) tea.Cmd {
	ctx, auth := m.ctx, m.svc.Auth
	return func() tea.Msg {
		return loginMsg{err: auth.Login(ctx, creds)}
	}
}

func (m Model) signupCmd(form models.SignupForm) tea.Cmd {
	ctx, auth := m.ctx, m.svc.Auth
	return func() tea.Msg {
		return signupMsg{err: auth.Signup(ctx, form)}
	}
}

func (m Model) fetchProjects() tea.Cmd {
	ctx, research := m.ctx, m.svc.Research
	return func() tea.Msg {
		projects, err := research.List(ctx)
		return projectsMsg{projects: projects, err: err}
	}
}

func (m Model) fetchDetail(id models.ID) tea.Cmd {
	ctx, research := m.ctx, m.svc.Research
	return func() tea.Msg {
		detail, err := research.Detail(ctx, id)
		return detailMsg{detail: detail, err: err}
	}
}

func (m Model) createCmd(req models.CreateProjectRequest) tea.Cmd {
	ctx, research := m.ctx, m.svc.Research
	return func() tea.Msg {
		project, err := research.Create(ctx, req)
		return createdMsg{project: project, err: err}
	}
}

func (m Model) executeCmd(id models.ID) tea.Cmd {
	ctx, research := m.ctx, m.svc.Research
	return func() tea.Msg {
		return executedMsg{id: id, err: research.Execute(ctx, id)}
	}
}

func (m Model) statusCmd(id models.ID) tea.Cmd {
	ctx, research := m.ctx, m.svc.Research
	return func() tea.Msg {
		status, err := research.Status(ctx, id)
		return statusMsg{status: status, err: err}
	}
}

func (m Model) fetchSubscription() tea.Cmd {
	ctx, billing := m.ctx, m.svc.Billing
	return func() tea.Msg {
		sub, err := billing.Current(ctx)
		return subscriptionMsg{subscription: sub, err: err}
	}
}

func (m Model) cancelCmd(id models.ID) tea.Cmd {
	ctx, billing := m.ctx, m.svc.Billing
	return func() tea.Msg {
		return cancelledMsg{err: billing.Cancel(ctx, id)}
	}
}

func (m Model) intentCmd(plan models.PlanType) tea.Cmd {
	ctx, billing := m.ctx, m.svc.Billing
	return func() tea.Msg {
		intent, err := billing.StartSubscription(ctx, plan)
		return intentMsg{intent: intent, err: err}
	}
}

func (m Model) processCmd(intent models.PaymentIntent) tea.Cmd {
	ctx, billing := m.ctx, m.svc.Billing
	return func() tea.Msg {
		return processedMsg{err: billing.ConfirmPayment(ctx, intent)}
	}
}

func (m Model) fetchPayments() tea.Cmd {
	ctx, billing := m.ctx, m.svc.Billing
	return func() tea.Msg {
		payments, err := billing.Payments(ctx)
		return paymentsMsg{payments: payments, err: err}
	}
}

func (m Model) refundCmd(id models.ID, reason string) tea.Cmd {
	ctx, billing := m.ctx, m.svc.Billing
	return func() tea.Msg {
		return refundedMsg{err: billing.Refund(ctx, id, reason)}
	}
}
