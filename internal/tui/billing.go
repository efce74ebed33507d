package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/magabrotheeeer/research-assistant/internal/lib/display"
	"github.com/magabrotheeeer/research-assistant/internal/models"
	"github.com/magabrotheeeer/research-assistant/internal/services"
)

func paymentRows(payments []models.Payment) []table.Row {
	rows := make([]table.Row, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, table.Row{
			p.ID.String(),
			display.Number(p.Amount),
			p.Status,
			display.Date(p.CreatedAt),
		})
	}
	return rows
}

// refundLabel подпись платежа в форме возврата.
func refundLabel(p models.Payment) string {
	return fmt.Sprintf("결제 %s (%s원)", p.ID, display.Number(p.Amount))
}

func (m Model) subscriptionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.toMenu(), nil
	case key.Matches(msg, m.keys.Refresh):
		return m.begin(m.fetchSubscription())
	}
	if !m.subscriptionLoaded {
		return m, nil
	}

	if m.subscription != nil && m.subscription.Active() {
		if key.Matches(msg, m.keys.Cancel) {
			return m.begin(m.cancelCmd(m.subscription.ID))
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.planCursor > 0 {
			m.planCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.planCursor < len(models.Plans)-1 {
			m.planCursor++
		}
	case key.Matches(msg, m.keys.Submit):
		return m.begin(m.intentCmd(models.Plans[m.planCursor]))
	}
	return m, nil
}

func (m Model) onSubscription(msg subscriptionMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.subscription = nil
		m.subscriptionLoaded = false
		return m.fail(services.Message(msg.err, "구독 정보 조회 실패")), nil
	}
	m.subscription = msg.subscription
	m.subscriptionLoaded = true
	return m, nil
}

func (m Model) onCancelled(msg cancelledMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.fail(services.Message(msg.err, "구독 취소 실패")), nil
	}
	m = m.succeed("구독이 취소되었습니다.")
	return m.refetch(m.fetchSubscription())
}

func (m Model) onIntent(msg intentMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.fail(services.Message(msg.err, "결제 정보 생성 실패")), nil
	}
	m.intent = msg.intent
	m.screen = screenIntent
	return m, nil
}

func (m Model) intentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		// Ожидающий платёж просто бросается, сервер его не проводит.
		m.intent = nil
		m.screen = screenSubscription
		m.notice, m.failure = "", ""
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Submit):
		if m.intent != nil {
			return m.begin(m.processCmd(*m.intent))
		}
	}
	return m, nil
}

func (m Model) onProcessed(msg processedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.fail(services.Message(msg.err, "결제 처리 실패")), nil
	}
	m.intent = nil
	m.screen = screenSubscription
	m = m.succeed("결제가 완료되었습니다!")
	return m.refetch(m.fetchSubscription())
}

func (m Model) subscriptionView() string {
	var b strings.Builder
	b.WriteString(m.styles.subtitle.Render("구독 정보"))
	b.WriteString("\n\n")
	if !m.subscriptionLoaded {
		b.WriteString(m.helpView(m.keys.Refresh, m.keys.Back))
		return b.String()
	}

	sub := m.subscription
	if sub == nil {
		b.WriteString(m.styles.info.Render("구독 정보가 없습니다."))
		b.WriteString("\n\n")
	} else {
		fmt.Fprintf(&b, "%s %s\n", m.styles.label.Render("플랜:"), sub.PlanType)
		fmt.Fprintf(&b, "%s %s\n", m.styles.label.Render("상태:"), sub.Status)
		fmt.Fprintf(&b, "%s %s\n\n", m.styles.label.Render("만료일:"), display.Date(sub.EndDate))

		b.WriteString(m.styles.subtitle.Render("사용량"))
		b.WriteString("\n\n")
		usage, limit := sub.CurrentUsage, sub.UsageLimit
		fmt.Fprintf(&b, "%s %s\n", m.styles.label.Render("프로젝트"), display.Usage(usage.ProjectsCount, limit.MaxProjects))
		fmt.Fprintf(&b, "%s %s\n", m.styles.label.Render("참고문헌"), display.Usage(usage.ReferencesCount, limit.MaxReferences))
		fmt.Fprintf(&b, "%s %s\n", m.styles.label.Render("LLM 요청"), display.Usage(usage.LLMRequestsCount, limit.MaxLLMRequests))
		fmt.Fprintf(&b, "%s %s MB\n\n", m.styles.label.Render("스토리지"), display.Usage(usage.StorageUsedMB, limit.StorageLimitMB))
	}

	if sub != nil && sub.Active() {
		b.WriteString(m.helpView(m.keys.Cancel, m.keys.Refresh, m.keys.Back))
		return b.String()
	}

	b.WriteString(m.styles.label.Render("신규 구독하기"))
	b.WriteString("\n")
	for i, plan := range models.Plans {
		if i == m.planCursor {
			b.WriteString(m.styles.selected.Render("(•) " + plan.Label()))
		} else {
			b.WriteString(m.styles.muted.Render("( ) " + plan.Label()))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.helpView(m.keys.Up, m.keys.Down, m.keys.Submit, m.keys.Refresh, m.keys.Back))
	return b.String()
}

func (m Model) intentView() string {
	var b strings.Builder
	b.WriteString(m.styles.subtitle.Render("결제 정보"))
	b.WriteString("\n\n")
	if in := m.intent; in != nil {
		panel := fmt.Sprintf("%s %s\n%s %s",
			m.styles.label.Render("금액:"), display.Number(in.Amount),
			m.styles.label.Render("주문번호:"), in.OrderID,
		)
		b.WriteString(m.styles.box.Render(panel))
		b.WriteString("\n\n")
	}
	b.WriteString(m.helpView(m.keys.Confirm, m.keys.Back))
	return b.String()
}

func (m Model) paymentsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.toMenu(), nil
	case key.Matches(msg, m.keys.Refresh):
		return m.begin(m.fetchPayments())
	case key.Matches(msg, m.keys.Refund):
		row := m.paymentTable.SelectedRow()
		if row == nil {
			return m, nil
		}
		p, ok := models.FindPayment(m.payments, models.ID(row[0]))
		if !ok {
			return m, nil
		}
		m.refundTarget = p
		m.refundReason.Reset()
		m.refundReason.Focus()
		m.screen = screenRefund
		m.notice, m.failure = "", ""
		return m, nil
	}
	var cmd tea.Cmd
	m.paymentTable, cmd = m.paymentTable.Update(msg)
	return m, cmd
}

func (m Model) onPayments(msg paymentsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.fail(services.Message(msg.err, "결제 내역 조회 실패")), nil
	}
	m.payments = msg.payments
	m.paymentsLoaded = true
	m.paymentTable.SetRows(paymentRows(msg.payments))
	m.paymentTable.SetCursor(0)
	return m, nil
}

func (m Model) paymentsView() string {
	var b strings.Builder
	b.WriteString(m.styles.subtitle.Render("결제 내역"))
	b.WriteString("\n\n")
	switch {
	case !m.paymentsLoaded:
	case len(m.payments) == 0:
		b.WriteString(m.styles.info.Render("결제 내역이 없습니다."))
		b.WriteString("\n\n")
	default:
		b.WriteString(m.paymentTable.View())
		b.WriteString("\n\n")
	}
	b.WriteString(m.helpView(m.keys.Up, m.keys.Down, m.keys.Refund, m.keys.Refresh, m.keys.Back))
	return b.String()
}

func (m Model) refundKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.refundReason.Blur()
		m.screen = screenPayments
		m.notice, m.failure = "", ""
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.begin(m.refundCmd(m.refundTarget.ID, m.refundReason.Value()))
	}
	var cmd tea.Cmd
	m.refundReason, cmd = m.refundReason.Update(msg)
	return m, cmd
}

func (m Model) onRefunded(msg refundedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.fail(services.Message(msg.err, "환불 요청 실패")), nil
	}
	m.refundReason.Blur()
	m.screen = screenPayments
	m = m.succeed("환불이 요청되었습니다.")
	return m.refetch(m.fetchPayments())
}

func (m Model) refundView() string {
	var b strings.Builder
	b.WriteString(m.styles.subtitle.Render("환불 요청"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n\n", m.styles.label.Render("환불할 결제:"), refundLabel(m.refundTarget))
	b.WriteString(m.styles.label.Render("환불 사유"))
	b.WriteString("\n")
	b.WriteString(m.refundReason.View())
	b.WriteString("\n\n")
	b.WriteString(m.helpView(m.keys.Submit, m.keys.Back))
	return b.String()
}
