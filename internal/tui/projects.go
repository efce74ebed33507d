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

func projectRows(projects []models.Project) []table.Row {
	rows := make([]table.Row, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, table.Row{
			p.ID.String(),
			p.Title,
			string(p.ResearchField),
			p.EvaluationStatus,
			display.Date(p.CreatedAt),
		})
	}
	return rows
}

func (m Model) projectsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.toMenu(), nil
	case key.Matches(msg, m.keys.Refresh):
		return m.begin(m.fetchProjects())
	case key.Matches(msg, m.keys.Submit):
		row := m.projectTable.SelectedRow()
		if row == nil {
			return m, nil
		}
		id, ok := m.svc.Research.SelectByTitle(m.projects, row[1], models.ID(row[0]))
		if !ok {
			return m, nil
		}
		m.screen = screenDetail
		m.detail = nil
		m.stepCursor = 0
		m.expanded = make(map[int]bool)
		return m.begin(m.fetchDetail(id))
	}
	var cmd tea.Cmd
	m.projectTable, cmd = m.projectTable.Update(msg)
	return m, cmd
}

func (m Model) onProjects(msg projectsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.fail(services.Message(msg.err, "프로젝트 목록 조회 실패")), nil
	}
	m.projects = msg.projects
	m.projectsLoaded = true
	m.projectTable.SetRows(projectRows(msg.projects))
	m.projectTable.SetCursor(0)
	return m, nil
}

func (m Model) projectsView() string {
	var b strings.Builder
	b.WriteString(m.styles.subtitle.Render("내 연구 프로젝트"))
	b.WriteString("\n\n")
	switch {
	case !m.projectsLoaded:
	case len(m.projects) == 0:
		b.WriteString(m.styles.info.Render("프로젝트가 없습니다."))
		b.WriteString("\n\n")
	default:
		b.WriteString(m.projectTable.View())
		b.WriteString("\n\n")
	}
	b.WriteString(m.helpView(m.keys.Up, m.keys.Down, m.keys.Submit, m.keys.Refresh, m.keys.Back))
	return b.String()
}

func (m Model) detailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.screen = screenProjects
		m.notice, m.failure = "", ""
		return m, nil
	}
	if m.detail == nil {
		return m, nil
	}
	id := m.detail.ID

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.stepCursor > 0 {
			m.stepCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.stepCursor < len(m.detail.Steps)-1 {
			m.stepCursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if len(m.detail.Steps) > 0 {
			n := m.detail.Steps[m.stepCursor].StepNumber
			m.expanded[n] = !m.expanded[n]
		}
	case key.Matches(msg, m.keys.Refresh):
		return m.begin(m.fetchDetail(id))
	case key.Matches(msg, m.keys.Execute):
		return m.begin(m.executeCmd(id))
	case key.Matches(msg, m.keys.Status):
		m.screen = screenStatus
		m.status = nil
		return m.begin(m.statusCmd(id))
	}
	return m, nil
}

func (m Model) onDetail(msg detailMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.fail(services.Message(msg.err, "프로젝트 조회 실패")), nil
	}
	if m.detail == nil || m.detail.ID != msg.detail.ID {
		m.stepCursor = 0
		m.expanded = make(map[int]bool)
	}
	m.detail = msg.detail
	if m.stepCursor >= len(m.detail.Steps) {
		m.stepCursor = max(len(m.detail.Steps)-1, 0)
	}
	return m, nil
}

func (m Model) onExecuted(msg executedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.fail(services.Message(msg.err, "연구 시작 실패")), nil
	}
	m = m.succeed("연구가 시작되었습니다!")
	return m.refetch(m.fetchDetail(msg.id))
}

func (m Model) detailView() string {
	var b strings.Builder
	if m.detail == nil {
		b.WriteString(m.helpView(m.keys.Back))
		return b.String()
	}
	d := m.detail

	b.WriteString(m.styles.subtitle.Render(d.Title))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n", m.styles.label.Render("상태:"), d.EvaluationStatus)
	fmt.Fprintf(&b, "%s %s\n", m.styles.label.Render("연구분야:"), d.ResearchField)
	fmt.Fprintf(&b, "%s %s\n\n", m.styles.label.Render("진행률:"), display.CompletionPercent(d.CompletedSteps, d.TotalSteps))

	b.WriteString(m.styles.subtitle.Render("연구 단계"))
	b.WriteString("\n\n")
	if len(d.Steps) == 0 {
		b.WriteString(m.styles.muted.Render("단계가 없습니다."))
		b.WriteString("\n")
	}
	for i, step := range d.Steps {
		marker := "▸ "
		if m.expanded[step.StepNumber] {
			marker = "▾ "
		}
		line := marker + display.StepLabel(step.StepNumber, step.Description)
		if i == m.stepCursor {
			line = m.styles.selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if !m.expanded[step.StepNumber] {
			continue
		}
		fmt.Fprintf(&b, "    %s %s\n", m.styles.label.Render("상태:"), step.Status)
		fmt.Fprintf(&b, "    %s %s%%\n", m.styles.label.Render("진행률:"), display.Number(step.ProgressPercentage))
		if step.HasResult() {
			for _, l := range strings.Split(display.JSON(step.Result), "\n") {
				b.WriteString("    " + l + "\n")
			}
		}
	}
	b.WriteString("\n")
	b.WriteString(m.helpView(m.keys.Up, m.keys.Down, m.keys.Toggle, m.keys.Execute, m.keys.Status, m.keys.Refresh, m.keys.Back))
	return b.String()
}

func (m Model) statusKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = screenDetail
		m.notice, m.failure = "", ""
	case key.Matches(msg, m.keys.Refresh):
		if m.detail != nil {
			return m.begin(m.statusCmd(m.detail.ID))
		}
	}
	return m, nil
}

func (m Model) onStatus(msg statusMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.fail(services.Message(msg.err, "상태 확인 실패")), nil
	}
	m.status = msg.status
	return m, nil
}

func (m Model) statusView() string {
	var b strings.Builder
	b.WriteString(m.styles.subtitle.Render("상태 확인"))
	b.WriteString("\n\n")
	if s := m.status; s != nil {
		fmt.Fprintf(&b, "%s %s\n\n", m.styles.label.Render("현재 상태:"), s.Status)
		b.WriteString(m.progress.ViewAs(display.ProgressRatio(s.CompletedSteps, s.TotalSteps)))
		b.WriteString("\n")
		fmt.Fprintf(&b, "진행 단계: %s\n\n", display.StepsLabel(s.CompletedSteps, s.TotalSteps))
	}
	b.WriteString(m.helpView(m.keys.Refresh, m.keys.Back))
	return b.String()
}

func (m Model) createKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.toMenu(), nil
	case key.Matches(msg, m.keys.Next):
		m.create.next()
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.create.prev()
		return m, nil
	case key.Matches(msg, m.keys.Left) && m.create.shiftChoice(-1):
		return m, nil
	case key.Matches(msg, m.keys.Right) && m.create.shiftChoice(1):
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		req := models.CreateProjectRequest{
			Title:          m.create.value(createTitle),
			Description:    m.create.value(createDescription),
			ResearchField:  models.ResearchField(m.create.value(createField)),
			EvaluationPlan: m.create.value(createPlan),
		}
		return m.begin(m.createCmd(req))
	}
	return m, m.create.update(msg)
}

func (m Model) onCreated(msg createdMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.fail(services.Message(msg.err, "프로젝트 생성 실패")), nil
	}
	m.create.reset()
	m.projects = nil
	m.projectsLoaded = false
	m.screen = screenProjects
	m = m.succeed("프로젝트가 생성되었습니다!")
	return m.refetch(m.fetchProjects())
}

func (m Model) createView() string {
	var b strings.Builder
	b.WriteString(m.styles.subtitle.Render("새 연구 프로젝트 생성"))
	b.WriteString("\n\n")
	b.WriteString(m.create.view(m.styles))
	b.WriteString(m.helpView(m.keys.Next, m.keys.Left, m.keys.Right, m.keys.Submit, m.keys.Back))
	return b.String()
}
