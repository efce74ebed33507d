// Package tui терминальный интерфейс клиента на bubbletea.
//
// Модель держит только то, что нужно для отрисовки: загруженные списки,
// формы и флаг занятости. Сеанс меняют сервисы. Одновременно выполняется
// не больше одного запроса; пока он идёт, ввод игнорируется, кроме выхода.
// После каждого успешного изменения затронутые данные загружаются заново.
package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/magabrotheeeer/research-assistant/internal/models"
	"github.com/magabrotheeeer/research-assistant/internal/session"
)

// Auth действия входа и регистрации.
type Auth interface {
	Signup(ctx context.Context, form models.SignupForm) error
	Login(ctx context.Context, creds models.Credentials) error
	Logout()
	ShowSignup()
	ShowLogin()
	Identity() (who string, expired bool)
}

// Research действия над проектами.
type Research interface {
	List(ctx context.Context) ([]models.Project, error)
	SelectByTitle(projects []models.Project, title string, rowID models.ID) (models.ID, bool)
	Detail(ctx context.Context, id models.ID) (*models.ProjectDetail, error)
	Create(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error)
	Execute(ctx context.Context, id models.ID) error
	Status(ctx context.Context, id models.ID) (*models.ProjectStatus, error)
}

// Billing действия с подпиской и платежами.
type Billing interface {
	Current(ctx context.Context) (*models.Subscription, error)
	Cancel(ctx context.Context, id models.ID) error
	StartSubscription(ctx context.Context, plan models.PlanType) (*models.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, intent models.PaymentIntent) error
	Payments(ctx context.Context) ([]models.Payment, error)
	Refund(ctx context.Context, id models.ID, reason string) error
}

// Services собирает зависимости интерфейса.
type Services struct {
	Auth     Auth
	Research Research
	Billing  Billing
}

type screen int

const (
	screenAuth screen = iota
	screenMenu
	screenProjects
	screenDetail
	screenStatus
	screenCreate
	screenSubscription
	screenIntent
	screenPayments
	screenRefund
)

// Пункты главного меню в порядке показа.
const (
	menuProjects = iota
	menuCreate
	menuSubscription
	menuPayments
	menuLogout
)

var menuItems = []string{
	menuProjects:     "프로젝트 목록",
	menuCreate:       "새 프로젝트 생성",
	menuSubscription: "구독 관리",
	menuPayments:     "결제 내역",
	menuLogout:       "로그아웃",
}

// Индексы полей форм.
const (
	loginEmail = iota
	loginPassword
)

const (
	signupEmail = iota
	signupName
	signupPassword
	signupConfirm
)

const (
	createTitle = iota
	createDescription
	createField
	createPlan
)

// Model корневая модель bubbletea.
type Model struct {
	ctx     context.Context
	session *session.Session
	svc     Services
	log     *slog.Logger
	keys    KeyMap
	styles  styles
	help    help.Model

	screen  screen
	busy    bool
	notice  string
	failure string

	login        form
	signup       form
	create       form
	refundReason textinput.Model

	menuCursor int

	projects       []models.Project
	projectsLoaded bool
	projectTable   table.Model

	detail     *models.ProjectDetail
	stepCursor int
	expanded   map[int]bool

	status   *models.ProjectStatus
	progress progress.Model

	subscription       *models.Subscription
	subscriptionLoaded bool
	planCursor         int
	intent             *models.PaymentIntent

	payments       []models.Payment
	paymentsLoaded bool
	paymentTable   table.Model
	refundTarget   models.Payment
}

// New создаёт модель. ctx используется для всех запросов и отменяется
// при завершении программы.
func New(ctx context.Context, sess *session.Session, svc Services, log *slog.Logger) Model {
	fieldChoices := make([]string, len(models.ResearchFields))
	for i, f := range models.ResearchFields {
		fieldChoices[i] = string(f)
	}

	m := Model{
		ctx:     ctx,
		session: sess,
		svc:     svc,
		log:     log,
		keys:    DefaultKeyMap,
		styles:  defaultStyles(),
		help:    help.New(),
		screen:  screenAuth,
		login: newForm(
			textField("Email"),
			passwordField("Password"),
		),
		signup: newForm(
			textField("이메일"),
			textField("이름"),
			passwordField("비밀번호"),
			passwordField("비밀번호 확인"),
		),
		create: newForm(
			textField("프로젝트 제목"),
			textField("프로젝트 설명"),
			choiceField("연구 분야", fieldChoices),
			textField("평가 계획"),
		),
		refundReason: newInput(false),
		expanded:     make(map[int]bool),
		progress:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		projectTable: table.New(
			table.WithColumns([]table.Column{
				{Title: "ID", Width: 6},
				{Title: "제목", Width: 30},
				{Title: "연구분야", Width: 8},
				{Title: "상태", Width: 12},
				{Title: "생성일", Width: 10},
			}),
			table.WithHeight(10),
			table.WithFocused(true),
		),
		paymentTable: table.New(
			table.WithColumns([]table.Column{
				{Title: "ID", Width: 6},
				{Title: "금액", Width: 10},
				{Title: "상태", Width: 18},
				{Title: "결제일", Width: 10},
			}),
			table.WithHeight(10),
			table.WithFocused(true),
		),
	}
	if sess.LoggedIn() {
		m.screen = screenMenu
	}
	return m
}

// Init реализует tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update реализует tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.progress.Width = min(max(msg.Width-4, 10), 60)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		return m.handleKey(msg)

	case loginMsg:
		m.busy = false
		return m.onLogin(msg)
	case signupMsg:
		m.busy = false
		return m.onSignup(msg)
	case projectsMsg:
		m.busy = false
		return m.onProjects(msg)
	case detailMsg:
		m.busy = false
		return m.onDetail(msg)
	case createdMsg:
		m.busy = false
		return m.onCreated(msg)
	case executedMsg:
		m.busy = false
		return m.onExecuted(msg)
	case statusMsg:
		m.busy = false
		return m.onStatus(msg)
	case subscriptionMsg:
		m.busy = false
		return m.onSubscription(msg)
	case cancelledMsg:
		m.busy = false
		return m.onCancelled(msg)
	case intentMsg:
		m.busy = false
		return m.onIntent(msg)
	case processedMsg:
		m.busy = false
		return m.onProcessed(msg)
	case paymentsMsg:
		m.busy = false
		return m.onPayments(msg)
	case refundedMsg:
		m.busy = false
		return m.onRefunded(msg)
	}
	return m, nil
}

// begin запускает действие пользователя: сбрасывает сообщения и
// помечает модель занятой до прихода результата.
func (m Model) begin(cmd tea.Cmd) (Model, tea.Cmd) {
	m.notice = ""
	m.failure = ""
	m.busy = true
	return m, cmd
}

// refetch загружает данные заново после успешного изменения, сохраняя
// сообщение об успехе.
func (m Model) refetch(cmd tea.Cmd) (Model, tea.Cmd) {
	m.busy = true
	return m, cmd
}

func (m Model) fail(text string) Model {
	m.notice = ""
	m.failure = text
	return m
}

func (m Model) succeed(text string) Model {
	m.failure = ""
	m.notice = text
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Logout) && m.session.LoggedIn() {
		return m.logout(), nil
	}

	switch m.screen {
	case screenAuth:
		if m.session.Mode() == session.ModeSignup {
			return m.signupKeys(msg)
		}
		return m.loginKeys(msg)
	case screenMenu:
		return m.menuKeys(msg)
	case screenProjects:
		return m.projectsKeys(msg)
	case screenDetail:
		return m.detailKeys(msg)
	case screenStatus:
		return m.statusKeys(msg)
	case screenCreate:
		return m.createKeys(msg)
	case screenSubscription:
		return m.subscriptionKeys(msg)
	case screenIntent:
		return m.intentKeys(msg)
	case screenPayments:
		return m.paymentsKeys(msg)
	case screenRefund:
		return m.refundKeys(msg)
	}
	return m, nil
}

func (m Model) menuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menuCursor < len(menuItems)-1 {
			m.menuCursor++
		}
	case key.Matches(msg, m.keys.Submit):
		return m.openMenu(m.menuCursor)
	}
	return m, nil
}

func (m Model) openMenu(item int) (tea.Model, tea.Cmd) {
	switch item {
	case menuProjects:
		m.screen = screenProjects
		return m.begin(m.fetchProjects())
	case menuCreate:
		m.screen = screenCreate
		m.create.reset()
		m.notice, m.failure = "", ""
	case menuSubscription:
		m.screen = screenSubscription
		m.planCursor = 0
		return m.begin(m.fetchSubscription())
	case menuPayments:
		m.screen = screenPayments
		return m.begin(m.fetchPayments())
	case menuLogout:
		return m.logout(), nil
	}
	return m, nil
}

// logout очищает сеанс и все загруженные данные.
func (m Model) logout() Model {
	m.svc.Auth.Logout()
	m.log.Info("session cleared")

	fresh := New(m.ctx, m.session, m.svc, m.log)
	fresh.help.Width = m.help.Width
	fresh.progress.Width = m.progress.Width
	fresh.notice = "로그아웃되었습니다."
	return fresh
}

func (m Model) toMenu() Model {
	m.screen = screenMenu
	m.notice, m.failure = "", ""
	return m
}
