// Package session хранит состояние одного интерактивного сеанса:
// токен доступа, текущий проект и режим экрана. Состояние живёт только
// в памяти процесса и меняется исключительно методами перехода.
//
// Переходы выполняются из команд интерфейса, а чтение идёт из отрисовки,
// поэтому доступ защищён мьютексом.
package session

import (
	"sync"

	"github.com/magabrotheeeer/research-assistant/internal/models"
)

// Mode режим интерфейса.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
	ModeMain
)

func (m Mode) String() string {
	switch m {
	case ModeLogin:
		return "login"
	case ModeSignup:
		return "signup"
	case ModeMain:
		return "main"
	default:
		return "unknown"
	}
}

// Session состояние сеанса. Нулевое значение готово к использованию
// и соответствует только что запущенному клиенту.
type Session struct {
	mu             sync.RWMutex
	token          string
	currentProject models.ID
	mode           Mode
}

// New создаёт пустой сеанс в режиме входа.
func New() *Session {
	return &Session{mode: ModeLogin}
}

// Token возвращает токен доступа или пустую строку.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// LoggedIn сообщает, есть ли у сеанса токен.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Mode возвращает текущий режим интерфейса.
func (s *Session) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// CurrentProject возвращает ID выбранного проекта.
func (s *Session) CurrentProject() (models.ID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentProject, s.currentProject != ""
}

// SetToken сохраняет токен и переводит интерфейс в основной режим.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.mode = ModeMain
}

// ClearToken полностью очищает сеанс: после выхода не остаётся ни токена,
// ни выбранного проекта.
func (s *Session) ClearToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.currentProject = ""
	s.mode = ModeLogin
}

// SetMode переключает режим интерфейса.
func (s *Session) SetMode(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// SetCurrentProject запоминает выбранный проект.
func (s *Session) SetCurrentProject(id models.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentProject = id
}
