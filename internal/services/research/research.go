// Package research реализует действия над исследовательскими проектами:
// список, просмотр, создание, запуск выполнения и проверку статуса.
package research

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/research-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/research-assistant/internal/models"
	"github.com/magabrotheeeer/research-assistant/internal/services"
	"github.com/magabrotheeeer/research-assistant/internal/session"
)

// Client описывает вызовы API, нужные сервису.
type Client interface {
	ListProjects(ctx context.Context, token string) ([]models.Project, error)
	GetProject(ctx context.Context, token string, id models.ID) (*models.ProjectDetail, error)
	CreateProject(ctx context.Context, token string, req models.CreateProjectRequest) (*models.Project, error)
	ExecuteProject(ctx context.Context, token string, id models.ID) error
	ProjectStatus(ctx context.Context, token string, id models.ID) (*models.ProjectStatus, error)
}

// Service выполняет действия над проектами от имени текущего сеанса.
type Service struct {
	client   Client
	session  *session.Session
	log      *slog.Logger
	validate *validator.Validate
}

// New создаёт сервис проектов.
func New(client Client, sess *session.Session, log *slog.Logger) *Service {
	return &Service{
		client:   client,
		session:  sess,
		log:      log,
		validate: validator.New(),
	}
}

func (s *Service) token(op string) (string, error) {
	token := s.session.Token()
	if token == "" {
		return "", fmt.Errorf("%s: %w", op, services.ErrNotLoggedIn)
	}
	return token, nil
}

// List возвращает проекты пользователя.
func (s *Service) List(ctx context.Context) ([]models.Project, error) {
	const op = "research.List"

	token, err := s.token(op)
	if err != nil {
		return nil, err
	}
	projects, err := s.client.ListProjects(ctx, token)
	if err != nil {
		s.log.Error("failed to list projects", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return projects, nil
}

// SelectByTitle находит проект по заголовку среди уже загруженных и делает
// его текущим. rowID различает строки с одинаковым заголовком.
// Запрос к серверу не выполняется.
func (s *Service) SelectByTitle(projects []models.Project, title string, rowID models.ID) (models.ID, bool) {
	id, ok := models.FindProjectByTitle(projects, title, rowID)
	if ok {
		s.session.SetCurrentProject(id)
	}
	return id, ok
}

// Detail загружает проект вместе с шагами и делает его текущим.
func (s *Service) Detail(ctx context.Context, id models.ID) (*models.ProjectDetail, error) {
	const op = "research.Detail"

	token, err := s.token(op)
	if err != nil {
		return nil, err
	}
	detail, err := s.client.GetProject(ctx, token, id)
	if err != nil {
		s.log.Error("failed to get project", slog.String("op", op), slog.String("id", id.String()), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.session.SetCurrentProject(id)
	return detail, nil
}

// Create создаёт проект и делает его текущим. Область исследования
// проверяется по закрытому набору, остальные поля уходят как введены.
func (s *Service) Create(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error) {
	const op = "research.Create"
	log := s.log.With(slog.String("op", op))

	if err := s.validate.Struct(req); err != nil {
		log.Info("create request rejected locally", slog.String("research_field", string(req.ResearchField)))
		return nil, fmt.Errorf("%s: %w", op, services.ErrInvalidInput)
	}
	token, err := s.token(op)
	if err != nil {
		return nil, err
	}

	project, err := s.client.CreateProject(ctx, token, req)
	if err != nil {
		log.Error("failed to create project", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.session.SetCurrentProject(project.ID)
	log.Info("project created", slog.String("id", project.ID.String()))
	return project, nil
}

// Execute запускает выполнение проекта. Локальное состояние не меняется.
func (s *Service) Execute(ctx context.Context, id models.ID) error {
	const op = "research.Execute"

	token, err := s.token(op)
	if err != nil {
		return err
	}
	if err := s.client.ExecuteProject(ctx, token, id); err != nil {
		s.log.Error("failed to execute project", slog.String("op", op), slog.String("id", id.String()), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("project execution started", slog.String("op", op), slog.String("id", id.String()))
	return nil
}

// Status возвращает статус выполнения проекта.
func (s *Service) Status(ctx context.Context, id models.ID) (*models.ProjectStatus, error) {
	const op = "research.Status"

	token, err := s.token(op)
	if err != nil {
		return nil, err
	}
	status, err := s.client.ProjectStatus(ctx, token, id)
	if err != nil {
		s.log.Error("failed to get project status", slog.String("op", op), slog.String("id", id.String()), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return status, nil
}
