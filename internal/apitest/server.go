// Package apitest поднимает в памяти поддельный удалённый API для тестов:
// регистрацию, вход, проекты, подписку и платежи. Поведение упрощено, но
// коды ответов и форма JSON совпадают с настоящим API.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/research-assistant/internal/models"
)

// SigningKey ключ, которым сервер подписывает выданные токены.
const SigningKey = "apitest-secret"

type user struct {
	id       int
	email    string
	fullName string
	password string
}

type intent struct {
	models.PaymentIntent
	plan models.PlanType
}

// Request запись о принятом запросе.
type Request struct {
	Method    string
	Path      string
	Header    http.Header
	Form      map[string][]string
	RequestID string
}

// Server поддельный API.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	nextID       int
	users        map[string]*user
	tokens       map[string]*user
	projects     []*models.ProjectDetail
	subscription *models.Subscription
	payments     []*models.Payment
	intents      map[models.ID]*intent
	overrides    map[string]http.HandlerFunc
	requests     []Request
}

// New запускает сервер и закрывает его по окончании теста.
func New(t testing.TB) *Server {
	s := &Server{
		nextID:    100,
		users:     make(map[string]*user),
		tokens:    make(map[string]*user),
		intents:   make(map[models.ID]*intent),
		overrides: make(map[string]http.HandlerFunc),
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// BaseURL возвращает базовый адрес API.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Use(s.override)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/", s.register)
		r.Post("/token/", s.login)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/research/", s.listProjects)
			r.Post("/research/", s.createProject)
			r.Get("/research/{id}/", s.getProject)
			r.Post("/research/{id}/execute/", s.executeProject)
			r.Get("/research/{id}/status/", s.projectStatus)
			r.Get("/subscriptions/current/", s.currentSubscription)
			r.Post("/subscriptions/{id}/cancel/", s.cancelSubscription)
			r.Post("/payments/create/", s.createPayment)
			r.Post("/payments/{id}/process/", s.processPayment)
			r.Get("/payments/", s.listPayments)
			r.Post("/payments/{id}/refund/", s.refund)
		})
	})
	return r
}

// record запоминает каждый запрос до маршрутизации.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := Request{
			Method:    r.Method,
			Path:      strings.TrimPrefix(r.URL.Path, "/api"),
			Header:    r.Header.Clone(),
			RequestID: r.Header.Get("X-Request-ID"),
		}
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			if err := r.ParseForm(); err == nil {
				rec.Form = r.PostForm
			}
		}
		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) override(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
		s.mu.Lock()
		h, ok := s.overrides[key]
		s.mu.Unlock()
		if ok {
			h(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		s.mu.Lock()
		_, known := s.tokens[token]
		s.mu.Unlock()
		if !ok || !known {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, detail("Authentication credentials were not provided."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Override подменяет обработчик для method и path (без префикса /api).
func (s *Server) Override(method, path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+path] = h
}

// Respond подменяет ответ для method и path фиксированным кодом и телом.
func (s *Server) Respond(method, path string, code int, body any) {
	s.Override(method, path, func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, code)
		render.JSON(w, r, body)
	})
}

// Hits возвращает число запросов method к path (без префикса /api).
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Requests возвращает копию журнала запросов.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// AddUser регистрирует пользователя напрямую.
func (s *Server) AddUser(email, fullName, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addUserLocked(email, fullName, password)
}

// IssueToken выдаёт токен пользователю email, как это сделал бы вход.
func (s *Server) IssueToken(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return ""
	}
	return s.issueLocked(u)
}

// AddProject добавляет проект и возвращает его ID.
func (s *Server) AddProject(p models.ProjectDetail) models.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = s.newIDLocked()
	}
	if p.CreatedAt == "" {
		p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	s.projects = append(s.projects, &p)
	return p.ID
}

// SetSubscription задаёт текущую подписку, nil означает её отсутствие.
func (s *Server) SetSubscription(sub *models.Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscription = sub
}

// Subscription возвращает копию текущей подписки.
func (s *Server) Subscription() *models.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscription == nil {
		return nil
	}
	sub := *s.subscription
	return &sub
}

// AddPayment добавляет запись в историю платежей.
func (s *Server) AddPayment(p models.Payment) models.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = s.newIDLocked()
	}
	s.payments = append(s.payments, &p)
	return p.ID
}

// Payment возвращает копию платежа по ID.
func (s *Server) Payment(id models.ID) (models.Payment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.ID == id {
			return *p, true
		}
	}
	return models.Payment{}, false
}

// Project возвращает копию проекта по ID.
func (s *Server) Project(id models.ID) (models.ProjectDetail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProjectLocked(id)
	if p == nil {
		return models.ProjectDetail{}, false
	}
	return *p, true
}

func (s *Server) newIDLocked() models.ID {
	s.nextID++
	return models.ID(strconv.Itoa(s.nextID))
}

func (s *Server) addUserLocked(email, fullName, password string) *user {
	s.nextID++
	u := &user{id: s.nextID, email: email, fullName: fullName, password: password}
	s.users[email] = u
	return u
}

func (s *Server) issueLocked(u *user) string {
	claims := jwt.MapClaims{
		"user_id":    u.id,
		"email":      u.email,
		"token_type": "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
		"jti":        fmt.Sprintf("%d-%d", u.id, len(s.tokens)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(SigningKey))
	if err != nil {
		panic(err)
	}
	s.tokens[token] = u
	return token
}

func (s *Server) findProjectLocked(id models.ID) *models.ProjectDetail {
	for _, p := range s.projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func detail(msg string) map[string]string {
	return map[string]string{"detail": msg}
}
