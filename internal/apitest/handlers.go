package apitest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/research-assistant/internal/models"
)

// Цены и лимиты тарифов поддельного сервера.
var (
	planPrices = map[models.PlanType]string{
		models.PlanBasic:      "10000",
		models.PlanPremium:    "30000",
		models.PlanEnterprise: "100000",
	}
	planLimits = map[models.PlanType]models.UsageLimits{
		models.PlanBasic:      {MaxProjects: "5", MaxReferences: "50", MaxLLMRequests: "100", StorageLimitMB: "100"},
		models.PlanPremium:    {MaxProjects: "20", MaxReferences: "500", MaxLLMRequests: "1000", StorageLimitMB: "1024"},
		models.PlanEnterprise: {MaxProjects: "100", MaxReferences: "5000", MaxLLMRequests: "10000", StorageLimitMB: "10240"},
	}
)

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, detail("JSON parse error"))
		return
	}
	if req.Email == "" || req.Password == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string][]string{"email": {"This field may not be blank."}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[req.Email]; ok {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string][]string{"email": {"user with this email already exists."}})
		return
	}
	u := s.addUserLocked(req.Email, req.FullName, req.Password)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]any{"id": u.id, "email": u.email, "full_name": u.fullName})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, detail("invalid form"))
		return
	}
	email, password := r.PostForm.Get("email"), r.PostForm.Get("password")

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok || u.password != password {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, detail("No active account found with the given credentials"))
		return
	}

	render.JSON(w, r, map[string]string{
		"access":  s.issueLocked(u),
		"refresh": "refresh-" + strconv.Itoa(u.id),
	})
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		results = append(results, p.Project)
	}
	render.JSON(w, r, models.Page[models.Project]{Count: len(results), Results: results})
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, detail("JSON parse error"))
		return
	}
	if req.Title == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string][]string{"title": {"This field may not be blank."}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := &models.ProjectDetail{
		Project: models.Project{
			ID:               s.newIDLocked(),
			Title:            req.Title,
			Description:      req.Description,
			ResearchField:    req.ResearchField,
			EvaluationPlan:   req.EvaluationPlan,
			EvaluationStatus: "PENDING",
			CreatedAt:        time.Now().UTC().Format(time.RFC3339),
		},
	}
	s.projects = append(s.projects, p)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, p.Project)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProjectLocked(models.ID(chi.URLParam(r, "id")))
	if p == nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, detail("Not found."))
		return
	}
	render.JSON(w, r, p)
}

func (s *Server) executeProject(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProjectLocked(models.ID(chi.URLParam(r, "id")))
	if p == nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, detail("Not found."))
		return
	}
	if p.EvaluationStatus == "IN_PROGRESS" {
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, detail("Research is already running."))
		return
	}
	p.EvaluationStatus = "IN_PROGRESS"
	if len(p.Steps) == 0 {
		p.Steps = []models.ResearchStep{
			{StepNumber: 1, Description: "Collect references for " + p.Title, Status: "RUNNING", ProgressPercentage: "0"},
			{StepNumber: 2, Description: "Analyze collected material", Status: "PENDING", ProgressPercentage: "0"},
			{StepNumber: 3, Description: "Evaluate against the plan", Status: "PENDING", ProgressPercentage: "0"},
		}
		p.TotalSteps = json.Number(strconv.Itoa(len(p.Steps)))
	}
	render.JSON(w, r, map[string]string{"status": "started"})
}

func (s *Server) projectStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProjectLocked(models.ID(chi.URLParam(r, "id")))
	if p == nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, detail("Not found."))
		return
	}
	render.JSON(w, r, models.ProjectStatus{
		Status:         p.EvaluationStatus,
		CompletedSteps: p.CompletedSteps,
		TotalSteps:     p.TotalSteps,
	})
}

func (s *Server) currentSubscription(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscription == nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, detail("No subscription found."))
		return
	}
	render.JSON(w, r, s.subscription)
}

func (s *Server) cancelSubscription(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := models.ID(chi.URLParam(r, "id"))
	if s.subscription == nil || s.subscription.ID != id {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, detail("Not found."))
		return
	}
	s.subscription.Status = "CANCELLED"
	render.JSON(w, r, map[string]string{"status": "cancelled"})
}

func (s *Server) createPayment(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, detail("JSON parse error"))
		return
	}
	price, ok := planPrices[req.PlanType]
	if !ok {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string][]string{"plan_type": {"\"" + string(req.PlanType) + "\" is not a valid choice."}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newIDLocked()
	in := &intent{
		PaymentIntent: models.PaymentIntent{ID: id, Amount: json.Number(price), OrderID: "ORD-" + id},
		plan:          req.PlanType,
	}
	s.intents[id] = in
	render.JSON(w, r, in.PaymentIntent)
}

func (s *Server) processPayment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := models.ID(chi.URLParam(r, "id"))
	in, ok := s.intents[id]
	if !ok {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, detail("Payment not found."))
		return
	}
	delete(s.intents, id)

	now := time.Now().UTC()
	s.payments = append(s.payments, &models.Payment{
		ID:        id,
		Amount:    in.Amount,
		Status:    "COMPLETED",
		CreatedAt: now.Format(time.RFC3339),
	})
	s.subscription = &models.Subscription{
		ID:           s.newIDLocked(),
		PlanType:     in.plan,
		Status:       models.StatusActive,
		EndDate:      now.AddDate(0, 1, 0).Format("2006-01-02"),
		UsageLimit:   planLimits[in.plan],
		CurrentUsage: models.Usage{ProjectsCount: json.Number(strconv.Itoa(len(s.projects)))},
	}
	render.JSON(w, r, map[string]string{"status": "COMPLETED"})
}

func (s *Server) listPayments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := make([]models.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		results = append(results, *p)
	}
	render.JSON(w, r, models.Page[models.Payment]{Count: len(results), Results: results})
}

func (s *Server) refund(w http.ResponseWriter, r *http.Request) {
	var req models.RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, detail("JSON parse error"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := models.ID(chi.URLParam(r, "id"))
	for _, p := range s.payments {
		if p.ID != id {
			continue
		}
		if p.Status != "COMPLETED" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, detail("Payment cannot be refunded."))
			return
		}
		p.Status = "REFUND_REQUESTED"
		render.JSON(w, r, map[string]string{"status": p.Status, "reason": req.Reason})
		return
	}
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, detail("Payment not found."))
}
