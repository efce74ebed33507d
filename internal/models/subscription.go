package models

import "encoding/json"

// PlanType тарифный план подписки.
type PlanType string

const (
	PlanBasic      PlanType = "BASIC"
	PlanPremium    PlanType = "PREMIUM"
	PlanEnterprise PlanType = "ENTERPRISE"
)

// Plans перечисляет тарифы в порядке показа.
var Plans = []PlanType{PlanBasic, PlanPremium, PlanEnterprise}

var planLabels = map[PlanType]string{
	PlanBasic:      "Basic (₩10,000/월)",
	PlanPremium:    "Premium (₩30,000/월)",
	PlanEnterprise: "Enterprise (₩100,000/월)",
}

// Label возвращает подпись тарифа с ценой для формы выбора.
func (p PlanType) Label() string {
	if l, ok := planLabels[p]; ok {
		return l
	}
	return string(p)
}

// StatusActive статус действующей подписки.
const StatusActive = "ACTIVE"

// UsageLimits лимиты тарифа.
type UsageLimits struct {
	MaxProjects    json.Number `json:"max_projects"`
	MaxReferences  json.Number `json:"max_references"`
	MaxLLMRequests json.Number `json:"max_llm_requests"`
	StorageLimitMB json.Number `json:"storage_limit_mb"`
}

// Usage текущее потребление ресурсов.
type Usage struct {
	ProjectsCount    json.Number `json:"projects_count"`
	ReferencesCount  json.Number `json:"references_count"`
	LLMRequestsCount json.Number `json:"llm_requests_count"`
	StorageUsedMB    json.Number `json:"storage_used_mb"`
}

// Subscription текущая подписка пользователя.
type Subscription struct {
	ID           ID          `json:"id"`
	PlanType     PlanType    `json:"plan_type"`
	Status       string      `json:"status"`
	EndDate      string      `json:"end_date"`
	UsageLimit   UsageLimits `json:"usage_limit"`
	CurrentUsage Usage       `json:"current_usage"`
}

// Active сообщает, действует ли подписка.
func (s Subscription) Active() bool {
	return s.Status == StatusActive
}
