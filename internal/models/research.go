package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ResearchField область исследования. Набор значений закрыт.
type ResearchField string

const (
	FieldSecurity   ResearchField = "안보"
	FieldPolitics   ResearchField = "정치"
	FieldEconomy    ResearchField = "경제"
	FieldSociety    ResearchField = "사회"
	FieldTechnology ResearchField = "기술"
	FieldOther      ResearchField = "기타"
)

// ResearchFields перечисляет области в порядке показа в форме.
var ResearchFields = []ResearchField{
	FieldSecurity,
	FieldPolitics,
	FieldEconomy,
	FieldSociety,
	FieldTechnology,
	FieldOther,
}

// Project краткое описание исследовательского проекта из списка.
type Project struct {
	ID               ID            `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	ResearchField    ResearchField `json:"research_field"`
	EvaluationPlan   string        `json:"evaluation_plan,omitempty"`
	EvaluationStatus string        `json:"evaluation_status"`
	CreatedAt        string        `json:"created_at"`
	CompletedSteps   json.Number   `json:"completed_steps"`
	TotalSteps       json.Number   `json:"total_steps"`
}

// ResearchStep один шаг выполнения проекта. Result передаётся как есть,
// его структура клиенту не известна.
type ResearchStep struct {
	StepNumber         int             `json:"step_number"`
	Description        string          `json:"description"`
	Status             string          `json:"status"`
	ProgressPercentage json.Number     `json:"progress_percentage"`
	Result             json.RawMessage `json:"result,omitempty"`
}

// HasResult сообщает, есть ли у шага непустой результат. Пустыми считаются
// null, false, ноль, пустая строка, пустой объект и пустой массив.
func (s ResearchStep) HasResult() bool {
	raw := bytes.TrimSpace(s.Result)
	switch string(raw) {
	case "", "null", "false", "{}", "[]", `""`:
		return false
	}
	if f, err := strconv.ParseFloat(string(raw), 64); err == nil {
		return f != 0
	}
	return true
}

// ProjectDetail проект вместе с упорядоченным списком шагов.
type ProjectDetail struct {
	Project
	Steps []ResearchStep `json:"research_steps"`
}

// ProjectStatus ответ на запрос текущего статуса выполнения.
type ProjectStatus struct {
	Status         string      `json:"status"`
	CompletedSteps json.Number `json:"completed_steps"`
	TotalSteps     json.Number `json:"total_steps"`
}

// CreateProjectRequest тело запроса на создание проекта.
// Текстовые поля уходят в том виде, в котором их ввёл пользователь.
type CreateProjectRequest struct {
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	ResearchField  ResearchField `json:"research_field" validate:"required,oneof=안보 정치 경제 사회 기술 기타"`
	EvaluationPlan string        `json:"evaluation_plan"`
}

// FindProjectByTitle возвращает ID строки, заголовок которой совпадает с title.
// Если заголовок повторяется, rowID выбирает нужную строку. При пустом rowID
// или если такой строки нет, берётся первая подходящая.
func FindProjectByTitle(projects []Project, title string, rowID ID) (ID, bool) {
	if rowID != "" {
		for _, p := range projects {
			if p.Title == title && p.ID == rowID {
				return p.ID, true
			}
		}
	}
	for _, p := range projects {
		if p.Title == title {
			return p.ID, true
		}
	}
	return "", false
}
