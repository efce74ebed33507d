package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ID
	}{
		{name: "number", input: `42`, want: "42"},
		{name: "string", input: `"a1b2"`, want: "a1b2"},
		{name: "uuid", input: `"5f0c7c1e-8d9a-4c8e-9a55-2b1f3c7d9e10"`, want: "5f0c7c1e-8d9a-4c8e-9a55-2b1f3c7d9e10"},
		{name: "null", input: `null`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestID_UnmarshalJSON_Invalid(t *testing.T) {
	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &id))
}

func TestProjectDetail_DecodesStepsAndKeepsNumbers(t *testing.T) {
	body := `{
		"id": 7,
		"title": "북한 미사일",
		"research_field": "안보",
		"evaluation_status": "IN_PROGRESS",
		"created_at": "2024-03-01T10:00:00Z",
		"completed_steps": 1,
		"total_steps": 3,
		"research_steps": [
			{"step_number": 1, "description": "collect", "status": "DONE", "progress_percentage": 100.0, "result": {"refs": [1, 2]}},
			{"step_number": 2, "description": "analyze", "status": "RUNNING", "progress_percentage": 12.5, "result": null}
		]
	}`

	var detail ProjectDetail
	require.NoError(t, json.Unmarshal([]byte(body), &detail))

	assert.Equal(t, ID("7"), detail.ID)
	assert.Equal(t, FieldSecurity, detail.ResearchField)
	require.Len(t, detail.Steps, 2)
	assert.Equal(t, "100.0", detail.Steps[0].ProgressPercentage.String())
	assert.True(t, detail.Steps[0].HasResult())
	assert.False(t, detail.Steps[1].HasResult())
}

func TestResearchStep_HasResult(t *testing.T) {
	for raw, want := range map[string]bool{
		"":            false,
		"null":        false,
		"{}":          false,
		"[]":          false,
		`""`:          false,
		`{"a":1}`:     true,
		`"summary"`:   true,
		`[{"k":"v"}]`: true,
		"false":       false,
		"true":        true,
		"0":           false,
		"0.0":         false,
		" 0 ":         false,
		"-0":          false,
		"12":          true,
		"0.5":         true,
		`"0"`:         true,
	} {
		step := ResearchStep{Result: json.RawMessage(raw)}
		assert.Equal(t, want, step.HasResult(), raw)
	}
}

func TestFindProjectByTitle(t *testing.T) {
	projects := []Project{
		{ID: "1", Title: "alpha"},
		{ID: "2", Title: "beta"},
		{ID: "3", Title: "beta"},
	}

	tests := []struct {
		name   string
		title  string
		rowID  ID
		wantID ID
		wantOK bool
	}{
		{name: "unique title", title: "alpha", wantID: "1", wantOK: true},
		{name: "duplicate title without row", title: "beta", wantID: "2", wantOK: true},
		{name: "duplicate title first row", title: "beta", rowID: "2", wantID: "2", wantOK: true},
		{name: "duplicate title second row", title: "beta", rowID: "3", wantID: "3", wantOK: true},
		{name: "row of another title", title: "alpha", rowID: "3", wantID: "1", wantOK: true},
		{name: "unknown title", title: "gamma", rowID: "1", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := FindProjectByTitle(projects, tt.title, tt.rowID)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}

	_, ok := FindProjectByTitle(nil, "alpha", "")
	assert.False(t, ok)
}

func TestProject_DecodesFractionalStepCounts(t *testing.T) {
	body := `{"results": [{"id": 1, "title": "a", "completed_steps": 1.0, "total_steps": 3.0}]}`

	var page Page[Project]
	require.NoError(t, json.Unmarshal([]byte(body), &page))
	require.Len(t, page.Results, 1)
	assert.Equal(t, "1.0", page.Results[0].CompletedSteps.String())
	assert.Equal(t, "3.0", page.Results[0].TotalSteps.String())

	var status ProjectStatus
	require.NoError(t, json.Unmarshal([]byte(`{"status": "DONE", "completed_steps": 2.0, "total_steps": 2}`), &status))
	assert.Equal(t, "2.0", status.CompletedSteps.String())
}

func TestPlanType_Label(t *testing.T) {
	assert.Equal(t, "Basic (₩10,000/월)", PlanBasic.Label())
	assert.Equal(t, "Premium (₩30,000/월)", PlanPremium.Label())
	assert.Equal(t, "Enterprise (₩100,000/월)", PlanEnterprise.Label())
	assert.Equal(t, "CUSTOM", PlanType("CUSTOM").Label())
}

func TestSubscription_DecodesWithoutUsage(t *testing.T) {
	body := `{"id": 3, "plan_type": "PREMIUM", "status": "ACTIVE", "end_date": "2025-01-01",
		"usage_limit": {"max_projects": 10, "max_references": 100, "max_llm_requests": 1000, "storage_limit_mb": 512}}`

	var sub Subscription
	require.NoError(t, json.Unmarshal([]byte(body), &sub))

	assert.True(t, sub.Active())
	assert.Equal(t, PlanPremium, sub.PlanType)
	assert.Equal(t, "512", sub.UsageLimit.StorageLimitMB.String())
	assert.Empty(t, sub.CurrentUsage.ProjectsCount.String())
}

func TestPaymentIntent_DecodesStringAmount(t *testing.T) {
	var intent PaymentIntent
	require.NoError(t, json.Unmarshal([]byte(`{"id": 11, "amount": "30000.00", "order_id": "ORD-11"}`), &intent))

	assert.Equal(t, ID("11"), intent.ID)
	assert.Equal(t, "30000.00", intent.Amount.String())
	assert.Equal(t, ID("ORD-11"), intent.OrderID)
}

func TestSignupForm_Request(t *testing.T) {
	form := SignupForm{Email: "a@b.c", FullName: "Kim", Password: "p", PasswordConfirm: "p"}
	req := form.Request()

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.c","full_name":"Kim","password":"p"}`, string(data))
}

func TestFindPayment(t *testing.T) {
	payments := []Payment{{ID: "1", Amount: "10000"}, {ID: "2", Amount: "30000"}}

	p, ok := FindPayment(payments, "2")
	assert.True(t, ok)
	assert.Equal(t, "30000", p.Amount.String())

	_, ok = FindPayment(payments, "9")
	assert.False(t, ok)
}
