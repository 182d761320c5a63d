package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/fadilmartias/skill-assessment/internal/assessment"
	"github.com/fadilmartias/skill-assessment/internal/model"
	"github.com/fadilmartias/skill-assessment/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type scriptedGateway struct {
	mu       sync.Mutex
	complete func(prompt string) (string, error)
}

func (s *scriptedGateway) Complete(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complete(prompt)
}

type memoryStore struct {
	mu      sync.Mutex
	reports []model.AssessmentReport
}

func (m *memoryStore) CreateReport(report *model.AssessmentReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, *report)
	return nil
}

func (m *memoryStore) FindReportByID(reportID string) (*model.AssessmentReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.reports {
		if m.reports[i].ReportID == reportID {
			return &m.reports[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryStore) ListReports(page, pageSize int) ([]model.AssessmentReport, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reports, int64(len(m.reports)), nil
}

func newTestApp(gateway assessment.Gateway) (*fiber.App, *memoryStore) {
	store := &memoryStore{}
	uc := usecase.NewAssessmentUsecase(gateway, store)
	app := fiber.New()
	NewAssessmentHandler(uc).RegisterRoutes(app)
	return app, store
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestEvaluateAnswerEndpoint(t *testing.T) {
	gateway := &scriptedGateway{complete: func(prompt string) (string, error) {
		return `{"score": 7.5, "feedback": "Well reasoned"}`, nil
	}}
	app, _ := newTestApp(gateway)

	resp := postJSON(t, app, "/evaluate-answer", model.Answer{
		QuestionID: 4,
		Answer:     "channels synchronize goroutines",
		Kind:       model.AnswerKindTechnical,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, 4.0, data["question_id"])
	assert.Equal(t, 7.5, data["score"])
	assert.Equal(t, "Well reasoned", data["feedback"])
}

func TestEvaluateAnswerValidation(t *testing.T) {
	app, _ := newTestApp(&scriptedGateway{complete: func(string) (string, error) {
		return "", nil
	}})

	resp := postJSON(t, app, "/evaluate-answer", map[string]any{
		"question_id": 1,
		"answer":      "",
		"type":        "essay",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
}

func TestGenerateAssessmentEndpointEmptySkills(t *testing.T) {
	app, _ := newTestApp(&scriptedGateway{complete: func(string) (string, error) {
		return "", nil
	}})

	resp := postJSON(t, app, "/generate-assessment", model.CandidateProfile{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGenerateReportEndpointGatewayFailure(t *testing.T) {
	gateway := &scriptedGateway{complete: func(prompt string) (string, error) {
		return "", &assessment.GatewayError{Op: "complete", Err: errors.New("quota exhausted")}
	}}
	app, _ := newTestApp(gateway)

	resp := postJSON(t, app, "/generate-report", map[string]any{
		"profile": model.CandidateProfile{Skills: []string{"Go"}},
		"answers": []model.Answer{{QuestionID: 1, Answer: "x", Kind: model.AnswerKindTechnical}},
	})
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestGenerateReportEndpointAndFetch(t *testing.T) {
	gateway := &scriptedGateway{complete: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "evaluate"):
			return `{"score": 9, "feedback": "Excellent Go answer"}`, nil
		default:
			return "narrative text", nil
		}
	}}
	app, store := newTestApp(gateway)

	resp := postJSON(t, app, "/generate-report", map[string]any{
		"profile": model.CandidateProfile{Skills: []string{"Go"}},
		"answers": []model.Answer{{QuestionID: 1, Answer: "goroutines", Kind: model.AnswerKindTechnical}},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	reportID := data["report_id"].(string)
	assert.True(t, strings.HasPrefix(reportID, "REP"))
	assert.Equal(t, "Certified - Advanced Level", data["certification_status"])

	store.mu.Lock()
	require.Len(t, store.reports, 1)
	store.mu.Unlock()

	req := httptest.NewRequest(fiber.MethodGet, "/report/"+reportID, nil)
	getResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, getResp.StatusCode)

	getBody := decodeBody(t, getResp)
	getData := getBody["data"].(map[string]any)
	assert.Equal(t, reportID, getData["report_id"])
}

func TestReportNotFound(t *testing.T) {
	app, _ := newTestApp(&scriptedGateway{complete: func(string) (string, error) {
		return "", nil
	}})

	req := httptest.NewRequest(fiber.MethodGet, "/report/REPmissing", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
