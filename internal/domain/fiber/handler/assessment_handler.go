package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/skill-assessment/internal/assessment"
	"github.com/fadilmartias/skill-assessment/internal/dto"
	"github.com/fadilmartias/skill-assessment/internal/middleware"
	"github.com/fadilmartias/skill-assessment/internal/model"
	"github.com/fadilmartias/skill-assessment/internal/usecase"
	"github.com/fadilmartias/skill-assessment/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AssessmentHandler struct {
	uc *usecase.AssessmentUsecase
}

func NewAssessmentHandler(uc *usecase.AssessmentUsecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

func (h *AssessmentHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/parse-resume", middleware.RateLimiter(1, 4*time.Second), h.ParseResume)
	app.Post("/generate-assessment", h.GenerateAssessment)
	app.Post("/evaluate-answer", h.EvaluateAnswer)
	app.Post("/generate-report", h.GenerateReport)
	app.Get("/report/:id", h.Report)
	app.Get("/reports", h.Reports)
}

func (h *AssessmentHandler) ParseResume(c *fiber.Ctx) error {
	resumeText, err := h.processFile(c, "resume", "./uploads/resume/")
	if err != nil {
		return err
	}

	profile, err := h.uc.ParseResume(c.Context(), resumeText)
	if err != nil {
		return h.respondError(c, "failed to parse resume", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success parse resume",
		Data:    profile,
	})
}

func (h *AssessmentHandler) GenerateAssessment(c *fiber.Ctx) error {
	var profile model.CandidateProfile
	if err := c.BodyParser(&profile); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid candidate profile payload",
		}, err)
	}

	result, err := h.uc.GenerateAssessment(c.Context(), profile)
	if err != nil {
		return h.respondError(c, "failed to generate assessment", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success generate assessment",
		Data:    result,
	})
}

func (h *AssessmentHandler) EvaluateAnswer(c *fiber.Ctx) error {
	var answer model.Answer
	if err := c.BodyParser(&answer); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid answer payload",
		}, err)
	}

	if formErr := validateAnswer(answer); formErr != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: formErr.Message,
			Details: formErr.Errors,
		}, formErr)
	}

	result, err := h.uc.EvaluateAnswer(c.Context(), answer)
	if err != nil {
		return h.respondError(c, "failed to evaluate answer", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success evaluate answer",
		Data:    result,
	})
}

func (h *AssessmentHandler) GenerateReport(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid report request payload",
		}, err)
	}

	for _, answer := range req.Answers {
		if formErr := validateAnswer(answer); formErr != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: formErr.Message,
				Details: formErr.Errors,
			}, formErr)
		}
	}

	report, err := h.uc.GenerateReport(c.Context(), req)
	if err != nil {
		return h.respondError(c, "failed to generate report", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success generate report",
		Data:    report,
	})
}

func (h *AssessmentHandler) Report(c *fiber.Ctx) error {
	record, err := h.uc.GetReport(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "report not found",
		}, err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(record.Payload), &report); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "stored report payload is unreadable",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get report",
		Data:    report,
	})
}

func (h *AssessmentHandler) Reports(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 10)

	records, pagination, err := h.uc.ListReports(page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list reports",
		}, err)
	}

	items := make([]dto.ReportListItemDTO, 0, len(records))
	for _, record := range records {
		items = append(items, dto.ReportListItemDTO{
			ReportID:            record.ReportID,
			OverallScore:        record.OverallScore,
			CertificationStatus: record.CertificationStatus,
			CreatedAt:           record.CreatedAt.Format(time.RFC3339),
		})
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:       fiber.StatusOK,
		Message:    "Success list reports",
		Data:       items,
		Pagination: pagination,
	})
}

// processFile saves an uploaded PDF and returns its extracted text.
func (h *AssessmentHandler) processFile(c *fiber.Ctx, fieldName, uploadDir string) (string, error) {
	file, err := c.FormFile(fieldName)
	if err != nil {
		return "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("%s file is required", fieldName),
		}, err)
	}

	if file.Size > 5*1024*1024 {
		return "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("%s file size is too large (max 5MB)", fieldName),
		}, nil)
	}

	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".pdf" {
		return "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("unsupported %s file type", fieldName),
		}, nil)
	}

	savePath := filepath.Join(uploadDir, file.Filename)
	if err := c.SaveFile(file, savePath); err != nil {
		return "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: fmt.Sprintf("cannot save %s file", fieldName),
		}, err)
	}

	content, err := util.ExtractPDFText(savePath)
	if err != nil {
		return "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("failed to extract %s text", fieldName),
		}, err)
	}

	return content, nil
}

func (h *AssessmentHandler) respondError(c *fiber.Ctx, message string, err error) error {
	code := fiber.StatusInternalServerError

	var gatewayErr *assessment.GatewayError
	var malformedErr *assessment.MalformedResponseError
	switch {
	case errors.Is(err, assessment.ErrEmptyAssessment) || errors.Is(err, assessment.ErrEmptyProfile):
		code = fiber.StatusBadRequest
	case errors.As(err, &gatewayErr) || errors.As(err, &malformedErr):
		code = fiber.StatusBadGateway
	}

	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    code,
		Message: message,
	}, err)
}

func validateAnswer(answer model.Answer) *util.FormError {
	errs := map[string]string{}
	if strings.TrimSpace(answer.Answer) == "" {
		errs["answer"] = "answer text is required"
	}
	if !answer.Kind.Valid() {
		errs["type"] = "type must be 'technical' or 'coding'"
	}
	if len(errs) > 0 {
		return util.NewFormError("invalid answer", errs)
	}
	return nil
}
