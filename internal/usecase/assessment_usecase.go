package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/fadilmartias/skill-assessment/internal/assessment"
	"github.com/fadilmartias/skill-assessment/internal/dto"
	"github.com/fadilmartias/skill-assessment/internal/model"
	"github.com/fadilmartias/skill-assessment/internal/response"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

const (
	technicalQuestionCount = 5
	codingChallengeCount   = 3

	// Upper bound on in-flight model calls per request.
	llmConcurrency = 4
)

// ReportStore is the persistence surface the usecase needs; satisfied by
// repository.ReportRepository and stubbed in tests.
type ReportStore interface {
	CreateReport(report *model.AssessmentReport) error
	FindReportByID(reportID string) (*model.AssessmentReport, error)
	ListReports(page, pageSize int) ([]model.AssessmentReport, int64, error)
}

type AssessmentUsecase struct {
	gateway    assessment.Gateway
	evaluator  *assessment.Evaluator
	reportRepo ReportStore
}

func NewAssessmentUsecase(gateway assessment.Gateway, reportRepo ReportStore) *AssessmentUsecase {
	return &AssessmentUsecase{
		gateway:    gateway,
		evaluator:  assessment.NewEvaluator(gateway),
		reportRepo: reportRepo,
	}
}

// ParseResume turns extracted resume text into a structured profile via the
// model. List fields the model omitted come back empty, not missing.
func (uc *AssessmentUsecase) ParseResume(ctx context.Context, resumeText string) (*model.CandidateProfile, error) {
	raw, err := uc.gateway.Complete(ctx, assessment.BuildResumeParsePrompt(resumeText))
	if err != nil {
		return nil, fmt.Errorf("parse resume: %w", err)
	}

	obj, ok := assessment.FirstJSONObject(raw)
	if !ok {
		return nil, fmt.Errorf("parse resume: %w", &assessment.MalformedResponseError{
			Missing: []string{"skills", "projects", "education", "experience"},
			Raw:     raw,
		})
	}

	return &model.CandidateProfile{
		Skills:     stringList(gjson.Get(obj, "skills")),
		Projects:   stringList(gjson.Get(obj, "projects")),
		Education:  stringList(gjson.Get(obj, "education")),
		Experience: stringList(gjson.Get(obj, "experience")),
	}, nil
}

// GenerateAssessment produces 5 technical questions and 3 coding challenges,
// cycling through the declared skills by index. All generation calls fan out
// through a bounded group and are joined before returning.
func (uc *AssessmentUsecase) GenerateAssessment(ctx context.Context, profile model.CandidateProfile) (*dto.AssessmentDTO, error) {
	if !profile.HasSkills() {
		return nil, assessment.ErrEmptyProfile
	}

	questions := make([]dto.QuestionDTO, technicalQuestionCount)
	challenges := make([]dto.ChallengeDTO, codingChallengeCount)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(llmConcurrency)

	for i := 0; i < technicalQuestionCount; i++ {
		i := i
		skill := profile.Skills[i%len(profile.Skills)]
		g.Go(func() error {
			text, err := uc.gateway.Complete(gctx, assessment.BuildQuestionPrompt(skill))
			if err != nil {
				return err
			}
			questions[i] = dto.QuestionDTO{ID: i + 1, Question: text, Skill: skill, Type: "technical"}
			return nil
		})
	}

	for i := 0; i < codingChallengeCount; i++ {
		i := i
		skill := profile.Skills[i%len(profile.Skills)]
		g.Go(func() error {
			text, err := uc.gateway.Complete(gctx, assessment.BuildChallengePrompt(skill))
			if err != nil {
				return err
			}
			challenges[i] = dto.ChallengeDTO{ID: i + 11, Challenge: text, Skill: skill, Type: "coding"}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("generate assessment: %w", err)
	}

	return &dto.AssessmentDTO{
		TechnicalQuestions: questions,
		CodingChallenges:   challenges,
		CandidateProfile:   profile,
	}, nil
}

func (uc *AssessmentUsecase) EvaluateAnswer(ctx context.Context, answer model.Answer) (model.EvaluationResult, error) {
	return uc.evaluator.Evaluate(ctx, answer)
}

// GenerateReport evaluates every answer with bounded concurrency, attributes
// each result to a skill, aggregates the statistics and enriches the report
// with per-skill insights and recommendations. The finished report is
// persisted for later retrieval.
func (uc *AssessmentUsecase) GenerateReport(ctx context.Context, req dto.ReportRequest) (*model.Report, error) {
	if len(req.Answers) == 0 {
		return nil, assessment.ErrEmptyAssessment
	}

	results := make([]model.EvaluationResult, len(req.Answers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(llmConcurrency)
	for i, answer := range req.Answers {
		i, answer := i, answer
		g.Go(func() error {
			result, err := uc.evaluator.Evaluate(gctx, answer)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}

	evaluated := make([]assessment.EvaluatedAnswer, len(req.Answers))
	for i, answer := range req.Answers {
		evaluated[i] = assessment.EvaluatedAnswer{
			Answer: answer,
			Result: results[i],
			Skill:  assessment.AttributeSkill(results[i].Feedback, req.Profile.Skills),
		}
	}

	report, err := assessment.Aggregate(req.Profile, evaluated)
	if err != nil {
		return nil, err
	}

	uc.addInsights(ctx, report, assessment.SkillOrder(evaluated))
	uc.persistReport(report)

	return report, nil
}

// addInsights fans out insight and recommendation prompts per skill.
// Recommendations are only requested below the proficiency bar. These calls
// are best-effort: a failed one is logged and omitted, the report still ships.
func (uc *AssessmentUsecase) addInsights(ctx context.Context, report *model.Report, skills []string) {
	insights := make([]*model.SkillInsight, len(skills))
	recommendations := make([]*string, len(skills))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(llmConcurrency)

	for i, skill := range skills {
		i, skill := i, skill
		analysis := report.SkillAnalysis[skill]

		g.Go(func() error {
			text, err := uc.gateway.Complete(gctx, assessment.BuildInsightPrompt(skill, analysis.AverageScore))
			if err != nil {
				log.Printf("insight for %s skipped: %v", skill, err)
				return nil
			}
			insights[i] = &model.SkillInsight{Skill: skill, Insight: text}
			return nil
		})

		if analysis.AverageScore < 7 {
			g.Go(func() error {
				text, err := uc.gateway.Complete(gctx, assessment.BuildRecommendationPrompt(skill, analysis.AverageScore))
				if err != nil {
					log.Printf("recommendation for %s skipped: %v", skill, err)
					return nil
				}
				recommendations[i] = &text
				return nil
			})
		}
	}
	_ = g.Wait()

	for _, insight := range insights {
		if insight != nil {
			report.AIInsights = append(report.AIInsights, *insight)
		}
	}
	for _, rec := range recommendations {
		if rec != nil {
			report.Recommendations = append(report.Recommendations, *rec)
		}
	}
}

func (uc *AssessmentUsecase) persistReport(report *model.Report) {
	payload, err := json.Marshal(report)
	if err != nil {
		log.Printf("report %s not persisted: %v", report.ReportID, err)
		return
	}

	record := &model.AssessmentReport{
		ID:                  uuid.New(),
		ReportID:            report.ReportID,
		OverallScore:        report.AssessmentSummary.OverallScore,
		CertificationStatus: report.CertificationStatus,
		Payload:             string(payload),
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
	if err := uc.reportRepo.CreateReport(record); err != nil {
		log.Printf("report %s generated but not persisted: %v", report.ReportID, err)
	}
}

func (uc *AssessmentUsecase) GetReport(reportID string) (*model.AssessmentReport, error) {
	return uc.reportRepo.FindReportByID(reportID)
}

func (uc *AssessmentUsecase) ListReports(page, pageSize int) ([]model.AssessmentReport, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	reports, total, err := uc.reportRepo.ListReports(page, pageSize)
	if err != nil {
		return nil, nil, err
	}

	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}

	from, to := 0, 0
	if len(reports) > 0 {
		from = (page-1)*pageSize + 1
		to = from + len(reports) - 1
	}

	pagination := &response.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    int64(page) < totalPages,
		From:       from,
		To:         to,
	}
	return reports, pagination, nil
}

func stringList(result gjson.Result) []string {
	list := []string{}
	for _, item := range result.Array() {
		list = append(list, item.String())
	}
	return list
}
