package assessment

import (
	"fmt"

	"github.com/fadilmartias/skill-assessment/internal/model"
)

// evaluationSchema is embedded in every evaluation prompt so the model replies
// with a single parseable JSON object.
const evaluationSchema = `{
	"score": <number between 0-10>,
	"feedback": "<detailed feedback>"
}`

// BuildEvaluationPrompt returns the evaluation prompt for one answer. The
// framing differs per kind: technical answers are judged on correctness of
// knowledge, coding answers on quality, efficiency and correctness.
func BuildEvaluationPrompt(answer model.Answer) string {
	if answer.Kind == model.AnswerKindCoding {
		return fmt.Sprintf(`Evaluate this code solution and provide response in exact JSON format:
%s
Consider code quality, efficiency, and correctness.

Code to evaluate: %s`, evaluationSchema, answer.Answer)
	}
	return fmt.Sprintf(`Evaluate this technical answer and provide response in exact JSON format:
%s

Answer to evaluate: %s`, evaluationSchema, answer.Answer)
}

func BuildResumeParsePrompt(resumeText string) string {
	return fmt.Sprintf(`Parse the following resume and return information in this exact format:
{
	"skills": ["skill1", "skill2", ...],
	"projects": ["project1", "project2", ...],
	"education": ["education1", "education2", ...],
	"experience": ["experience1", "experience2", ...]
}

Resume text:
%s`, resumeText)
}

func BuildQuestionPrompt(skill string) string {
	return fmt.Sprintf("Generate a technical question about %s", skill)
}

func BuildChallengePrompt(skill string) string {
	return fmt.Sprintf("Generate a coding challenge for %s", skill)
}

func BuildInsightPrompt(skill string, averageScore float64) string {
	return fmt.Sprintf("Generate a detailed insight for %s with score %.1f/10", skill, averageScore)
}

func BuildRecommendationPrompt(skill string, averageScore float64) string {
	return fmt.Sprintf("Suggest improvement areas for %s based on score %.1f/10", skill, averageScore)
}
