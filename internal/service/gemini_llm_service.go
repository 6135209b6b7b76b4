package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/mockinterview/config"
	"github.com/lshigami/mockinterview/internal/model"
	"github.com/lshigami/mockinterview/internal/repository"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

const (
	minAnswerScore  = 1
	maxAnswerScore  = 10
	defaultFeedback = "No feedback provided."
)

// Evaluation is the parsed result of scoring one answer.
type Evaluation struct {
	Score    int
	Feedback string
	Raw      string
}

type GeminiLLMService interface {
	GenerateQuestion(ctx context.Context, interview *model.Interview, resumeText string) (string, error)
	EvaluateAnswer(ctx context.Context, question, answer string) (*Evaluation, error)
}

// contentGenerator is the narrow slice of the Gemini API the service needs.
type contentGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateEvaluation(ctx context.Context, prompt string) (string, error)
}

type geminiLLMService struct {
	generator    contentGenerator
	questionRepo repository.QuestionRepository
}

func NewGeminiLLMService(lc fx.Lifecycle, cfg *config.Config, questionRepo repository.QuestionRepository) (GeminiLLMService, error) {
	if cfg.Gemini.ApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{generator: nil, questionRepo: questionRepo}, nil
	}
	gen, err := newGeminiGenerator(context.Background(), cfg.Gemini.ApiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return gen.Close()
		},
	})
	log.Info().Str("model", cfg.Gemini.Model).Msg("Gemini client initialized")
	return &geminiLLMService{generator: gen, questionRepo: questionRepo}, nil
}

func (s *geminiLLMService) GenerateQuestion(ctx context.Context, interview *model.Interview, resumeText string) (string, error) {
	if s.generator == nil {
		return "", ErrModelUnavailable
	}
	asked, err := s.questionRepo.FindByInterviewID(interview.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load previous questions: %w", err)
	}
	previous := make([]string, 0, len(asked))
	for _, q := range asked {
		previous = append(previous, q.QuestionText)
	}

	prompt := buildQuestionPrompt(interview.JobTitle, interview.JobDescription, resumeText, previous)
	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Uint("interviewID", interview.ID).Msg("Gemini API error during question generation")
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	question := strings.TrimSpace(text)
	if question == "" {
		return "", fmt.Errorf("%w: empty question", ErrModelUnavailable)
	}
	return question, nil
}

func (s *geminiLLMService) EvaluateAnswer(ctx context.Context, question, answer string) (*Evaluation, error) {
	if s.generator == nil {
		return nil, ErrModelUnavailable
	}
	raw, err := s.generator.GenerateEvaluation(ctx, buildEvaluationPrompt(question, answer))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during scoring")
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	eval, err := parseEvaluation(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse score and feedback from Gemini response")
		return nil, err
	}
	return eval, nil
}

func buildQuestionPrompt(jobTitle, jobDescription, resumeText string, previous []string) string {
	var b strings.Builder
	b.WriteString("You are a senior technical interviewer conducting a mock interview.\n\n")
	b.WriteString("JOB ROLE:\n")
	b.WriteString(orNotProvided(jobTitle))
	b.WriteString("\n\nJOB DESCRIPTION:\n")
	b.WriteString(orNotProvided(jobDescription))
	b.WriteString("\n\nCANDIDATE RESUME:\n")
	b.WriteString(orNotProvided(resumeText))
	b.WriteString("\n\nPREVIOUS QUESTIONS:\n")
	if len(previous) == 0 {
		b.WriteString("None\n")
	}
	for i, q := range previous {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	b.WriteString(`
RULES:
- Ask ONLY ONE interview question.
- Base it on the job description and the candidate's resume.
- Do not repeat any previous question.
- Do not provide the answer.
- Keep it professional and concise.

Return only the question text.`)
	return b.String()
}

func buildEvaluationPrompt(question, answer string) string {
	return fmt.Sprintf(`You are a senior technical interviewer evaluating a candidate's answer.

QUESTION:
%s

CANDIDATE ANSWER:
%s

Evaluate the answer:
- Give a score from 1 to 10.
- Give short, constructive feedback.
- Do not rewrite the answer.

Respond as JSON: {"score": <integer 1-10>, "feedback": "<text>"}
If JSON is not possible, use exactly this format:
Score: X
Feedback: <text>`, question, answer)
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}

// parseEvaluation reads a JSON evaluation and falls back to "Score:"/"Feedback:" lines.
func parseEvaluation(raw string) (*Evaluation, error) {
	score, feedback, err := parseEvaluationJSON(raw)
	if err != nil {
		var scoreStr string
		scoreStr, feedback, err = parseScoreAndFeedback(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparseableEvaluation, err)
		}
		score, err = parseScoreValue(scoreStr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparseableEvaluation, err)
		}
	}

	if math.IsNaN(score) || math.IsInf(score, 0) {
		return nil, fmt.Errorf("%w: score %v is not a finite number", ErrUnparseableEvaluation, score)
	}

	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		feedback = defaultFeedback
	}
	return &Evaluation{Score: clampScore(score), Feedback: feedback, Raw: raw}, nil
}

func parseEvaluationJSON(raw string) (float64, string, error) {
	payload := extractJSON(raw)
	if payload == "" {
		return 0, "", errors.New("no JSON object in response")
	}
	var decoded struct {
		Score    any    `json:"score"`
		Feedback string `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return 0, "", err
	}
	score, err := coerceScore(decoded.Score)
	if err != nil {
		return 0, "", err
	}
	return score, decoded.Feedback, nil
}

// extractJSON strips markdown fences and returns the outermost object, if any.
func extractJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end <= start {
		return ""
	}
	return trimmed[start : end+1]
}

func coerceScore(v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case string:
		return parseScoreValue(val)
	case nil:
		return 0, errors.New("score missing")
	default:
		return 0, fmt.Errorf("unexpected score type %T", v)
	}
}

var leadingNumber = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// parseScoreValue accepts forms such as "8", "8/10" or "7.5 out of 10".
func parseScoreValue(s string) (float64, error) {
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0, fmt.Errorf("no numeric score in %q", s)
	}
	return strconv.ParseFloat(m, 64)
}

// clampScore bounds the float before converting so huge values cannot overflow int.
func clampScore(score float64) int {
	score = math.Max(minAnswerScore, math.Min(maxAnswerScore, score))
	return int(math.Round(score))
}

// parseScoreAndFeedback scans for a line whose label (the text before its first colon)
// mentions "score" and one whose label mentions "feedback". A feedback sentence that
// talks about the score is never taken as the score line.
func parseScoreAndFeedback(rawResponse string) (scoreStr string, feedbackStr string, err error) {
	lines := strings.Split(rawResponse, "\n")
	scoreLine, feedbackLine := -1, -1
	for i, line := range lines {
		label, _, found := strings.Cut(strings.ToLower(line), ":")
		if !found {
			continue
		}
		isFeedback := strings.Contains(label, "feedback")
		if scoreLine == -1 && !isFeedback && strings.Contains(label, "score") {
			scoreLine = i
		} else if feedbackLine == -1 && isFeedback {
			feedbackLine = i
		}
	}
	if scoreLine == -1 {
		return "", "", errors.New("response does not contain a score line")
	}

	scoreStr = strings.TrimSpace(afterColon(lines[scoreLine]))
	if feedbackLine != -1 {
		end := len(lines)
		if scoreLine > feedbackLine {
			end = scoreLine
		}
		rest := append([]string{afterColon(lines[feedbackLine])}, lines[feedbackLine+1:end]...)
		feedbackStr = strings.TrimSpace(strings.TrimLeft(strings.Join(rest, "\n"), "* "))
	}
	return scoreStr, feedbackStr, nil
}

func afterColon(line string) string {
	_, after, _ := strings.Cut(line, ":")
	return after
}

type geminiGenerator struct {
	client    *genai.Client
	textModel *genai.GenerativeModel
	evalModel *genai.GenerativeModel
}

func newGeminiGenerator(ctx context.Context, apiKey, modelName string) (*geminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	textModel := client.GenerativeModel(modelName)
	textModel.SetTemperature(0.7)

	evalModel := client.GenerativeModel(modelName)
	evalModel.SetTemperature(0.2)
	evalModel.ResponseMIMEType = "application/json"
	evalModel.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"score":    {Type: genai.TypeInteger, Description: "Score from 1 to 10"},
			"feedback": {Type: genai.TypeString, Description: "Short constructive feedback"},
		},
		Required: []string{"score", "feedback"},
	}

	return &geminiGenerator{client: client, textModel: textModel, evalModel: evalModel}, nil
}

func (g *geminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return generate(ctx, g.textModel, prompt)
}

func (g *geminiGenerator) GenerateEvaluation(ctx context.Context, prompt string) (string, error) {
	return generate(ctx, g.evalModel, prompt)
}

func (g *geminiGenerator) Close() error {
	return g.client.Close()
}

func generate(ctx context.Context, m *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", errors.New("gemini returned no text content")
	}
	return sb.String(), nil
}
