package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/mockinterview/config"
	"github.com/lshigami/mockinterview/internal/dto"
	"github.com/lshigami/mockinterview/internal/model"
	"github.com/lshigami/mockinterview/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	SkippedFeedback     = "Question skipped by candidate"
	InterviewEndedMsg   = "Interview ended"
	QuestionSkippedMsg  = "Question skipped"
	defaultMaxQuestions = 5
)

// ResumeUpload is a file received from the client. A nil *ResumeUpload means no file was sent.
type ResumeUpload struct {
	Filename string
	Content  io.Reader
}

type InterviewService interface {
	Start(userID uint, jobTitle, jobDescription string, resume *ResumeUpload) (*dto.StartInterviewResponse, error)
	NextQuestion(ctx context.Context, userID, interviewID uint) (*dto.NextQuestionResponse, error)
	SubmitAnswer(ctx context.Context, userID, interviewID uint, question, answer string) (*dto.EvaluationResponse, error)
	Skip(userID, interviewID uint, question string) error
	FinalFeedback(userID, interviewID uint) (*dto.FinalFeedbackResponse, error)
	End(userID, interviewID uint) (*dto.EndInterviewResponse, error)
	History(userID uint) ([]dto.InterviewHistoryItem, error)
	AnalyzeCV(userID uint, resume ResumeUpload) (*dto.CVAnalysisResponse, error)
}

type interviewService struct {
	interviewRepo repository.InterviewRepository
	questionRepo  repository.QuestionRepository
	llm           GeminiLLMService
	resumes       ResumeService
	analyzer      CVAnalyzerService
	summaries     ScoreSummaryService
	maxQuestions  int
}

func NewInterviewService(
	cfg *config.Config,
	interviewRepo repository.InterviewRepository,
	questionRepo repository.QuestionRepository,
	llm GeminiLLMService,
	resumes ResumeService,
	analyzer CVAnalyzerService,
	summaries ScoreSummaryService,
) InterviewService {
	maxQuestions := cfg.Interview.MaxQuestions
	if maxQuestions <= 0 {
		maxQuestions = defaultMaxQuestions
	}
	return &interviewService{
		interviewRepo: interviewRepo,
		questionRepo:  questionRepo,
		llm:           llm,
		resumes:       resumes,
		analyzer:      analyzer,
		summaries:     summaries,
		maxQuestions:  maxQuestions,
	}
}

func (s *interviewService) Start(userID uint, jobTitle, jobDescription string, resume *ResumeUpload) (*dto.StartInterviewResponse, error) {
	interview := &model.Interview{
		UserID:         userID,
		JobTitle:       strings.TrimSpace(jobTitle),
		JobDescription: strings.TrimSpace(jobDescription),
	}
	if resume != nil {
		path, err := s.resumes.Save(userID, resume.Filename, resume.Content)
		if err != nil {
			return nil, err
		}
		interview.ResumePath = &path
	}
	if err := s.interviewRepo.Create(interview); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to create interview")
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}
	log.Info().Uint("userID", userID).Uint("interviewID", interview.ID).Bool("hasResume", resume != nil).Msg("Interview started")
	return &dto.StartInterviewResponse{InterviewID: interview.ID}, nil
}

func (s *interviewService) NextQuestion(ctx context.Context, userID, interviewID uint) (*dto.NextQuestionResponse, error) {
	interview, err := s.ownedInterview(userID, interviewID)
	if err != nil {
		return nil, err
	}
	count, err := s.questionRepo.CountByInterviewID(interviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	if interview.Concluded() || count >= int64(s.maxQuestions) {
		return &dto.NextQuestionResponse{End: true}, nil
	}

	resumeText := ""
	if interview.ResumePath != nil {
		resumeText, err = s.resumes.ExtractText(*interview.ResumePath)
		if err != nil {
			// The question can still be asked from the job description alone.
			log.Warn().Err(err).Uint("interviewID", interviewID).Msg("Failed to extract resume text")
			resumeText = ""
		}
	}

	question, err := s.llm.GenerateQuestion(ctx, interview, resumeText)
	if err != nil {
		return nil, err
	}
	return &dto.NextQuestionResponse{End: false, QuestionNumber: int(count) + 1, Question: question}, nil
}

func (s *interviewService) SubmitAnswer(ctx context.Context, userID, interviewID uint, question, answer string) (*dto.EvaluationResponse, error) {
	if _, err := s.openInterview(userID, interviewID); err != nil {
		return nil, err
	}
	eval, err := s.llm.EvaluateAnswer(ctx, question, answer)
	if err != nil {
		return nil, err
	}
	record := &model.Question{
		InterviewID:  interviewID,
		QuestionText: question,
		Answer:       answer,
		Score:        eval.Score,
		Feedback:     eval.Feedback,
	}
	if err := s.questionRepo.Create(record); err != nil {
		log.Error().Err(err).Uint("interviewID", interviewID).Msg("Failed to save answer")
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}
	return &dto.EvaluationResponse{Score: eval.Score, Feedback: eval.Feedback}, nil
}

func (s *interviewService) Skip(userID, interviewID uint, question string) error {
	if _, err := s.openInterview(userID, interviewID); err != nil {
		return err
	}
	record := &model.Question{
		InterviewID:  interviewID,
		QuestionText: question,
		Answer:       "",
		Score:        0,
		Feedback:     SkippedFeedback,
	}
	if err := s.questionRepo.Create(record); err != nil {
		log.Error().Err(err).Uint("interviewID", interviewID).Msg("Failed to save skipped question")
		return fmt.Errorf("failed to save skipped question: %w", err)
	}
	return nil
}

func (s *interviewService) FinalFeedback(userID, interviewID uint) (*dto.FinalFeedbackResponse, error) {
	interview, err := s.ownedInterview(userID, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Concluded() {
		return &dto.FinalFeedbackResponse{Summary: derefString(interview.FinalFeedback), Score: *interview.FinalScore}, nil
	}
	summary, ok, err := s.conclude(userID, interviewID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &dto.FinalFeedbackResponse{Summary: NoAnswersSummary, Score: 0}, nil
	}
	return &dto.FinalFeedbackResponse{Summary: summary.Summary, Score: summary.Average}, nil
}

func (s *interviewService) End(userID, interviewID uint) (*dto.EndInterviewResponse, error) {
	interview, err := s.ownedInterview(userID, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Concluded() {
		return &dto.EndInterviewResponse{Message: InterviewEndedMsg, FinalScore: *interview.FinalScore}, nil
	}
	summary, _, err := s.conclude(userID, interviewID)
	if err != nil {
		return nil, err
	}
	log.Info().Uint("userID", userID).Uint("interviewID", interviewID).Float64("finalScore", summary.Average).Msg("Interview ended")
	return &dto.EndInterviewResponse{Message: InterviewEndedMsg, FinalScore: summary.Average}, nil
}

// conclude computes the summary from the recorded questions and writes it once.
// ok is false when nothing was recorded, in which case nothing is persisted.
// If another request concluded first, its stored result is returned.
func (s *interviewService) conclude(userID, interviewID uint) (ScoreSummary, bool, error) {
	questions, err := s.questionRepo.FindByInterviewID(interviewID)
	if err != nil {
		return ScoreSummary{}, false, fmt.Errorf("failed to load answers: %w", err)
	}
	scores := make([]int, 0, len(questions))
	for _, q := range questions {
		scores = append(scores, q.Score)
	}
	summary, ok := s.summaries.Summarize(scores)
	if !ok {
		return summary, false, nil
	}

	written, err := s.interviewRepo.Conclude(interviewID, summary.Average, summary.Summary)
	if err != nil {
		log.Error().Err(err).Uint("interviewID", interviewID).Msg("Failed to persist final feedback")
		return ScoreSummary{}, false, fmt.Errorf("failed to persist final feedback: %w", err)
	}
	if !written {
		log.Debug().Uint("interviewID", interviewID).Msg("Final feedback already persisted by a concurrent request")
		stored, err := s.ownedInterview(userID, interviewID)
		if err != nil {
			return ScoreSummary{}, false, err
		}
		if stored.Concluded() {
			return ScoreSummary{Average: *stored.FinalScore, Summary: derefString(stored.FinalFeedback)}, true, nil
		}
	}
	return summary, true, nil
}

func (s *interviewService) History(userID uint) ([]dto.InterviewHistoryItem, error) {
	interviews, err := s.interviewRepo.FindConcludedByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	items := make([]dto.InterviewHistoryItem, len(interviews))
	for i := range interviews {
		if err := copier.Copy(&items[i], &interviews[i]); err != nil {
			return nil, fmt.Errorf("failed to map interview %d: %w", interviews[i].ID, err)
		}
	}
	return items, nil
}

func (s *interviewService) AnalyzeCV(userID uint, resume ResumeUpload) (*dto.CVAnalysisResponse, error) {
	path, err := s.resumes.Save(userID, resume.Filename, resume.Content)
	if err != nil {
		return nil, err
	}
	text, err := s.resumes.ExtractText(path)
	if err != nil {
		return nil, err
	}
	a := s.analyzer.Analyze(text)
	log.Info().Uint("userID", userID).Int("wordCount", a.WordCount).Int("ats", a.ATS).Msg("CV analyzed")
	return &dto.CVAnalysisResponse{
		ATS:         a.ATS,
		Keywords:    a.Keywords,
		Formatting:  a.Formatting,
		Clarity:     a.Clarity,
		Suggestions: a.Suggestions,
	}, nil
}

func (s *interviewService) ownedInterview(userID, interviewID uint) (*model.Interview, error) {
	interview, err := s.interviewRepo.FindByIDForUser(interviewID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to load interview %d: %w", interviewID, err)
	}
	return interview, nil
}

// openInterview additionally requires that the interview can still take answers.
func (s *interviewService) openInterview(userID, interviewID uint) (*model.Interview, error) {
	interview, err := s.ownedInterview(userID, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Concluded() {
		return nil, ErrInterviewComplete
	}
	count, err := s.questionRepo.CountByInterviewID(interviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	if count >= int64(s.maxQuestions) {
		return nil, ErrInterviewComplete
	}
	return interview, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
