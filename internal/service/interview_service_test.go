package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lshigami/mockinterview/config"
	"github.com/lshigami/mockinterview/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type interviewFixture struct {
	svc        InterviewService
	interviews *fakeInterviewRepo
	questions  *fakeQuestionRepo
	llm        *stubLLM
	resumes    *stubResumes
}

func newInterviewFixture() *interviewFixture {
	f := &interviewFixture{
		interviews: newFakeInterviewRepo(),
		questions:  &fakeQuestionRepo{},
		llm:        &stubLLM{},
		resumes:    newStubResumes(),
	}
	cfg := &config.Config{Interview: config.Interview{MaxQuestions: 5}}
	f.svc = NewInterviewService(cfg, f.interviews, f.questions, f.llm, f.resumes, NewCVAnalyzerService(), NewScoreSummaryService())
	return f
}

func (f *interviewFixture) start(t *testing.T, userID uint) uint {
	t.Helper()
	resp, err := f.svc.Start(userID, "Backend Engineer", "Go, Postgres", nil)
	require.NoError(t, err)
	return resp.InterviewID
}

func TestStartWithResume(t *testing.T) {
	f := newInterviewFixture()

	resp, err := f.svc.Start(1, " Data Analyst ", "SQL", &ResumeUpload{Filename: "cv.pdf", Content: strings.NewReader("SQL dashboards")})
	require.NoError(t, err)

	stored := f.interviews.interviews[resp.InterviewID]
	require.NotNil(t, stored.ResumePath)
	assert.Equal(t, "resumes/cv.pdf", *stored.ResumePath)
	assert.Equal(t, "Data Analyst", stored.JobTitle)
	assert.Nil(t, stored.FinalScore)

	q, err := f.svc.NextQuestion(context.Background(), 1, resp.InterviewID)
	require.NoError(t, err)
	assert.Equal(t, "SQL dashboards", f.llm.lastResume)
	assert.Equal(t, 1, q.QuestionNumber)
}

func TestStartRejectsBadResume(t *testing.T) {
	f := newInterviewFixture()
	f.resumes.saveErr = ErrUnsupportedResume

	_, err := f.svc.Start(1, "QA", "Testing", &ResumeUpload{Filename: "cv.exe", Content: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrUnsupportedResume)
	assert.Empty(t, f.interviews.interviews)
}

func TestQuestionCapAtFive(t *testing.T) {
	f := newInterviewFixture()
	id := f.start(t, 1)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		next, err := f.svc.NextQuestion(ctx, 1, id)
		require.NoError(t, err)
		assert.False(t, next.End)
		assert.Equal(t, i, next.QuestionNumber)
		_, err = f.svc.SubmitAnswer(ctx, 1, id, next.Question, "answer")
		require.NoError(t, err)
	}

	next, err := f.svc.NextQuestion(ctx, 1, id)
	require.NoError(t, err)
	assert.True(t, next.End)
	assert.Zero(t, next.QuestionNumber)
	assert.Empty(t, next.Question)

	_, err = f.svc.SubmitAnswer(ctx, 1, id, "extra", "answer")
	assert.ErrorIs(t, err, ErrInterviewComplete)
	assert.ErrorIs(t, f.svc.Skip(1, id, "extra"), ErrInterviewComplete)
}

func TestSkipRecordsZeroAndCountsTowardCap(t *testing.T) {
	f := newInterviewFixture()
	id := f.start(t, 1)

	require.NoError(t, f.svc.Skip(1, id, "What is CAP?"))

	qs, _ := f.questions.FindByInterviewID(id)
	require.Len(t, qs, 1)
	assert.Equal(t, "", qs[0].Answer)
	assert.Equal(t, 0, qs[0].Score)
	assert.Equal(t, SkippedFeedback, qs[0].Feedback)

	next, err := f.svc.NextQuestion(context.Background(), 1, id)
	require.NoError(t, err)
	assert.Equal(t, 2, next.QuestionNumber)
}

func TestFinalFeedbackAveragesAndPersistsOnce(t *testing.T) {
	f := newInterviewFixture()
	f.llm.scores = []int{6, 8, 10}
	id := f.start(t, 1)
	ctx := context.Background()

	for _, q := range []string{"q1", "q2", "q3"} {
		_, err := f.svc.SubmitAnswer(ctx, 1, id, q, "a")
		require.NoError(t, err)
	}

	fb, err := f.svc.FinalFeedback(1, id)
	require.NoError(t, err)
	assert.Equal(t, 8.0, fb.Score)
	assert.Equal(t, "Average Score: 8.0/10. Good performance. Strong fundamentals.", fb.Summary)

	again, err := f.svc.FinalFeedback(1, id)
	require.NoError(t, err)
	assert.Equal(t, fb, again)
	assert.Equal(t, 1, f.interviews.concludes)

	stored := f.interviews.interviews[id]
	require.NotNil(t, stored.FinalScore)
	assert.Equal(t, 8.0, *stored.FinalScore)

	_, err = f.svc.SubmitAnswer(ctx, 1, id, "late", "a")
	assert.ErrorIs(t, err, ErrInterviewComplete)

	next, err := f.svc.NextQuestion(ctx, 1, id)
	require.NoError(t, err)
	assert.True(t, next.End)
}

func TestConcludeReturnsStoredResultWhenAnotherRequestWins(t *testing.T) {
	f := newInterviewFixture()
	id := f.start(t, 1)
	f.llm.scores = []int{4}
	_, err := f.svc.SubmitAnswer(context.Background(), 1, id, "q", "a")
	require.NoError(t, err)

	f.interviews.beforeConclude = func(i *model.Interview) {
		score, feedback := 6.0, "Average Score: 6.0/10. Average performance. Needs improvement."
		i.FinalScore, i.FinalFeedback = &score, &feedback
	}

	resp, err := f.svc.FinalFeedback(1, id)
	require.NoError(t, err)
	assert.Equal(t, 6.0, resp.Score)
	assert.Equal(t, "Average Score: 6.0/10. Average performance. Needs improvement.", resp.Summary)
	assert.Equal(t, 0, f.interviews.concludes)

	id = f.start(t, 1)
	_, err = f.svc.SubmitAnswer(context.Background(), 1, id, "q", "a")
	require.NoError(t, err)
	end, err := f.svc.End(1, id)
	require.NoError(t, err)
	assert.Equal(t, 6.0, end.FinalScore)
}

func TestFinalFeedbackWithoutAnswers(t *testing.T) {
	f := newInterviewFixture()
	id := f.start(t, 1)

	fb, err := f.svc.FinalFeedback(1, id)
	require.NoError(t, err)
	assert.Equal(t, NoAnswersSummary, fb.Summary)
	assert.Zero(t, fb.Score)
	assert.Nil(t, f.interviews.interviews[id].FinalScore)

	ended, err := f.svc.End(1, id)
	require.NoError(t, err)
	assert.Equal(t, InterviewEndedMsg, ended.Message)
	assert.Zero(t, ended.FinalScore)
	assert.Nil(t, f.interviews.interviews[id].FinalScore)
}

func TestEndPersistsSummary(t *testing.T) {
	f := newInterviewFixture()
	f.llm.scores = []int{4}
	id := f.start(t, 1)

	_, err := f.svc.SubmitAnswer(context.Background(), 1, id, "q", "a")
	require.NoError(t, err)
	require.NoError(t, f.svc.Skip(1, id, "q2"))

	ended, err := f.svc.End(1, id)
	require.NoError(t, err)
	assert.Equal(t, 2.0, ended.FinalScore)

	stored := f.interviews.interviews[id]
	require.NotNil(t, stored.FinalFeedback)
	assert.Equal(t, "Average Score: 2.0/10. Weak performance. Practice recommended.", *stored.FinalFeedback)

	fb, err := f.svc.FinalFeedback(1, id)
	require.NoError(t, err)
	assert.Equal(t, 2.0, fb.Score)
	assert.Equal(t, 1, f.interviews.concludes)
}

func TestInterviewOwnership(t *testing.T) {
	f := newInterviewFixture()
	id := f.start(t, 1)
	ctx := context.Background()

	_, err := f.svc.NextQuestion(ctx, 2, id)
	assert.ErrorIs(t, err, ErrInterviewNotFound)
	_, err = f.svc.SubmitAnswer(ctx, 2, id, "q", "a")
	assert.ErrorIs(t, err, ErrInterviewNotFound)
	assert.ErrorIs(t, f.svc.Skip(2, id, "q"), ErrInterviewNotFound)
	_, err = f.svc.FinalFeedback(2, id)
	assert.ErrorIs(t, err, ErrInterviewNotFound)
	_, err = f.svc.End(2, 999)
	assert.ErrorIs(t, err, ErrInterviewNotFound)
}

func TestEvaluationFailureStoresNothing(t *testing.T) {
	f := newInterviewFixture()
	f.llm.evalErr = ErrUnparseableEvaluation
	id := f.start(t, 1)

	_, err := f.svc.SubmitAnswer(context.Background(), 1, id, "q", "a")
	assert.ErrorIs(t, err, ErrUnparseableEvaluation)

	count, _ := f.questions.CountByInterviewID(id)
	assert.Zero(t, count)
}

func TestNextQuestionPropagatesModelError(t *testing.T) {
	f := newInterviewFixture()
	f.llm.questionErr = errors.Join(ErrModelUnavailable, errors.New("timeout"))
	id := f.start(t, 1)

	_, err := f.svc.NextQuestion(context.Background(), 1, id)
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestHistoryListsConcludedNewestFirst(t *testing.T) {
	f := newInterviewFixture()
	ctx := context.Background()

	first := f.start(t, 1)
	_, err := f.svc.SubmitAnswer(ctx, 1, first, "q", "a")
	require.NoError(t, err)
	_, err = f.svc.End(1, first)
	require.NoError(t, err)

	f.start(t, 1) // never concluded

	second := f.start(t, 1)
	_, err = f.svc.SubmitAnswer(ctx, 1, second, "q", "a")
	require.NoError(t, err)
	_, err = f.svc.FinalFeedback(1, second)
	require.NoError(t, err)

	other := f.start(t, 2)
	_, err = f.svc.SubmitAnswer(ctx, 2, other, "q", "a")
	require.NoError(t, err)
	_, err = f.svc.End(2, other)
	require.NoError(t, err)

	items, err := f.svc.History(1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second, items[0].ID)
	assert.Equal(t, first, items[1].ID)
	assert.Equal(t, "Backend Engineer", items[0].JobTitle)
	require.NotNil(t, items[0].FinalScore)
	assert.Equal(t, 7.0, *items[0].FinalScore)

	empty, err := f.svc.History(3)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestAnalyzeCV(t *testing.T) {
	f := newInterviewFixture()

	resp, err := f.svc.AnalyzeCV(1, ResumeUpload{Filename: "cv.pdf", Content: strings.NewReader("python\nsql")})
	require.NoError(t, err)
	assert.Equal(t, 33, resp.Keywords)
	assert.Equal(t, 90, resp.Formatting)
	assert.Contains(t, resp.Suggestions, "Improve keyword alignment with job roles")
}
