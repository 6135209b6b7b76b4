package service

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/lshigami/mockinterview/internal/model"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*model.User{}}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return &model.User{}, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return &model.User{}, gorm.ErrRecordNotFound
}

type fakeInterviewRepo struct {
	mu         sync.Mutex
	interviews map[uint]*model.Interview
	nextID     uint
	concludes  int
	// beforeConclude runs inside Conclude before the write, to simulate a concurrent writer.
	beforeConclude func(i *model.Interview)
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{interviews: map[uint]*model.Interview{}}
}

func (r *fakeInterviewRepo) Create(interview *model.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	interview.ID = r.nextID
	interview.CreatedAt = time.Now().Add(time.Duration(r.nextID) * time.Second)
	cp := *interview
	r.interviews[interview.ID] = &cp
	return nil
}

func (r *fakeInterviewRepo) FindByIDForUser(id, userID uint) (*model.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.interviews[id]
	if !ok || i.UserID != userID {
		return &model.Interview{}, gorm.ErrRecordNotFound
	}
	cp := *i
	return &cp, nil
}

func (r *fakeInterviewRepo) Conclude(id uint, score float64, feedback string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.interviews[id]
	if ok && r.beforeConclude != nil {
		r.beforeConclude(i)
	}
	if !ok || i.FinalScore != nil {
		return false, nil
	}
	r.concludes++
	i.FinalScore = &score
	i.FinalFeedback = &feedback
	return true, nil
}

func (r *fakeInterviewRepo) FindConcludedByUser(userID uint) ([]model.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Interview
	for _, i := range r.interviews {
		if i.UserID == userID && i.FinalScore != nil {
			out = append(out, *i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions []model.Question
}

func (r *fakeQuestionRepo) Create(q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q.ID = uint(len(r.questions) + 1)
	r.questions = append(r.questions, *q)
	return nil
}

func (r *fakeQuestionRepo) CountByInterviewID(interviewID uint) (int64, error) {
	qs, _ := r.FindByInterviewID(interviewID)
	return int64(len(qs)), nil
}

func (r *fakeQuestionRepo) FindByInterviewID(interviewID uint) ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Question
	for _, q := range r.questions {
		if q.InterviewID == interviewID {
			out = append(out, q)
		}
	}
	return out, nil
}

// stubLLM returns queued scores in order and numbered questions.
type stubLLM struct {
	scores      []int
	calls       int
	questionErr error
	evalErr     error
	lastResume  string
}

func (s *stubLLM) GenerateQuestion(ctx context.Context, interview *model.Interview, resumeText string) (string, error) {
	if s.questionErr != nil {
		return "", s.questionErr
	}
	s.lastResume = resumeText
	return "Describe a project relevant to " + interview.JobTitle, nil
}

func (s *stubLLM) EvaluateAnswer(ctx context.Context, question, answer string) (*Evaluation, error) {
	if s.evalErr != nil {
		return nil, s.evalErr
	}
	score := 7
	if s.calls < len(s.scores) {
		score = s.scores[s.calls]
	}
	s.calls++
	return &Evaluation{Score: score, Feedback: "Solid answer."}, nil
}

type stubResumes struct {
	saved   map[string]string
	texts   map[string]string
	saveErr error
}

func newStubResumes() *stubResumes {
	return &stubResumes{saved: map[string]string{}, texts: map[string]string{}}
}

func (s *stubResumes) Save(userID uint, filename string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	path := "resumes/" + filename
	s.saved[path] = string(data)
	s.texts[path] = string(data)
	return path, nil
}

func (s *stubResumes) ExtractText(path string) (string, error) {
	text, ok := s.texts[path]
	if !ok {
		return "", ErrUnsupportedResume
	}
	return text, nil
}

// stubGenerator records prompts and replays canned responses.
type stubGenerator struct {
	text       string
	evaluation string
	err        error
	prompts    []string
}

func (g *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

func (g *stubGenerator) GenerateEvaluation(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.evaluation, g.err
}
