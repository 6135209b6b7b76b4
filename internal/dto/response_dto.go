package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserProfileResponse struct {
	ID     uint      `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Joined time.Time `json:"joined"`
}

type StartInterviewResponse struct {
	InterviewID uint `json:"interview_id"`
}

// NextQuestionResponse omits the question fields once the interview has ended.
type NextQuestionResponse struct {
	End            bool   `json:"end"`
	QuestionNumber int    `json:"question_number,omitempty"`
	Question       string `json:"question,omitempty"`
}

type EvaluationResponse struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

type FinalFeedbackResponse struct {
	Summary string  `json:"summary"`
	Score   float64 `json:"score"`
}

type EndInterviewResponse struct {
	Message    string  `json:"message"`
	FinalScore float64 `json:"final_score"`
}

type InterviewHistoryItem struct {
	ID            uint      `json:"id"`
	JobTitle      string    `json:"job_title"`
	FinalScore    *float64  `json:"final_score"`
	FinalFeedback *string   `json:"final_feedback"`
	CreatedAt     time.Time `json:"created_at"`
}

type CVAnalysisResponse struct {
	ATS         int      `json:"ats"`
	Keywords    int      `json:"keywords"`
	Formatting  int      `json:"formatting"`
	Clarity     int      `json:"clarity"`
	Suggestions []string `json:"suggestions"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}
