package dto

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StartInterviewForm is bound from multipart form data; the résumé file is read separately.
type StartInterviewForm struct {
	JobTitle       string `form:"job_title" binding:"required"`
	JobDescription string `form:"job_description" binding:"required"`
}

type InterviewQuery struct {
	InterviewID uint `form:"interview_id" json:"interview_id" binding:"required"`
}

// SubmitAnswerRequest allows an empty answer; it is still sent for evaluation.
type SubmitAnswerRequest struct {
	InterviewID uint   `json:"interview_id" binding:"required"`
	Question    string `json:"question" binding:"required"`
	Answer      string `json:"answer"`
}

// SkipQuestionRequest accepts an optional answer so clients can reuse the submit payload.
type SkipQuestionRequest struct {
	InterviewID uint   `json:"interview_id" binding:"required"`
	Question    string `json:"question" binding:"required"`
	Answer      string `json:"answer"`
}
