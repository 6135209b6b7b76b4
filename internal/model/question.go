package model

import "time"

// Question is one asked question together with the candidate's answer and its evaluation.
// Skipped questions carry an empty answer and a zero score.
type Question struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	InterviewID  uint      `json:"interview_id" gorm:"not null;index"`
	QuestionText string    `json:"question" gorm:"column:question;type:text;not null"`
	Answer       string    `json:"answer" gorm:"type:text"`
	Score        int       `json:"score"`
	Feedback     string    `json:"feedback" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}
