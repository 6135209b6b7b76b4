package model

import "time"

type Interview struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	UserID         uint       `json:"user_id" gorm:"not null;index"`
	JobTitle       string     `json:"job_title" gorm:"not null"`
	JobDescription string     `json:"job_description" gorm:"type:text;not null"`
	ResumePath     *string    `json:"resume_path,omitempty"`
	FinalScore     *float64   `json:"final_score"`
	FinalFeedback  *string    `json:"final_feedback" gorm:"type:text"`
	Questions      []Question `json:"questions,omitempty" gorm:"foreignKey:InterviewID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time  `json:"created_at" gorm:"index"`
}

// Concluded reports whether the final summary has already been written.
func (i *Interview) Concluded() bool {
	return i.FinalScore != nil
}
