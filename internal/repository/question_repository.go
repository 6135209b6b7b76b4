package repository

import (
	"github.com/lshigami/mockinterview/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	CountByInterviewID(interviewID uint) (int64, error)
	FindByInterviewID(interviewID uint) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) CountByInterviewID(interviewID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Where("interview_id = ?", interviewID).Count(&count).Error
	return count, err
}

// FindByInterviewID returns the recorded questions in the order they were asked.
func (r *questionRepository) FindByInterviewID(interviewID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("interview_id = ?", interviewID).Order("id ASC").Find(&questions).Error
	return questions, err
}
