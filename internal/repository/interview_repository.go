package repository

import (
	"github.com/lshigami/mockinterview/internal/model"
	"gorm.io/gorm"
)

type InterviewRepository interface {
	Create(interview *model.Interview) error
	FindByIDForUser(id, userID uint) (*model.Interview, error)
	// Conclude writes the final score and feedback only if none were written before.
	// It reports whether this call performed the write.
	Conclude(id uint, score float64, feedback string) (bool, error)
	FindConcludedByUser(userID uint) ([]model.Interview, error)
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(interview *model.Interview) error {
	return r.db.Create(interview).Error
}

func (r *interviewRepository) FindByIDForUser(id, userID uint) (*model.Interview, error) {
	var interview model.Interview
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&interview).Error
	return &interview, err
}

func (r *interviewRepository) Conclude(id uint, score float64, feedback string) (bool, error) {
	res := r.db.Model(&model.Interview{}).
		Where("id = ? AND final_score IS NULL", id).
		Updates(map[string]interface{}{"final_score": score, "final_feedback": feedback})
	return res.RowsAffected > 0, res.Error
}

func (r *interviewRepository) FindConcludedByUser(userID uint) ([]model.Interview, error) {
	var interviews []model.Interview
	err := r.db.Where("user_id = ? AND final_score IS NOT NULL", userID).
		Order("created_at DESC").
		Find(&interviews).Error
	return interviews, err
}
