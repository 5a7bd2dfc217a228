package repository

import (
	"time"

	"lingua_school_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

// CreateIgnoreExisting inserts the assignment unless the
// (lesson, interactive_lesson, student) triple already has a row, which is
// left untouched. Reassigning is idempotent, not additive.
func (r *AssignmentRepository) CreateIgnoreExisting(a *model.HomeworkAssignment) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "lesson_id"}, {Name: "interactive_lesson_id"}, {Name: "student_id"},
		},
		DoNothing: true,
	}).Create(a).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.HomeworkAssignment, error) {
	var assignment model.HomeworkAssignment
	if err := r.DB.First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentRepository) ListByStudent(studentID uint) ([]model.HomeworkAssignment, error) {
	var assignments []model.HomeworkAssignment
	err := r.DB.Where("student_id = ?", studentID).
		Order("assigned_at DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) ListByLesson(lessonID uint) ([]model.HomeworkAssignment, error) {
	var assignments []model.HomeworkAssignment
	err := r.DB.Where("lesson_id = ?", lessonID).
		Order("student_id ASC").
		Find(&assignments).Error
	return assignments, err
}

// ListByKey loads the rows for one (lesson, interactive lesson) pairing,
// optionally narrowed to a set of students.
func (r *AssignmentRepository) ListByKey(lessonID, interactiveLessonID uint, studentIDs []uint) ([]model.HomeworkAssignment, error) {
	q := r.DB.Where("lesson_id = ? AND interactive_lesson_id = ?", lessonID, interactiveLessonID)
	if len(studentIDs) > 0 {
		q = q.Where("student_id IN ?", studentIDs)
	}
	var assignments []model.HomeworkAssignment
	err := q.Order("student_id ASC").Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) ListByInteractiveLesson(interactiveLessonID uint) ([]model.HomeworkAssignment, error) {
	var assignments []model.HomeworkAssignment
	err := r.DB.Where("interactive_lesson_id = ?", interactiveLessonID).
		Find(&assignments).Error
	return assignments, err
}

// MarkSubmitted moves pending -> submitted. The transition is a conditional
// update on the current status, so two concurrent calls cannot both win and
// submitted_at is written exactly once.
func (r *AssignmentRepository) MarkSubmitted(id uint) (bool, error) {
	return r.transition(id, model.HomeworkPending, model.HomeworkSubmitted, "submitted_at")
}

// MarkAccepted moves submitted -> accepted under the same guard.
func (r *AssignmentRepository) MarkAccepted(id uint) (bool, error) {
	return r.transition(id, model.HomeworkSubmitted, model.HomeworkAccepted, "accepted_at")
}

func (r *AssignmentRepository) transition(id uint, from, to model.HomeworkStatus, stampColumn string) (bool, error) {
	res := r.DB.Model(&model.HomeworkAssignment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":    to,
			stampColumn: time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
