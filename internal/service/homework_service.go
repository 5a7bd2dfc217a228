package service

import (
	"time"

	"lingua_school_backend/internal/model"
	"lingua_school_backend/internal/repository"
	"lingua_school_backend/internal/util"

	"gorm.io/gorm"
)

// HomeworkService drives the assignment lifecycle:
// pending -> submitted -> accepted. It knows nothing about exercise content;
// progress figures are attached from the exercise service on read.
type HomeworkService struct {
	Assignments *repository.AssignmentRepository
	Lessons     *repository.LessonRepository
	Users       *repository.UserRepository
	Exercises   *ExerciseService
}

func NewHomeworkService(
	assignments *repository.AssignmentRepository,
	lessons *repository.LessonRepository,
	users *repository.UserRepository,
	exercises *ExerciseService,
) *HomeworkService {
	return &HomeworkService{
		Assignments: assignments,
		Lessons:     lessons,
		Users:       users,
		Exercises:   exercises,
	}
}

type AssignmentWithProgress struct {
	model.HomeworkAssignment
	Progress LessonSummary `json:"progress"`
}

// Assign creates one pending assignment per student for an interactive
// lesson. With no explicit student list it targets the scheduled lesson's
// whole roster. Existing rows are left untouched, so reassigning is safe.
func (s *HomeworkService) Assign(teacherID, lessonID, interactiveLessonID uint, studentIDs []uint) ([]model.HomeworkAssignment, error) {
	if _, err := s.Lessons.FindByID(lessonID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	if _, err := s.Lessons.FindInteractiveByID(interactiveLessonID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrInteractiveLessonNotFound
		}
		return nil, err
	}

	if len(studentIDs) == 0 {
		roster, err := s.Lessons.StudentIDs(lessonID)
		if err != nil {
			return nil, err
		}
		studentIDs = roster
	} else {
		// An explicit list may name students outside the roster, but every id
		// must at least be a real user.
		users, err := s.Users.FindByIDs(studentIDs)
		if err != nil {
			return nil, err
		}
		if len(users) != len(uniqueIDs(studentIDs)) {
			return nil, util.ErrStudentNotFound
		}
	}
	if len(studentIDs) == 0 {
		return nil, util.ErrNoStudents
	}

	now := time.Now()
	for _, studentID := range studentIDs {
		assignment := &model.HomeworkAssignment{
			LessonID:            lessonID,
			InteractiveLessonID: interactiveLessonID,
			StudentID:           studentID,
			AssignedBy:          teacherID,
			Status:              model.HomeworkPending,
			AssignedAt:          now,
		}
		if err := s.Assignments.CreateIgnoreExisting(assignment); err != nil {
			return nil, err
		}
	}

	return s.Assignments.ListByKey(lessonID, interactiveLessonID, studentIDs)
}

// Submit hands in the student's own assignment. Only the assigned student
// may submit, and only from the pending state.
func (s *HomeworkService) Submit(studentID, assignmentID uint) (*model.HomeworkAssignment, error) {
	assignment, err := s.findAssignment(assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.StudentID != studentID {
		return nil, util.ErrPermissionDenied
	}

	ok, err := s.Assignments.MarkSubmitted(assignmentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrInvalidTransition
	}
	return s.findAssignment(assignmentID)
}

// Accept moves a submitted assignment to accepted.
func (s *HomeworkService) Accept(assignmentID uint) (*model.HomeworkAssignment, error) {
	if _, err := s.findAssignment(assignmentID); err != nil {
		return nil, err
	}

	ok, err := s.Assignments.MarkAccepted(assignmentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrInvalidTransition
	}
	return s.findAssignment(assignmentID)
}

// ListForStudent returns the student's assignments newest first, each with
// their progress in the assigned interactive lesson.
func (s *HomeworkService) ListForStudent(studentID uint) ([]AssignmentWithProgress, error) {
	assignments, err := s.Assignments.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}
	return s.withProgress(assignments)
}

// ListForLesson returns every assignment tied to a scheduled lesson, for the
// teacher's homework overview.
func (s *HomeworkService) ListForLesson(lessonID uint) ([]AssignmentWithProgress, error) {
	assignments, err := s.Assignments.ListByLesson(lessonID)
	if err != nil {
		return nil, err
	}
	return s.withProgress(assignments)
}

func (s *HomeworkService) withProgress(assignments []model.HomeworkAssignment) ([]AssignmentWithProgress, error) {
	out := make([]AssignmentWithProgress, 0, len(assignments))
	for _, a := range assignments {
		summary, err := s.Exercises.Summarize(a.StudentID, a.InteractiveLessonID)
		if err != nil {
			return nil, err
		}
		out = append(out, AssignmentWithProgress{
			HomeworkAssignment: a,
			Progress:           *summary,
		})
	}
	return out, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := map[uint]bool{}
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (s *HomeworkService) findAssignment(id uint) (*model.HomeworkAssignment, error) {
	assignment, err := s.Assignments.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}
