package service

import (
	"encoding/json"
	"errors"
	"testing"

	"lingua_school_backend/internal/grading"
	"lingua_school_backend/internal/model"
	"lingua_school_backend/internal/repository"
	"lingua_school_backend/internal/testutil"
	"lingua_school_backend/internal/util"

	"gorm.io/gorm"
)

func newHomeworkService(tx *gorm.DB) *HomeworkService {
	return NewHomeworkService(
		repository.NewAssignmentRepository(tx),
		repository.NewLessonRepository(tx),
		repository.NewUserRepository(tx),
		newExerciseService(tx),
	)
}

func TestAssignDefaultsToRoster(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newHomeworkService(tx)

	teacher := testutil.SeedUser(t, tx, "teacher", model.Teacher)
	alice := testutil.SeedUser(t, tx, "alice", model.Student)
	bob := testutil.SeedUser(t, tx, "bob", model.Student)
	lesson := testutil.SeedLesson(t, tx, teacher, alice, bob)
	interactive := testutil.SeedInteractiveLesson(t, tx, teacher)

	assignments, err := svc.Assign(teacher.ID, lesson.ID, interactive.ID, nil)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if len(assignments) != 2 {
		t.Fatalf("assignments = %d, want one per roster student", len(assignments))
	}
	for _, a := range assignments {
		if a.Status != model.HomeworkPending {
			t.Fatalf("status = %s, want pending", a.Status)
		}
		if a.AssignedBy != teacher.ID {
			t.Fatalf("assigned_by = %d, want %d", a.AssignedBy, teacher.ID)
		}
	}

	// Assigning again must not duplicate rows.
	again, err := svc.Assign(teacher.ID, lesson.ID, interactive.ID, nil)
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if len(again) != 2 {
		t.Fatalf("assignments after reassign = %d, want 2", len(again))
	}
}

func TestAssignValidation(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newHomeworkService(tx)

	teacher := testutil.SeedUser(t, tx, "teacher", model.Teacher)
	emptyLesson := testutil.SeedLesson(t, tx, teacher)
	interactive := testutil.SeedInteractiveLesson(t, tx, teacher)

	if _, err := svc.Assign(teacher.ID, 9999, interactive.ID, nil); !errors.Is(err, util.ErrLessonNotFound) {
		t.Fatalf("err = %v, want ErrLessonNotFound", err)
	}
	if _, err := svc.Assign(teacher.ID, emptyLesson.ID, 9999, nil); !errors.Is(err, util.ErrInteractiveLessonNotFound) {
		t.Fatalf("err = %v, want ErrInteractiveLessonNotFound", err)
	}
	if _, err := svc.Assign(teacher.ID, emptyLesson.ID, interactive.ID, nil); !errors.Is(err, util.ErrNoStudents) {
		t.Fatalf("err = %v, want ErrNoStudents for an empty roster", err)
	}
	if _, err := svc.Assign(teacher.ID, emptyLesson.ID, interactive.ID, []uint{9999}); !errors.Is(err, util.ErrStudentNotFound) {
		t.Fatalf("err = %v, want ErrStudentNotFound for an unknown student id", err)
	}
}

func TestHomeworkLifecycle(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newHomeworkService(tx)

	teacher := testutil.SeedUser(t, tx, "teacher", model.Teacher)
	student := testutil.SeedUser(t, tx, "student", model.Student)
	outsider := testutil.SeedUser(t, tx, "outsider", model.Student)
	lesson := testutil.SeedLesson(t, tx, teacher, student)
	interactive := testutil.SeedInteractiveLesson(t, tx, teacher)

	assignments, err := svc.Assign(teacher.ID, lesson.ID, interactive.ID, nil)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	id := assignments[0].ID

	// Accepting before the student submits is out of order.
	if _, err := svc.Accept(id); !errors.Is(err, util.ErrInvalidTransition) {
		t.Fatalf("accept on pending: err = %v, want ErrInvalidTransition", err)
	}

	// Only the assigned student may submit.
	if _, err := svc.Submit(outsider.ID, id); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("foreign submit: err = %v, want ErrPermissionDenied", err)
	}

	submitted, err := svc.Submit(student.ID, id)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted.Status != model.HomeworkSubmitted || submitted.SubmittedAt == nil {
		t.Fatalf("after submit: status=%s submitted_at=%v", submitted.Status, submitted.SubmittedAt)
	}

	// A second submit is rejected, not silently absorbed.
	if _, err := svc.Submit(student.ID, id); !errors.Is(err, util.ErrInvalidTransition) {
		t.Fatalf("double submit: err = %v, want ErrInvalidTransition", err)
	}

	accepted, err := svc.Accept(id)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != model.HomeworkAccepted || accepted.AcceptedAt == nil {
		t.Fatalf("after accept: status=%s accepted_at=%v", accepted.Status, accepted.AcceptedAt)
	}

	if _, err := svc.Submit(student.ID, 9999); !errors.Is(err, util.ErrAssignmentNotFound) {
		t.Fatalf("missing assignment: err = %v, want ErrAssignmentNotFound", err)
	}
}

func TestListForStudentAttachesProgress(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newHomeworkService(tx)

	teacher := testutil.SeedUser(t, tx, "teacher", model.Teacher)
	student := testutil.SeedUser(t, tx, "student", model.Student)
	lesson := testutil.SeedLesson(t, tx, teacher, student)
	interactive := testutil.SeedInteractiveLesson(t, tx, teacher)
	block := testutil.SeedBlock(t, tx, interactive.ID, grading.BlockTrueFalse,
		`{"statement":"x","is_true":true}`, 0)

	if _, err := svc.Assign(teacher.ID, lesson.ID, interactive.ID, nil); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := svc.Exercises.SubmitAnswer(student.ID, block.ID, interactive.ID, json.RawMessage(`true`)); err != nil {
		t.Fatalf("submit answer: %v", err)
	}

	mine, err := svc.ListForStudent(student.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("assignments = %d, want 1", len(mine))
	}
	progress := mine[0].Progress
	if progress.Score != 1 || progress.Total != 1 || progress.Answered != 1 {
		t.Fatalf("progress = %+v, want {1 1 1}", progress)
	}
}
