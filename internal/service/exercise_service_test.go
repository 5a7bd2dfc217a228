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

func newExerciseService(tx *gorm.DB) *ExerciseService {
	return NewExerciseService(
		repository.NewBlockRepository(tx),
		repository.NewResultRepository(tx),
		repository.NewAssignmentRepository(tx),
		repository.NewUserRepository(tx),
		nil,
	)
}

func TestSubmitAnswerGradesAndStores(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newExerciseService(tx)

	teacher := testutil.SeedUser(t, tx, "teacher", model.Teacher)
	student := testutil.SeedUser(t, tx, "student", model.Student)
	lesson := testutil.SeedInteractiveLesson(t, tx, teacher)
	block := testutil.SeedBlock(t, tx, lesson.ID, grading.BlockFillGaps,
		`{"gaps":[{"index":0,"answer":"am","alternatives":[]}]}`, 0)

	result, err := svc.SubmitAnswer(student.ID, block.ID, lesson.ID, json.RawMessage(`{"0":"am"}`))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.IsCorrect == nil || !*result.IsCorrect {
		t.Fatalf("is_correct = %v, want true", result.IsCorrect)
	}

	// Resubmit with a wrong answer: same row, new verdict.
	again, err := svc.SubmitAnswer(student.ID, block.ID, lesson.ID, json.RawMessage(`{"0":"is"}`))
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if again.ID != result.ID {
		t.Fatalf("resubmission created row %d, want to reuse %d", again.ID, result.ID)
	}
	if again.IsCorrect == nil || *again.IsCorrect {
		t.Fatalf("is_correct = %v after wrong resubmission, want false", again.IsCorrect)
	}
}

func TestSubmitAnswerRejectsLessonMismatch(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newExerciseService(tx)

	teacher := testutil.SeedUser(t, tx, "teacher", model.Teacher)
	student := testutil.SeedUser(t, tx, "student", model.Student)
	lesson := testutil.SeedInteractiveLesson(t, tx, teacher)
	other := testutil.SeedInteractiveLesson(t, tx, teacher)
	block := testutil.SeedBlock(t, tx, lesson.ID, grading.BlockTrueFalse, `{"statement":"x"}`, 0)

	if _, err := svc.SubmitAnswer(student.ID, block.ID, other.ID, json.RawMessage(`true`)); !errors.Is(err, util.ErrLessonMismatch) {
		t.Fatalf("err = %v, want ErrLessonMismatch", err)
	}

	var count int64
	tx.Model(&model.ExerciseResult{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected submission stored %d rows, want 0", count)
	}
}

func TestSubmitAnswerUnknownBlock(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newExerciseService(tx)
	student := testutil.SeedUser(t, tx, "student", model.Student)

	if _, err := svc.SubmitAnswer(student.ID, 9999, 1, json.RawMessage(`true`)); !errors.Is(err, util.ErrBlockNotFound) {
		t.Fatalf("err = %v, want ErrBlockNotFound", err)
	}
}

func TestSubmitAnswerDefectiveContentStoresUnknown(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newExerciseService(tx)

	teacher := testutil.SeedUser(t, tx, "teacher", model.Teacher)
	student := testutil.SeedUser(t, tx, "student", model.Student)
	lesson := testutil.SeedInteractiveLesson(t, tx, teacher)
	block := testutil.SeedBlock(t, tx, lesson.ID, grading.BlockTest, `["broken"]`, 0)

	result, err := svc.SubmitAnswer(student.ID, block.ID, lesson.ID, json.RawMessage(`["a"]`))
	if err != nil {
		t.Fatalf("submit over broken content should still succeed: %v", err)
	}
	if result.IsCorrect != nil {
		t.Fatalf("is_correct = %v, want nil for an ungradable block", *result.IsCorrect)
	}
}

func TestLessonSummaryAggregation(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newExerciseService(tx)

	teacher := testutil.SeedUser(t, tx, "teacher", model.Teacher)
	student := testutil.SeedUser(t, tx, "student", model.Student)
	lesson := testutil.SeedInteractiveLesson(t, tx, teacher)

	// Three gradable blocks, one essay and one plain text block.
	tf := testutil.SeedBlock(t, tx, lesson.ID, grading.BlockTrueFalse, `{"statement":"x","is_true":true}`, 0)
	gaps := testutil.SeedBlock(t, tx, lesson.ID, grading.BlockFillGaps,
		`{"gaps":[{"index":0,"answer":"am","alternatives":[]}]}`, 1)
	testutil.SeedBlock(t, tx, lesson.ID, grading.BlockWordOrder, `{"correct_sentence":"I am"}`, 2)
	essay := testutil.SeedBlock(t, tx, lesson.ID, grading.BlockEssay, `{"prompt":"Describe your day"}`, 3)
	testutil.SeedBlock(t, tx, lesson.ID, grading.BlockText, `{"text":"intro"}`, 4)

	// One correct, one wrong, essay answered, word_order untouched.
	mustSubmit(t, svc, student.ID, tf.ID, lesson.ID, `true`)
	mustSubmit(t, svc, student.ID, gaps.ID, lesson.ID, `{"0":"is"}`)
	mustSubmit(t, svc, student.ID, essay.ID, lesson.ID, `"My day was fine."`)

	summary, results, err := svc.GetLessonResults(student.ID, lesson.ID)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if summary.Score != 1 || summary.Total != 3 || summary.Answered != 3 {
		t.Fatalf("summary = %+v, want {Score:1 Total:3 Answered:3}", *summary)
	}
	if len(results) != 3 {
		t.Fatalf("stored results = %d, want 3", len(results))
	}
}

func TestLessonResultsForAllStudents(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newExerciseService(tx)

	teacher := testutil.SeedUser(t, tx, "teacher", model.Teacher)
	alice := testutil.SeedUser(t, tx, "alice", model.Student)
	bob := testutil.SeedUser(t, tx, "bob", model.Student)
	scheduled := testutil.SeedLesson(t, tx, teacher, alice, bob)
	lesson := testutil.SeedInteractiveLesson(t, tx, teacher)
	block := testutil.SeedBlock(t, tx, lesson.ID, grading.BlockTrueFalse, `{"statement":"x","is_true":true}`, 0)

	// Bob is assigned but never answers; he must still appear with zeros.
	assignments := repository.NewAssignmentRepository(tx)
	for _, id := range []uint{alice.ID, bob.ID} {
		if err := assignments.CreateIgnoreExisting(&model.HomeworkAssignment{
			LessonID:            scheduled.ID,
			InteractiveLessonID: lesson.ID,
			StudentID:           id,
			AssignedBy:          teacher.ID,
			Status:              model.HomeworkPending,
		}); err != nil {
			t.Fatalf("assign: %v", err)
		}
	}
	mustSubmit(t, svc, alice.ID, block.ID, lesson.ID, `true`)

	summaries, err := svc.GetLessonResultsForAllStudents(lesson.ID)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("students in overview = %d, want 2", len(summaries))
	}
	if summaries[0].StudentID != alice.ID || summaries[0].Score != 1 {
		t.Fatalf("alice row = %+v, want score 1", summaries[0])
	}
	if summaries[1].StudentID != bob.ID || summaries[1].Answered != 0 {
		t.Fatalf("bob row = %+v, want an empty summary", summaries[1])
	}
	if summaries[0].StudentName != "alice" {
		t.Fatalf("student name = %q, want alice", summaries[0].StudentName)
	}
}

func TestStudentLessonDetail(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newExerciseService(tx)

	teacher := testutil.SeedUser(t, tx, "teacher", model.Teacher)
	student := testutil.SeedUser(t, tx, "student", model.Student)
	lesson := testutil.SeedInteractiveLesson(t, tx, teacher)
	first := testutil.SeedBlock(t, tx, lesson.ID, grading.BlockTrueFalse, `{"statement":"x","is_true":true}`, 0)
	testutil.SeedBlock(t, tx, lesson.ID, grading.BlockTrueFalse, `{"statement":"y","is_true":false}`, 1)

	mustSubmit(t, svc, student.ID, first.ID, lesson.ID, `true`)

	summary, details, err := svc.GetStudentLessonDetail(student.ID, lesson.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if summary.Score != 1 || summary.Total != 2 || summary.Answered != 1 {
		t.Fatalf("summary = %+v", *summary)
	}
	if len(details) != 2 {
		t.Fatalf("details = %d rows, want every block", len(details))
	}
	if details[0].Answer == nil || details[0].IsCorrect == nil {
		t.Fatalf("answered block should carry the stored answer and verdict")
	}
	if details[1].Answer != nil || details[1].IsCorrect != nil {
		t.Fatalf("unanswered block should have no answer attached")
	}
}

func mustSubmit(t *testing.T, svc *ExerciseService, studentID, blockID, lessonID uint, answer string) {
	t.Helper()
	if _, err := svc.SubmitAnswer(studentID, blockID, lessonID, json.RawMessage(answer)); err != nil {
		t.Fatalf("submit block %d: %v", blockID, err)
	}
}
