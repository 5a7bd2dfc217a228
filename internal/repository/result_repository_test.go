package repository

import (
	"encoding/json"
	"testing"

	"lingua_school_backend/internal/grading"
	"lingua_school_backend/internal/model"
	"lingua_school_backend/internal/testutil"
)

func TestResultUpsertReplacesPriorAttempt(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewResultRepository(tx)

	teacher := testutil.SeedUser(t, tx, "teacher", model.Teacher)
	student := testutil.SeedUser(t, tx, "student", model.Student)
	lesson := testutil.SeedInteractiveLesson(t, tx, teacher)
	block := testutil.SeedBlock(t, tx, lesson.ID, grading.BlockTrueFalse,
		`{"statement":"x","is_true":true}`, 0)

	wrong := false
	first := &model.ExerciseResult{
		StudentID: student.ID,
		BlockID:   block.ID,
		LessonID:  lesson.ID,
		Answer:    json.RawMessage(`false`),
		IsCorrect: &wrong,
	}
	if err := repo.Upsert(first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	right := true
	second := &model.ExerciseResult{
		StudentID: student.ID,
		BlockID:   block.ID,
		LessonID:  lesson.ID,
		Answer:    json.RawMessage(`true`),
		IsCorrect: &right,
	}
	if err := repo.Upsert(second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int64
	if err := tx.Model(&model.ExerciseResult{}).
		Where("student_id = ? AND block_id = ?", student.ID, block.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("rows for (student, block) = %d, want 1", count)
	}

	stored, err := repo.FindByStudentAndBlock(student.ID, block.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.ID != first.ID {
		t.Fatalf("surviving row id = %d, want the original %d", stored.ID, first.ID)
	}
	if stored.IsCorrect == nil || !*stored.IsCorrect {
		t.Fatalf("is_correct = %v, want true after resubmission", stored.IsCorrect)
	}
	if string(stored.Answer) != `true` {
		t.Fatalf("answer = %s, want the resubmitted one", stored.Answer)
	}
}

func TestResultListByStudentAndLesson(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewResultRepository(tx)

	teacher := testutil.SeedUser(t, tx, "teacher", model.Teacher)
	alice := testutil.SeedUser(t, tx, "alice", model.Student)
	bob := testutil.SeedUser(t, tx, "bob", model.Student)
	lesson := testutil.SeedInteractiveLesson(t, tx, teacher)
	other := testutil.SeedInteractiveLesson(t, tx, teacher)
	blockA := testutil.SeedBlock(t, tx, lesson.ID, grading.BlockTrueFalse, `{"statement":"x"}`, 0)
	blockB := testutil.SeedBlock(t, tx, other.ID, grading.BlockTrueFalse, `{"statement":"y"}`, 0)

	for _, r := range []*model.ExerciseResult{
		{StudentID: alice.ID, BlockID: blockA.ID, LessonID: lesson.ID, Answer: json.RawMessage(`true`)},
		{StudentID: alice.ID, BlockID: blockB.ID, LessonID: other.ID, Answer: json.RawMessage(`true`)},
		{StudentID: bob.ID, BlockID: blockA.ID, LessonID: lesson.ID, Answer: json.RawMessage(`false`)},
	} {
		if err := repo.Upsert(r); err != nil {
			t.Fatalf("seed result: %v", err)
		}
	}

	mine, err := repo.ListByStudentAndLesson(alice.ID, lesson.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 || mine[0].BlockID != blockA.ID {
		t.Fatalf("got %d results, want exactly alice's answer in this lesson", len(mine))
	}

	all, err := repo.ListByLesson(lesson.ID)
	if err != nil {
		t.Fatalf("list by lesson: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("lesson results = %d, want 2", len(all))
	}
}
