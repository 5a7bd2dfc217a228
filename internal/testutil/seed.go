package testutil

import (
	"encoding/json"
	"fmt"
	"testing"

	"lingua_school_backend/internal/grading"
	"lingua_school_backend/internal/model"

	"gorm.io/gorm"
)

var seedSeq int

func nextEmail(prefix string) string {
	seedSeq++
	return fmt.Sprintf("%s-%d@example.com", prefix, seedSeq)
}

func SeedUser(tb testing.TB, db *gorm.DB, name string, role model.UserRole) *model.User {
	tb.Helper()
	u := &model.User{Name: name, Email: nextEmail(name), Role: role}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user %q: %v", name, err)
	}
	return u
}

func SeedLesson(tb testing.TB, db *gorm.DB, teacher *model.User, students ...*model.User) *model.Lesson {
	tb.Helper()
	l := &model.Lesson{Title: "Test Lesson", TeacherID: teacher.ID}
	for _, s := range students {
		l.Students = append(l.Students, *s)
	}
	if err := db.Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedInteractiveLesson(tb testing.TB, db *gorm.DB, creator *model.User) *model.InteractiveLesson {
	tb.Helper()
	il := &model.InteractiveLesson{Title: "Test Interactive Lesson", CreatedBy: creator.ID}
	if err := db.Create(il).Error; err != nil {
		tb.Fatalf("seed interactive lesson: %v", err)
	}
	return il
}

func SeedBlock(tb testing.TB, db *gorm.DB, lessonID uint, blockType grading.BlockType, content string, position int) *model.ExerciseBlock {
	tb.Helper()
	b := &model.ExerciseBlock{
		LessonID:  lessonID,
		BlockType: blockType,
		Content:   json.RawMessage(content),
		Position:  position,
	}
	if err := db.Create(b).Error; err != nil {
		tb.Fatalf("seed block (%s): %v", blockType, err)
	}
	return b
}
