package database

import (
	"encoding/json"
	"fmt"
	"log"

	"lingua_school_backend/internal/config"
	"lingua_school_backend/internal/grading"
	"lingua_school_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
		seedDemoData(db)
	}

	return db, nil
}

// Migrate creates or updates the schema for every model this service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Lesson{},
		&model.InteractiveLesson{},
		&model.ExerciseBlock{},
		&model.ExerciseResult{},
		&model.HomeworkAssignment{},
	)
}

// seedDemoData fills an empty database with a small sample lesson so a fresh
// install has something to render. Skipped as soon as any user exists.
func seedDemoData(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count > 0 {
		return
	}

	teacher := model.User{Name: "Demo Teacher", Email: "teacher@example.com", Role: model.Teacher}
	student := model.User{Name: "Demo Student", Email: "student@example.com", Role: model.Student}
	db.Create(&teacher)
	db.Create(&student)

	lesson := model.Lesson{Title: "Beginner English A1", TeacherID: teacher.ID, Students: []model.User{student}}
	db.Create(&lesson)

	interactive := model.InteractiveLesson{Title: "Present Simple: to be", CreatedBy: teacher.ID}
	db.Create(&interactive)

	blocks := []model.ExerciseBlock{
		{
			LessonID:  interactive.ID,
			BlockType: grading.BlockText,
			Content:   json.RawMessage(`{"text":"Use am/is/are to complete the sentences."}`),
			Position:  0,
		},
		{
			LessonID:  interactive.ID,
			BlockType: grading.BlockFillGaps,
			Content:   json.RawMessage(`{"gaps":[{"index":0,"answer":"am","alternatives":[]},{"index":1,"answer":"is","alternatives":["'s"]}]}`),
			Position:  1,
		},
		{
			LessonID:  interactive.ID,
			BlockType: grading.BlockTrueFalse,
			Content:   json.RawMessage(`{"statement":"\"They is happy\" is correct.","is_true":false}`),
			Position:  2,
		},
	}
	for i := range blocks {
		db.Create(&blocks[i])
	}
}
