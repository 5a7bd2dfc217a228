package util

import "errors"

var (
	ErrPermissionDenied          = errors.New("permission denied")
	ErrBlockNotFound             = errors.New("exercise block not found")
	ErrLessonNotFound            = errors.New("lesson not found")
	ErrInteractiveLessonNotFound = errors.New("interactive lesson not found")
	ErrLessonMismatch            = errors.New("block does not belong to the given lesson")
	ErrUnknownBlockType          = errors.New("unknown block type")
	ErrAssignmentNotFound        = errors.New("homework assignment not found")
	ErrInvalidTransition         = errors.New("invalid homework status transition")
	ErrNoStudents                = errors.New("no students to assign")
	ErrStudentNotFound           = errors.New("student not found")
)
