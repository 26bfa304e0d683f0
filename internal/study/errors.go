package study

import "errors"

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidGrade     = errors.New("invalid grade")
	ErrSemesterNotFound = errors.New("semester not found")
	ErrModuleNotFound   = errors.New("module not found")
	ErrCourseNotFound   = errors.New("course not found")
)
