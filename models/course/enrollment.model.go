package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment links a user to a purchased credential-bearing product. Created by
// the commerce flow on confirmed payment; the completion core only reads it.
type Enrollment struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_subject_user"`
	SubjectType string `json:"subject_type" gorm:"not null;uniqueIndex:idx_enrollment_subject_user"` // COURSE, WEBINAR, ...
	ReferenceID uint   `json:"reference_id" gorm:"not null;uniqueIndex:idx_enrollment_subject_user"`
	Status      string `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	IsDeleted   bool   `gorm:"default:false"`
}

// ChapterProgress is one row per (chapter, enrollment), upserted on every
// progress update.
type ChapterProgress struct {
	gorm.Model
	ChapterID       uint      `json:"chapter_id" gorm:"not null;uniqueIndex:idx_chapter_enrollment"`
	EnrollmentID    uint      `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_chapter_enrollment"`
	ProgressPercent float64   `json:"progress_percent" gorm:"default:0"` // 0-100, clamped
	Completed       bool      `json:"completed" gorm:"default:false"`
	LastWatchedAt   time.Time `json:"last_watched_at"`
}

// CourseCompletion is the one-time marker that a learner finished a course.
// The unique index is the correctness guarantee against double completion.
type CourseCompletion struct {
	gorm.Model
	CourseID    uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_course_completion"`
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_course_completion"`
	CompletedAt time.Time `json:"completed_at"`
}

// WebinarCompletion is the webinar counterpart of CourseCompletion.
type WebinarCompletion struct {
	gorm.Model
	WebinarID   uint      `json:"webinar_id" gorm:"not null;uniqueIndex:idx_webinar_completion"`
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_webinar_completion"`
	CompletedAt time.Time `json:"completed_at"`
}
