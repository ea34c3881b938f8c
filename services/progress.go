package services

import (
	"errors"
	"log"
	"time"

	certModels "lms/models/certificate"
	courseModels "lms/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// completionThreshold is the watch percentage at which a chapter counts as
// completed even without an explicit completion action.
const completionThreshold = 90.0

// RecordProgress upserts the watch progress for one (chapter, enrollment)
// pair. The percent is clamped to [0,100]; the completed flag is sticky to the
// explicit action or the threshold. The cascading completion evaluation must
// never fail the progress write: evaluation errors are logged and reported via
// the evaluated flag.
func RecordProgress(db *gorm.DB, chapterID, enrollmentID uint, percent float64, explicitCompleted *bool) (*courseModels.ChapterProgress, bool, error) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	completed := percent >= completionThreshold
	if explicitCompleted != nil && *explicitCompleted {
		completed = true
	}

	progress := courseModels.ChapterProgress{
		ChapterID:       chapterID,
		EnrollmentID:    enrollmentID,
		ProgressPercent: percent,
		Completed:       completed,
		LastWatchedAt:   time.Now(),
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chapter_id"}, {Name: "enrollment_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"progress_percent", "completed", "last_watched_at", "updated_at"}),
	}).Create(&progress).Error
	if err != nil {
		return nil, false, err
	}

	// Re-read so the caller sees the surviving row (the insert above reports
	// the zero ID on the conflict path).
	if err := db.Where("chapter_id = ? AND enrollment_id = ?", chapterID, enrollmentID).
		First(&progress).Error; err != nil {
		return nil, false, err
	}

	evaluated := true
	if err := evaluateOwningSubject(db, enrollmentID); err != nil {
		log.Printf("Completion evaluation failed for enrollment %d (progress saved): %v", enrollmentID, err)
		evaluated = false
	}

	return &progress, evaluated, nil
}

// evaluateOwningSubject triggers the completion evaluator for the credential
// the enrollment belongs to.
func evaluateOwningSubject(db *gorm.DB, enrollmentID uint) error {
	var enrollment courseModels.Enrollment
	if err := db.First(&enrollment, enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	switch enrollment.SubjectType {
	case certModels.TypeCourse:
		_, err := EvaluateCourse(db, enrollment.UserID, enrollment.ReferenceID)
		return err
	default:
		// Webinars and other credential types complete via the sweep or the
		// admin path, not chapter progress.
		return nil
	}
}

// CourseProgressSummary is the learner-facing progress report for one course
type CourseProgressSummary struct {
	TotalChapters     int                            `json:"total_chapters"`
	CompletedChapters int                            `json:"completed_chapters"`
	ProgressPercent   float64                        `json:"progress_percent"`
	Completed         bool                           `json:"completed"`
	Chapters          []courseModels.ChapterProgress `json:"chapters"`
}

// GetCourseProgress aggregates a learner's per-chapter progress for a course
func GetCourseProgress(db *gorm.DB, userID, courseID uint) (*CourseProgressSummary, error) {
	var enrollment courseModels.Enrollment
	err := db.Where("user_id = ? AND subject_type = ? AND reference_id = ? AND is_deleted = ?",
		userID, certModels.TypeCourse, courseID, false).First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}

	var chapterIDs []uint
	if err := db.Model(&courseModels.Chapter{}).
		Where("course_id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).
		Pluck("id", &chapterIDs).Error; err != nil {
		return nil, err
	}

	summary := CourseProgressSummary{TotalChapters: len(chapterIDs)}
	if len(chapterIDs) > 0 {
		if err := db.Where("enrollment_id = ? AND chapter_id IN ?", enrollment.ID, chapterIDs).
			Find(&summary.Chapters).Error; err != nil {
			return nil, err
		}
	}

	for _, p := range summary.Chapters {
		if p.Completed || p.ProgressPercent >= completionThreshold {
			summary.CompletedChapters++
		}
	}
	if summary.TotalChapters > 0 {
		summary.ProgressPercent = float64(summary.CompletedChapters) / float64(summary.TotalChapters) * 100
	}

	var marker courseModels.CourseCompletion
	if err := db.Where("course_id = ? AND user_id = ?", courseID, userID).First(&marker).Error; err == nil {
		summary.Completed = true
	}

	return &summary, nil
}
