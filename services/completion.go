package services

import (
	"errors"
	"log"
	"time"

	"lms/models"
	certModels "lms/models/certificate"
	courseModels "lms/models/course"
	"lms/utils"

	"gorm.io/gorm"
)

// EvaluationResult is what the completion evaluator reports back
type EvaluationResult struct {
	Completed bool `json:"completed"`
	IsNew     bool `json:"is_new"`
}

// EvaluateCourse re-checks whether a learner has satisfied every required unit
// of a course. Completion is monotonic: once the marker exists the units are
// never re-evaluated. The marker's unique constraint is the sole guarantee
// against double completion under concurrent evaluations; hitting it is a
// benign race, not an error.
func EvaluateCourse(db *gorm.DB, userID, courseID uint) (EvaluationResult, error) {
	var marker courseModels.CourseCompletion
	err := db.Where("course_id = ? AND user_id = ?", courseID, userID).First(&marker).Error
	if err == nil {
		return EvaluationResult{Completed: true, IsNew: false}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return EvaluationResult{}, err
	}

	var enrollment courseModels.Enrollment
	err = db.Where("user_id = ? AND subject_type = ? AND reference_id = ? AND is_deleted = ?",
		userID, certModels.TypeCourse, courseID, false).First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EvaluationResult{}, ErrNotEnrolled
		}
		return EvaluationResult{}, err
	}

	var chapterIDs []uint
	if err := db.Model(&courseModels.Chapter{}).
		Where("course_id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).
		Pluck("id", &chapterIDs).Error; err != nil {
		return EvaluationResult{}, err
	}

	// A course with zero published chapters is never auto-completed
	if len(chapterIDs) == 0 {
		return EvaluationResult{}, nil
	}

	var satisfied int64
	if err := db.Model(&courseModels.ChapterProgress{}).
		Where("enrollment_id = ? AND chapter_id IN ?", enrollment.ID, chapterIDs).
		Where("(progress_percent >= ? OR completed = ?)", completionThreshold, true).
		Count(&satisfied).Error; err != nil {
		return EvaluationResult{}, err
	}

	if satisfied < int64(len(chapterIDs)) {
		return EvaluationResult{}, nil
	}

	marker = courseModels.CourseCompletion{
		CourseID:    courseID,
		UserID:      userID,
		CompletedAt: time.Now(),
	}
	if err := db.Create(&marker).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent evaluation recorded completion first
			return EvaluationResult{Completed: true, IsNew: false}, nil
		}
		return EvaluationResult{}, err
	}

	db.Model(&enrollment).Updates(map[string]interface{}{"status": "COMPLETED"})

	onFirstCompletion(db, userID, certModels.TypeCourse, courseID)

	return EvaluationResult{Completed: true, IsNew: true}, nil
}

// CompleteWebinar records the one-time completion marker for a webinar
// attendee. Used by the end-time sweep and the admin bulk-process path.
func CompleteWebinar(db *gorm.DB, userID, webinarID uint) (bool, error) {
	var marker courseModels.WebinarCompletion
	err := db.Where("webinar_id = ? AND user_id = ?", webinarID, userID).First(&marker).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	marker = courseModels.WebinarCompletion{
		WebinarID:   webinarID,
		UserID:      userID,
		CompletedAt: time.Now(),
	}
	if err := db.Create(&marker).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}

	onFirstCompletion(db, userID, certModels.TypeWebinar, webinarID)

	return true, nil
}

// onFirstCompletion runs the side effects of a fresh completion marker:
// certificate issuance and the review-request email. An issuance failure is
// logged, never propagated - the marker stands and a later retry re-attempts
// issuance without re-evaluating units.
func onFirstCompletion(db *gorm.DB, userID uint, certType string, referenceID uint) {
	if _, err := IssueCertificate(db, userID, certType, referenceID); err != nil {
		log.Printf("Certificate issuance failed for user %d %s %d (completion stands, will retry): %v",
			userID, certType, referenceID, err)
	}

	var reviewCount int64
	db.Model(&models.Review{}).
		Where("user_id = ? AND subject_type = ? AND reference_id = ? AND is_deleted = ?",
			userID, certType, referenceID, false).
		Count(&reviewCount)
	if reviewCount > 0 {
		return
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return
	}
	title := ""
	if credType, ok := credentialTypes[certType]; ok {
		if t, err := credType.TitleOf(db, referenceID); err == nil {
			title = t
		}
	}
	utils.SendReviewRequestEmail(user.Email, user.Name, title)
}

// ProcessEndedWebinars drives completion and issuance for every enrollee of
// webinars whose scheduled end time has passed. Best-effort batch: individual
// per-user failures are logged and do not abort the run. A webinar is marked
// processed only once every enrollee succeeded, so failures are retried on the
// next sweep.
func ProcessEndedWebinars(db *gorm.DB) (int, error) {
	var webinars []courseModels.Webinar
	err := db.Where("end_time <= ? AND is_published = ? AND certificates_processed = ? AND is_deleted = ?",
		time.Now(), true, false, false).Find(&webinars).Error
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, webinar := range webinars {
		var enrollments []courseModels.Enrollment
		err := db.Where("subject_type = ? AND reference_id = ? AND is_deleted = ?",
			certModels.TypeWebinar, webinar.ID, false).Find(&enrollments).Error
		if err != nil {
			log.Printf("Failed to fetch enrollments for webinar %d: %v", webinar.ID, err)
			continue
		}

		allDone := true
		for _, enrollment := range enrollments {
			if _, err := CompleteWebinar(db, enrollment.UserID, webinar.ID); err != nil {
				log.Printf("Failed to complete webinar %d for user %d: %v", webinar.ID, enrollment.UserID, err)
				allDone = false
				continue
			}
			// Issuance may have failed earlier and been swallowed by
			// onFirstCompletion; re-attempt so the sweep heals pending
			// certificates.
			if _, err := IssueCertificate(db, enrollment.UserID, certModels.TypeWebinar, webinar.ID); err != nil {
				log.Printf("Certificate issuance pending for user %d webinar %d: %v", enrollment.UserID, webinar.ID, err)
				allDone = false
			}
		}

		if allDone {
			db.Model(&webinar).Update("certificates_processed", true)
			processed++
		}
	}

	return processed, nil
}
