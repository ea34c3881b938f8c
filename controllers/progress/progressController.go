package controllers

import (
	"errors"

	"lms/database"
	"lms/middleware"
	"lms/models"
	certModels "lms/models/certificate"
	courseModels "lms/models/course"
	"lms/services"
	progressValidator "lms/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// RecordChapterProgress stores a learner's watch progress for one chapter and
// triggers the completion evaluator
func RecordChapterProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)
	reqData := c.Locals("validatedProgress").(*progressValidator.RecordProgressRequest)

	// Chapter must exist, be published and belong to the course
	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_published = ? AND is_deleted = ?",
		chapterID, courseID, true, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	// Access rule: a valid enrollment, or a free-preview chapter
	var enrollment courseModels.Enrollment
	err := database.Database.Db.Where("user_id = ? AND subject_type = ? AND reference_id = ? AND is_deleted = ?",
		userID, certModels.TypeCourse, courseID, false).First(&enrollment).Error
	if err != nil {
		if !chapter.IsPreview {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
		}
		// Free-preview chapters are watchable without an enrollment; there is
		// no enrollment row to record progress against.
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Preview chapter watched!", nil)
	}

	progress, evaluated, err := services.RecordProgress(
		database.Database.Db, uint(chapterID), enrollment.ID, reqData.Percent, reqData.Completed)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress saved successfully!", fiber.Map{
		"progress":           progress,
		"evaluation_pending": !evaluated,
	})
}

// GetCourseProgress returns the learner's progress summary for a course
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	summary, err := services.GetCourseProgress(database.Database.Db, userID, uint(courseID))
	if err != nil {
		if errors.Is(err, services.ErrNotEnrolled) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", summary)
}
