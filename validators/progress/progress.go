package progressValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// RecordProgressRequest is the validated progress-update payload. Percent is
// clamped downstream, not rejected.
type RecordProgressRequest struct {
	Percent   float64 `json:"percent"`
	Completed *bool   `json:"completed"`
}

// RecordProgress validates a chapter progress update
func RecordProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("course_id"))
		chapterIDStr := strings.TrimSpace(c.Params("chapter_id"))

		if courseIDStr == "" || chapterIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID and Chapter ID are required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		chapterID, err := strconv.Atoi(chapterIDStr)
		if err != nil || chapterID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Chapter ID!", nil)
		}

		reqData := new(RecordProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("chapterID", chapterID)
		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// GetCourseProgress validates a progress summary request
func GetCourseProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("course_id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}
