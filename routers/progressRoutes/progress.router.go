package progressRoutes

import (
	controllers "lms/controllers/progress"
	"lms/middleware"
	validators "lms/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes sets up chapter progress tracking routes
func SetupProgressRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Watch progress updates (drives completion evaluation)
	courseGroup.Post("/:course_id/chapter/:chapter_id/progress", middleware.JWTMiddleware, validators.RecordProgress(), controllers.RecordChapterProgress)

	// Progress summary
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.GetCourseProgress(), controllers.GetCourseProgress)
}
