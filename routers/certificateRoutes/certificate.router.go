package certificateRoutes

import (
	controllers "lms/controllers/certificate"
	"lms/middleware"
	validators "lms/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up public, learner and admin certificate routes
func SetupCertificateRoutes(app *fiber.App) {
	// Public verification (unauthenticated)
	app.Get("/certificate/verify/:certificate_no", validators.VerifyCertificate(), controllers.VerifyCertificate)

	// Learner certificates
	userGroup := app.Group("/user")
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
	userGroup.Get("/certificates/:id/download", middleware.JWTMiddleware, validators.CertificateID(), controllers.DownloadCertificate)

	// Admin back office
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	adminGroup.Get("/certificates", validators.CertificateList(), controllers.ListCertificates)
	adminGroup.Post("/certificates/issue", validators.ManualIssue(), controllers.ManualIssueCertificate)
	adminGroup.Post("/certificates/:id/revoke", validators.CertificateID(), controllers.RevokeCertificate)
	adminGroup.Post("/certificates/:id/restore", validators.CertificateID(), controllers.RestoreCertificate)
	adminGroup.Post("/certificates/:id/regenerate", validators.CertificateID(), controllers.RegenerateCertificate)
	adminGroup.Delete("/certificates/:id", validators.CertificateID(), controllers.DeleteCertificate)
	adminGroup.Post("/webinars/process-ended", controllers.ProcessEndedWebinars)
	adminGroup.Put("/certificate-templates/:type", validators.UpsertTemplate(), controllers.UpsertCertificateTemplate)
	adminGroup.Get("/certificate-templates/:type", validators.TemplateType(), controllers.GetCertificateTemplate)
}
