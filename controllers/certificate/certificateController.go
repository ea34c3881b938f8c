package controllers

import (
	"errors"

	"lms/database"
	"lms/middleware"
	"lms/models"
	certModels "lms/models/certificate"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var certificates []certModels.Certificate
	if err := database.Database.Db.Where("user_id = ?", userID).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	type CertificateWithTitle struct {
		certModels.Certificate
		CredentialTitle string `json:"credential_title"`
	}

	result := make([]CertificateWithTitle, len(certificates))
	for i, cert := range certificates {
		result[i] = CertificateWithTitle{Certificate: cert}
		if verification, err := services.VerifyCertificate(database.Database.Db, cert.CertificateNo); err == nil {
			result[i].CredentialTitle = verification.CredentialTitle
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}

// DownloadCertificate returns the artifact link for one of the current user's
// certificates. Ownership and GENERATED status are re-checked here.
func DownloadCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	certificateID := c.Locals("certificateID").(uint)

	var cert certModels.Certificate
	if err := database.Database.Db.Where("id = ? AND user_id = ?", certificateID, userID).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if cert.Status != certModels.StatusGenerated {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This certificate has been revoked!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate link fetched successfully!", fiber.Map{
		"certificate_no": cert.CertificateNo,
		"download_url":   utils.ArtifactURL(cert.CertificateURL),
	})
}

// VerifyCertificate is the public verify-by-number endpoint. A revoked
// certificate returns valid:false with metadata; an unknown number returns 404.
func VerifyCertificate(c *fiber.Ctx) error {
	certificateNo := c.Locals("certificateNo").(string)

	verification, err := services.VerifyCertificate(database.Database.Db, certificateNo)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify certificate!", nil)
	}

	message := "Certificate is valid!"
	if !verification.Valid {
		message = "Certificate has been revoked!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, verification)
}
