package controllers

import (
	"errors"

	"lms/database"
	"lms/middleware"
	certModels "lms/models/certificate"
	"lms/services"
	certificateValidator "lms/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

// ListCertificates lists certificates for the admin back office with
// filtering, search and pagination
func ListCertificates(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCertificateList").(*struct {
		Page   *int   `query:"page"`
		Limit  *int   `query:"limit"`
		Type   string `query:"type"`
		Status string `query:"status"`
		UserID *int   `query:"user_id"`
		Search string `query:"search"`
	})

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&certModels.Certificate{})
	if reqData.Type != "" {
		db = db.Where("type = ?", reqData.Type)
	}
	if reqData.Status != "" {
		db = db.Where("status = ?", reqData.Status)
	}
	if reqData.UserID != nil {
		db = db.Where("user_id = ?", *reqData.UserID)
	}
	if reqData.Search != "" {
		db = db.Where("certificate_no LIKE ?", "%"+reqData.Search+"%")
	}

	var total int64
	db.Count(&total)

	var certificates []certModels.Certificate
	if err := db.Offset(offset).Limit(limit).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	response := map[string]interface{}{
		"certificates": certificates,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", response)
}

// ManualIssueCertificate issues a certificate for an arbitrary user/subject
// pair. Idempotent: re-issuing returns the existing certificate.
func ManualIssueCertificate(c *fiber.Ctx) error {
	reqData := c.Locals("validatedManualIssue").(*certificateValidator.ManualIssueRequest)

	cert, err := services.IssueCertificate(database.Database.Db, reqData.UserID, reqData.Type, reqData.ReferenceID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User or subject not found!", nil)
		}
		if errors.Is(err, services.ErrUnknownType) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown certificate type!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", cert)
}

// RevokeCertificate revokes an issued certificate
func RevokeCertificate(c *fiber.Ctx) error {
	certificateID := c.Locals("certificateID").(uint)

	cert, err := services.RevokeCertificate(database.Database.Db, certificateID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
		}
		if errors.Is(err, services.ErrInvalidState) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate is already revoked!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to revoke certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate revoked successfully!", cert)
}

// RestoreCertificate restores a revoked certificate
func RestoreCertificate(c *fiber.Ctx) error {
	certificateID := c.Locals("certificateID").(uint)

	cert, err := services.RestoreCertificate(database.Database.Db, certificateID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
		}
		if errors.Is(err, services.ErrInvalidState) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only revoked certificates can be restored!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to restore certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate restored successfully!", cert)
}

// DeleteCertificate hard-deletes a certificate and its stored artifact
func DeleteCertificate(c *fiber.Ctx) error {
	certificateID := c.Locals("certificateID").(uint)

	if err := services.DeleteCertificate(database.Database.Db, certificateID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate deleted successfully!", nil)
}

// RegenerateCertificate deletes and freshly re-issues a certificate
func RegenerateCertificate(c *fiber.Ctx) error {
	certificateID := c.Locals("certificateID").(uint)

	cert, err := services.RegenerateCertificate(database.Database.Db, certificateID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to regenerate certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate regenerated successfully!", cert)
}

// ProcessEndedWebinars drives completion and issuance for all webinars whose
// end time has passed
func ProcessEndedWebinars(c *fiber.Ctx) error {
	processed, err := services.ProcessEndedWebinars(database.Database.Db)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process ended webinars!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ended webinars processed successfully!", fiber.Map{
		"processed_webinars": processed,
	})
}

// UpsertCertificateTemplate creates or updates the template row for a
// certificate type
func UpsertCertificateTemplate(c *fiber.Ctx) error {
	certType := c.Locals("certificateType").(string)
	reqData := c.Locals("validatedTemplate").(*certificateValidator.TemplateRequest)

	var template certModels.CertificateTemplate
	err := database.Database.Db.Where("type = ?", certType).First(&template).Error
	if err != nil {
		template = certModels.CertificateTemplate{Type: certType}
	}

	template.IssuerName = reqData.IssuerName
	template.IssuerTitle = reqData.IssuerTitle
	template.BrandColor = reqData.BrandColor
	template.AccentColor = reqData.AccentColor
	template.FooterText = reqData.FooterText
	template.LogoURL = reqData.LogoURL
	template.SignatureURL = reqData.SignatureURL
	template.StampURL = reqData.StampURL
	template.IsDeleted = false

	if err := database.Database.Db.Save(&template).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save certificate template!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate template saved successfully!", template)
}

// GetCertificateTemplate returns the stored template for a certificate type
func GetCertificateTemplate(c *fiber.Ctx) error {
	certType := c.Locals("certificateType").(string)

	var template certModels.CertificateTemplate
	if err := database.Database.Db.Where("type = ? AND is_deleted = ?", certType, false).First(&template).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No template configured for this type!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate template fetched successfully!", template)
}
