package certificateValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	"lms/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CertificateID validates the :id path parameter
func CertificateID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Certificate ID!", nil)
		}

		c.Locals("certificateID", uint(id))
		return c.Next()
	}
}

// VerifyCertificate validates the public verify-by-number request
func VerifyCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		certificateNo := strings.TrimSpace(c.Params("certificate_no"))
		if certificateNo == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate number is required!", nil)
		}

		c.Locals("certificateNo", certificateNo)
		return c.Next()
	}
}

// CertificateList validates the admin list/filter request
func CertificateList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page   *int   `query:"page"`
			Limit  *int   `query:"limit"`
			Type   string `query:"type"`
			Status string `query:"status"`
			UserID *int   `query:"user_id"`
			Search string `query:"search"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		// Set defaults if not provided
		defaultPage := 1
		defaultLimit := 10
		if reqData.Page == nil || *reqData.Page < 1 {
			reqData.Page = &defaultPage
		}
		if reqData.Limit == nil || *reqData.Limit < 1 {
			reqData.Limit = &defaultLimit
		}

		if reqData.Type != "" && !services.IsValidCertificateType(reqData.Type) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate type!", nil)
		}

		c.Locals("validatedCertificateList", reqData)
		return c.Next()
	}
}

// ManualIssueRequest is the admin manual-issue payload
type ManualIssueRequest struct {
	UserID      uint   `json:"user_id" validate:"required,gt=0"`
	Type        string `json:"type" validate:"required"`
	ReferenceID uint   `json:"reference_id" validate:"required,gt=0"`
}

// ManualIssue validates the admin manual-issue request
func ManualIssue() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ManualIssueRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "UserID":
					errors["user_id"] = "User ID is required!"
				case "Type":
					errors["type"] = "Certificate type is required!"
				case "ReferenceID":
					errors["reference_id"] = "Reference ID is required!"
				}
			}
		}

		reqData.Type = strings.ToUpper(strings.TrimSpace(reqData.Type))
		if reqData.Type != "" && !services.IsValidCertificateType(reqData.Type) {
			errors["type"] = "Unknown certificate type!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedManualIssue", reqData)
		return c.Next()
	}
}

// TemplateRequest is the admin template upsert payload
type TemplateRequest struct {
	IssuerName   string `json:"issuer_name" validate:"omitempty,max=120"`
	IssuerTitle  string `json:"issuer_title" validate:"omitempty,max=120"`
	BrandColor   string `json:"brand_color" validate:"omitempty,hexcolor"`
	AccentColor  string `json:"accent_color" validate:"omitempty,hexcolor"`
	FooterText   string `json:"footer_text" validate:"omitempty,max=300"`
	LogoURL      string `json:"logo_url" validate:"omitempty,url"`
	SignatureURL string `json:"signature_url" validate:"omitempty,url"`
	StampURL     string `json:"stamp_url" validate:"omitempty,url"`
}

// UpsertTemplate validates the admin template upsert request
func UpsertTemplate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		certType := strings.ToUpper(strings.TrimSpace(c.Params("type")))
		if certType == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate type is required in the URL!", nil)
		}
		if !services.IsValidCertificateType(certType) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown certificate type!", nil)
		}

		reqData := new(TemplateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "BrandColor":
					errors["brand_color"] = "Brand color must be a hex color like #00004D!"
				case "AccentColor":
					errors["accent_color"] = "Accent color must be a hex color like #D7B56D!"
				case "LogoURL":
					errors["logo_url"] = "Logo URL must be a valid URL!"
				case "SignatureURL":
					errors["signature_url"] = "Signature URL must be a valid URL!"
				case "StampURL":
					errors["stamp_url"] = "Stamp URL must be a valid URL!"
				default:
					errors[strings.ToLower(fieldErr.Field())] = "Invalid value!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("certificateType", certType)
		c.Locals("validatedTemplate", reqData)
		return c.Next()
	}
}

// TemplateType validates the :type path parameter
func TemplateType() fiber.Handler {
	return func(c *fiber.Ctx) error {
		certType := strings.ToUpper(strings.TrimSpace(c.Params("type")))
		if certType == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate type is required in the URL!", nil)
		}
		if !services.IsValidCertificateType(certType) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown certificate type!", nil)
		}

		c.Locals("certificateType", certType)
		return c.Next()
	}
}
