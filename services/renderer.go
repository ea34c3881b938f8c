package services

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"lms/config"

	"github.com/jung-kurt/gofpdf"
)

// CertificateData carries the five data fields every rendered certificate must
// contain.
type CertificateData struct {
	RecipientName   string
	CredentialLabel string // "Course", "Webinar", ...
	CredentialTitle string
	CertificateNo   string
	IssuedAt        time.Time
}

// Page geometry in mm (A4 landscape)
const (
	pageWidth  = 297.0
	pageHeight = 210.0
)

// RenderCertificate composes the fixed-layout certificate PDF. Optional assets
// (logo, signature, stamp) that are absent or undecodable are skipped without
// failing the render.
func RenderCertificate(data CertificateData, tpl TemplateConfig, assets TemplateAssets) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	brandR, brandG, brandB := hexToRGB(tpl.BrandColor, 0, 0, 77)
	accentR, accentG, accentB := hexToRGB(tpl.AccentColor, 215, 181, 109)

	// Double border: outer brand, inner accent
	pdf.SetLineWidth(1.2)
	pdf.SetDrawColor(brandR, brandG, brandB)
	pdf.Rect(8, 8, pageWidth-16, pageHeight-16, "D")
	pdf.SetLineWidth(0.4)
	pdf.SetDrawColor(accentR, accentG, accentB)
	pdf.Rect(11, 11, pageWidth-22, pageHeight-22, "D")

	y := 24.0

	// Logo, centered at the top when present
	if name := registerImage(pdf, "logo", assets.Logo, assets.LogoType); name != "" {
		pdf.ImageOptions(name, pageWidth/2-14, y-6, 28, 0, false, gofpdf.ImageOptions{}, 0, "")
		y += 26
	}

	pdf.SetTextColor(brandR, brandG, brandB)
	pdf.SetFont("Helvetica", "B", 30)
	pdf.Text(centerX(pdf, "CERTIFICATE OF COMPLETION"), y, "CERTIFICATE OF COMPLETION")
	y += 10

	pdf.SetFont("Helvetica", "", 13)
	pdf.SetTextColor(90, 90, 90)
	issuedBy := "Issued by " + tpl.IssuerName
	pdf.Text(centerX(pdf, issuedBy), y, issuedBy)
	y += 16

	pdf.SetFont("Helvetica", "", 14)
	pdf.Text(centerX(pdf, "This certifies that"), y, "This certifies that")
	y += 14

	// Recipient name, underlined to the measured text width
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(brandR, brandG, brandB)
	nameWidth := pdf.GetStringWidth(data.RecipientName)
	nameX := (pageWidth - nameWidth) / 2
	pdf.Text(nameX, y, data.RecipientName)
	pdf.SetLineWidth(0.5)
	pdf.SetDrawColor(accentR, accentG, accentB)
	pdf.Line(nameX, y+2.5, nameX+nameWidth, y+2.5)
	y += 14

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(90, 90, 90)
	completedLine := fmt.Sprintf("has successfully completed the %s", strings.ToLower(data.CredentialLabel))
	pdf.Text(centerX(pdf, completedLine), y, completedLine)
	y += 11

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(brandR, brandG, brandB)
	pdf.Text(centerX(pdf, data.CredentialTitle), y, data.CredentialTitle)
	y += 13

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	detailLine := fmt.Sprintf("Issued on %s    |    Certificate No: %s",
		data.IssuedAt.Format("02 January 2006"), data.CertificateNo)
	pdf.Text(centerX(pdf, detailLine), y, detailLine)

	// Two-column signature/stamp footer
	footerY := pageHeight - 48
	leftX := pageWidth * 0.25
	rightX := pageWidth * 0.75

	if name := registerImage(pdf, "signature", assets.Signature, assets.SignatureType); name != "" {
		pdf.ImageOptions(name, leftX-17, footerY-14, 34, 0, false, gofpdf.ImageOptions{}, 0, "")
	}
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.3)
	pdf.Line(leftX-25, footerY+4, leftX+25, footerY+4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(brandR, brandG, brandB)
	pdf.Text(leftX-pdf.GetStringWidth(tpl.IssuerName)/2, footerY+10, tpl.IssuerName)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.Text(leftX-pdf.GetStringWidth(tpl.IssuerTitle)/2, footerY+15, tpl.IssuerTitle)

	if name := registerImage(pdf, "stamp", assets.Stamp, assets.StampType); name != "" {
		pdf.ImageOptions(name, rightX-14, footerY-16, 28, 0, false, gofpdf.ImageOptions{}, 0, "")
	} else {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(120, 120, 120)
		label := "Official Seal"
		pdf.Text(rightX-pdf.GetStringWidth(label)/2, footerY+10, label)
	}

	// Verification footer
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	verifyLine := fmt.Sprintf("%s  -  Verify at %s/%s",
		tpl.FooterText, strings.TrimRight(config.AppConfig.VerifyBaseURL, "/"), data.CertificateNo)
	pdf.Text(centerX(pdf, verifyLine), pageHeight-16, verifyLine)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to compose certificate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// registerImage validates and registers an optional asset with the PDF. Returns
// the registered name, or "" when the asset is absent or not a decodable image.
func registerImage(pdf *gofpdf.Fpdf, name string, data []byte, contentType string) string {
	if len(data) == 0 {
		return ""
	}

	// Validate before handing to gofpdf: a corrupt asset must degrade to
	// absent, not poison the whole document.
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		log.Println("Skipping undecodable certificate asset", name, ":", err)
		return ""
	}

	var imageType string
	switch {
	case format == "png" || strings.Contains(contentType, "png"):
		imageType = "PNG"
	case format == "jpeg" || strings.Contains(contentType, "jpeg"):
		imageType = "JPG"
	default:
		log.Println("Skipping certificate asset", name, "with unsupported format:", format)
		return ""
	}

	pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if pdf.Err() {
		log.Println("Skipping certificate asset", name, ":", pdf.Error())
		pdf.ClearError()
		return ""
	}
	return name
}

func centerX(pdf *gofpdf.Fpdf, text string) float64 {
	return (pageWidth - pdf.GetStringWidth(text)) / 2
}

// hexToRGB parses #RRGGBB, falling back to the given default channels
func hexToRGB(hexColor string, defR, defG, defB int) (int, int, int) {
	s := strings.TrimPrefix(strings.TrimSpace(hexColor), "#")
	if len(s) != 6 {
		return defR, defG, defB
	}
	var r, g, b int
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return defR, defG, defB
	}
	return r, g, b
}
