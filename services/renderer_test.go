package services

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"lms/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rendererConfig(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		VerifyBaseURL: "http://localhost:3000/certificate/verify",
		IssuerName:    "Classia Capital Academy",
		IssuerTitle:   "Director of Learning",
	}
}

func defaultTemplate() TemplateConfig {
	return TemplateConfig{
		IssuerName:  "Classia Capital Academy",
		IssuerTitle: "Director of Learning",
		BrandColor:  "#00004D",
		AccentColor: "#D7B56D",
		FooterText:  "This certificate can be verified online using the certificate number.",
	}
}

func sampleData() CertificateData {
	return CertificateData{
		RecipientName:   "Asha Verma",
		CredentialLabel: "Course",
		CredentialTitle: "Options Trading Fundamentals",
		CertificateNo:   "CERT-20260830120000000000001-AB12CD34",
		IssuedAt:        time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 0, G: 0, B: 77, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRenderCertificateWithZeroAssets(t *testing.T) {
	rendererConfig(t)

	data, err := RenderCertificate(sampleData(), defaultTemplate(), TemplateAssets{})
	require.NoError(t, err)
	require.True(t, len(data) > 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderCertificateWithAllAssets(t *testing.T) {
	rendererConfig(t)

	img := pngBytes(t)
	assets := TemplateAssets{
		Logo: img, LogoType: "image/png",
		Signature: img, SignatureType: "image/png",
		Stamp: img, StampType: "image/png",
	}

	data, err := RenderCertificate(sampleData(), defaultTemplate(), assets)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderCertificateSkipsCorruptAssets(t *testing.T) {
	rendererConfig(t)

	assets := TemplateAssets{
		Logo:      []byte("not an image at all"),
		LogoType:  "image/png",
		Stamp:     []byte{0x00, 0x01, 0x02},
		StampType: "image/jpeg",
	}

	data, err := RenderCertificate(sampleData(), defaultTemplate(), assets)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderCertificateToleratesBadColors(t *testing.T) {
	rendererConfig(t)

	tpl := defaultTemplate()
	tpl.BrandColor = "navy"
	tpl.AccentColor = "#ZZZZZZ"

	data, err := RenderCertificate(sampleData(), tpl, TemplateAssets{})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}
