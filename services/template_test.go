package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	certModels "lms/models/certificate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTemplateDefaults(t *testing.T) {
	db := setupTestDB(t)

	cfg := ResolveTemplate(db, certModels.TypeCourse)
	assert.Equal(t, "Classia Capital Academy", cfg.IssuerName)
	assert.Equal(t, defaultBrandColor, cfg.BrandColor)
	assert.Equal(t, defaultAccentColor, cfg.AccentColor)
	assert.NotEmpty(t, cfg.FooterText)
	assert.Empty(t, cfg.LogoURL)
}

func TestResolveTemplateOverlaysStoredRow(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&certModels.CertificateTemplate{
		Type:       certModels.TypeWebinar,
		IssuerName: "Classia Research Desk",
		BrandColor: "#112233",
		LogoURL:    "https://cdn.example.com/logo.png",
	}).Error)

	cfg := ResolveTemplate(db, certModels.TypeWebinar)
	assert.Equal(t, "Classia Research Desk", cfg.IssuerName)
	assert.Equal(t, "#112233", cfg.BrandColor)
	assert.Equal(t, "https://cdn.example.com/logo.png", cfg.LogoURL)
	// Unset fields keep their defaults
	assert.Equal(t, defaultAccentColor, cfg.AccentColor)
	assert.NotEmpty(t, cfg.FooterText)

	// Another type is unaffected
	cfg = ResolveTemplate(db, certModels.TypeCourse)
	assert.Equal(t, defaultBrandColor, cfg.BrandColor)
}

func TestFetchTemplateAssetsDegradesPerAsset(t *testing.T) {
	setupTestDB(t)

	logo := []byte("logo-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/logo.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write(logo)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	cfg := TemplateConfig{
		LogoURL:      server.URL + "/logo.png",
		SignatureURL: server.URL + "/missing.png",
		StampURL:     "http://127.0.0.1:1/unreachable.png",
	}

	assets := FetchTemplateAssets(cfg)

	// One good asset, the failures degrade to absent
	assert.Equal(t, logo, assets.Logo)
	assert.Equal(t, "image/png", assets.LogoType)
	assert.Nil(t, assets.Signature)
	assert.Nil(t, assets.Stamp)
}

func TestFetchTemplateAssetsEmptyURLs(t *testing.T) {
	assets := FetchTemplateAssets(TemplateConfig{})
	assert.Nil(t, assets.Logo)
	assert.Nil(t, assets.Signature)
	assert.Nil(t, assets.Stamp)
}
