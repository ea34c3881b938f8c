package services

import (
	"errors"
	"log"
	"time"

	"lms/config"
	certModels "lms/models/certificate"

	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"
)

// TemplateConfig is the resolved rendering configuration for one certificate
// type. Every field is always usable: defaults are applied before any stored
// template row is overlaid.
type TemplateConfig struct {
	IssuerName   string
	IssuerTitle  string
	BrandColor   string // #RRGGBB
	AccentColor  string // #RRGGBB
	FooterText   string
	LogoURL      string
	SignatureURL string
	StampURL     string
}

// TemplateAssets holds fetched binary assets. Each is independently optional;
// a nil slice means the asset is absent and the renderer skips it.
type TemplateAssets struct {
	Logo          []byte
	LogoType      string
	Signature     []byte
	SignatureType string
	Stamp         []byte
	StampType     string
}

const (
	defaultBrandColor  = "#00004D"
	defaultAccentColor = "#D7B56D"
	defaultFooterText  = "This certificate can be verified online using the certificate number."
)

// ResolveTemplate returns the rendering configuration for a certificate type.
// A missing template row falls back to hard-coded defaults, so resolution
// never fails.
func ResolveTemplate(db *gorm.DB, certType string) TemplateConfig {
	cfg := TemplateConfig{
		IssuerName:  config.AppConfig.IssuerName,
		IssuerTitle: config.AppConfig.IssuerTitle,
		BrandColor:  defaultBrandColor,
		AccentColor: defaultAccentColor,
		FooterText:  defaultFooterText,
	}

	var tpl certModels.CertificateTemplate
	err := db.Where("type = ? AND is_deleted = ?", certType, false).First(&tpl).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("Failed to load certificate template for", certType, ":", err)
		}
		return cfg
	}

	if tpl.IssuerName != "" {
		cfg.IssuerName = tpl.IssuerName
	}
	if tpl.IssuerTitle != "" {
		cfg.IssuerTitle = tpl.IssuerTitle
	}
	if tpl.BrandColor != "" {
		cfg.BrandColor = tpl.BrandColor
	}
	if tpl.AccentColor != "" {
		cfg.AccentColor = tpl.AccentColor
	}
	if tpl.FooterText != "" {
		cfg.FooterText = tpl.FooterText
	}
	cfg.LogoURL = tpl.LogoURL
	cfg.SignatureURL = tpl.SignatureURL
	cfg.StampURL = tpl.StampURL

	return cfg
}

// FetchTemplateAssets downloads the binary assets referenced by a template.
// Each fetch is best-effort: a failure degrades that one asset to absent and
// never aborts rendering.
func FetchTemplateAssets(cfg TemplateConfig) TemplateAssets {
	client := resty.New().SetTimeout(10 * time.Second)

	var assets TemplateAssets
	assets.Logo, assets.LogoType = fetchAsset(client, cfg.LogoURL)
	assets.Signature, assets.SignatureType = fetchAsset(client, cfg.SignatureURL)
	assets.Stamp, assets.StampType = fetchAsset(client, cfg.StampURL)
	return assets
}

func fetchAsset(client *resty.Client, url string) ([]byte, string) {
	if url == "" {
		return nil, ""
	}

	resp, err := client.R().Get(url)
	if err != nil {
		log.Println("Failed to fetch template asset", url, ":", err)
		return nil, ""
	}
	if resp.StatusCode() >= 400 {
		log.Println("Template asset fetch returned status", resp.StatusCode(), "for", url)
		return nil, ""
	}

	return resp.Body(), resp.Header().Get("Content-Type")
}
