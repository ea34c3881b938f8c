package certificate

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Certificate types. The same table serves every credential-bearing product via
// the Type discriminant and the generic ReferenceID.
const (
	TypeCourse       = "COURSE"
	TypeWebinar      = "WEBINAR"
	TypeMentorship   = "MENTORSHIP"
	TypeGuidance     = "GUIDANCE"
	TypeOfflineBatch = "OFFLINE_BATCH"
	TypeBundle       = "BUNDLE"
)

// Certificate statuses
const (
	StatusGenerated = "GENERATED"
	StatusRevoked   = "REVOKED"
)

// Certificate represents an issued certificate for a completed credential
type Certificate struct {
	gorm.Model
	UserID         uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_cert_user_type_ref"`
	Type           string    `json:"type" gorm:"not null;uniqueIndex:idx_cert_user_type_ref"`
	ReferenceID    uint      `json:"reference_id" gorm:"not null;uniqueIndex:idx_cert_user_type_ref"`
	CertificateNo  string    `json:"certificate_no" gorm:"unique;not null"`
	CertificateURL string    `json:"certificate_url"`
	IssuedAt       time.Time `json:"issued_at"`
	Status         string    `json:"status" gorm:"default:'GENERATED'"` // GENERATED, REVOKED
}

// CertificateTemplate holds per-credential-type rendering configuration.
// Optional; absence falls back to default styling. Admin-managed, read-only to
// the issuance flow.
type CertificateTemplate struct {
	gorm.Model
	Type         string         `json:"type" gorm:"unique;not null"`
	IssuerName   string         `json:"issuer_name"`
	IssuerTitle  string         `json:"issuer_title"`
	BrandColor   string         `json:"brand_color"`  // #RRGGBB
	AccentColor  string         `json:"accent_color"` // #RRGGBB
	FooterText   string         `json:"footer_text"`
	LogoURL      string         `json:"logo_url"`
	SignatureURL string         `json:"signature_url"`
	StampURL     string         `json:"stamp_url"`
	Palette      datatypes.JSON `json:"palette"` // extra style overrides
	IsDeleted    bool           `gorm:"default:false"`
}
