package course

import (
	"time"

	"gorm.io/gorm"
)

// Webinar is a scheduled live session. Certificates for attendees are driven by
// the end-time sweep rather than per-chapter progress.
type Webinar struct {
	gorm.Model
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	Host                  string    `json:"host"`
	StartTime             time.Time `json:"start_time"`
	EndTime               time.Time `json:"end_time" gorm:"index"`
	IsPublished           bool      `json:"is_published" gorm:"default:false"`
	CertificatesProcessed bool      `json:"certificates_processed" gorm:"default:false"`
	IsDeleted             bool      `gorm:"default:false"`
}
