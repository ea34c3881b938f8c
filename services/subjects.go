package services

import (
	"errors"

	certModels "lms/models/certificate"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// credentialType describes how one certificate type resolves its display label
// and credential title. All types share the certificates table; this table
// replaces per-type conditionals scattered through the issuance flow.
type credentialType struct {
	Label   string
	TitleOf func(db *gorm.DB, referenceID uint) (string, error)
}

var credentialTypes = map[string]credentialType{
	certModels.TypeCourse: {
		Label:   "Course",
		TitleOf: courseTitle,
	},
	certModels.TypeWebinar: {
		Label:   "Webinar",
		TitleOf: webinarTitle,
	},
	certModels.TypeMentorship: {
		Label:   "Mentorship Program",
		TitleOf: genericTitle("Mentorship Program"),
	},
	certModels.TypeGuidance: {
		Label:   "Guidance Call",
		TitleOf: genericTitle("Guidance Call"),
	},
	certModels.TypeOfflineBatch: {
		Label:   "Offline Batch",
		TitleOf: genericTitle("Offline Batch"),
	},
	certModels.TypeBundle: {
		Label:   "Course Bundle",
		TitleOf: genericTitle("Course Bundle"),
	},
}

// IsValidCertificateType reports whether the given type is a known credential type
func IsValidCertificateType(certType string) bool {
	_, ok := credentialTypes[certType]
	return ok
}

func courseTitle(db *gorm.DB, referenceID uint) (string, error) {
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", referenceID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return course.Title, nil
}

func webinarTitle(db *gorm.DB, referenceID uint) (string, error) {
	var webinar courseModels.Webinar
	if err := db.Where("id = ? AND is_deleted = ?", referenceID, false).First(&webinar).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return webinar.Title, nil
}

// genericTitle covers credential types without a catalog table of their own
// (mentorship, guidance, offline batches, bundles are managed outside this
// subsystem and issued through the admin path).
func genericTitle(label string) func(db *gorm.DB, referenceID uint) (string, error) {
	return func(db *gorm.DB, referenceID uint) (string, error) {
		return label, nil
	}
}
