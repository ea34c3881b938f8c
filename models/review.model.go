package models

import "gorm.io/gorm"

// Review is a learner's rating of a course or webinar. The completion flow only
// checks for its existence before sending a review-request email.
type Review struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null"` // Who gave the review
	SubjectType string `gorm:"not null"`       // COURSE, WEBINAR, ...
	ReferenceID uint   `gorm:"index;not null"` // Course/webinar ID
	Rating      int    `gorm:"not null;check:rating >= 1 AND rating <= 5"` // 1–5 rating
	Comment     string `gorm:"type:text;default:''"`                      // Optional comment
	IsDeleted   bool   `gorm:"default:false"`
}
