package services

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"lms/config"
	"lms/models"
	certModels "lms/models/certificate"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		StorageDir:    t.TempDir(),
		PublicBaseURL: "http://localhost:3000",
		VerifyBaseURL: "http://localhost:3000/certificate/verify",
		IssuerName:    "Classia Capital Academy",
		IssuerTitle:   "Director of Learning",
	}

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Review{},
		&courseModels.Course{},
		&courseModels.Chapter{},
		&courseModels.Webinar{},
		&courseModels.Enrollment{},
		&courseModels.ChapterProgress{},
		&courseModels.CourseCompletion{},
		&courseModels.WebinarCompletion{},
		&certModels.Certificate{},
		&certModels.CertificateTemplate{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s-%d@example.com", name, time.Now().UnixNano()),
		Password: "secret",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// seedCourse creates a published course with the given number of published
// chapters and an enrollment for the user.
func seedCourse(t *testing.T, db *gorm.DB, user *models.User, chapterCount int) (*courseModels.Course, []courseModels.Chapter, *courseModels.Enrollment) {
	t.Helper()

	course := courseModels.Course{Title: "Options Trading Fundamentals", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	chapters := make([]courseModels.Chapter, 0, chapterCount)
	for i := 0; i < chapterCount; i++ {
		chapter := courseModels.Chapter{
			CourseID:    course.ID,
			Title:       fmt.Sprintf("Chapter %d", i+1),
			OrderIndex:  i,
			IsPublished: true,
		}
		require.NoError(t, db.Create(&chapter).Error)
		chapters = append(chapters, chapter)
	}

	enrollment := courseModels.Enrollment{
		UserID:      user.ID,
		SubjectType: certModels.TypeCourse,
		ReferenceID: course.ID,
	}
	require.NoError(t, db.Create(&enrollment).Error)

	return &course, chapters, &enrollment
}

func seedWebinar(t *testing.T, db *gorm.DB, ended bool) *courseModels.Webinar {
	t.Helper()

	start := time.Now().Add(1 * time.Hour)
	end := time.Now().Add(2 * time.Hour)
	if ended {
		start = time.Now().Add(-2 * time.Hour)
		end = time.Now().Add(-1 * time.Hour)
	}

	webinar := courseModels.Webinar{
		Title:       "Market Outlook Q3",
		Host:        "Research Desk",
		StartTime:   start,
		EndTime:     end,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&webinar).Error)
	return &webinar
}

func enrollInWebinar(t *testing.T, db *gorm.DB, user *models.User, webinarID uint) {
	t.Helper()
	enrollment := courseModels.Enrollment{
		UserID:      user.ID,
		SubjectType: certModels.TypeWebinar,
		ReferenceID: webinarID,
	}
	require.NoError(t, db.Create(&enrollment).Error)
}

func certificateCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&certModels.Certificate{}).Count(&count).Error)
	return count
}
