package services

import (
	"os"
	"path/filepath"
	"testing"

	"lms/config"
	certModels "lms/models/certificate"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A failing artifact store must not roll back the completion marker; a later
// issue retry succeeds without re-evaluating units.
func TestIssuanceFailureLeavesCompletionMarker(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha")
	course, chapters, enrollment := seedCourse(t, db, user, 1)

	// Block the artifact store: point StorageDir below a plain file so every
	// write fails.
	workingDir := config.AppConfig.StorageDir
	blocked := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0644))
	config.AppConfig.StorageDir = filepath.Join(blocked, "certificates")

	_, _, err := RecordProgress(db, chapters[0].ID, enrollment.ID, 100, nil)
	require.NoError(t, err)

	// Completion was recorded even though issuance failed
	var markerCount int64
	require.NoError(t, db.Model(&courseModels.CourseCompletion{}).
		Where("course_id = ? AND user_id = ?", course.ID, user.ID).Count(&markerCount).Error)
	assert.Equal(t, int64(1), markerCount)
	assert.Equal(t, int64(0), certificateCount(t, db))

	// Direct issuance surfaces the hard failure to its caller
	_, err = IssueCertificate(db, user.ID, certModels.TypeCourse, course.ID)
	assert.ErrorIs(t, err, ErrIssuanceFailed)

	// Once the store recovers, a retry issues without re-evaluating units
	config.AppConfig.StorageDir = workingDir
	cert, err := IssueCertificate(db, user.ID, certModels.TypeCourse, course.ID)
	require.NoError(t, err)
	assert.Equal(t, certModels.StatusGenerated, cert.Status)
	assert.Equal(t, int64(1), certificateCount(t, db))

	result, err := EvaluateCourse(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.False(t, result.IsNew)
}
