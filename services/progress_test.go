package services

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordProgressClampsPercent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha")
	_, chapters, enrollment := seedCourse(t, db, user, 3)

	progress, _, err := RecordProgress(db, chapters[0].ID, enrollment.ID, -25, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, progress.ProgressPercent)
	assert.False(t, progress.Completed)

	progress, _, err = RecordProgress(db, chapters[0].ID, enrollment.ID, 180, nil)
	require.NoError(t, err)
	assert.Equal(t, 100.0, progress.ProgressPercent)
	assert.True(t, progress.Completed)
}

func TestRecordProgressThreshold(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha")
	_, chapters, enrollment := seedCourse(t, db, user, 3)

	progress, _, err := RecordProgress(db, chapters[0].ID, enrollment.ID, 89.9, nil)
	require.NoError(t, err)
	assert.False(t, progress.Completed)

	progress, _, err = RecordProgress(db, chapters[0].ID, enrollment.ID, 90, nil)
	require.NoError(t, err)
	assert.True(t, progress.Completed)
}

func TestRecordProgressExplicitCompletion(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha")
	_, chapters, enrollment := seedCourse(t, db, user, 3)

	explicit := true
	progress, _, err := RecordProgress(db, chapters[0].ID, enrollment.ID, 40, &explicit)
	require.NoError(t, err)
	assert.True(t, progress.Completed)
	assert.Equal(t, 40.0, progress.ProgressPercent)
}

func TestRecordProgressUpsertsSingleRow(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha")
	_, chapters, enrollment := seedCourse(t, db, user, 3)

	_, _, err := RecordProgress(db, chapters[0].ID, enrollment.ID, 30, nil)
	require.NoError(t, err)
	progress, _, err := RecordProgress(db, chapters[0].ID, enrollment.ID, 55, nil)
	require.NoError(t, err)
	assert.Equal(t, 55.0, progress.ProgressPercent)

	var count int64
	require.NoError(t, db.Model(&courseModels.ChapterProgress{}).
		Where("chapter_id = ? AND enrollment_id = ?", chapters[0].ID, enrollment.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetCourseProgressSummary(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha")
	course, chapters, enrollment := seedCourse(t, db, user, 4)

	_, _, err := RecordProgress(db, chapters[0].ID, enrollment.ID, 95, nil)
	require.NoError(t, err)
	_, _, err = RecordProgress(db, chapters[1].ID, enrollment.ID, 50, nil)
	require.NoError(t, err)

	summary, err := GetCourseProgress(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalChapters)
	assert.Equal(t, 1, summary.CompletedChapters)
	assert.Equal(t, 25.0, summary.ProgressPercent)
	assert.False(t, summary.Completed)
}

func TestGetCourseProgressRequiresEnrollment(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha")
	course, _, _ := seedCourse(t, db, user, 2)
	stranger := seedUser(t, db, "ravi")

	_, err := GetCourseProgress(db, stranger.ID, course.ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}
