package services

import (
	"sync"
	"testing"

	certModels "lms/models/certificate"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCourseBelowThreshold(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha")
	course, chapters, enrollment := seedCourse(t, db, user, 3)

	for _, chapter := range chapters {
		_, _, err := RecordProgress(db, chapter.ID, enrollment.ID, 89, nil)
		require.NoError(t, err)
	}

	result, err := EvaluateCourse(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, result.Completed)
	assert.False(t, result.IsNew)
	assert.Equal(t, int64(0), certificateCount(t, db))
}

func TestExplicitCompletionFinishesCourse(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha")
	course, chapters, enrollment := seedCourse(t, db, user, 3)

	_, _, err := RecordProgress(db, chapters[0].ID, enrollment.ID, 92, nil)
	require.NoError(t, err)
	_, _, err = RecordProgress(db, chapters[1].ID, enrollment.ID, 97, nil)
	require.NoError(t, err)

	// Third chapter at 40% but explicitly marked complete
	explicit := true
	_, _, err = RecordProgress(db, chapters[2].ID, enrollment.ID, 40, &explicit)
	require.NoError(t, err)

	// The progress write already cascaded into evaluation
	var markerCount int64
	require.NoError(t, db.Model(&courseModels.CourseCompletion{}).
		Where("course_id = ? AND user_id = ?", course.ID, user.ID).Count(&markerCount).Error)
	assert.Equal(t, int64(1), markerCount)

	var cert certModels.Certificate
	require.NoError(t, db.Where("user_id = ? AND type = ? AND reference_id = ?",
		user.ID, certModels.TypeCourse, course.ID).First(&cert).Error)
	assert.Equal(t, certModels.StatusGenerated, cert.Status)

	// Re-evaluation short-circuits on the marker
	result, err := EvaluateCourse(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.False(t, result.IsNew)
}

func TestEvaluateCourseIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha")
	course, chapters, enrollment := seedCourse(t, db, user, 2)

	for _, chapter := range chapters {
		_, _, err := RecordProgress(db, chapter.ID, enrollment.ID, 100, nil)
		require.NoError(t, err)
	}

	first, err := EvaluateCourse(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, first.Completed)

	second, err := EvaluateCourse(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, second.Completed)
	assert.False(t, second.IsNew)

	var markerCount int64
	require.NoError(t, db.Model(&courseModels.CourseCompletion{}).Count(&markerCount).Error)
	assert.Equal(t, int64(1), markerCount)
	assert.Equal(t, int64(1), certificateCount(t, db))
}

func TestEvaluateCourseZeroPublishedChapters(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha")
	course, _, _ := seedCourse(t, db, user, 0)

	result, err := EvaluateCourse(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, result.Completed)
	assert.Equal(t, int64(0), certificateCount(t, db))
}

func TestEvaluateCourseRequiresEnrollment(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha")
	course, _, _ := seedCourse(t, db, user, 2)
	stranger := seedUser(t, db, "ravi")

	_, err := EvaluateCourse(db, stranger.ID, course.ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestConcurrentFinalChapterCompletion(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha")
	course, chapters, enrollment := seedCourse(t, db, user, 2)

	_, _, err := RecordProgress(db, chapters[0].ID, enrollment.ID, 100, nil)
	require.NoError(t, err)

	// Two progress updates race to push the final chapter over threshold
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := RecordProgress(db, chapters[1].ID, enrollment.ID, 95, nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var markerCount int64
	require.NoError(t, db.Model(&courseModels.CourseCompletion{}).
		Where("course_id = ? AND user_id = ?", course.ID, user.ID).Count(&markerCount).Error)
	assert.Equal(t, int64(1), markerCount)
	assert.Equal(t, int64(1), certificateCount(t, db))
}

func TestCompleteWebinarIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha")
	webinar := seedWebinar(t, db, true)
	enrollInWebinar(t, db, user, webinar.ID)

	isNew, err := CompleteWebinar(db, user.ID, webinar.ID)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = CompleteWebinar(db, user.ID, webinar.ID)
	require.NoError(t, err)
	assert.False(t, isNew)

	var markerCount int64
	require.NoError(t, db.Model(&courseModels.WebinarCompletion{}).Count(&markerCount).Error)
	assert.Equal(t, int64(1), markerCount)
	assert.Equal(t, int64(1), certificateCount(t, db))
}

func TestProcessEndedWebinars(t *testing.T) {
	db := setupTestDB(t)
	ended := seedWebinar(t, db, true)
	upcoming := seedWebinar(t, db, false)

	userA := seedUser(t, db, "asha")
	userB := seedUser(t, db, "ravi")
	enrollInWebinar(t, db, userA, ended.ID)
	enrollInWebinar(t, db, userB, ended.ID)
	enrollInWebinar(t, db, userA, upcoming.ID)

	processed, err := ProcessEndedWebinars(db)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)

	var markerCount int64
	require.NoError(t, db.Model(&courseModels.WebinarCompletion{}).
		Where("webinar_id = ?", ended.ID).Count(&markerCount).Error)
	assert.Equal(t, int64(2), markerCount)
	assert.Equal(t, int64(2), certificateCount(t, db))

	var refreshed courseModels.Webinar
	require.NoError(t, db.First(&refreshed, ended.ID).Error)
	assert.True(t, refreshed.CertificatesProcessed)

	// Second sweep finds nothing left to do
	processed, err = ProcessEndedWebinars(db)
	require.NoError(t, err)
	assert.Equal(t, 0, processed)
	assert.Equal(t, int64(2), certificateCount(t, db))
}
