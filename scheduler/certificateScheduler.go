package scheduler

import (
	"fmt"
	"log"
	"time"

	"lms/config"
	"lms/database"
	"lms/services"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[CERT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// sweepEndedWebinars drives completion markers and certificate issuance for
// all enrollees of webinars whose end time has passed. Best-effort: the
// service logs and skips individual failures.
func sweepEndedWebinars() {
	processed, err := services.ProcessEndedWebinars(database.Database.Db)
	if err != nil {
		logScheduler("Error processing ended webinars: " + err.Error())
		return
	}
	if processed > 0 {
		logScheduler(fmt.Sprintf("Processed certificates for %d ended webinar(s)", processed))
	}
}

// InitializeCertificateScheduler starts the recurring webinar-certificate
// sweep. The returned cron is owned by the process lifecycle: main stops it on
// shutdown.
func InitializeCertificateScheduler() *cron.Cron {
	logScheduler("Initializing certificate scheduler...")

	c := cron.New()

	spec := fmt.Sprintf("@every %dm", config.AppConfig.WebinarSweepMinutes)
	if _, err := c.AddFunc(spec, sweepEndedWebinars); err != nil {
		log.Fatalf("Failed to schedule webinar certificate sweep: %v", err)
	}

	c.Start()

	logScheduler(fmt.Sprintf("Webinar certificate sweep scheduled every %d minute(s)", config.AppConfig.WebinarSweepMinutes))
	return c
}
