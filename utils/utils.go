package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateCertificateNumber builds a certificate number from a high-resolution
// UTC timestamp and a random suffix. The timestamp keeps numbers sortable by
// issue time; the suffix makes collisions between same-instant issues
// negligible. The unique column on the certificates table is the final guard.
func GenerateCertificateNumber() string {
	now := time.Now().UTC()
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("CERT-%s%09d-%s", now.Format("20060102150405"), now.Nanosecond(), suffix)
}
