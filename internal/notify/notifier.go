package notify

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Notifier delivers out-of-band alerts to administrators. The chat transport
// implements this in production; the core only depends on the interface.
type Notifier interface {
	NotifyAdmins(message string) error
}

// StationaryAlert formats the long-stationary alert for a subject.
func StationaryAlert(subjectName string, lat, lon float64) string {
	return fmt.Sprintf("⚠️ %s has been stationary for more than 30 minutes.\n"+
		"Coordinates: %f, %f\n"+
		"https://maps.google.com/maps?q=%f,%f",
		subjectName, lat, lon, lat, lon)
}

// LogNotifier writes alerts to the log. Used when no chat transport is wired.
// Recipients carries the configured admin ids so the delivery target is still
// visible in the log line.
type LogNotifier struct {
	Recipients []int64
}

// NotifyAdmins logs the alert.
func (n LogNotifier) NotifyAdmins(message string) error {
	log.Warnf("[Notifier] To admins %v: %s", n.Recipients, message)
	return nil
}
