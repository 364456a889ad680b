package featureflags

import (
	"os"
	"strings"
)

// Known flags. Names are env-derived: auto_reminders reads FLAG_AUTO_REMINDERS.
const (
	AutoReminders = "auto_reminders"
)

// Enabled reports whether a flag is switched on via its FLAG_<NAME>
// environment variable. Accepted truthy values are 1, true, yes and on
// (case-insensitive); anything else, including an unset variable, is off.
func Enabled(name string) bool {
	key := "FLAG_" + strings.ToUpper(name)
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
