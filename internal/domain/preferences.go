package domain

// Time display formats accepted by Preferences.TimeFormat.
const (
	TimeFormat24h = "24h"
	TimeFormat12h = "12h"
)

// Preferences is the local configuration record. It only stores local
// choices and the id of the active workspace.
type Preferences struct {
	TimeFormat      string `yaml:"time_format"`
	DefaultBillable bool   `yaml:"default_billable"`
	RequireProject  bool   `yaml:"require_project"`
	WorkspaceID     string `yaml:"workspace_id"`
}

// DefaultPreferences returns the record written on first run.
func DefaultPreferences() Preferences {
	return Preferences{TimeFormat: TimeFormat24h}
}

// ClockLayout returns the time.Format layout matching TimeFormat.
func (p Preferences) ClockLayout() string {
	if p.TimeFormat == TimeFormat12h {
		return "3:04 PM"
	}
	return "15:04"
}
