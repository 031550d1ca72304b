package models

// Settings is the small key-value area persisted alongside tasks and history
type Settings struct {
	LastResetDate      string `json:"last_reset_date" yaml:"last_reset_date"`         // YYYY-MM-DD of the last completed daily reset, empty if never
	NotificationHour   int    `json:"notification_hour" yaml:"notification_hour"`     // 0-23
	NotificationMinute int    `json:"notification_minute" yaml:"notification_minute"` // 0-59
	NotifyEnabled      bool   `json:"notify_enabled" yaml:"notify_enabled"`           // whether the daily reminder is on
	Timezone           string `json:"timezone" yaml:"timezone"`                       // IANA timezone name, or "Local" for system timezone
}
