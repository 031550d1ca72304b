package constants

const (
	SettingLastResetDate      = "last_reset_date"
	SettingNotificationHour   = "notification_hour"
	SettingNotificationMinute = "notification_minute"
	SettingNotifyEnabled      = "notify_enabled"
	SettingTimezone           = "timezone"

	// Default Settings Values
	DefaultNotificationHour   = 9
	DefaultNotificationMinute = 0
	DefaultNotifyEnabled      = false
	DefaultTimezone           = "Local" // Use system local timezone by default
)
