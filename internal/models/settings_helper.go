package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/daymark/internal/constants"
	"github.com/julianstephens/daymark/internal/utils"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingLastResetDate:
			settings.LastResetDate = value
		case constants.SettingNotificationHour:
			hour, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing notification_hour: %w", err)
			}
			settings.NotificationHour = hour
		case constants.SettingNotificationMinute:
			minute, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing notification_minute: %w", err)
			}
			settings.NotificationMinute = minute
		case constants.SettingNotifyEnabled:
			settings.NotifyEnabled = value == "true"
		case constants.SettingTimezone:
			settings.Timezone = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingLastResetDate:      settings.LastResetDate,
		constants.SettingNotificationHour:   strconv.Itoa(settings.NotificationHour),
		constants.SettingNotificationMinute: strconv.Itoa(settings.NotificationMinute),
		constants.SettingNotifyEnabled:      strconv.FormatBool(settings.NotifyEnabled),
		constants.SettingTimezone:           settings.Timezone,
	}
}

// DefaultSettings returns the settings a freshly initialized store starts with.
func DefaultSettings() Settings {
	return Settings{
		NotificationHour:   constants.DefaultNotificationHour,
		NotificationMinute: constants.DefaultNotificationMinute,
		NotifyEnabled:      constants.DefaultNotifyEnabled,
		Timezone:           constants.DefaultTimezone,
	}
}

// FirstRunSettings returns the defaults with the last reset date set to the
// day of now in the default timezone, so a fresh store does not archive its
// first, partial day.
func FirstRunSettings(now time.Time) Settings {
	settings := DefaultSettings()
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		loc = time.Local
	}
	settings.LastResetDate = utils.DayKey(now, loc)
	return settings
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}

// ValidateReminderTime checks that hour and minute form a valid time of day.
func ValidateReminderTime(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("notification hour must be between 0 and 23, got %d", hour)
	}
	if minute < 0 || minute > 59 {
		return fmt.Errorf("notification minute must be between 0 and 59, got %d", minute)
	}
	return nil
}
