package constants

import "time"

// SortOrder controls the ordering of history marker queries
type SortOrder string

const (
	AppName            = "daymark"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/daymark/daymark.db"
	Version            = "v0.3.0"

	// TimestampFormat is the fixed-width UTC layout used for persisted timestamps so
	// that lexical ordering in SQLite matches chronological ordering.
	TimestampFormat = "2006-01-02T15:04:05.000000000Z"

	// ChartDateFormat labels history bars (M/d)
	ChartDateFormat = "1/2"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "daymark-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "daymark-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.daymark"
	TrayAppExecutable      = "daymark-tray"
	SecretHeader           = "X-Daymark-Secret"

	// Reminder content
	ReminderTitle = "Reminder"
	ReminderBody  = "Don't forget to do your daily tasks today!"

	// Widget constants
	TimelineEntries            = 5
	TimelineStep               = time.Hour
	WidgetPlaceholderRemaining = 3
	WidgetStatusFileName       = "widget.json"

	// HistoryChartDays is how many of the most recent markers the progress chart shows
	HistoryChartDays = 5

	// Watch loop defaults
	ResetCheckInterval    = 15 * time.Minute
	ReminderCheckInterval = time.Minute

	// Sort orders
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)
