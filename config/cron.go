package config

// CronConfig controls the in-process scheduler started by the server.
type CronConfig struct {
	Enabled        bool   `mapstructure:"cron_enabled"`
	RosterSchedule string `mapstructure:"cron_roster_schedule"`
}
