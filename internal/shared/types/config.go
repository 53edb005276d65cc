package types

import "time"

// Defaults applied when a value is not set in the file, the environment or the flags.
const (
	DefaultThresholdDays  = 30
	DefaultPageLimit      = 1
	DefaultMaxConcurrency = 4
	DefaultSchedule       = "0 0 6 * * *"
	DefaultSubject        = "AWS Health Check Report"
)

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Region         string        `json:"region" yaml:"region" toml:"region" validate:"required"`
	TopicArn       string        `json:"topic_arn" yaml:"topic_arn" toml:"topic_arn" validate:"required_unless=DryRun true"`
	Profile        string        `json:"profile" yaml:"profile" toml:"profile"`
	ThresholdDays  int           `json:"threshold_days" yaml:"threshold_days" toml:"threshold_days" validate:"gte=1,lte=3650"`
	PageLimit      int           `json:"page_limit" yaml:"page_limit" toml:"page_limit" validate:"gte=1,lte=1000"`
	Parallel       bool          `json:"parallel" yaml:"parallel" toml:"parallel"`
	MaxConcurrency int           `json:"max_concurrency" yaml:"max_concurrency" toml:"max_concurrency" validate:"gte=1,lte=7"`
	CallTimeout    time.Duration `json:"call_timeout" yaml:"call_timeout" toml:"call_timeout" validate:"gte=0"`
	DryRun         bool          `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
	Subject        string        `json:"subject" yaml:"subject" toml:"subject"`
	LogLevel       string        `json:"log_level" yaml:"log_level" toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat      string        `json:"log_format" yaml:"log_format" toml:"log_format" validate:"omitempty,oneof=json console"`
	Schedule       string        `json:"schedule" yaml:"schedule" toml:"schedule"`
	MetricsAddr    string        `json:"metrics_addr" yaml:"metrics_addr" toml:"metrics_addr"`
}

// ApplyDefaults fills zero values with the package defaults.
func (c *Config) ApplyDefaults() {
	if c.ThresholdDays == 0 {
		c.ThresholdDays = DefaultThresholdDays
	}
	if c.PageLimit == 0 {
		c.PageLimit = DefaultPageLimit
	}
	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = DefaultMaxConcurrency
	}
	if c.Subject == "" {
		c.Subject = DefaultSubject
	}
	if c.Schedule == "" {
		c.Schedule = DefaultSchedule
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
}

// Merge overwrites c with every non-zero field of other.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Region != "" {
		c.Region = other.Region
	}
	if other.TopicArn != "" {
		c.TopicArn = other.TopicArn
	}
	if other.Profile != "" {
		c.Profile = other.Profile
	}
	if other.ThresholdDays != 0 {
		c.ThresholdDays = other.ThresholdDays
	}
	if other.PageLimit != 0 {
		c.PageLimit = other.PageLimit
	}
	if other.Parallel {
		c.Parallel = true
	}
	if other.MaxConcurrency != 0 {
		c.MaxConcurrency = other.MaxConcurrency
	}
	if other.CallTimeout != 0 {
		c.CallTimeout = other.CallTimeout
	}
	if other.DryRun {
		c.DryRun = true
	}
	if other.Subject != "" {
		c.Subject = other.Subject
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		c.LogFormat = other.LogFormat
	}
	if other.Schedule != "" {
		c.Schedule = other.Schedule
	}
	if other.MetricsAddr != "" {
		c.MetricsAddr = other.MetricsAddr
	}
}
