package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile  string
	Region      string
	TopicArn    string
	Profile     string
	PageLimit   int
	Parallel    bool
	DryRun      bool
	LogLevel    string
	LogFormat   string
	ReportName  string
	ReportType  []string
	Dir         string
	Schedule    string
	MetricsAddr string
}

// ToConfig converts the flags that were set into a partial Config.
func (a *CLIArgs) ToConfig() *Config {
	return &Config{
		Region:      a.Region,
		TopicArn:    a.TopicArn,
		Profile:     a.Profile,
		PageLimit:   a.PageLimit,
		Parallel:    a.Parallel,
		DryRun:      a.DryRun,
		LogLevel:    a.LogLevel,
		LogFormat:   a.LogFormat,
		Schedule:    a.Schedule,
		MetricsAddr: a.MetricsAddr,
	}
}
