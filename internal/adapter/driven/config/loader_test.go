package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/diillson/aws-idle-audit-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const topic = "arn:aws:sns:eu-west-1:123456789012:idle"

// clearEnv blanks every variable the loader reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AWS_REGION", "")
	for _, key := range []string{
		"REGION", "TOPIC_ARN", "PROFILE", "SUBJECT", "LOG_LEVEL", "LOG_FORMAT",
		"SCHEDULE", "METRICS_ADDR", "THRESHOLD_DAYS", "PAGE_LIMIT",
		"MAX_CONCURRENCY", "PARALLEL", "DRY_RUN", "CALL_TIMEOUT",
	} {
		t.Setenv(EnvPrefix+key, "")
	}
}

func newTestLoader(t *testing.T) *Loader {
	return NewLoader(NewConfigRepository(), filepath.Join(t.TempDir(), "none.env"))
}

func TestLoadAppliesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("IDLE_AUDIT_REGION", "eu-west-1")
	t.Setenv("IDLE_AUDIT_TOPIC_ARN", topic)

	cfg, err := newTestLoader(t).Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, types.DefaultThresholdDays, cfg.ThresholdDays)
	assert.Equal(t, types.DefaultPageLimit, cfg.PageLimit)
	assert.Equal(t, types.DefaultMaxConcurrency, cfg.MaxConcurrency)
	assert.Equal(t, "AWS Health Check Report", cfg.Subject)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.Parallel)
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	file := writeFile(t, "audit.toml", `region = "us-east-1"
topic_arn = "arn:aws:sns:us-east-1:123456789012:file"
threshold_days = 10
page_limit = 2
`)
	t.Setenv("IDLE_AUDIT_THRESHOLD_DAYS", "20")
	t.Setenv("IDLE_AUDIT_CALL_TIMEOUT", "15s")

	cfg, err := newTestLoader(t).Load(file, &types.Config{Region: "sa-east-1"})
	require.NoError(t, err)

	assert.Equal(t, "sa-east-1", cfg.Region, "flags win over file")
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:file", cfg.TopicArn)
	assert.Equal(t, 20, cfg.ThresholdDays, "environment wins over file")
	assert.Equal(t, 2, cfg.PageLimit)
	assert.Equal(t, 15*time.Second, cfg.CallTimeout)
}

func TestLoadFallsBackToAWSRegion(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_REGION", "ap-southeast-2")

	cfg, err := newTestLoader(t).Load("", &types.Config{TopicArn: topic})
	require.NoError(t, err)
	assert.Equal(t, "ap-southeast-2", cfg.Region)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		flags   *types.Config
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing region",
			flags:   &types.Config{TopicArn: topic},
			wantErr: types.ErrMissingRegion,
		},
		{
			name:    "missing topic",
			flags:   &types.Config{Region: "eu-west-1"},
			wantErr: types.ErrMissingTopic,
		},
		{
			name:    "bad integer",
			env:     map[string]string{"IDLE_AUDIT_PAGE_LIMIT": "many"},
			flags:   &types.Config{Region: "eu-west-1", TopicArn: topic},
			wantMsg: "invalid IDLE_AUDIT_PAGE_LIMIT",
		},
		{
			name:    "out of range",
			flags:   &types.Config{Region: "eu-west-1", TopicArn: topic, MaxConcurrency: 12},
			wantMsg: "max_concurrency must be at most 7",
		},
		{
			name:    "unknown log format",
			flags:   &types.Config{Region: "eu-west-1", TopicArn: topic, LogFormat: "xml"},
			wantMsg: "log_format must be one of: json console",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := newTestLoader(t).Load("", tt.flags)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoadDryRunDoesNotNeedTopic(t *testing.T) {
	clearEnv(t)
	t.Setenv("IDLE_AUDIT_DRY_RUN", "true")

	cfg, err := newTestLoader(t).Load("", &types.Config{Region: "eu-west-1"})
	require.NoError(t, err)
	assert.True(t, cfg.DryRun)
	assert.Empty(t, cfg.TopicArn)
}
