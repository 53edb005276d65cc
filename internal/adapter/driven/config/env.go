package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/diillson/aws-idle-audit-go/internal/shared/types"
)

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "IDLE_AUDIT_"

// FromEnv builds a partial Config from IDLE_AUDIT_* variables. Region falls
// back to AWS_REGION, which the Lambda runtime always sets.
func FromEnv() (*types.Config, error) {
	cfg := &types.Config{
		Region:      getEnv("REGION", os.Getenv("AWS_REGION")),
		TopicArn:    getEnv("TOPIC_ARN", ""),
		Profile:     getEnv("PROFILE", ""),
		Subject:     getEnv("SUBJECT", ""),
		LogLevel:    getEnv("LOG_LEVEL", ""),
		LogFormat:   getEnv("LOG_FORMAT", ""),
		Schedule:    getEnv("SCHEDULE", ""),
		MetricsAddr: getEnv("METRICS_ADDR", ""),
	}

	var err error
	if cfg.ThresholdDays, err = getEnvAsInt("THRESHOLD_DAYS"); err != nil {
		return nil, err
	}
	if cfg.PageLimit, err = getEnvAsInt("PAGE_LIMIT"); err != nil {
		return nil, err
	}
	if cfg.MaxConcurrency, err = getEnvAsInt("MAX_CONCURRENCY"); err != nil {
		return nil, err
	}
	if cfg.Parallel, err = getEnvAsBool("PARALLEL"); err != nil {
		return nil, err
	}
	if cfg.DryRun, err = getEnvAsBool("DRY_RUN"); err != nil {
		return nil, err
	}
	if cfg.CallTimeout, err = getEnvAsDuration("CALL_TIMEOUT"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	return value, nil
}

func getEnvAsDuration(key string) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return 0, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	return value, nil
}
