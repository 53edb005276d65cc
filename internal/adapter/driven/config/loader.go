package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/diillson/aws-idle-audit-go/internal/domain/repository"
	"github.com/diillson/aws-idle-audit-go/internal/shared/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Loader resolve a configuração final: arquivo, depois ambiente, depois flags.
type Loader struct {
	repo     repository.ConfigRepository
	validate *validator.Validate
	envFiles []string
}

// NewLoader creates a Loader. envFiles are optional dotenv files; missing ones
// are ignored.
func NewLoader(repo repository.ConfigRepository, envFiles ...string) *Loader {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	return &Loader{repo: repo, validate: v, envFiles: envFiles}
}

// Load merges the config file named by configFile (if any), the environment
// and flags, applies defaults and validates the result.
func (l *Loader) Load(configFile string, flags *types.Config) (*types.Config, error) {
	for _, f := range l.envFiles {
		// godotenv never overrides variables that are already set
		_ = godotenv.Load(f)
	}

	cfg := &types.Config{}
	if configFile != "" {
		fileCfg, err := l.repo.LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg.Merge(fileCfg)
	}

	envCfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	cfg.Merge(envCfg)
	cfg.Merge(flags)
	cfg.ApplyDefaults()

	if err := l.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg, reporting missing region and topic with their sentinel errors.
func (l *Loader) Validate(cfg *types.Config) error {
	if cfg.Region == "" {
		return types.ErrMissingRegion
	}
	if cfg.TopicArn == "" && !cfg.DryRun {
		return types.ErrMissingTopic
	}

	err := l.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, msgForTag(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func msgForTag(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "required_unless":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
