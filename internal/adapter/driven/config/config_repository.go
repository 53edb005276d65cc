package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/aws-idle-audit-go/internal/domain/repository"
	"github.com/diillson/aws-idle-audit-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// decoder lê um arquivo inteiro para cfg, rejeitando chaves desconhecidas.
type decoder struct {
	format string
	decode func(data []byte, cfg *types.Config) error
}

var decoders = map[string]decoder{
	".toml": {format: "TOML", decode: decodeTOML},
	".yaml": {format: "YAML", decode: decodeYAML},
	".yml":  {format: "YAML", decode: decodeYAML},
	".json": {format: "JSON", decode: decodeJSON},
}

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
// Em TOML e YAML, call_timeout aceita durações como "30s"; em JSON, nanossegundos.
// Chaves desconhecidas são erro, para que um typo como "treshold_days" não passe calado.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	dec, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg types.Config
	if err := dec.decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s file %s: %w", dec.format, filePath, err)
	}
	return &cfg, nil
}

func decodeTOML(data []byte, cfg *types.Config) error {
	return toml.NewDecoder(bytes.NewReader(data)).Strict(true).Decode(cfg)
}

func decodeYAML(data []byte, cfg *types.Config) error {
	d := yaml.NewDecoder(bytes.NewReader(data))
	d.KnownFields(true)
	if err := d.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeJSON(data []byte, cfg *types.Config) error {
	d := json.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	return d.Decode(cfg)
}
