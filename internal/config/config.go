// Package config loads application configuration from config.yaml and the
// environment, and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Funnel    FunnelConfig    `yaml:"funnel" mapstructure:"funnel"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings. An empty Key is the
// explicit "no insight backend" state: the pipeline still runs and returns
// a fixed advisory in place of the narrative.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// FunnelConfig configures the normalization and KPI core.
type FunnelConfig struct {
	// FuzzyThreshold is the minimum weighted-ratio score (0-100) for a
	// status label to be rewritten to its vocabulary match.
	FuzzyThreshold int `yaml:"fuzzy_threshold" mapstructure:"fuzzy_threshold"`
	// StatusVocabulary is the ordered controlled vocabulary of canonical
	// status labels.
	StatusVocabulary []string `yaml:"status_vocabulary" mapstructure:"status_vocabulary"`
	// SourceTotals maps each lead source to its known total lead volume,
	// external ground truth for the efficiency block.
	SourceTotals map[string]int `yaml:"source_totals" mapstructure:"source_totals"`
}

// ServerConfig configures the upload server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// defaultStatusVocabulary is the funnel-state vocabulary used by the sales
// team. Order matters: fuzzy-match ties resolve to the earliest entry.
var defaultStatusVocabulary = []string{
	"abordado whatsapp",
	"tentativa ligação",
	"abordado e-mail",
	"apresentado",
	"agendado",
	"sem retorno",
	"testando",
	"proposta enviada",
	"sem contato",
	"renovar contato",
	"recusado",
	"retomar contato",
}

// defaultSourceTotals is the known lead volume per acquisition channel,
// maintained by the commercial team. Deployments override it in
// config.yaml as campaigns evolve.
var defaultSourceTotals = map[string]int{
	"AL Day":                        1,
	"Automind V3 e V4":              2,
	"Lead Lucas":                    110,
	"Leads - Fabio Daniel":          3,
	"Leads Distribuidoras":          54,
	"Leads Frios - Donos de Carga":  1259,
	"Leads Frios - Transportadoras": 765,
	"Leads SBM":                     27,
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 5000)
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 4096)
	v.SetDefault("funnel.fuzzy_threshold", 80)
	v.SetDefault("funnel.status_vocabulary", defaultStatusVocabulary)
	v.SetDefault("funnel.source_totals", defaultSourceTotals)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
