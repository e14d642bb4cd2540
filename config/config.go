package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	yaml "gopkg.in/yaml.v3"
)

const (
	defaultServerPort  = "8080"
	defaultTessdata    = "/usr/share/tesseract-ocr/5/tessdata/"
	defaultMaxFileSize = 10 * 1024 * 1024 // 10 MB
	defaultQATimeout   = 20 * time.Second
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	MaxFileSize       int64

	// QA overlay; an empty model disables it.
	QABaseURL string
	QAModel   string
	QAAPIKey  string
	QATimeout time.Duration

	// RulesFile optionally overrides the built-in report vocabulary.
	RulesFile string
}

// LoadConfig reads the environment, falling back to defaults.
func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = defaultServerPort
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = defaultTessdata
	}

	maxFileSize := int64(defaultMaxFileSize)
	if v := os.Getenv("MAX_UPLOAD_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxFileSize = n
		} else {
			log.Warn().Str("value", v).Msg("ignoring invalid MAX_UPLOAD_SIZE")
		}
	}

	qaTimeout := defaultQATimeout
	if v := os.Getenv("QA_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			qaTimeout = d
		} else {
			log.Warn().Str("value", v).Msg("ignoring invalid QA_TIMEOUT")
		}
	}

	return &Config{
		ServerPort:        serverPort,
		TesseractDataPath: tesseractDataPath,
		MaxFileSize:       maxFileSize,
		QABaseURL:         os.Getenv("QA_BASE_URL"),
		QAModel:           os.Getenv("QA_MODEL"),
		QAAPIKey:          os.Getenv("QA_API_KEY"),
		QATimeout:         qaTimeout,
		RulesFile:         os.Getenv("RULES_FILE"),
	}
}

// FileConfig is the YAML configuration file schema.
type FileConfig struct {
	Server struct {
		Port          string `yaml:"port"`
		MaxUploadSize int64  `yaml:"maxUploadSize"`
	} `yaml:"server"`

	Tesseract struct {
		DataPath string `yaml:"tessdata"`
	} `yaml:"tesseract"`

	QA struct {
		BaseURL string        `yaml:"base"`
		Model   string        `yaml:"model"`
		APIKey  string        `yaml:"key"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"qa"`

	Rules string `yaml:"rules"`
}

// LoadFile parses a YAML configuration file.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse yaml: %w", err)
	}
	return fc, nil
}

// ApplyFile overlays values from fc onto cfg wherever cfg still holds an
// unset or default value, so the environment keeps precedence.
func ApplyFile(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if (cfg.ServerPort == "" || cfg.ServerPort == defaultServerPort) && fc.Server.Port != "" {
		cfg.ServerPort = fc.Server.Port
	}
	if (cfg.MaxFileSize == 0 || cfg.MaxFileSize == defaultMaxFileSize) && fc.Server.MaxUploadSize > 0 {
		cfg.MaxFileSize = fc.Server.MaxUploadSize
	}
	if (cfg.TesseractDataPath == "" || cfg.TesseractDataPath == defaultTessdata) && fc.Tesseract.DataPath != "" {
		cfg.TesseractDataPath = fc.Tesseract.DataPath
	}
	if cfg.QABaseURL == "" && fc.QA.BaseURL != "" {
		cfg.QABaseURL = fc.QA.BaseURL
	}
	if cfg.QAModel == "" && fc.QA.Model != "" {
		cfg.QAModel = fc.QA.Model
	}
	if cfg.QAAPIKey == "" && fc.QA.APIKey != "" {
		cfg.QAAPIKey = fc.QA.APIKey
	}
	if (cfg.QATimeout == 0 || cfg.QATimeout == defaultQATimeout) && fc.QA.Timeout > 0 {
		cfg.QATimeout = fc.QA.Timeout
	}
	if cfg.RulesFile == "" && fc.Rules != "" {
		cfg.RulesFile = fc.Rules
	}
}
