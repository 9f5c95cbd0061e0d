package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port             int   `yaml:"port"`
		MaxUploadMB      int64 `yaml:"maxUploadMB"`
		RateCapacity     int   `yaml:"rateCapacity"`
		RateRefillPerSec int   `yaml:"rateRefillPerSec"`
	} `yaml:"server"`

	Gemini struct {
		APIKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`

	Poll struct {
		IntervalSeconds  int `yaml:"intervalSeconds"`
		WarnAfterSeconds int `yaml:"warnAfterSeconds"`
		DeadlineSeconds  int `yaml:"deadlineSeconds"`
	} `yaml:"poll"`

	OpenAI struct {
		APIKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`

	ElevenLabs struct {
		APIKey  string `yaml:"apiKey"`
		BaseURL string `yaml:"baseURL"`
		Model   string `yaml:"model"`
	} `yaml:"elevenlabs"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`
}

// ErrMissingCredential: konfigurasi kunci API tidak ada. Fatal saat startup,
// bukan runtime fault.
var ErrMissingCredential = errors.New("missing api credential")

// Load baca file config.yaml lalu apply env overrides
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		// config file optional kalau semua secret lewat env
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv: env menang di atas yaml untuk secrets, supaya key tidak perlu
// ditulis di file.
func (c *Config) applyEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" && c.Gemini.APIKey == "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("ELEVENLABS_API_KEY"); v != "" {
		c.ElevenLabs.APIKey = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 100
	}
	if c.Server.RateCapacity == 0 {
		c.Server.RateCapacity = 10
	}
	if c.Server.RateRefillPerSec == 0 {
		c.Server.RateRefillPerSec = 1
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Poll.IntervalSeconds == 0 {
		c.Poll.IntervalSeconds = 1
	}
	if c.Poll.WarnAfterSeconds == 0 {
		c.Poll.WarnAfterSeconds = 60
	}
	if c.Poll.DeadlineSeconds == 0 {
		c.Poll.DeadlineSeconds = 300
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.ElevenLabs.BaseURL == "" {
		c.ElevenLabs.BaseURL = "https://api.elevenlabs.io"
	}
	if c.ElevenLabs.Model == "" {
		c.ElevenLabs.Model = "eleven_multilingual_v2"
	}
}

// Validate: cek precondition yang bisa dibetulkan operator. Tidak ada retry.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("%w: set GEMINI_API_KEY or gemini.apiKey", ErrMissingCredential)
	}
	return nil
}

// NarrationEnabled: pipeline TTS hanya aktif kalau key ElevenLabs ada.
func (c *Config) NarrationEnabled() bool {
	return c.ElevenLabs.APIKey != ""
}

// RewriteEnabled: rewrite script butuh key OpenAI.
func (c *Config) RewriteEnabled() bool {
	return c.OpenAI.APIKey != ""
}

// ArtifactsEnabled: upload artefak ke MinIO opsional.
func (c *Config) ArtifactsEnabled() bool {
	return c.Minio.Endpoint != ""
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Poll.IntervalSeconds) * time.Second
}

func (c *Config) PollWarnAfter() time.Duration {
	return time.Duration(c.Poll.WarnAfterSeconds) * time.Second
}

func (c *Config) PollDeadline() time.Duration {
	return time.Duration(c.Poll.DeadlineSeconds) * time.Second
}

func (c *Config) MaxUploadBytes() int64 {
	return c.Server.MaxUploadMB << 20
}
