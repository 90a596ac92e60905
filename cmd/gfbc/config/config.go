package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Endpoint       string           `json:"endpoint"`
	UploadPath     string           `json:"upload_path"`
	AuthKind       string           `json:"auth_kind"`
	AuthConfig     interface{}      `json:"auth_config"`
	AllowMimeTypes []string         `json:"allow_mime_types"`
	Thread         int              `json:"thread"`
	Timeout        int64            `json:"timeout"` //second
	LogInfo        logger.LogConfig `json:"log_info"`
}

func Parse(f string) (*Config, error) {
	raw, err := os.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("read file:%w", err)
	}
	c := &Config{
		Endpoint:   "https://graph.facebook.com/v2.10",
		UploadPath: "/{node}/photos",
		AuthKind:   "token",
		Thread:     4,
		Timeout:    600,
		LogInfo: logger.LogConfig{
			Level:   "info",
			Console: true,
		},
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("unmarshal file:%w", err)
	}
	if c.Thread <= 0 {
		c.Thread = 1
	}
	return c, nil
}
