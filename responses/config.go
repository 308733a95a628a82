// Copyright (c) Openwire Labs. All rights reserved.

package responses

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Settings is the client configuration resolved from the environment and an
// optional YAML settings file. Environment variables win over file values.
type Settings struct {
	APIKey       string `yaml:"api_key"`
	BaseURL      string `yaml:"base_url"`
	Model        string `yaml:"model"`
	Organization string `yaml:"organization"`

	// Timeout is a Go duration string ("30s", "2m") applied to the whole
	// HTTP exchange. Empty means no client-side timeout.
	Timeout string `yaml:"timeout"`
}

// LoadSettings resolves settings from path (optional, "" to skip) and the
// process environment. A .env file in the working directory is loaded first
// if present. Recognized variables: OPENAI_API_KEY, OPENAI_BASE_URL,
// OPENAI_MODEL, OPENAI_ORGANIZATION.
//
// A missing API key is reported with [ErrMissingAPIKey] so callers can
// fail fast before any request is attempted.
func LoadSettings(path string) (*Settings, error) {
	// Load .env if present (ignored if missing).
	_ = godotenv.Load()

	s := &Settings{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read settings file: %v", ErrConfig, err)
		}
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("%w: parse settings file: %v", ErrConfig, err)
		}
	}

	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		s.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		s.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		s.Model = v
	}
	if v := os.Getenv("OPENAI_ORGANIZATION"); v != "" {
		s.Organization = v
	}
	if v := os.Getenv("OPENAI_TIMEOUT"); v != "" {
		s.Timeout = v
	}

	if s.Timeout != "" {
		if _, err := time.ParseDuration(s.Timeout); err != nil {
			return nil, fmt.Errorf("%w: parse timeout: %v", ErrConfig, err)
		}
	}
	if s.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return s, nil
}

// NewFromSettings creates a [Client] from resolved settings. Explicit
// options are applied after the settings and take precedence.
func NewFromSettings(s *Settings, opts ...Option) *Client {
	var all []Option
	if s.BaseURL != "" {
		all = append(all, WithBaseURL(s.BaseURL))
	}
	if s.Model != "" {
		all = append(all, WithModel(s.Model))
	}
	if s.Organization != "" {
		all = append(all, WithOrganization(s.Organization))
	}
	if s.Timeout != "" {
		if d, err := time.ParseDuration(s.Timeout); err == nil && d > 0 {
			all = append(all, WithHTTPClient(&http.Client{Timeout: d}))
		}
	}
	all = append(all, opts...)
	return New(s.APIKey, all...)
}

// FromEnv creates a [Client] from the environment alone.
func FromEnv(opts ...Option) (*Client, error) {
	s, err := LoadSettings("")
	if err != nil {
		return nil, err
	}
	return NewFromSettings(s, opts...), nil
}
