package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds runtime settings for the todo CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the todo HTTP API, always with a scheme.
//   - OnlineCheckInterval: how often the client probes /health.
//   - RequestTimeout: upper bound on a single API request.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
}

// LoadDefaults points the client at a local server.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.OnlineCheckInterval = 5 * time.Second
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig applies defaults, then the JSON file and flags when present,
// and validates the result. Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the intervals and rewrites ServerEndpointAddr to its
// normalized form.
func (c *Config) Validate() error {
	addr, err := NormalizeEndpoint(c.ServerEndpointAddr)
	if err != nil {
		return err
	}
	c.ServerEndpointAddr = addr

	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

var errEndpoint = errors.New("invalid server address")

// NormalizeEndpoint turns host:port or a URL into an http(s) base URL with
// no trailing slash. Query strings and fragments are rejected.
func NormalizeEndpoint(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", errEndpoint)
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errEndpoint, err)
	}
	switch u.Scheme = strings.ToLower(u.Scheme); u.Scheme {
	case "http", "https":
	default:
		return "", fmt.Errorf("%w: scheme %q is not http or https", errEndpoint, u.Scheme)
	}
	if u.Host == "" || u.Hostname() == "" {
		return "", fmt.Errorf("%w: %q has no host", errEndpoint, raw)
	}
	if u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return "", fmt.Errorf("%w: %q must be a plain base URL", errEndpoint, raw)
	}

	u.Path = strings.TrimRight(u.Path, "/")
	return u.String(), nil
}
