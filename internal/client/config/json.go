package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
	"github.com/dmitrijs2005/todokeeper/internal/timex"
)

// fileConfig is the on-disk shape of Config; durations are timex.Duration.
type fileConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// Without the flag it does nothing. Keys the file leaves out or sets to zero
// keep their current values.
func parseJson(cfg *Config, args []string) error {
	path := flagx.JsonConfigFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read client config: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("decode client config %s: %w", path, err)
	}

	if fc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = fc.ServerEndpointAddr
	}
	if fc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = time.Duration(fc.OnlineCheckInterval.Duration)
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = time.Duration(fc.RequestTimeout.Duration)
	}
	return nil
}
