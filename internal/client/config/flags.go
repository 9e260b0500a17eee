package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
)

var clientFlags = []string{"-a", "-i", "-t"}

// parseFlags overlays cfg with the -a, -i and -t flags found in args; other
// flags are left for their own parsers (see flagx.FilterArgs).
//
//	-a string   server base URL or host:port
//	-i int      health probe interval in seconds
//	-t int      request timeout in seconds
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	addr := fs.String("a", cfg.ServerEndpointAddr, "todo server URL or host:port")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval/time.Second), "health probe interval (in seconds)")
	timeout := fs.Int("t", int(cfg.RequestTimeout/time.Second), "request timeout (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, clientFlags)); err != nil {
		return err
	}

	// only flags actually given override earlier sources
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.ServerEndpointAddr = *addr
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
