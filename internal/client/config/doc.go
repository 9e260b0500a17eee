// Package config loads runtime configuration for the todo CLI.
//
// Sources, in increasing precedence: built-in defaults, an optional JSON
// file named by -c or -config, and the flags below.
//
//	-a string   base URL or host:port of the todo server
//	-i int      health probe interval (seconds)
//	-t int      request timeout (seconds)
//
// The server address is normalized to an http or https base URL; a bare
// host:port gets http://. Durations in the file are timex.Duration values,
// either "5s" or nanoseconds:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:8080",
//	  "online_check_interval": "5s",
//	  "request_timeout": "10s"
//	}
package config
