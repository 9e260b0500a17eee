// Package cli provides the interactive todo command-line client.
//
// It wires configuration, the HTTP API client and a REPL. A background
// watcher probes the server's /health endpoint and shows online/offline in
// the prompt.
//
// Commands:
//   - register, login, refresh, check <login>, logout
//   - add, list [next], page <n>, done <id>, undone <id>, delete <id>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
