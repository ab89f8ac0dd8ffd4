// Package commands implements the salesctl subcommands.
package commands

import (
	"encoding/json"
	"io"

	"github.com/aristath/salesboard/internal/di"
)

type Flags struct {
	LogLevel string
	Token    string

	// Container is wired in the Before hook and available to all commands
	Container *di.Container
	Jobs      *di.JobInstances
}

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
