// Package testlog provides a logger that routes through t.Log so test
// output stays attached to the test that produced it.
package testlog

import (
	"testing"

	"github.com/rs/zerolog"
)

func New(t *testing.T) zerolog.Logger {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t)).With().Str("test", t.Name()).Logger()
}
