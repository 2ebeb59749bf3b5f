package split

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/danmuck/qrsplit/internal/transport"
)

// Level is a named robustness setting: a QR error-correction level and
// the transport-character capacity of the largest symbol at that level
// (version 40, alphanumeric mode). Stronger correction burns capacity.
type Level struct {
	Name        string
	Recovery    qrcode.RecoveryLevel
	SymbolChars int
}

// Levels is ordered strongest to weakest. The first entry is the
// default.
var Levels = []Level{
	{Name: "high", Recovery: qrcode.Highest, SymbolChars: 1852},
	{Name: "quartile", Recovery: qrcode.High, SymbolChars: 2420},
	{Name: "medium", Recovery: qrcode.Medium, SymbolChars: 3391},
	{Name: "low", Recovery: qrcode.Low, SymbolChars: 4296},
}

// DefaultLevel is the strongest correction level.
func DefaultLevel() Level {
	return Levels[0]
}

// LevelByName resolves a level by its case-insensitive name.
func LevelByName(name string) (Level, error) {
	for _, l := range Levels {
		if strings.EqualFold(name, l.Name) {
			return l, nil
		}
	}
	names := make([]string, len(Levels))
	for i, l := range Levels {
		names[i] = l.Name
	}
	return Level{}, fmt.Errorf("unknown robustness level %q (one of: %s)", name, strings.Join(names, ", "))
}

// FrameBudget returns the largest encoded frame, in bytes, that fits
// in one symbol at this level after transport encoding.
func (l Level) FrameBudget() int {
	return transport.MaxRawLen(l.SymbolChars)
}
