package split

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/qrsplit/internal/frame"
)

// tinyLevel has a 40-byte frame budget, small enough to force
// multi-frame splits with short inputs.
var tinyLevel = Level{Name: "tiny", SymbolChars: 64}

func body(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestSplitFrameSizing(t *testing.T) {
	const name = "f" // overhead 22, bodyCap 18 at tinyLevel
	bodyCap := tinyLevel.FrameBudget() - frame.Overhead(name)
	if bodyCap != 18 {
		t.Fatalf("test premise: bodyCap = %d, want 18", bodyCap)
	}

	cases := []struct {
		name      string
		size      int
		wantCount int
		wantPad   int // padding on the final frame
	}{
		{"empty file", 0, 1, 0},
		{"single byte", 1, 1, bodyCap - 1},
		{"exactly one unit", bodyCap, 1, 0},
		{"one unit plus one", bodyCap + 1, 2, bodyCap - 1},
		{"several full units", 4 * bodyCap, 4, 0},
		{"several units plus remainder", 3*bodyCap + 5, 4, bodyCap - 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := body(tc.size)
			sum := frame.Checksum(data)
			frames, err := Split(name, data, tinyLevel, sum)
			if err != nil {
				t.Fatalf("split: %v", err)
			}
			if len(frames) != tc.wantCount {
				t.Fatalf("count = %d, want %d", len(frames), tc.wantCount)
			}
			for i, f := range frames {
				if f.Index != uint32(i) {
					t.Fatalf("frame %d has index %d", i, f.Index)
				}
				if f.Count != uint32(tc.wantCount) {
					t.Fatalf("frame %d reports count %d, want %d", i, f.Count, tc.wantCount)
				}
				if f.Checksum != sum || f.Name != name {
					t.Fatalf("frame %d identity mismatch: %+v", i, f)
				}
				if i < len(frames)-1 && f.Padding != 0 {
					t.Fatalf("non-final frame %d carries padding %d", i, f.Padding)
				}
			}
			if got := frames[len(frames)-1].Padding; got != tc.wantPad {
				t.Fatalf("final padding = %d, want %d", got, tc.wantPad)
			}
			var joined []byte
			for _, f := range frames {
				joined = append(joined, f.Body...)
			}
			if !bytes.Equal(joined, data) {
				t.Fatalf("bodies do not concatenate back to the input")
			}
		})
	}
}

func TestSplitUniformEncodedLength(t *testing.T) {
	data := body(3*18 + 5)
	frames, err := Split("f", data, tinyLevel, frame.Checksum(data))
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(frames) < 2 {
		t.Fatalf("want a multi-frame split, got %d", len(frames))
	}
	first := len(frame.Encode(frames[0]))
	if first != tinyLevel.FrameBudget() {
		t.Fatalf("frame length %d, want full budget %d", first, tinyLevel.FrameBudget())
	}
	for i, f := range frames {
		if got := len(frame.Encode(f)); got != first {
			t.Fatalf("frame %d encodes to %d bytes, frame 0 to %d", i, got, first)
		}
	}
}

func TestSplitCapacityRejection(t *testing.T) {
	longName := strings.Repeat("n", tinyLevel.FrameBudget())
	_, err := Split(longName, []byte("data"), tinyLevel, 0)
	var cerr *CapacityError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CapacityError, got %v", err)
	}
	if cerr.Level != "tiny" || cerr.Overhead < cerr.Budget {
		t.Fatalf("unexpected error detail: %+v", cerr)
	}

	// Overhead exactly equal to the budget must also be rejected: a
	// frame with zero body capacity can never make progress.
	exact := strings.Repeat("n", tinyLevel.FrameBudget()-21)
	if frame.Overhead(exact) != tinyLevel.FrameBudget() {
		t.Fatalf("test premise: overhead %d, want %d", frame.Overhead(exact), tinyLevel.FrameBudget())
	}
	if _, err := Split(exact, []byte("data"), tinyLevel, 0); !errors.As(err, &cerr) {
		t.Fatalf("expected CapacityError at exact budget, got %v", err)
	}
}

func TestLevelByName(t *testing.T) {
	l, err := LevelByName("QUARTILE")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if l.Name != "quartile" {
		t.Fatalf("got level %q", l.Name)
	}
	if _, err := LevelByName("bogus"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if DefaultLevel().Name != Levels[0].Name {
		t.Fatalf("default level %q is not the strongest", DefaultLevel().Name)
	}
}

func TestLevelBudgetsDescendWithStrength(t *testing.T) {
	for i := 1; i < len(Levels); i++ {
		if Levels[i-1].FrameBudget() >= Levels[i].FrameBudget() {
			t.Fatalf("level %q budget %d not below weaker %q budget %d",
				Levels[i-1].Name, Levels[i-1].FrameBudget(), Levels[i].Name, Levels[i].FrameBudget())
		}
	}
}
