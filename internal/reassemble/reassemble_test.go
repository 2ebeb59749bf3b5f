package reassemble

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danmuck/qrsplit/internal/frame"
	"github.com/danmuck/qrsplit/internal/split"
)

var testLevel = split.Level{Name: "tiny", SymbolChars: 64} // 40-byte frame budget

func splitFile(t *testing.T, name string, data []byte) []frame.Frame {
	t.Helper()
	frames, err := split.Split(name, data, testLevel, frame.Checksum(data))
	if err != nil {
		t.Fatalf("split %s: %v", name, err)
	}
	return frames
}

func resolveOne(t *testing.T, frames []frame.Frame) Outcome {
	t.Helper()
	b := NewBatch()
	for _, f := range frames {
		b.Add(f)
	}
	outcomes := b.Resolve()
	if len(outcomes) != 1 {
		t.Fatalf("expected one group, got %d", len(outcomes))
	}
	return outcomes[0]
}

func TestRoundTrip(t *testing.T) {
	sizes := []int{0, 1, 18, 19, 90, 95}
	for _, n := range sizes {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i * 7)
		}
		out := resolveOne(t, splitFile(t, "file.bin", data))
		if out.Err != nil {
			t.Fatalf("size %d: %v", n, out.Err)
		}
		if !out.Result.Verified {
			t.Fatalf("size %d: result not verified", n)
		}
		if out.Result.Name != "file.bin" {
			t.Fatalf("size %d: name %q", n, out.Result.Name)
		}
		if !bytes.Equal(out.Result.Data, data) {
			t.Fatalf("size %d: reconstruction mismatch", n)
		}
	}
}

func TestOutOfOrderAndDuplicateFrames(t *testing.T) {
	data := bytes.Repeat([]byte("abcdef"), 20)
	frames := splitFile(t, "f", data)
	if len(frames) < 3 {
		t.Fatalf("want >=3 frames, got %d", len(frames))
	}
	// Reverse order and repeat every frame twice: identical
	// duplicates must collapse harmlessly.
	var shuffled []frame.Frame
	for i := len(frames) - 1; i >= 0; i-- {
		shuffled = append(shuffled, frames[i], frames[i])
	}
	out := resolveOne(t, shuffled)
	if out.Err != nil {
		t.Fatalf("resolve: %v", out.Err)
	}
	if !bytes.Equal(out.Result.Data, data) {
		t.Fatal("reconstruction mismatch")
	}
}

func TestMissingPartNamesExactIndex(t *testing.T) {
	data := bytes.Repeat([]byte{0x42}, 80)
	frames := splitFile(t, "f", data)
	for drop := range frames {
		var kept []frame.Frame
		var wantFound []uint32
		for i, f := range frames {
			if i == drop {
				continue
			}
			kept = append(kept, f)
			wantFound = append(wantFound, f.Index)
		}
		out := resolveOne(t, kept)
		var merr *MissingPartsError
		if !errors.As(out.Err, &merr) {
			t.Fatalf("drop %d: expected MissingPartsError, got %v", drop, out.Err)
		}
		if diff := cmp.Diff([]uint32{uint32(drop)}, merr.Missing); diff != "" {
			t.Fatalf("drop %d: missing indices (-want +got):\n%s", drop, diff)
		}
		if diff := cmp.Diff(wantFound, merr.Found); diff != "" {
			t.Fatalf("drop %d: found indices (-want +got):\n%s", drop, diff)
		}
		if len(out.Result.Data) != 0 {
			t.Fatalf("drop %d: partial data returned", drop)
		}
	}
}

func TestCountConflictRejectsGroup(t *testing.T) {
	frames := splitFile(t, "f", bytes.Repeat([]byte{1}, 50))
	frames[1].Count++
	out := resolveOne(t, frames)
	var cerr *ConflictError
	if !errors.As(out.Err, &cerr) {
		t.Fatalf("expected ConflictError, got %v", out.Err)
	}
	if cerr.Field != "count" || len(cerr.Counts) != 2 {
		t.Fatalf("unexpected detail: %+v", cerr)
	}
}

func TestIndexCollisionWithDifferingBodyRejectsGroup(t *testing.T) {
	frames := splitFile(t, "f", bytes.Repeat([]byte{1}, 50))
	forged := frames[1]
	forged.Body = append([]byte(nil), frames[1].Body...)
	forged.Body[0] ^= 0xFF
	out := resolveOne(t, append(frames, forged))
	var cerr *ConflictError
	if !errors.As(out.Err, &cerr) {
		t.Fatalf("expected ConflictError, got %v", out.Err)
	}
	if cerr.Field != "body" || cerr.Index != frames[1].Index {
		t.Fatalf("unexpected detail: %+v", cerr)
	}
}

func TestCorruptionDetectedAndDataStillReturned(t *testing.T) {
	data := bytes.Repeat([]byte{0x37}, 70)
	frames := splitFile(t, "f", data)
	for i := range frames {
		mutated := make([]frame.Frame, len(frames))
		copy(mutated, frames)
		f := mutated[i]
		f.Body = append([]byte(nil), f.Body...)
		f.Body[0] ^= 0x01
		mutated[i] = f

		out := resolveOne(t, mutated)
		var cerr *CorruptionError
		if !errors.As(out.Err, &cerr) {
			t.Fatalf("flip frame %d: expected CorruptionError, got %v", i, out.Err)
		}
		if out.Result.Verified {
			t.Fatalf("flip frame %d: result marked verified", i)
		}
		if len(out.Result.Data) != len(data) {
			t.Fatalf("flip frame %d: corrupted data not returned for inspection", i)
		}
		if cerr.Want != frame.Checksum(data) {
			t.Fatalf("flip frame %d: error reports wrong expected checksum", i)
		}
	}
}

func TestGroupsResolveIndependently(t *testing.T) {
	good := splitFile(t, "good.txt", bytes.Repeat([]byte{9}, 30))
	bad := splitFile(t, "bad.txt", bytes.Repeat([]byte{8}, 80))
	bad = bad[1:] // missing part

	b := NewBatch()
	for _, f := range append(append([]frame.Frame(nil), good...), bad...) {
		b.Add(f)
	}
	outcomes := b.Resolve()
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(outcomes))
	}
	if outcomes[0].Err != nil {
		t.Fatalf("good group failed: %v", outcomes[0].Err)
	}
	var merr *MissingPartsError
	if !errors.As(outcomes[1].Err, &merr) {
		t.Fatalf("bad group: expected MissingPartsError, got %v", outcomes[1].Err)
	}
}

func TestSameNameDifferentChecksumAreSeparateGroups(t *testing.T) {
	a := splitFile(t, "f", []byte("first contents"))
	c := splitFile(t, "f", []byte("second contents"))
	b := NewBatch()
	for _, f := range append(append([]frame.Frame(nil), a...), c...) {
		b.Add(f)
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 groups, got %d", b.Len())
	}
	for _, out := range b.Resolve() {
		if out.Err != nil {
			t.Fatalf("%s: %v", out.Key, out.Err)
		}
	}
}
