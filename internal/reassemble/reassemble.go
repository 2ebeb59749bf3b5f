// Package reassemble groups decoded frames by their (name, checksum)
// identity, validates coverage, and reconstructs the original files.
package reassemble

import (
	"bytes"
	"sort"

	"github.com/danmuck/qrsplit/internal/frame"
)

// Result is one reconstructed file. Verified is false only when the
// bytes came back structurally complete but failed the checksum; the
// data is still returned so the user can inspect it.
type Result struct {
	Name     string
	Checksum uint32
	Data     []byte
	Verified bool
}

// Outcome pairs a group's identity with its reconstruction result or
// failure. A CorruptionError carries a Result alongside the error.
type Outcome struct {
	Key    string
	Result Result
	Err    error
}

type group struct {
	key    string
	frames []frame.Frame
}

// Batch accumulates frames into lazily-created groups. Groups resolve
// independently: one bad file never blocks the others.
type Batch struct {
	groups map[string]*group
	order  []string
}

func NewBatch() *Batch {
	return &Batch{groups: make(map[string]*group)}
}

// Add files f under its group, creating the group on first sight.
func (b *Batch) Add(f frame.Frame) {
	key := f.GroupKey()
	g, ok := b.groups[key]
	if !ok {
		g = &group{key: key}
		b.groups[key] = g
		b.order = append(b.order, key)
	}
	g.frames = append(g.frames, f)
}

// Len returns the number of groups collected so far.
func (b *Batch) Len() int {
	return len(b.groups)
}

// Resolve reconstructs every group, in first-seen order. Each outcome
// stands alone; callers report all of them and decide the overall
// verdict.
func (b *Batch) Resolve() []Outcome {
	outcomes := make([]Outcome, 0, len(b.order))
	for _, key := range b.order {
		g := b.groups[key]
		res, err := g.resolve()
		outcomes = append(outcomes, Outcome{Key: key, Result: res, Err: err})
	}
	return outcomes
}

func (g *group) resolve() (Result, error) {
	count := g.frames[0].Count
	for _, f := range g.frames {
		if f.Count != count {
			return Result{}, &ConflictError{Key: g.key, Field: "count", Counts: distinctCounts(g.frames)}
		}
	}

	byIndex := make(map[uint32][]byte, len(g.frames))
	for _, f := range g.frames {
		prev, ok := byIndex[f.Index]
		if !ok {
			byIndex[f.Index] = f.Body
			continue
		}
		// Byte-identical duplicates are harmless; differing bodies
		// make the input ambiguous and the group is rejected.
		if !bytes.Equal(prev, f.Body) {
			return Result{}, &ConflictError{Key: g.key, Field: "body", Index: f.Index}
		}
	}

	var missing, found []uint32
	for i := uint32(0); i < count; i++ {
		if _, ok := byIndex[i]; ok {
			found = append(found, i)
		} else {
			missing = append(missing, i)
		}
	}
	if len(missing) > 0 {
		return Result{}, &MissingPartsError{Key: g.key, Count: count, Missing: missing, Found: found}
	}

	var data []byte
	for i := uint32(0); i < count; i++ {
		data = append(data, byIndex[i]...)
	}

	res := Result{
		Name:     g.frames[0].Name,
		Checksum: g.frames[0].Checksum,
		Data:     data,
		Verified: true,
	}
	if got := frame.Checksum(data); got != res.Checksum {
		res.Verified = false
		return res, &CorruptionError{Key: g.key, Want: res.Checksum, Got: got}
	}
	return res, nil
}

func distinctCounts(frames []frame.Frame) []uint32 {
	seen := make(map[uint32]struct{})
	var counts []uint32
	for _, f := range frames {
		if _, ok := seen[f.Count]; !ok {
			seen[f.Count] = struct{}{}
			counts = append(counts, f.Count)
		}
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i] < counts[j] })
	return counts
}
