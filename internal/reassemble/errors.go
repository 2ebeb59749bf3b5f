package reassemble

import "fmt"

// ConflictError reports frames within one group that disagree on
// metadata: either the total count, or two frames claiming the same
// index with different bodies. Conflicting input is rejected rather
// than resolved by arrival order.
type ConflictError struct {
	Key    string
	Field  string   // "count" or "body"
	Index  uint32   // the colliding index when Field == "body"
	Counts []uint32 // the distinct counts seen when Field == "count"
}

func (e *ConflictError) Error() string {
	switch e.Field {
	case "count":
		return fmt.Sprintf("reassemble %s: frames disagree on total count %v", e.Key, e.Counts)
	case "body":
		return fmt.Sprintf("reassemble %s: index %d appears with differing bodies", e.Key, e.Index)
	default:
		return fmt.Sprintf("reassemble %s: conflicting frame metadata", e.Key)
	}
}

// MissingPartsError reports incomplete index coverage. Both the missing
// and the found indices are listed so the user knows what to rescan.
type MissingPartsError struct {
	Key     string
	Count   uint32
	Missing []uint32
	Found   []uint32
}

func (e *MissingPartsError) Error() string {
	return fmt.Sprintf("reassemble %s: %d of %d parts missing: missing=%v found=%v",
		e.Key, len(e.Missing), e.Count, e.Missing, e.Found)
}

// CorruptionError reports a checksum mismatch after a structurally
// complete reassembly.
type CorruptionError struct {
	Key  string
	Want uint32 // checksum stamped into the frames
	Got  uint32 // checksum recomputed over the reassembled bytes
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("reassemble %s: checksum mismatch: frames say %08x, reassembled bytes give %08x",
		e.Key, e.Want, e.Got)
}
