// Package split partitions a file into an ordered frame sequence sized
// to a per-symbol byte budget.
package split

import (
	"fmt"

	"github.com/danmuck/qrsplit/internal/frame"
)

// CapacityError reports a file name whose frame overhead leaves no room
// for body bytes at the chosen robustness level.
type CapacityError struct {
	Name     string
	Level    string
	Overhead int
	Budget   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("split %s: frame overhead %d bytes meets or exceeds the %d-byte budget of level %q",
		e.Name, e.Overhead, e.Budget, e.Level)
}

// Split cuts data into frames of uniform encoded length. Every
// non-final frame carries exactly the body capacity; the final frame is
// padded so its encoded length matches the others. An empty file still
// produces one frame with an empty body,
//
// sum is the CRC-32 of data, computed once by the caller and stamped
// into every frame.
func Split(name string, data []byte, level Level, sum uint32) ([]frame.Frame, error) {
	budget := level.FrameBudget()
	overhead := frame.Overhead(name)
	if overhead >= budget {
		return nil, &CapacityError{Name: name, Level: level.Name, Overhead: overhead, Budget: budget}
	}
	bodyCap := budget - overhead

	if len(data) == 0 {
		return []frame.Frame{{Checksum: sum, Count: 1, Index: 0, Name: name}}, nil
	}

	full := len(data) / bodyCap
	lastLen := len(data) - full*bodyCap
	count := full
	if lastLen > 0 {
		count++
	}

	frames := make([]frame.Frame, 0, count)
	for i := 0; i < count; i++ {
		start := i * bodyCap
		end := start + bodyCap
		padding := 0
		if end > len(data) {
			end = len(data)
			padding = bodyCap - (end - start)
		}
		frames = append(frames, frame.Frame{
			Checksum: sum,
			Count:    uint32(count),
			Index:    uint32(i),
			Name:     name,
			Padding:  padding,
			Body:     data[start:end],
		})
	}
	return frames, nil
}
