package job

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Output naming: symbols carry their one-based part number and total,
// pages likewise, decoded files keep the original name under a fixed
// prefix.

func stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func symbolFileName(index, count uint32, stem string) string {
	width := len(strconv.Itoa(int(count)))
	return fmt.Sprintf("qrsplit_%0*dof%d_%s.png", width, index+1, count, stem)
}

func pageFileName(page, total int, stem string) string {
	width := len(strconv.Itoa(total))
	return fmt.Sprintf("qrsplit_page_%0*dof%d_%s.png", width, page, total, stem)
}

// decodedFileName flattens the recovered name to its base so frames
// can never steer a write outside the output directory.
func decodedFileName(name string) string {
	return "decoded_" + filepath.Base(name)
}
