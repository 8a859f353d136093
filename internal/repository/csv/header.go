package csv

import (
	"strings"
)

// columnIndex maps trimmed header names to their position. The first occurrence wins.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		// Excel exports sometimes prefix the first header with a byte order mark.
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}
	return idx
}

func field(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
