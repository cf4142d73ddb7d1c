package output

import (
	"fmt"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count using binary-prefix units at powers
// of 1024, keeping three significant digits.
func FormatBytes(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}

	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}

	switch {
	case value >= 100:
		return fmt.Sprintf("%.0f %s", value, byteUnits[unit])
	case value >= 10:
		return fmt.Sprintf("%.1f %s", value, byteUnits[unit])
	default:
		return fmt.Sprintf("%.2f %s", value, byteUnits[unit])
	}
}
