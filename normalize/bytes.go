// Package normalize holds the pure display transforms applied to resolved
// values. Resolver caches keep raw values; these run afterwards.
package normalize

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// Bytes renders a byte count with 1024-based units and two decimals.
// Bytes(0) is "0.00 B" and Bytes(1024) is "1.00 KB"; a value that would
// round to 1024.00 of one unit is shown as 1.00 of the next.
func Bytes(n uint64) string {
	value := float64(n)
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}
	if round2(value) >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", value, byteUnits[unit])
}

// Hertz renders a frequency with SI prefixes and two decimals ("2.40 GHz")
func Hertz(hz uint64) string {
	f := float64(hz)
	value, prefix := humanize.ComputeSI(f)
	if round2(value) >= 1000 {
		scale := math.Round(f / value)
		value, prefix = humanize.ComputeSI(scale * 1000)
	}
	return fmt.Sprintf("%.2f %sHz", value, prefix)
}

// Percent renders part/whole as "12.50%". A zero whole yields "0.00%".
func Percent(part, whole uint64) string {
	if whole == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(part)/float64(whole)*100)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
