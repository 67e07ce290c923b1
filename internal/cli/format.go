package cli

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// outputUnits maps the --unit flag to its nanosecond scale. This is the
// output side only; the accepted input grammar lives in the library.
var outputUnits = map[string]int64{
	"ns": 1,
	"us": 1000,
	"ms": 1000000,
	"s":  1000000000,
	"m":  60000000000,
	"h":  3600000000000,
}

// formatValue renders a nanosecond count in the selected output unit.
// Nanoseconds stay exact integers; larger units print as decimals.
func formatValue(ns, scale int64) string {
	if scale == 1 {
		if human {
			return humanize.Comma(ns)
		}
		return strconv.FormatInt(ns, 10)
	}
	v := float64(ns) / float64(scale)
	if human {
		return humanize.Commaf(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
