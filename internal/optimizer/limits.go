package optimizer

import (
	"strconv"
	"strings"
)

// ParseLimits parses a per-order-count result limit specification into a
// map from order count k to the maximum number of solutions to report
// for that k.
//
// A single value ("3") applies to every k from 1 to maxOrders. A
// comma-separated list ("5,2") maps positionally: the first entry limits
// k=1, the second k=2, and so on. Order counts beyond the list length
// are absent from the map, which suppresses output for them.
// Non-numeric or negative entries become 0 rather than an error.
func ParseLimits(spec string, maxOrders int) map[int]int {
	if maxOrders < 1 {
		maxOrders = 1
	}

	parts := strings.Split(spec, ",")
	limits := make(map[int]int, maxOrders)

	if len(parts) == 1 {
		uniform := parseLimitEntry(parts[0])
		for k := 1; k <= maxOrders; k++ {
			limits[k] = uniform
		}
		return limits
	}

	for i, part := range parts {
		k := i + 1
		if k > maxOrders {
			break
		}
		limits[k] = parseLimitEntry(part)
	}
	return limits
}

func parseLimitEntry(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
