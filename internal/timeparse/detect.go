package timeparse

// OrderDetector resolves DD/MM vs MM/DD ambiguity from a sample of raw
// date values.
type OrderDetector struct {
	samples    []string
	maxSamples int
}

// NewOrderDetector creates a detector holding at most maxSamples values.
func NewOrderDetector(maxSamples int) *OrderDetector {
	return &OrderDetector{
		samples:    make([]string, 0, maxSamples),
		maxSamples: maxSamples,
	}
}

// Add records a date sample for analysis.
func (d *OrderDetector) Add(s string) {
	if len(d.samples) < d.maxSamples {
		d.samples = append(d.samples, s)
	}
}

// Detect analyzes the samples and returns the most likely field order.
// A first field > 12 forces day-first; a second field > 12 forces
// month-first; ties fall back to OrderYMD.
func (d *OrderDetector) Detect() Order {
	dayFirst := 0
	monthFirst := 0

	for _, sample := range d.samples {
		parts := splitDateParts(sample)
		if len(parts) < 3 {
			continue
		}
		first := atoi2(parts[0])
		second := atoi2(parts[1])
		if first > 12 {
			dayFirst++
		}
		if second > 12 {
			monthFirst++
		}
	}

	if dayFirst > monthFirst {
		return OrderDMY
	}
	if monthFirst > dayFirst {
		return OrderMDY
	}
	return OrderYMD
}

// splitDateParts splits a date by common separators.
func splitDateParts(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '/' || s[i] == '-' || s[i] == '.' {
			if start < i {
				parts = append(parts, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		end := start
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}
		if start < end {
			parts = append(parts, s[start:end])
		}
	}
	return parts
}

// atoi2 parses a 1..2 digit integer, returning -1 on anything else.
func atoi2(s string) int {
	switch len(s) {
	case 1:
		if s[0] < '0' || s[0] > '9' {
			return -1
		}
		return int(s[0] - '0')
	case 2:
		return parseInt2(s)
	default:
		return -1
	}
}
