package benchmark

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/YgNiko/openvino-prep/pkg/types"
)

// FilterSummary drops empty lines and the tool's bracketed log lines
// ("[ INFO ]", "[Step 1/11]", ...), leaving the trailing statistics block.
func FilterSummary(lines []string) []string {
	filtered := []string{}
	for _, line := range lines {
		if line == "" || strings.HasPrefix(line, "[") {
			continue
		}
		filtered = append(filtered, line)
	}
	return filtered
}

// ParseSummary extracts the typed statistics from filtered benchmark output:
//
//	Count:          27612 iterations
//	Duration:       15007.22 ms
//	Latency:
//	    Median:     6.32 ms
//	    Average:    6.40 ms
//	    Min:        4.88 ms
//	    Max:        13.37 ms
//	Throughput:     1839.91 FPS
//
// Older tool versions print "Latency: 6.32 ms" on one line; both are handled.
func ParseSummary(lines []string) (*types.BenchmarkResult, error) {
	result := &types.BenchmarkResult{}
	found := false
	inlatency := false

	for _, line := range lines {
		indented := len(line) > 0 && unicode.IsSpace(rune(line[0]))
		key, value, ok := splitField(line)
		if !ok {
			continue
		}
		if inlatency && indented {
			switch key {
			case "Median":
				result.Latency.Median = number(value)
			case "Average":
				result.Latency.Average = number(value)
			case "Min":
				result.Latency.Min = number(value)
			case "Max":
				result.Latency.Max = number(value)
			}
			continue
		}
		inlatency = false

		switch key {
		case "Count":
			result.Count = int64(number(value))
			found = true
		case "Duration":
			result.DurationMS = number(value)
			found = true
		case "Latency":
			if value == "" {
				inlatency = true
			} else {
				result.Latency.Median = number(value)
			}
			found = true
		case "Throughput":
			result.ThroughputFPS = number(value)
			found = true
		}
	}

	if !found {
		return nil, fmt.Errorf("no statistics block in %d lines", len(lines))
	}
	return result, nil
}

func splitField(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

// number parses the leading numeric token of a value like "15007.22 ms" or
// "27612 iterations".
func number(value string) float64 {
	token := value
	if i := strings.IndexFunc(value, unicode.IsSpace); i != -1 {
		token = value[:i]
	}
	n, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0
	}
	return n
}
