package storage

import (
	"regexp"
	"strings"
)

// laneBandwidthMBs is the theoretical per-lane throughput in MB/s after
// encoding overhead, keyed by PCIe generation.
var laneBandwidthMBs = map[int]int64{
	3: 985,
	4: 1969,
	5: 3938,
}

// LaneBandwidthMBs returns the theoretical per-lane bandwidth for a PCIe
// generation, or 0 for unknown generations.
func LaneBandwidthMBs(generation int) int64 {
	return laneBandwidthMBs[generation]
}

// TheoreticalBandwidthMBs computes lanes × per-lane rate. This is an
// estimate derived from the link configuration, not a measurement.
func TheoreticalBandwidthMBs(generation, lanes int) int64 {
	if lanes <= 0 {
		return 0
	}
	return LaneBandwidthMBs(generation) * int64(lanes)
}

// generationFromLinkSpeed maps a sysfs current_link_speed string
// (e.g. "16.0 GT/s PCIe") to a PCIe generation. 0 means unrecognized.
func generationFromLinkSpeed(speed string) int {
	switch {
	case strings.Contains(speed, "32.0 GT/s") || strings.Contains(speed, "32 GT/s"):
		return 5
	case strings.Contains(speed, "16.0 GT/s") || strings.Contains(speed, "16 GT/s"):
		return 4
	case strings.Contains(speed, "8.0 GT/s") || strings.Contains(speed, "8 GT/s"):
		return 3
	case strings.Contains(speed, "5.0 GT/s") || strings.Contains(speed, "5 GT/s"):
		return 2
	default:
		return 0
	}
}

var linkWidthRe = regexp.MustCompile(`x?(\d+)`)

// lanesFromLinkWidth parses a sysfs current_link_width string ("4" or "x4").
func lanesFromLinkWidth(width string) int {
	m := linkWidthRe.FindStringSubmatch(strings.TrimSpace(width))
	if m == nil {
		return 0
	}
	return atoi(m[1])
}
