package cpu

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Info is the parsed view of /proc/cpuinfo shared by the CPU and
// virtualization collectors.
type Info struct {
	ModelName  string
	CurrentMHz float64
	Flags      map[string]bool
}

// HasFlag reports whether the named feature bit is present.
func (i *Info) HasFlag(name string) bool { return i.Flags[name] }

// ReadInfo parses a cpuinfo-format file. Only the first processor entry is
// used; feature flags are identical across logical CPUs.
func ReadInfo(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cpuinfo: %w", err)
	}
	defer f.Close()

	info := &Info{Flags: make(map[string]bool)}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "flags", "Features":
			if len(info.Flags) == 0 {
				for _, fl := range strings.Fields(value) {
					info.Flags[fl] = true
				}
			}
		case "model name":
			if info.ModelName == "" {
				info.ModelName = value
			}
		case "cpu MHz":
			if info.CurrentMHz == 0 {
				if mhz, err := strconv.ParseFloat(value, 64); err == nil {
					info.CurrentMHz = mhz
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan cpuinfo: %w", err)
	}

	return info, nil
}
