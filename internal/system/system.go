package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// FindLatest returns the most recently modified file in dir whose name ends
// with one of exts (case-insensitive). A file path is searched in its
// directory.
func FindLatest(dir string, exts ...string) (string, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return "", err
	}
	if !fi.IsDir() {
		dir = filepath.Dir(dir)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !hasExt(f.Name(), exts) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no %s files found in %s", strings.Join(exts, "/"), dir)
	}

	return latestFile, nil
}

func hasExt(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// ProcessStats is a snapshot of this process's resource usage.
type ProcessStats struct {
	RSS        uint64  // resident set size in bytes
	CPUPercent float64 // since process start
	CPUTime    time.Duration
	Threads    int32
}

// Snapshot reads the current process statistics.
func Snapshot() (ProcessStats, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ProcessStats{}, fmt.Errorf("open process: %w", err)
	}

	var st ProcessStats
	mem, err := p.MemoryInfo()
	if err != nil {
		return st, fmt.Errorf("memory info: %w", err)
	}
	st.RSS = mem.RSS

	if pct, err := p.CPUPercent(); err == nil {
		st.CPUPercent = pct
	}
	if times, err := p.Times(); err == nil {
		st.CPUTime = time.Duration((times.User + times.System) * float64(time.Second))
	}
	if n, err := p.NumThreads(); err == nil {
		st.Threads = n
	}
	return st, nil
}

// String formats the stats the way the CLI prints them.
func (s ProcessStats) String() string {
	return fmt.Sprintf("RSS %.1f MiB, CPU %.1f%% (%s), threads %d",
		float64(s.RSS)/(1<<20), s.CPUPercent, s.CPUTime.Round(time.Millisecond), s.Threads)
}
