package director

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ivlev/scrollrig/internal/system"
)

// GenerateScenarioPath creates a timestamped scenario filename inside dir
func GenerateScenarioPath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("scenario_%s.yaml", timestamp))
}

// FindLatestScenario finds the most recent scenario file in dir
func FindLatestScenario(dir string) (string, error) {
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("failed to read scenarios directory: %w", err)
	}
	return system.FindLatest(dir, ".yaml", ".yml")
}
