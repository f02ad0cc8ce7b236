package wizard

import (
	"os"
	"os/exec"
)

// DetectionResult holds what was auto-detected on the system.
type DetectionResult struct {
	LPassPath    string // resolved lpass executable, empty if not found
	ConfigExists bool
}

// Detector abstracts filesystem and path lookups for testing.
type Detector interface {
	LookPath(name string) (string, error)
	Stat(path string) (os.FileInfo, error)
}

// OSDetector uses the real OS for detection.
type OSDetector struct{}

func (OSDetector) LookPath(name string) (string, error)  { return exec.LookPath(name) }
func (OSDetector) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }

// Detect looks for the lpass executable and an existing config file.
func Detect(d Detector, lpass, configPath string) DetectionResult {
	if d == nil {
		d = OSDetector{}
	}

	result := DetectionResult{}

	if path, err := d.LookPath(lpass); err == nil {
		result.LPassPath = path
	}

	if info, err := d.Stat(configPath); err == nil && !info.IsDir() {
		result.ConfigExists = true
	}

	return result
}
