package platform

import (
	"os"
	"strings"
)

// Context describes the host platform. It is computed once at startup and
// passed explicitly to every component that needs it, so nothing re-reads
// ambient environment state mid-run.
type Context struct {
	WSL    bool   `json:"wsl"`
	Distro string `json:"distro"`
}

// Detect inspects the environment once and returns the platform context.
func Detect() Context {
	return Context{
		WSL:    detectWSL(os.Getenv("WSL_DISTRO_NAME"), readFileQuiet("/proc/version")),
		Distro: parseDistro(readFileQuiet("/etc/os-release")),
	}
}

// Name returns a short human-readable platform label.
func (c Context) Name() string {
	distro := c.Distro
	if distro == "" {
		distro = "linux"
	}
	if c.WSL {
		return distro + " (WSL2)"
	}
	return distro
}

// detectWSL reports whether the host is a WSL2 distribution. The
// WSL_DISTRO_NAME variable is authoritative when present; the kernel
// version string is the fallback for non-interactive invocations.
func detectWSL(distroEnv, procVersion string) bool {
	if strings.TrimSpace(distroEnv) != "" {
		return true
	}
	return strings.Contains(strings.ToLower(procVersion), "microsoft")
}

// parseDistro extracts the ID field from os-release content.
func parseDistro(osRelease string) string {
	for _, line := range strings.Split(osRelease, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "ID=") {
			continue
		}
		value := strings.TrimPrefix(line, "ID=")
		return strings.Trim(value, `"'`)
	}
	return ""
}

func readFileQuiet(path string) string {
	data, err := os.ReadFile(path) // #nosec G304 -- fixed well-known paths
	if err != nil {
		return ""
	}
	return string(data)
}
