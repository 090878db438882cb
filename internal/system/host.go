package system

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"cudaprep/internal/fsutil"
	"cudaprep/internal/logging"
)

const (
	aptBinary  = "apt-get"
	dpkgBinary = "dpkg"
)

// HostGateway implements Gateway against the real machine: apt-get and
// dpkg via os/exec, downloads via net/http. All operations are blocking
// and carry no timeout; a hanging external command hangs the run.
type HostGateway struct {
	logger *logging.Logger
	client *http.Client
}

// NewHostGateway creates a gateway for the local host
func NewHostGateway(logger *logging.Logger) *HostGateway {
	return &HostGateway{
		logger: logger,
		client: http.DefaultClient,
	}
}

// RunPackageManager invokes apt-get non-interactively
func (g *HostGateway) RunPackageManager(args ...string) error {
	// #nosec G204 -- arguments originate from curated step definitions and config.
	cmd := exec.Command(aptBinary, args...)
	cmd.Env = append(os.Environ(), "DEBIAN_FRONTEND=noninteractive")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	g.logger.Debug("system.apt.run", "Running package manager", map[string]interface{}{
		"args": strings.Join(args, " "),
	})

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s failed: %w, stderr: %s", aptBinary, strings.Join(args, " "), err, stderr.String())
	}
	return nil
}

// InstallLocalPackage registers a local package file via dpkg
func (g *HostGateway) InstallLocalPackage(path string) error {
	// #nosec G204 -- path is built from configured download dir and file name.
	cmd := exec.Command(dpkgBinary, "-i", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s -i %s failed: %w, stderr: %s", dpkgBinary, path, err, stderr.String())
	}
	return nil
}

// QueryPackage checks the dpkg database for an exact package name match.
// A non-zero exit means "not installed", not an error.
func (g *HostGateway) QueryPackage(name string) (bool, error) {
	// #nosec G204 -- package names originate from validated configuration.
	cmd := exec.Command("dpkg-query", "-W", "-f", "${Status}", name)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return false, nil
		}
		return false, fmt.Errorf("dpkg-query %s failed: %w", name, err)
	}

	return packageStatusInstalled(stdout.String()), nil
}

// packageStatusInstalled interprets a dpkg ${Status} field
func packageStatusInstalled(status string) bool {
	return strings.Contains(status, "install ok installed")
}

// RunProbe executes a read-only command and returns its stdout
func (g *HostGateway) RunProbe(name string, args ...string) (string, error) {
	// #nosec G204 -- probe binaries are fixed tool names (nvidia-smi, nvcc).
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s failed: %w, stderr: %s", name, err, stderr.String())
	}
	return stdout.String(), nil
}

// LookPath reports whether a binary is resolvable on PATH
func (g *HostGateway) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Fetch downloads url to dest. The body is streamed to a temp file next
// to dest and renamed into place so a failed transfer never leaves a
// truncated artifact at the destination path.
func (g *HostGateway) Fetch(url, dest string) error {
	if err := fsutil.EnsureDir(filepath.Dir(dest)); err != nil {
		return err
	}

	g.logger.Info("system.fetch.start", "Downloading resource", map[string]interface{}{
		"url":  url,
		"dest": dest,
	})

	resp, err := g.client.Get(url)
	if err != nil {
		return fmt.Errorf("download of %s failed: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			g.logger.Warn("system.fetch.close_failed", "Failed to close response body", map[string]interface{}{
				"error": cerr.Error(),
			})
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download of %s failed: unexpected status %s", url, resp.Status)
	}

	tmpPath := dest + ".partial"
	out, err := os.Create(tmpPath) // #nosec G304 -- dest is built from validated configuration
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmpPath, err)
	}

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		_ = out.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("download of %s failed after %d bytes: %w", url, written, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to finish writing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to move download into place: %w", err)
	}

	g.logger.Info("system.fetch.done", "Download complete", map[string]interface{}{
		"url":   url,
		"bytes": written,
	})
	return nil
}

// WriteFile replaces the file at path with data
func (g *HostGateway) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if err := fsutil.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return fsutil.AtomicWriteFile(path, data, perm)
}

// CopyGlob copies every file matching pattern into destDir
func (g *HostGateway) CopyGlob(pattern, destDir string) error {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("bad glob pattern %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files match %s", pattern)
	}

	if err := fsutil.EnsureDir(destDir); err != nil {
		return err
	}

	for _, src := range matches {
		dest := filepath.Join(destDir, filepath.Base(src))
		if err := copyFile(src, dest); err != nil {
			return err
		}
		g.logger.Info("system.copy", "Copied file", map[string]interface{}{
			"src":  src,
			"dest": dest,
		})
	}
	return nil
}

func copyFile(src, dest string) error {
	data, err := os.ReadFile(src) // #nosec G304 -- src comes from an admin-configured glob
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	if err := fsutil.AtomicWriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dest, err)
	}
	return nil
}
