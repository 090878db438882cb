package provision

import (
	"fmt"
	"strings"

	"cudaprep/internal/system"
)

// PackageInstalledProbe checks the package database for an exact name match.
type PackageInstalledProbe struct {
	gateway system.Gateway
	name    string
}

// NewPackageInstalledProbe creates a probe for one package name.
func NewPackageInstalledProbe(gateway system.Gateway, name string) *PackageInstalledProbe {
	return &PackageInstalledProbe{gateway: gateway, name: name}
}

// Check queries the package database.
func (p *PackageInstalledProbe) Check() ProbeResult {
	installed, err := p.gateway.QueryPackage(p.name)
	if err != nil {
		return Unknown(err)
	}
	if installed {
		return Satisfied()
	}
	return Unsatisfied("not installed")
}

// GPUPresentProbe checks that a compute-capable NVIDIA GPU is visible
// to the driver. It relies on nvidia-smi exiting cleanly; a missing
// binary and a failing one are treated the same, since both mean the
// driver is not usable.
type GPUPresentProbe struct {
	gateway system.Gateway
}

// NewGPUPresentProbe creates the GPU gate probe.
func NewGPUPresentProbe(gateway system.Gateway) *GPUPresentProbe {
	return &GPUPresentProbe{gateway: gateway}
}

// Check runs the driver query tool.
func (p *GPUPresentProbe) Check() ProbeResult {
	if !p.gateway.LookPath("nvidia-smi") {
		return Unsatisfied("nvidia-smi not found on PATH")
	}
	if _, err := p.gateway.RunProbe("nvidia-smi"); err != nil {
		return Unsatisfied(fmt.Sprintf("nvidia-smi failed: %v", err))
	}
	return Satisfied()
}

// ToolkitVersionProbe checks the installed toolkit version against the
// required one. Comparison is exact string equality: a newer or older
// installed version is treated identically to "not installed" and
// triggers reinstallation. Do not relax this to a range match.
type ToolkitVersionProbe struct {
	gateway         system.Gateway
	requiredVersion string
}

// NewToolkitVersionProbe creates a probe pinned to one version string.
func NewToolkitVersionProbe(gateway system.Gateway, requiredVersion string) *ToolkitVersionProbe {
	return &ToolkitVersionProbe{gateway: gateway, requiredVersion: requiredVersion}
}

// Check runs nvcc and compares its release version.
func (p *ToolkitVersionProbe) Check() ProbeResult {
	if !p.gateway.LookPath("nvcc") {
		return Unsatisfied("not installed")
	}

	out, err := p.gateway.RunProbe("nvcc", "--version")
	if err != nil {
		return Unknown(fmt.Errorf("nvcc --version failed: %w", err))
	}

	installed := parseReleaseVersion(out)
	if installed == "" {
		return Unknown(fmt.Errorf("could not find a release version in nvcc output"))
	}
	if installed == p.requiredVersion {
		return Satisfied()
	}
	return Unsatisfied(fmt.Sprintf("version mismatch: got %s, want %s", installed, p.requiredVersion))
}

// parseReleaseVersion extracts the version token from nvcc output.
// The relevant line looks like:
//
//	Cuda compilation tools, release 12.8, V12.8.93
//
// The token after "release" up to the trailing comma is the version.
func parseReleaseVersion(output string) string {
	fields := strings.Fields(output)
	for i, field := range fields {
		if field == "release" && i+1 < len(fields) {
			return strings.TrimSuffix(fields[i+1], ",")
		}
	}
	return ""
}
