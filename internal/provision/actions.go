package provision

import (
	"fmt"
	"strings"

	"cudaprep/internal/system"
)

// InstallPackageAction installs a single package through the package
// manager.
type InstallPackageAction struct {
	gateway system.Gateway
	name    string
}

// NewInstallPackageAction creates an install action for one package.
func NewInstallPackageAction(gateway system.Gateway, name string) *InstallPackageAction {
	return &InstallPackageAction{gateway: gateway, name: name}
}

// Apply invokes the package manager install.
func (a *InstallPackageAction) Apply() error {
	if err := a.gateway.RunPackageManager("install", "-y", a.name); err != nil {
		return &InstallError{Target: a.name, Err: err}
	}
	return nil
}

// SystemUpgradeAction refreshes the package index, upgrades installed
// packages, and removes orphans. The three sub-steps run in order and
// the first failure stops the sequence.
type SystemUpgradeAction struct {
	gateway system.Gateway
}

// NewSystemUpgradeAction creates the system upgrade action.
func NewSystemUpgradeAction(gateway system.Gateway) *SystemUpgradeAction {
	return &SystemUpgradeAction{gateway: gateway}
}

// Apply runs update, upgrade, autoremove.
func (a *SystemUpgradeAction) Apply() error {
	subSteps := [][]string{
		{"update"},
		{"upgrade", "-y"},
		{"autoremove", "-y"},
	}
	for _, args := range subSteps {
		if err := a.gateway.RunPackageManager(args...); err != nil {
			return &InstallError{Target: "system upgrade (" + args[0] + ")", Err: err}
		}
	}
	return nil
}

// WriteEnvironmentConfigAction writes the shell-profile snippet that
// exposes the toolkit's binaries and libraries to future sessions. The
// file is replaced wholesale on every run, so repeated invocations
// leave identical content instead of accumulating export lines.
type WriteEnvironmentConfigAction struct {
	gateway       system.Gateway
	profilePath   string
	installPrefix string
}

// NewWriteEnvironmentConfigAction creates the profile writer.
func NewWriteEnvironmentConfigAction(gateway system.Gateway, profilePath, installPrefix string) *WriteEnvironmentConfigAction {
	return &WriteEnvironmentConfigAction{
		gateway:       gateway,
		profilePath:   profilePath,
		installPrefix: installPrefix,
	}
}

// Apply renders and writes the profile file.
func (a *WriteEnvironmentConfigAction) Apply() error {
	content := renderProfile(a.installPrefix)
	if err := a.gateway.WriteFile(a.profilePath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", a.profilePath, err)
	}
	return nil
}

// renderProfile produces the complete profile file content. The PATH
// and LD_LIBRARY_PATH guards avoid a leading colon when the variable
// was previously empty.
func renderProfile(installPrefix string) string {
	var b strings.Builder
	b.WriteString("# Managed by cudaprep. Do not edit; changes are overwritten on the next run.\n")
	fmt.Fprintf(&b, "export PATH=%s/bin${PATH:+:${PATH}}\n", installPrefix)
	fmt.Fprintf(&b, "export LD_LIBRARY_PATH=%s/lib64${LD_LIBRARY_PATH:+:${LD_LIBRARY_PATH}}\n", installPrefix)
	return b.String()
}
