package provision

import (
	"path/filepath"

	"cudaprep/internal/config"
	"cudaprep/internal/logging"
	"cudaprep/internal/system"
)

// InstallToolkitAction performs the full toolkit installation chain:
// fetch the apt pin, fetch the local repository installer, register it,
// copy its keyring into the trusted keyring directory, re-index, and
// install the toolkit package. The chain is linear; the first failure
// is terminal and nothing is retried or rolled back.
type InstallToolkitAction struct {
	gateway      system.Gateway
	logger       *logging.Logger
	toolkit      config.ToolkitConfig
	bundle       config.BundleConfig
	downloadsDir string
}

// NewInstallToolkitAction creates the toolkit installer for the bundle
// matching the current platform.
func NewInstallToolkitAction(gateway system.Gateway, logger *logging.Logger, toolkit config.ToolkitConfig, bundle config.BundleConfig, downloadsDir string) *InstallToolkitAction {
	return &InstallToolkitAction{
		gateway:      gateway,
		logger:       logger,
		toolkit:      toolkit,
		bundle:       bundle,
		downloadsDir: downloadsDir,
	}
}

// Apply runs the installation chain.
func (a *InstallToolkitAction) Apply() error {
	a.logger.Info("toolkit.install.start", "Installing CUDA toolkit", map[string]interface{}{
		"version": a.toolkit.Version,
		"package": a.toolkit.Package,
	})

	if err := a.gateway.Fetch(a.bundle.PinURL, a.bundle.PinDest); err != nil {
		return &TransferError{URL: a.bundle.PinURL, Err: err}
	}

	packagePath := filepath.Join(a.downloadsDir, a.bundle.PackageFile)
	if err := a.gateway.Fetch(a.bundle.PackageURL, packagePath); err != nil {
		return &TransferError{URL: a.bundle.PackageURL, Err: err}
	}

	if err := a.gateway.InstallLocalPackage(packagePath); err != nil {
		return &InstallError{Target: a.bundle.PackageFile, Err: err}
	}

	// The local repository package drops its signing keyring under
	// /var/cuda-repo-*; copying it into the trusted keyring directory is
	// the single key-trust mechanism this tool uses.
	if err := a.gateway.CopyGlob(a.toolkit.KeyringGlob, a.toolkit.KeyringDir); err != nil {
		return &InstallError{Target: "repository keyring", Err: err}
	}

	if err := a.gateway.RunPackageManager("update"); err != nil {
		return &InstallError{Target: "package index", Err: err}
	}

	if err := a.gateway.RunPackageManager("install", "-y", a.toolkit.Package); err != nil {
		return &InstallError{Target: a.toolkit.Package, Err: err}
	}

	a.logger.Info("toolkit.install.done", "CUDA toolkit installed", map[string]interface{}{
		"version": a.toolkit.Version,
	})
	return nil
}
