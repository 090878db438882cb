package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validatePackages()...)
	errors = append(errors, c.validateToolkit()...)
	errors = append(errors, c.validateBundles()...)
	errors = append(errors, c.validatePaths()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validatePackages() []ValidationError {
	var errors []ValidationError

	if len(c.Packages) == 0 {
		errors = append(errors, ValidationError{
			Path:    "packages",
			Message: "at least one baseline package is required",
		})
	}

	for i, name := range c.Packages {
		if strings.TrimSpace(name) == "" {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("packages[%d]", i),
				Message: "package name must not be empty",
			})
		}
	}

	return errors
}

func (c *Config) validateToolkit() []ValidationError {
	var errors []ValidationError

	if c.Toolkit.Version == "" {
		errors = append(errors, ValidationError{
			Path:    "toolkit.version",
			Message: "required version must not be empty",
		})
	}
	if c.Toolkit.Package == "" {
		errors = append(errors, ValidationError{
			Path:    "toolkit.package",
			Message: "toolkit package name must not be empty",
		})
	}
	if !filepath.IsAbs(c.Toolkit.InstallPrefix) {
		errors = append(errors, ValidationError{
			Path:    "toolkit.install_prefix",
			Message: fmt.Sprintf("must be an absolute path, got '%s'", c.Toolkit.InstallPrefix),
		})
	}
	if c.Toolkit.KeyringGlob == "" {
		errors = append(errors, ValidationError{
			Path:    "toolkit.keyring_glob",
			Message: "keyring glob must not be empty",
		})
	}
	if !filepath.IsAbs(c.Toolkit.KeyringDir) {
		errors = append(errors, ValidationError{
			Path:    "toolkit.keyring_dir",
			Message: fmt.Sprintf("must be an absolute path, got '%s'", c.Toolkit.KeyringDir),
		})
	}

	return errors
}

func (c *Config) validateBundles() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validateBundle("bundles.native", &c.Bundles.Native)...)
	errors = append(errors, validateBundle("bundles.wsl", &c.Bundles.WSL)...)
	return errors
}

func validateBundle(path string, b *BundleConfig) []ValidationError {
	var errors []ValidationError

	if b.PinFile == "" {
		errors = append(errors, ValidationError{
			Path:    path + ".pin_file",
			Message: "pin file name must not be empty",
		})
	}
	if !isValidURL(b.PinURL) {
		errors = append(errors, ValidationError{
			Path:    path + ".pin_url",
			Message: fmt.Sprintf("must be an http(s) URL, got '%s'", b.PinURL),
		})
	}
	if !filepath.IsAbs(b.PinDest) {
		errors = append(errors, ValidationError{
			Path:    path + ".pin_dest",
			Message: fmt.Sprintf("must be an absolute path, got '%s'", b.PinDest),
		})
	}
	if b.PackageFile == "" {
		errors = append(errors, ValidationError{
			Path:    path + ".package_file",
			Message: "package file name must not be empty",
		})
	}
	if !isValidURL(b.PackageURL) {
		errors = append(errors, ValidationError{
			Path:    path + ".package_url",
			Message: fmt.Sprintf("must be an http(s) URL, got '%s'", b.PackageURL),
		})
	}

	return errors
}

func (c *Config) validatePaths() []ValidationError {
	var errors []ValidationError

	if !filepath.IsAbs(c.Downloads.Dir) {
		errors = append(errors, ValidationError{
			Path:    "downloads.dir",
			Message: fmt.Sprintf("must be an absolute path, got '%s'", c.Downloads.Dir),
		})
	}
	if !filepath.IsAbs(c.Profile.Path) {
		errors = append(errors, ValidationError{
			Path:    "profile.path",
			Message: fmt.Sprintf("must be an absolute path, got '%s'", c.Profile.Path),
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, c.Logging.Level) {
		errors = append(errors, ValidationError{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got '%s'", validLevels, c.Logging.Level),
		})
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, c.Logging.Format) {
		errors = append(errors, ValidationError{
			Path:    "logging.format",
			Message: fmt.Sprintf("must be one of %v, got '%s'", validFormats, c.Logging.Format),
		})
	}

	return errors
}

// contains checks if a string is in a slice
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func isValidURL(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}
