package system

import "io/fs"

// Gateway is the single integration point with the live machine. Probe,
// action, and orchestration logic only ever touch the host through this
// interface, so the whole provisioning core can run against a fake.
type Gateway interface {
	// RunPackageManager invokes the package manager (apt-get) with the
	// given arguments: install, update, upgrade, autoremove.
	RunPackageManager(args ...string) error
	// InstallLocalPackage registers a downloaded package file with the
	// low-level package installer (dpkg -i).
	InstallLocalPackage(path string) error
	// QueryPackage reports whether a package with exactly this name is
	// installed according to the package database.
	QueryPackage(name string) (bool, error)
	// RunProbe executes a read-only command and returns its stdout.
	RunProbe(name string, args ...string) (string, error)
	// LookPath reports whether a binary is resolvable on PATH.
	LookPath(name string) bool
	// Fetch downloads a URL to a destination path, blocking until done.
	Fetch(url, dest string) error
	// WriteFile replaces the file at path with data. Repeated writes with
	// the same data must leave identical content.
	WriteFile(path string, data []byte, perm fs.FileMode) error
	// CopyGlob copies every file matching pattern into destDir, keeping
	// file names. It fails when the pattern matches nothing.
	CopyGlob(pattern, destDir string) error
}
