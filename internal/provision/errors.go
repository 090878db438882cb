package provision

import "fmt"

// PrerequisiteMissingError signals a condition the tool cannot establish
// itself, such as a missing NVIDIA driver. The operator must resolve it
// out-of-band and re-run.
type PrerequisiteMissingError struct {
	Prerequisite string
	Hint         string
}

func (e *PrerequisiteMissingError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s. %s", e.Prerequisite, e.Hint)
	}
	return e.Prerequisite
}

// TransferError signals a failed download. Transfers are never retried
// and already-downloaded artifacts are left in place.
type TransferError struct {
	URL string
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer of %s failed: %v", e.URL, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// InstallError signals a failed package-manager or local-package
// operation. Partially-applied package state is not rolled back.
type InstallError struct {
	Target string
	Err    error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("installation of %s failed: %v", e.Target, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}
