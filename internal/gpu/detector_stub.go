//go:build !cuda

package gpu

import "cudaprep/internal/logging"

// Detector provides a no-op GPU inspector when NVML is unavailable.
type Detector struct {
	logger *logging.Logger
}

// NewDetector creates a GPU detector that skips NVML when CUDA support is disabled.
func NewDetector(logger *logging.Logger) *Detector {
	return &Detector{logger: logger}
}

// NewDetectorWithNVML is provided for API compatibility; NVML is ignored when CUDA is disabled.
func NewDetectorWithNVML(_ NVMLInterface, logger *logging.Logger) *Detector {
	return NewDetector(logger)
}

// Inspect returns a report indicating that NVML is unavailable in the current build.
func (d *Detector) Inspect() Report {
	if d.logger != nil {
		d.logger.Info("gpu.inspect.disabled", "Skipping NVML inspection (built without cuda tag)", nil)
	}

	return Report{
		GPUs:         []Device{},
		NVMLOk:       false,
		ErrorMessage: "NVML disabled: rebuild with -tags cuda",
	}
}

// SaveReport persists a GPU report to disk.
func (d *Detector) SaveReport(report Report, path string) error {
	return saveReportToFile(d.logger, report, path)
}
