//go:build cuda

package gpu

import (
	"fmt"

	"cudaprep/internal/logging"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// Detector inspects the host's GPUs through NVML. It complements the
// nvidia-smi probe used during provisioning with per-device details for
// the check command.
type Detector struct {
	nvml   NVMLInterface
	logger *logging.Logger
}

// NewDetector creates a new GPU detector
func NewDetector(logger *logging.Logger) *Detector {
	return &Detector{
		nvml:   NewRealNVML(),
		logger: logger,
	}
}

// NewDetectorWithNVML creates a detector with a custom NVML interface (for testing)
func NewDetectorWithNVML(nvmlInterface NVMLInterface, logger *logging.Logger) *Detector {
	return &Detector{
		nvml:   nvmlInterface,
		logger: logger,
	}
}

// Inspect performs GPU detection and returns a report
func (d *Detector) Inspect() Report {
	d.logger.Info("gpu.inspect.start", "Starting GPU inspection", nil)

	report := Report{
		GPUs: make([]Device, 0),
	}

	ret := d.nvml.Init()
	if ret != nvml.SUCCESS {
		report.NVMLOk = false
		report.ErrorMessage = fmt.Sprintf("Failed to initialize NVML: %v", nvml.ErrorString(ret))
		d.logger.Warn("gpu.nvml.init.failed", "NVML initialization failed", map[string]interface{}{
			"error": report.ErrorMessage,
		})
		return report
	}
	defer d.nvml.Shutdown()

	report.NVMLOk = true

	driverVersion, ret := d.nvml.SystemGetDriverVersion()
	if ret != nvml.SUCCESS {
		d.logger.Warn("gpu.driver.version.failed", "Failed to get driver version", map[string]interface{}{
			"error": nvml.ErrorString(ret),
		})
	} else {
		report.DriverVersion = driverVersion
	}

	cudaVersion, ret := d.nvml.SystemGetCudaDriverVersion()
	if ret != nvml.SUCCESS {
		d.logger.Warn("gpu.cuda.version.failed", "Failed to get CUDA driver version", map[string]interface{}{
			"error": nvml.ErrorString(ret),
		})
	} else {
		report.CUDADriverVersion = cudaVersion
	}

	count, ret := d.nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		report.ErrorMessage = fmt.Sprintf("Failed to get device count: %v", nvml.ErrorString(ret))
		d.logger.Error("gpu.device.count.failed", "Failed to get GPU count", map[string]interface{}{
			"error": report.ErrorMessage,
		})
		return report
	}

	d.logger.Info("gpu.device.count", "Found GPU devices", map[string]interface{}{
		"count": count,
	})

	for i := 0; i < count; i++ {
		device, ret := d.nvml.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			d.logger.Warn("gpu.device.handle.failed", "Failed to get device handle", map[string]interface{}{
				"index": i,
				"error": nvml.ErrorString(ret),
			})
			continue
		}

		info := Device{
			Index: i,
		}

		name, ret := device.GetName()
		if ret == nvml.SUCCESS {
			info.Name = name
		}

		uuid, ret := device.GetUUID()
		if ret == nvml.SUCCESS {
			info.UUID = uuid
		}

		memInfo, ret := device.GetMemoryInfo()
		if ret == nvml.SUCCESS {
			info.MemoryMB = memInfo.Total / (1024 * 1024)
		}

		report.GPUs = append(report.GPUs, info)

		d.logger.Info("gpu.device.detected", "GPU device detected", map[string]interface{}{
			"index":     i,
			"name":      info.Name,
			"uuid":      info.UUID,
			"memory_mb": info.MemoryMB,
		})
	}

	return report
}

// SaveReport persists a GPU report to disk.
func (d *Detector) SaveReport(report Report, path string) error {
	return saveReportToFile(d.logger, report, path)
}
