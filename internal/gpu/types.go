package gpu

// Device describes a single detected GPU
type Device struct {
	Name     string `json:"name"`
	UUID     string `json:"uuid"`
	MemoryMB uint64 `json:"memory_mb"`
	Index    int    `json:"index"`
}

// Report is the result of NVML-based GPU inspection, persisted as
// gpu_report.json alongside the provisioning run report.
type Report struct {
	DriverVersion     string   `json:"driver_version"`
	CUDADriverVersion int      `json:"cuda_driver_version"`
	NVMLOk            bool     `json:"nvml_ok"`
	GPUs              []Device `json:"gpus"`
	ErrorMessage      string   `json:"error_message,omitempty"`
}

// Present reports whether at least one GPU was found via NVML.
func (r Report) Present() bool {
	return r.NVMLOk && len(r.GPUs) > 0
}
