package gpu

import (
	"encoding/json"
	"fmt"

	"cudaprep/internal/fsutil"
	"cudaprep/internal/logging"
)

func saveReportToFile(logger *logging.Logger, report Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := fsutil.AtomicWriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	if logger != nil {
		logger.Info("gpu.report.saved", "GPU report saved", map[string]interface{}{
			"path": path,
		})
	}

	return nil
}
