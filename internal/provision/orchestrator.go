package provision

import (
	"encoding/json"
	"fmt"
	"time"

	"cudaprep/internal/config"
	"cudaprep/internal/fsutil"
	"cudaprep/internal/logging"
	"cudaprep/internal/platform"
	"cudaprep/internal/system"
)

// GPUMissingMessage is the operator guidance printed when no working
// NVIDIA driver is found. Driver installation is out of scope for this
// tool, so the run stops here.
const GPUMissingMessage = "NVIDIA GPU not detected. Install the NVIDIA driver and re-run."

// Reporter receives step progress as the run executes. The console and
// the TUI each implement it.
type Reporter interface {
	StepStarted(name string)
	StepFinished(result RunResult)
}

// Orchestrator executes the fixed provisioning sequence once, applying
// skip-if-satisfied to probed steps and stopping at the first failure.
type Orchestrator struct {
	steps    []Step
	logger   *logging.Logger
	platform platform.Context
}

// NewOrchestrator builds the step sequence for one run. Order matters:
// baseline packages first, then the GPU gate, then everything that
// assumes a working driver. The system upgrade runs last so a driver
// failure never leaves the machine half-upgraded.
func NewOrchestrator(gateway system.Gateway, logger *logging.Logger, cfg *config.Config, plat platform.Context) *Orchestrator {
	var steps []Step

	for _, pkg := range cfg.Packages {
		steps = append(steps, Step{
			Name:   "package " + pkg,
			Probe:  NewPackageInstalledProbe(gateway, pkg),
			Action: NewInstallPackageAction(gateway, pkg),
		})
	}

	steps = append(steps, Step{
		Name:        "gpu driver",
		Probe:       NewGPUPresentProbe(gateway),
		GateMessage: GPUMissingMessage,
	})

	envAction := NewWriteEnvironmentConfigAction(gateway, cfg.Profile.Path, cfg.Toolkit.InstallPrefix)
	steps = append(steps, Step{
		Name:   "environment config",
		Action: envAction,
	})

	bundle := cfg.Bundles.Native
	if plat.WSL {
		bundle = cfg.Bundles.WSL
	}
	steps = append(steps, Step{
		Name:   "cuda toolkit " + cfg.Toolkit.Version,
		Probe:  NewToolkitVersionProbe(gateway, cfg.Toolkit.Version),
		Action: NewInstallToolkitAction(gateway, logger, cfg.Toolkit, bundle, cfg.Downloads.Dir),
	})

	// Rewritten after a toolkit install so the exports match the final
	// install prefix even when an older snippet was on disk.
	steps = append(steps, Step{
		Name:   "environment config refresh",
		Action: envAction,
	})

	steps = append(steps, Step{
		Name:   "system upgrade",
		Action: NewSystemUpgradeAction(gateway),
	})

	return &Orchestrator{
		steps:    steps,
		logger:   logger,
		platform: plat,
	}
}

// Run executes the sequence and returns the aggregated report. The
// first failed step terminates the run; steps after it never execute.
func (o *Orchestrator) Run(reporter Reporter) RunReport {
	report := RunReport{
		StartedAt: time.Now().UTC().Format(time.RFC3339),
		Platform:  o.platform.Name(),
		Success:   true,
	}

	o.logger.Info("run.start", "Starting provisioning run", map[string]interface{}{
		"platform": report.Platform,
		"steps":    len(o.steps),
	})

	for _, step := range o.steps {
		reporter.StepStarted(step.Name)
		result := o.runStep(step)
		report.Results = append(report.Results, result)
		reporter.StepFinished(result)

		o.logger.Info("run.step", "Step finished", map[string]interface{}{
			"step":    result.StepName,
			"outcome": string(result.Outcome),
			"message": result.Message,
		})

		if result.Outcome == OutcomeFailed {
			report.Success = false
			break
		}
	}

	report.FinishedAt = time.Now().UTC().Format(time.RFC3339)
	o.logger.Info("run.done", "Provisioning run finished", map[string]interface{}{
		"success": report.Success,
	})
	return report
}

// runStep evaluates one step: probe first, then the action when the
// probe reports unsatisfied or is absent.
func (o *Orchestrator) runStep(step Step) RunResult {
	result := RunResult{StepName: step.Name}

	if step.Probe != nil {
		probe := step.Probe.Check()
		switch probe.State {
		case StateUnknown:
			result.Outcome = OutcomeFailed
			result.Message = fmt.Sprintf("probe failed: %v", probe.Err)
			return result
		case StateSatisfied:
			result.Outcome = OutcomeSatisfied
			result.Message = "already satisfied"
			return result
		case StateUnsatisfied:
			if step.Action == nil {
				err := &PrerequisiteMissingError{
					Prerequisite: step.GateMessage,
					Hint:         probe.Reason,
				}
				result.Outcome = OutcomeFailed
				result.Message = err.Error()
				return result
			}
			result.Message = probe.Reason
		}
	}

	if step.Action == nil {
		result.Outcome = OutcomeSatisfied
		return result
	}

	if err := step.Action.Apply(); err != nil {
		result.Outcome = OutcomeFailed
		result.Message = err.Error()
		return result
	}

	// A leftover message is the probe reason that triggered the action;
	// keep it so the report shows why the step ran.
	result.Outcome = OutcomePerformed
	return result
}

// SaveReport persists the run report as JSON for later inspection.
func SaveReport(report RunReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}
	if err := fsutil.AtomicWriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write run report: %w", err)
	}
	return nil
}
