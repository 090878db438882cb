package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cudaprep/internal/config"
	"cudaprep/internal/fsutil"
	"cudaprep/internal/gpu"
	"cudaprep/internal/logging"
	"cudaprep/internal/platform"
	"cudaprep/internal/provision"
	"cudaprep/internal/system"
	"cudaprep/internal/tui"
)

const (
	version        = "0.1.0-dev"
	runReportFile  = "run_report.json"
	gpuReportFile  = "gpu_report.json"
	glyphSatisfied = "○"
	glyphMissing   = "✗"
)

func main() {
	if len(os.Args) <= 1 {
		runProvision()
		return
	}

	command := strings.ToLower(os.Args[1])
	if handler, ok := commandHandlers()[command]; ok {
		handler()
		return
	}

	fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
	printUsage()
	os.Exit(1)
}

func commandHandlers() map[string]func() {
	return map[string]func(){
		"run":     runProvision,
		"tui":     runProvisionTUI,
		"check":   runCheck,
		"config":  runConfig,
		"version": runVersion,
		"help":    printUsage,
		"--help":  printUsage,
		"-h":      printUsage,
	}
}

func runVersion() {
	fmt.Printf("cudaprep version %s\n", version)
}

// setup loads configuration and builds the shared pieces every mutating
// command needs.
func setup() (config.Config, *logging.Logger, *system.HostGateway, platform.Context) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.Logging.Level))
	gateway := system.NewHostGateway(logger)
	plat := platform.Detect()

	return cfg, logger, gateway, plat
}

func requireRoot() {
	if os.Geteuid() != 0 {
		fmt.Fprintln(os.Stderr, "cudaprep must run as root to install packages. Re-run with sudo.")
		os.Exit(1)
	}
}

func runProvision() {
	requireRoot()
	cfg, logger, gateway, plat := setup()

	logger.Info("app.started", "Application started", map[string]interface{}{
		"version":  version,
		"command":  "run",
		"platform": plat.Name(),
		"ts":       time.Now().UTC().Format(time.RFC3339),
	})

	orchestrator := provision.NewOrchestrator(gateway, logger, &cfg, plat)
	reporter := provision.NewConsoleReporter(os.Stdout)
	report := orchestrator.Run(reporter)

	finishRun(logger, report)
}

func runProvisionTUI() {
	requireRoot()
	cfg, logger, gateway, plat := setup()

	// The structured event stream would corrupt the alternate screen;
	// keep it in a file for the duration of the TUI.
	logPath := filepath.Join(fsutil.StateDir(), "cudaprep.log")
	if fileLogger, err := logging.NewFileLogger(logging.ParseLevel(cfg.Logging.Level), logPath); err == nil {
		logger = fileLogger
		defer func() { _ = logger.Close() }()
		gateway = system.NewHostGateway(logger)
	}

	orchestrator := provision.NewOrchestrator(gateway, logger, &cfg, plat)
	reporter := tui.NewChannelReporter()

	reports := make(chan provision.RunReport, 1)
	go func() {
		report := orchestrator.Run(reporter)
		reports <- report
		reporter.RunDone(report)
	}()

	p := tea.NewProgram(tui.NewModel(reporter))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	finishRun(logger, <-reports)
}

// finishRun persists the run report and maps the outcome to the process
// exit code.
func finishRun(logger *logging.Logger, report provision.RunReport) {
	reportPath := filepath.Join(fsutil.StateDir(), runReportFile)
	if err := fsutil.EnsureDir(fsutil.StateDir()); err == nil {
		if err := provision.SaveReport(report, reportPath); err != nil {
			logger.Warn("report.save.failed", "Could not save run report", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	fmt.Println()
	fmt.Print(tui.RenderSummary(report))

	logger.Info("app.exited", "Application exited", map[string]interface{}{
		"success": report.Success,
		"ts":      time.Now().UTC().Format(time.RFC3339),
	})

	if !report.Success {
		os.Exit(1)
	}
}

// runCheck reports current machine state without mutating anything.
func runCheck() {
	cfg, logger, gateway, plat := setup()

	unsatisfied := 0
	check := func(name string, result provision.ProbeResult) {
		printProbeLine(name, result)
		if result.State != provision.StateSatisfied {
			unsatisfied++
		}
	}

	fmt.Printf("Platform: %s\n\n", plat.Name())

	fmt.Println("Baseline packages:")
	for _, pkg := range cfg.Packages {
		check(pkg, provision.NewPackageInstalledProbe(gateway, pkg).Check())
	}
	fmt.Println()

	fmt.Println("GPU driver:")
	gpuResult := provision.NewGPUPresentProbe(gateway).Check()
	check("nvidia-smi", gpuResult)

	detector := gpu.NewDetector(logger)
	gpuReport := detector.Inspect()
	if gpuReport.NVMLOk {
		fmt.Printf("  driver version: %s\n", gpuReport.DriverVersion)
		for _, device := range gpuReport.GPUs {
			fmt.Printf("  [%d] %s (%d MB)\n", device.Index, device.Name, device.MemoryMB)
		}
	} else if gpuReport.ErrorMessage != "" {
		fmt.Printf("  nvml: %s\n", gpuReport.ErrorMessage)
	}

	if err := fsutil.EnsureDir(fsutil.StateDir()); err == nil {
		_ = detector.SaveReport(gpuReport, filepath.Join(fsutil.StateDir(), gpuReportFile))
	}
	fmt.Println()

	fmt.Printf("CUDA toolkit (required %s):\n", cfg.Toolkit.Version)
	check("nvcc", provision.NewToolkitVersionProbe(gateway, cfg.Toolkit.Version).Check())

	if gpuResult.State != provision.StateSatisfied {
		fmt.Println()
		fmt.Println(provision.GPUMissingMessage)
	}
	if unsatisfied > 0 {
		os.Exit(1)
	}
}

func printProbeLine(name string, result provision.ProbeResult) {
	switch result.State {
	case provision.StateSatisfied:
		fmt.Printf("  %s %s\n", glyphSatisfied, name)
	case provision.StateUnsatisfied:
		fmt.Printf("  %s %s (%s)\n", glyphMissing, name, result.Reason)
	default:
		fmt.Printf("  %s %s (probe failed: %v)\n", glyphMissing, name, result.Err)
	}
}

func runConfig() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: cudaprep config <subcommand>\n")
		fmt.Fprintf(os.Stderr, "Subcommands:\n")
		fmt.Fprintf(os.Stderr, "  test [path]  Test configuration file for validity\n")
		os.Exit(1)
	}

	subcommand := strings.ToLower(os.Args[2])

	switch subcommand {
	case "test":
		runConfigTest()
	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", subcommand)
		fmt.Fprintf(os.Stderr, "Valid subcommands: test\n")
		os.Exit(1)
	}
}

func runConfigTest() {
	var cfg config.Config
	var configErr error

	if len(os.Args) > 3 {
		path := os.Args[3]
		fmt.Printf("Testing configuration file: %s\n", path)
		cfg, configErr = config.LoadFrom(path)
	} else {
		fmt.Println("Testing configuration (system + user merge):")
		fmt.Printf("  System config: %s\n", config.SystemConfigPath())
		if userPath := config.UserConfigPath(); userPath != "" {
			fmt.Printf("  User config:   %s\n", userPath)
		}
		fmt.Println()

		cfg, configErr = config.Load()
	}

	if configErr != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration validation FAILED:\n")
		fmt.Fprintf(os.Stderr, "   %v\n", configErr)
		os.Exit(1)
	}

	fmt.Println("✓ Configuration is VALID")
	fmt.Println()
	fmt.Println("Configuration Summary:")
	fmt.Printf("  Baseline Packages:  %s\n", strings.Join(cfg.Packages, ", "))
	fmt.Printf("  Toolkit Version:    %s\n", cfg.Toolkit.Version)
	fmt.Printf("  Toolkit Package:    %s\n", cfg.Toolkit.Package)
	fmt.Printf("  Install Prefix:     %s\n", cfg.Toolkit.InstallPrefix)
	fmt.Printf("  Downloads Dir:      %s\n", cfg.Downloads.Dir)
	fmt.Printf("  Profile Path:       %s\n", cfg.Profile.Path)
	fmt.Printf("  Log Level:          %s\n", cfg.Logging.Level)
	fmt.Printf("  Log Format:         %s\n", cfg.Logging.Format)
}

func printUsage() {
	fmt.Printf(`cudaprep - CUDA Host Provisioning Tool (version %s)

Usage:
  cudaprep                  Run the full provisioning sequence (requires root)
  cudaprep run              Same as running with no arguments
  cudaprep tui              Run provisioning with a live terminal UI (requires root)
  cudaprep check            Report current machine state without changing anything
  cudaprep config test      Validate the configuration files
  cudaprep version          Print version information
  cudaprep help             Show this help

The provisioning sequence installs the baseline packages, verifies that
an NVIDIA GPU driver is working, installs the pinned CUDA toolkit
version, writes the shell profile exports, and upgrades the system.
Every step is idempotent; re-running is always safe.

Configuration is read from %s and ~/.cudaprep/config.yaml.
`, version, config.SystemConfigPath())
}
