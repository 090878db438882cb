package config

// DefaultConfig returns a configuration with sensible defaults targeting
// CUDA 12.8 on Ubuntu 24.04 (native) and WSL2 Ubuntu.
func DefaultConfig() Config {
	return Config{
		Packages: []string{
			"build-essential",
			"curl",
			"wget",
			"git",
			"ca-certificates",
		},
		Toolkit: ToolkitConfig{
			Version:       "12.8",
			Package:       "cuda-toolkit-12-8",
			InstallPrefix: "/usr/local/cuda-12.8",
			KeyringGlob:   "/var/cuda-repo-*/cuda-*-keyring.gpg",
			KeyringDir:    "/usr/share/keyrings",
		},
		Bundles: BundlesConfig{
			Native: BundleConfig{
				PinFile:     "cuda-ubuntu2404.pin",
				PinURL:      "https://developer.download.nvidia.com/compute/cuda/repos/ubuntu2404/x86_64/cuda-ubuntu2404.pin",
				PinDest:     "/etc/apt/preferences.d/cuda-repository-pin-600",
				PackageFile: "cuda-repo-ubuntu2404-12-8-local_12.8.0-570.86.10-1_amd64.deb",
				PackageURL:  "https://developer.download.nvidia.com/compute/cuda/12.8.0/local_installers/cuda-repo-ubuntu2404-12-8-local_12.8.0-570.86.10-1_amd64.deb",
			},
			WSL: BundleConfig{
				PinFile:     "cuda-wsl-ubuntu.pin",
				PinURL:      "https://developer.download.nvidia.com/compute/cuda/repos/wsl-ubuntu/x86_64/cuda-wsl-ubuntu.pin",
				PinDest:     "/etc/apt/preferences.d/cuda-repository-pin-600",
				PackageFile: "cuda-repo-wsl-ubuntu-12-8-local_12.8.0-1_amd64.deb",
				PackageURL:  "https://developer.download.nvidia.com/compute/cuda/12.8.0/local_installers/cuda-repo-wsl-ubuntu-12-8-local_12.8.0-1_amd64.deb",
			},
		},
		Downloads: DownloadsConfig{
			Dir: "/var/lib/cudaprep/downloads",
		},
		Profile: ProfileConfig{
			Path: "/etc/profile.d/cudaprep.sh",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
