package config

// Config represents the complete cudaprep configuration
type Config struct {
	Packages  []string        `yaml:"packages"`
	Toolkit   ToolkitConfig   `yaml:"toolkit"`
	Bundles   BundlesConfig   `yaml:"bundles"`
	Downloads DownloadsConfig `yaml:"downloads"`
	Profile   ProfileConfig   `yaml:"profile"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ToolkitConfig pins the CUDA toolkit requirement. Version is compared by
// exact string equality against the installed toolkit, by policy: a newer
// or older installed version is treated the same as "not installed".
type ToolkitConfig struct {
	Version       string `yaml:"version"`
	Package       string `yaml:"package"`
	InstallPrefix string `yaml:"install_prefix"`
	KeyringGlob   string `yaml:"keyring_glob"`
	KeyringDir    string `yaml:"keyring_dir"`
}

// BundleConfig describes the platform-specific repository bundle: the apt
// pin file and the local installer package to fetch.
type BundleConfig struct {
	PinFile     string `yaml:"pin_file"`
	PinURL      string `yaml:"pin_url"`
	PinDest     string `yaml:"pin_dest"`
	PackageFile string `yaml:"package_file"`
	PackageURL  string `yaml:"package_url"`
}

// BundlesConfig holds one bundle per platform variant
type BundlesConfig struct {
	Native BundleConfig `yaml:"native"`
	WSL    BundleConfig `yaml:"wsl"`
}

// DownloadsConfig represents download destination configuration
type DownloadsConfig struct {
	Dir string `yaml:"dir"`
}

// ProfileConfig locates the shell profile file receiving the toolkit
// environment exports
type ProfileConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return e.Path + ": " + e.Message
}
