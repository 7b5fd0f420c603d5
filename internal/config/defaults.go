package config

// Default configuration values.
const (
	DefaultPRRunMode     = PRRunPlan
	DefaultInstallerURL  = "https://github.com/AndreyAkinshin/dist/releases/download"
	DefaultCreateRelease = true
)

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	applyDistDefaults(cfg)
}

func applyDistDefaults(cfg *Config) {
	if cfg.Dist == nil {
		cfg.Dist = &DistConfig{}
	}
	if cfg.Dist.PRRunMode == "" {
		cfg.Dist.PRRunMode = string(DefaultPRRunMode)
	}
	if cfg.Dist.InstallerURL == "" {
		cfg.Dist.InstallerURL = DefaultInstallerURL
	}
	if cfg.Dist.CreateRelease == nil {
		createRelease := DefaultCreateRelease
		cfg.Dist.CreateRelease = &createRelease
	}
}
