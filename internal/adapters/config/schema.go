package config

// deltaFile is the YAML document shape of delta.yaml.
type deltaFile struct {
	// Task is the logical task descriptor, defaulting to "build".
	Task string `yaml:"task"`

	// Tracked selects the tracked file set; pattern order decides the
	// category when several patterns match one path.
	Tracked []trackedDTO `yaml:"tracked"`

	// Ignore lists patterns excluded from the tracked set.
	Ignore []string `yaml:"ignore"`

	// Units is the dependency manifest.
	Units []unitDTO `yaml:"units"`

	// CriticalTests is the always-run integration set.
	CriticalTests []string `yaml:"criticalTests"`

	// TestCommand is the runner's command prefix.
	TestCommand []string `yaml:"testCommand"`

	Cache    cacheDTO    `yaml:"cache"`
	Delegate delegateDTO `yaml:"delegate"`

	// TestParallelism caps the runner's worker pool.
	TestParallelism int `yaml:"testParallelism"`
}

type trackedDTO struct {
	Pattern  string `yaml:"pattern"`
	Category string `yaml:"category"`
	// BuildConfig marks build-wide configuration; a change to a matching
	// file forces a full rebuild.
	BuildConfig bool `yaml:"buildConfig"`
}

type unitDTO struct {
	Name      string   `yaml:"name"`
	DependsOn []string `yaml:"dependsOn"`
	// Owns maps file patterns onto this unit for change-to-unit mapping.
	Owns  []string `yaml:"owns"`
	Build []string `yaml:"build"`
}

type cacheDTO struct {
	TTL        string `yaml:"ttl"`
	GlobalPath string `yaml:"globalPath"`
}

type delegateDTO struct {
	Timeout string `yaml:"timeout"`
}
