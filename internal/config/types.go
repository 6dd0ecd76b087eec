package config

import "time"

type Config struct {
	// General holds general run policy.
	General *GeneralConfig `toml:"general" json:"general"`
	// Readiness tunes the bounded poll that replaces a blind post-restart wait.
	Readiness *ReadinessConfig `toml:"readiness" json:"readiness"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// Verbose enables debug logging (same effect as the -verbose flag).
	Verbose bool `toml:"verbose" json:"verbose"`
	// TestDomain is the domain resolved once as a post-configuration smoke test.
	TestDomain string `toml:"test_domain" json:"test_domain" validate:"required,fqdn"`
	// StrictSmokeTest promotes a failed smoke test from informational to a
	// warning. It never makes the run fail.
	StrictSmokeTest bool `toml:"strict_smoke_test" json:"strict_smoke_test"`
}

type ReadinessConfig struct {
	// TimeoutSec is the total budget for the service to report active after a restart.
	TimeoutSec int `toml:"timeout_sec" json:"timeout_sec" validate:"gte=1,lte=300"`
	// IntervalMs is the spacing between readiness probes.
	IntervalMs int `toml:"interval_ms" json:"interval_ms" validate:"gte=50,lte=10000"`
}

const (
	defaultTestDomain = "cloudflare.com"
	defaultTimeoutSec = 15
	defaultIntervalMs = 500
)

// DefaultConfig returns the built-in configuration used when no config file
// exists. The tool is designed to run with zero flags on a fresh host.
func DefaultConfig() *Config {
	return &Config{
		General: &GeneralConfig{
			Verbose:         false,
			TestDomain:      defaultTestDomain,
			StrictSmokeTest: false,
		},
		Readiness: &ReadinessConfig{
			TimeoutSec: defaultTimeoutSec,
			IntervalMs: defaultIntervalMs,
		},
	}
}

// prefillDefaults fills sections and fields a partial config file omitted.
func (c *Config) prefillDefaults() {
	if c.General == nil {
		c.General = &GeneralConfig{}
	}
	if c.General.TestDomain == "" {
		c.General.TestDomain = defaultTestDomain
	}

	if c.Readiness == nil {
		c.Readiness = &ReadinessConfig{}
	}
	if c.Readiness.TimeoutSec == 0 {
		c.Readiness.TimeoutSec = defaultTimeoutSec
	}
	if c.Readiness.IntervalMs == 0 {
		c.Readiness.IntervalMs = defaultIntervalMs
	}
}

// Timeout returns the readiness budget as a duration.
func (r *ReadinessConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSec) * time.Second
}

// Interval returns the probe spacing as a duration.
func (r *ReadinessConfig) Interval() time.Duration {
	return time.Duration(r.IntervalMs) * time.Millisecond
}
