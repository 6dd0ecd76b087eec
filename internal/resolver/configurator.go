package resolver

import (
	"fmt"
	"time"

	"github.com/wangyifan349/resolvboot/internal/errors"
	"github.com/wangyifan349/resolvboot/internal/host"
	"github.com/wangyifan349/resolvboot/internal/log"
)

// Configurator owns the resolver configuration file and the state of the
// resolution service.
type Configurator struct {
	env host.Environment
}

// NewConfigurator creates a configurator operating through env.
func NewConfigurator(env host.Environment) *Configurator {
	return &Configurator{env: env}
}

// EnsureServiceEnabled enables and starts the resolution service unless it is
// already enabled, in which case nothing is toggled.
func (c *Configurator) EnsureServiceEnabled() error {
	if _, err := c.env.RunCommand("systemctl", "is-enabled", ServiceName); err == nil {
		log.Infof("Service %s is already enabled", ServiceName)
		return nil
	}

	log.Infof("Enabling and starting %s...", ServiceName)
	if _, err := c.env.RunCommand("systemctl", "enable", ServiceName); err != nil {
		return errors.NewCommandError(fmt.Sprintf("failed to enable %s", ServiceName), err)
	}
	if _, err := c.env.RunCommand("systemctl", "start", ServiceName); err != nil {
		return errors.NewCommandError(fmt.Sprintf("failed to start %s", ServiceName), err)
	}

	return nil
}

// BackupConfig copies the current resolver configuration aside before it is
// overwritten. A missing file is skipped silently. The backup name carries a
// nanosecond timestamp so rapid successive runs never collide.
func (c *Configurator) BackupConfig() (*BackupArtifact, error) {
	if !c.env.FileExists(ResolvedConfPath) {
		log.Debugf("No existing %s, skipping backup", ResolvedConfPath)
		return nil, nil
	}

	now := time.Now()
	artifact := &BackupArtifact{
		OriginalPath: ResolvedConfPath,
		BackupPath:   fmt.Sprintf("%s.bak-%d", ResolvedConfPath, now.UnixNano()),
		Timestamp:    now,
	}

	if err := c.env.CopyFile(artifact.OriginalPath, artifact.BackupPath); err != nil {
		return nil, errors.NewFileError(fmt.Sprintf("failed to back up %s", ResolvedConfPath), err)
	}

	log.Infof("Backed up %s to %s", artifact.OriginalPath, artifact.BackupPath)
	return artifact, nil
}

// WriteConfig overwrites the resolver configuration with the desired content.
// This is a full replace: directives not in cfg are gone afterward.
func (c *Configurator) WriteConfig(cfg *ResolverConfig) error {
	if err := c.env.WriteFile(ResolvedConfPath, []byte(cfg.Render()), 0644); err != nil {
		return errors.NewFileError(fmt.Sprintf("failed to write %s", ResolvedConfPath), err)
	}

	log.Infof("Wrote resolver configuration to %s", ResolvedConfPath)
	return nil
}
