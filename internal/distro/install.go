package distro

import (
	"strings"

	"github.com/wangyifan349/resolvboot/internal/errors"
	"github.com/wangyifan349/resolvboot/internal/host"
	"github.com/wangyifan349/resolvboot/internal/log"
)

// InstallBaseTools refreshes the package index and installs the profile's
// fixed toolset. Both steps are fail-fast: later stages assume the tools
// exist, so a non-zero exit aborts the whole run. No verification happens
// beyond the commands' own exit status.
func InstallBaseTools(env host.Environment, profile *HostProfile) error {
	log.Infof("Updating package index (%s)...", strings.Join(profile.UpdateCommand, " "))
	if _, err := env.RunCommand(profile.UpdateCommand[0], profile.UpdateCommand[1:]...); err != nil {
		return errors.NewCommandError("package index update failed", err)
	}

	install := append(append([]string{}, profile.InstallCommand...), profile.Packages...)
	log.Infof("Installing base tools: %s", strings.Join(profile.Packages, " "))
	if _, err := env.RunCommand(install[0], install[1:]...); err != nil {
		return errors.NewCommandError("package installation failed", err)
	}

	return nil
}
