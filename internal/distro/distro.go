// Package distro classifies the host into a package family and installs the
// base diagnostic toolset for it.
package distro

import (
	"github.com/wangyifan349/resolvboot/internal/errors"
	"github.com/wangyifan349/resolvboot/internal/host"
	"github.com/wangyifan349/resolvboot/internal/log"
)

// Family identifies the package family of the host.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyDebian
	FamilyRedHat
)

// String returns a human-readable family name.
func (f Family) String() string {
	switch f {
	case FamilyDebian:
		return "Debian"
	case FamilyRedHat:
		return "RedHat"
	default:
		return "Unknown"
	}
}

// Marker files probed during detection. Order matters: the Debian marker is
// checked before the RedHat marker and the first match wins.
const (
	DebianMarker = "/etc/debian_version"
	RedHatMarker = "/etc/redhat-release"
)

// HostProfile describes the detected package family and its fixed commands.
// It is determined once per run and immutable afterward.
type HostProfile struct {
	Family         Family
	UpdateCommand  []string
	InstallCommand []string
	Packages       []string
}

// Detect probes the filesystem markers in fixed priority order and returns
// the matching profile. An unrecognized host is fatal: no configuration is
// attempted on it.
func Detect(env host.Environment) (*HostProfile, error) {
	if env.FileExists(DebianMarker) {
		log.Debugf("Found %s, host is Debian-family", DebianMarker)
		return debianProfile(), nil
	}

	if env.FileExists(RedHatMarker) {
		log.Debugf("Found %s, host is RedHat-family", RedHatMarker)
		return redhatProfile(), nil
	}

	return nil, errors.NewUnsupportedDistroError("no known package family marker found")
}

func debianProfile() *HostProfile {
	return &HostProfile{
		Family:        FamilyDebian,
		UpdateCommand: []string{"apt-get", "update"},
		// apt prompts on config-file conflicts unless the frontend is disarmed.
		InstallCommand: []string{"env", "DEBIAN_FRONTEND=noninteractive", "apt-get", "install", "-y", "-q"},
		Packages:       []string{"dnsutils", "curl", "ca-certificates"},
	}
}

func redhatProfile() *HostProfile {
	return &HostProfile{
		Family:         FamilyRedHat,
		UpdateCommand:  []string{"yum", "makecache", "-y"},
		InstallCommand: []string{"yum", "install", "-y"},
		Packages:       []string{"bind-utils", "curl", "ca-certificates"},
	}
}
