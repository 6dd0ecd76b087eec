// Package tuning enables the BBR TCP congestion-control algorithm and
// persists the kernel parameters that keep it active across reboots.
package tuning

import (
	"strings"

	"github.com/wangyifan349/resolvboot/internal/errors"
	"github.com/wangyifan349/resolvboot/internal/host"
	"github.com/wangyifan349/resolvboot/internal/log"
)

const (
	// CongestionParamPath exposes the live congestion-control algorithm.
	CongestionParamPath = "/proc/sys/net/ipv4/tcp_congestion_control"

	// SysctlConfPath is the persistent kernel-tuning file.
	SysctlConfPath = "/etc/sysctl.conf"

	// DesiredAlgorithm is the congestion-control algorithm this tool enables.
	DesiredAlgorithm = "bbr"

	bbrModule = "tcp_bbr"
)

// TuningLines are persisted to SysctlConfPath, each at most once.
var TuningLines = []string{
	"net.core.default_qdisc=fq",
	"net.ipv4.tcp_congestion_control=" + DesiredAlgorithm,
}

// ModuleLoader loads a kernel module by name.
type ModuleLoader interface {
	Load(name string) error
}

// CongestionState reports what the enabler found and did.
type CongestionState struct {
	CurrentAlgorithm string
	DesiredAlgorithm string
	AlreadyEnabled   bool
	PersistedKeys    []string
}

// Enabler converges the TCP congestion-control algorithm to DesiredAlgorithm.
type Enabler struct {
	env    host.Environment
	loader ModuleLoader
}

// NewEnabler creates an enabler operating through env and loader.
func NewEnabler(env host.Environment, loader ModuleLoader) *Enabler {
	return &Enabler{env: env, loader: loader}
}

// CurrentAlgorithm reads the live congestion-control algorithm.
func (e *Enabler) CurrentAlgorithm() (string, error) {
	content, err := e.env.ReadFile(CongestionParamPath)
	if err != nil {
		return "", errors.NewFileError("failed to read congestion-control parameter", err)
	}
	return strings.TrimSpace(string(content)), nil
}

// Enable checks the live algorithm and, if it differs from the desired one,
// loads the BBR module, persists the tuning keys and applies them.
//
// A module-load failure is a warning, not an abort: the kernel may simply be
// too old, and the persisted keys take effect after an upgrade. When the
// algorithm already matches, nothing is attempted at all: no module load and
// no tuning-file mutation.
func (e *Enabler) Enable() (*CongestionState, error) {
	current, err := e.CurrentAlgorithm()
	if err != nil {
		return nil, err
	}

	state := &CongestionState{
		CurrentAlgorithm: current,
		DesiredAlgorithm: DesiredAlgorithm,
	}

	if current == DesiredAlgorithm {
		state.AlreadyEnabled = true
		log.Infof("TCP congestion control %s is already enabled", DesiredAlgorithm)
		return state, nil
	}

	log.Infof("Current TCP congestion control is %s, enabling %s...", current, DesiredAlgorithm)

	if err := e.loader.Load(bbrModule); err != nil {
		log.Warnf("%v", errors.NewModuleLoadError("could not load the "+bbrModule+" module (a kernel upgrade may be required)", err))
	}

	for _, line := range TuningLines {
		appended, err := e.env.AppendLineIfAbsent(SysctlConfPath, line)
		if err != nil {
			return nil, errors.NewFileError("failed to persist tuning key", err)
		}
		if appended {
			log.Debugf("Persisted %s", line)
			state.PersistedKeys = append(state.PersistedKeys, line)
		}
	}

	if _, err := e.env.RunCommand("sysctl", "-p", SysctlConfPath); err != nil {
		return nil, errors.NewCommandError("failed to apply persisted kernel tuning", err)
	}

	log.Infof("TCP congestion control set to %s (was %s)", DesiredAlgorithm, current)
	return state, nil
}
