package resolver

import (
	"fmt"
	"strings"
	"time"

	"github.com/wangyifan349/resolvboot/internal/errors"
	"github.com/wangyifan349/resolvboot/internal/host"
	"github.com/wangyifan349/resolvboot/internal/log"
)

// statusFields are the resolvectl output fields shown after verification.
// The output is filtered for these, never fully parsed.
var statusFields = []string{"DNS Servers", "DNSOverTLS", "DNSSEC"}

// Verifier restarts the resolution service and checks the result.
type Verifier struct {
	env     host.Environment
	querier Querier

	readyTimeout  time.Duration
	readyInterval time.Duration
	testDomain    string
	strictSmoke   bool
}

// NewVerifier creates a verifier. timeout and interval bound the readiness
// poll; testDomain is resolved once as a smoke test. strictSmoke promotes a
// failed smoke test from informational to a warning.
func NewVerifier(env host.Environment, querier Querier, timeout, interval time.Duration, testDomain string, strictSmoke bool) *Verifier {
	return &Verifier{
		env:           env,
		querier:       querier,
		readyTimeout:  timeout,
		readyInterval: interval,
		testDomain:    testDomain,
		strictSmoke:   strictSmoke,
	}
}

// RestartService restarts the resolution service.
func (v *Verifier) RestartService() error {
	log.Infof("Restarting %s...", ServiceName)
	if _, err := v.env.RunCommand("systemctl", "restart", ServiceName); err != nil {
		return errors.NewCommandError(fmt.Sprintf("failed to restart %s", ServiceName), err)
	}
	return nil
}

// WaitReady polls the service manager until the service reports active or the
// budget runs out. The poll replaces a blind fixed delay: slow hosts get the
// time they need and fast hosts proceed immediately.
func (v *Verifier) WaitReady() error {
	deadline := time.Now().Add(v.readyTimeout)

	for {
		if _, err := v.env.RunCommand("systemctl", "is-active", "--quiet", ServiceName); err == nil {
			log.Debugf("Service %s is active", ServiceName)
			return nil
		}

		if time.Now().After(deadline) {
			return errors.NewServiceNotReadyError(
				fmt.Sprintf("%s did not become active within %s", ServiceName, v.readyTimeout))
		}

		time.Sleep(v.readyInterval)
	}
}

// ShowStatus queries the service status and prints the DNS server, DNSOverTLS
// and DNSSEC fields.
func (v *Verifier) ShowStatus() error {
	output, err := v.env.RunCommand("resolvectl", "status")
	if err != nil {
		return errors.NewCommandError("failed to query resolver status", err)
	}

	for _, line := range FilterStatusFields(output) {
		log.Infof("  %s", line)
	}
	return nil
}

// FilterStatusFields extracts the displayed status lines from raw resolvectl
// output.
func FilterStatusFields(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, field := range statusFields {
			if strings.Contains(trimmed, field) {
				lines = append(lines, trimmed)
				break
			}
		}
	}
	return lines
}

// SmokeTest resolves the configured test domain once through the stub
// listener. A failure is informational: it is displayed but does not change
// the run's outcome (or a warning, when strict mode is on).
func (v *Verifier) SmokeTest() error {
	log.Infof("Resolving %s as a smoke test...", v.testDomain)

	if err := v.querier.Query(v.testDomain); err != nil {
		e := errors.NewSmokeTestError(fmt.Sprintf("DNS smoke test for %s failed", v.testDomain), err)
		if v.strictSmoke {
			e.Severity = errors.SeverityWarning
		}
		return e
	}

	log.Infof("DNS smoke test passed")
	return nil
}
