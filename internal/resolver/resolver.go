// Package resolver converges the host's DNS-resolution subsystem: it writes
// the desired systemd-resolved configuration, points /etc/resolv.conf at the
// local stub listener and verifies the service after a restart.
package resolver

import (
	"strings"
	"time"

	"github.com/valyala/fasttemplate"
)

const (
	// ServiceName is the resolution service managed by this tool.
	ServiceName = "systemd-resolved"

	// ResolvedConfPath is the resolver configuration file that gets a full
	// overwrite.
	ResolvedConfPath = "/etc/systemd/resolved.conf"

	// ResolvConfPath is the system-wide resolver pointer.
	ResolvConfPath = "/etc/resolv.conf"

	// StubResolvPath is the stub endpoint the pointer must link to.
	StubResolvPath = "/run/systemd/resolve/stub-resolv.conf"

	// StubListenAddr is where the stub listener answers queries.
	StubListenAddr = "127.0.0.53:53"
)

// resolvedConfTemplate is the skeleton of the managed configuration file.
// ResolverConfig.Render fills it; the file is always written as a whole,
// never merged with prior settings.
const resolvedConfTemplate = `[Resolve]
DNS={{dns}}
FallbackDNS={{fallback_dns}}
DNSOverTLS={{dns_over_tls}}
DNSSEC={{dnssec}}
DNSStubListener={{stub_listener}}
`

// ResolverConfig represents the entire desired content of the resolver
// configuration file. Any directive not listed here is lost on write.
type ResolverConfig struct {
	DNSServers      []string
	FallbackServers []string
	DNSOverTLS      bool
	DNSSEC          bool
	StubListener    bool
}

// DefaultResolverConfig returns the fixed desired configuration: encrypted
// and validated resolution through well-known public resolvers, answered
// locally by the stub listener.
func DefaultResolverConfig() *ResolverConfig {
	return &ResolverConfig{
		DNSServers:      []string{"1.1.1.1", "9.9.9.9"},
		FallbackServers: []string{"8.8.8.8", "1.0.0.1"},
		DNSOverTLS:      true,
		DNSSEC:          true,
		StubListener:    true,
	}
}

// Render produces the full file content for this configuration.
func (c *ResolverConfig) Render() string {
	t := fasttemplate.New(resolvedConfTemplate, "{{", "}}")
	return t.ExecuteString(map[string]interface{}{
		"dns":           strings.Join(c.DNSServers, " "),
		"fallback_dns":  strings.Join(c.FallbackServers, " "),
		"dns_over_tls":  yesNo(c.DNSOverTLS),
		"dnssec":        yesNo(c.DNSSEC),
		"stub_listener": yesNo(c.StubListener),
	})
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// BackupArtifact describes a pre-overwrite copy of the resolver
// configuration. Artifacts are never restored automatically; they exist so an
// operator can recover the previous settings by hand.
type BackupArtifact struct {
	OriginalPath string
	BackupPath   string
	Timestamp    time.Time
}
