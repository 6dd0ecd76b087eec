package tuning

import (
	"fmt"

	"github.com/wangyifan349/resolvboot/internal/log"
)

// Advisory is a suggested kernel tuning that this tool deliberately does not
// apply on its own.
type Advisory struct {
	Setting string
	Reason  string
}

// Advisories lists settings worth considering on latency-sensitive hosts.
var Advisories = []Advisory{
	{"net.core.rmem_max=2500000", "larger receive buffers for high-bandwidth paths"},
	{"net.core.wmem_max=2500000", "larger send buffers for high-bandwidth paths"},
	{"net.ipv4.tcp_fastopen=3", "TCP Fast Open for outgoing and incoming connections"},
	{"net.ipv4.tcp_mtu_probing=1", "path MTU probing for routes that filter ICMP"},
	{"net.ipv4.tcp_slow_start_after_idle=0", "keep the congestion window across idle periods"},
}

// PrintAdvisory writes the suggestions to stdout. It only prints; nothing on
// the host is touched and it cannot fail.
func PrintAdvisory() {
	log.Infof("Further kernel tuning worth considering (not applied automatically):")
	for _, a := range Advisories {
		fmt.Printf("  %-38s # %s\n", a.Setting, a.Reason)
	}
	log.Infof("Append the lines you want to %s and run `sysctl -p`.", SysctlConfPath)
}
