package commands

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/coreos/go-iptables/iptables"

	"github.com/wangyifan349/resolvboot/internal/config"
	"github.com/wangyifan349/resolvboot/internal/distro"
	"github.com/wangyifan349/resolvboot/internal/domain"
	"github.com/wangyifan349/resolvboot/internal/host"
	"github.com/wangyifan349/resolvboot/internal/log"
	"github.com/wangyifan349/resolvboot/internal/netinfo"
	"github.com/wangyifan349/resolvboot/internal/resolver"
	"github.com/wangyifan349/resolvboot/internal/tuning"
)

func CreateCheckCommand() *CheckCommand {
	gc := &CheckCommand{
		fs: flag.NewFlagSet("check", flag.ExitOnError),
	}
	return gc
}

// CheckCommand reports how far the host already matches the bootstrapped
// state. It mutates nothing: every probe is a read.
type CheckCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	cfg  *config.Config
	deps *domain.AppDependencies
}

func (g *CheckCommand) Name() string {
	return g.fs.Name()
}

func (g *CheckCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	if cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	g.deps = domain.NewDefaultDependencies()

	return nil
}

func (g *CheckCommand) Run() error {
	log.Infof("Running host check...")
	log.Infof("---------------- Configuration START -----------------")

	if buf, err := g.cfg.SerializeConfig(); err != nil {
		log.Errorf("Failed to serialize config: %v", err)
		return err
	} else if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
		log.Errorf("Failed to output config: %v", err)
		return err
	}

	log.Infof("----------------- Configuration END ------------------")

	env := g.deps.Env()

	ok := g.checkFamily(env)
	ok = g.checkResolverConfig(env) && ok
	ok = g.checkResolvSymlink(env) && ok
	ok = g.checkServiceState(env) && ok
	ok = g.checkCongestion(env) && ok
	ok = g.checkLoopback() && ok
	g.checkFirewall()

	if !ok {
		log.Errorf("Host check completed with findings")
		return fmt.Errorf("host check failed")
	}

	log.Infof("Host check completed successfully")
	return nil
}

func (g *CheckCommand) checkFamily(env host.Environment) bool {
	profile, err := distro.Detect(env)
	if err != nil {
		log.Errorf("[family] %v", err)
		return false
	}
	log.Infof("[family] Detected %s package family", profile.Family)
	return true
}

func (g *CheckCommand) checkResolverConfig(env host.Environment) bool {
	content, err := env.ReadFile(resolver.ResolvedConfPath)
	if err != nil {
		log.Errorf("[resolver-config] %s is not readable (run 'resolvboot apply'): %v", resolver.ResolvedConfPath, err)
		return false
	}
	if string(content) != resolver.DefaultResolverConfig().Render() {
		log.Errorf("[resolver-config] %s differs from the managed content", resolver.ResolvedConfPath)
		return false
	}
	log.Infof("[resolver-config] %s matches the managed content", resolver.ResolvedConfPath)
	return true
}

func (g *CheckCommand) checkResolvSymlink(env host.Environment) bool {
	kind, target, err := env.PathInfo(resolver.ResolvConfPath)
	if err != nil {
		log.Errorf("[resolv.conf] cannot inspect %s: %v", resolver.ResolvConfPath, err)
		return false
	}

	switch {
	case kind == host.PathSymlink && target == resolver.StubResolvPath:
		log.Infof("[resolv.conf] %s points at %s", resolver.ResolvConfPath, resolver.StubResolvPath)
		return true
	case kind == host.PathSymlink:
		log.Errorf("[resolv.conf] %s points at %s, want %s", resolver.ResolvConfPath, target, resolver.StubResolvPath)
	default:
		log.Errorf("[resolv.conf] %s is a %s, want a symlink to %s", resolver.ResolvConfPath, kind, resolver.StubResolvPath)
	}
	return false
}

func (g *CheckCommand) checkServiceState(env host.Environment) bool {
	ok := true

	if out, err := env.RunCommand("systemctl", "is-enabled", resolver.ServiceName); err != nil {
		log.Errorf("[service] %s is not enabled: %s", resolver.ServiceName, strings.TrimSpace(out))
		ok = false
	} else {
		log.Infof("[service] %s is enabled", resolver.ServiceName)
	}

	if out, err := env.RunCommand("systemctl", "is-active", resolver.ServiceName); err != nil {
		log.Errorf("[service] %s is not active: %s", resolver.ServiceName, strings.TrimSpace(out))
		ok = false
	} else {
		log.Infof("[service] %s is active", resolver.ServiceName)
	}

	return ok
}

func (g *CheckCommand) checkCongestion(env host.Environment) bool {
	current, err := tuning.NewEnabler(env, g.deps.ModuleLoader()).CurrentAlgorithm()
	if err != nil {
		log.Errorf("[congestion] %v", err)
		return false
	}

	ok := true
	if current == tuning.DesiredAlgorithm {
		log.Infof("[congestion] TCP congestion control is %s", current)
	} else {
		log.Errorf("[congestion] TCP congestion control is %s, want %s", current, tuning.DesiredAlgorithm)
		ok = false
	}

	content, err := env.ReadFile(tuning.SysctlConfPath)
	if err != nil {
		content = nil
	}
	for _, line := range tuning.TuningLines {
		if host.ContainsLine(content, line) {
			log.Infof("[congestion] %s carries %q", tuning.SysctlConfPath, line)
		} else {
			log.Errorf("[congestion] %s misses %q", tuning.SysctlConfPath, line)
			ok = false
		}
	}

	return ok
}

func (g *CheckCommand) checkLoopback() bool {
	up, err := netinfo.LoopbackUp()
	if err != nil {
		log.Infof("[loopback] cannot inspect the loopback interface: %v", err)
		return true
	}
	if !up {
		log.Errorf("[loopback] loopback is down; the stub listener on %s is unreachable", resolver.StubListenAddr)
		return false
	}
	log.Infof("[loopback] loopback is up")
	return true
}

// checkFirewall glances at the INPUT chain for rules that would drop DNS
// traffic. Purely informational: a missing iptables binary or insufficient
// privileges never count as a finding.
func (g *CheckCommand) checkFirewall() {
	ipt, err := iptables.New()
	if err != nil {
		log.Infof("[firewall] iptables not inspectable: %v", err)
		return
	}

	rules, err := ipt.List("filter", "INPUT")
	if err != nil {
		log.Infof("[firewall] cannot list INPUT rules: %v", err)
		return
	}

	found := false
	for _, rule := range rules {
		if !strings.Contains(rule, "--dport 53") {
			continue
		}
		if strings.Contains(rule, "-j DROP") || strings.Contains(rule, "-j REJECT") {
			log.Warnf("[firewall] INPUT rule may block DNS: %s", rule)
			found = true
		}
	}
	if !found {
		log.Infof("[firewall] no INPUT rules dropping port 53")
	}
}
