// Package service provides business logic orchestration for resolvboot.
//
// The service layer sits between commands (CLI controllers) and the bootstrap
// stages, running the stages in their fixed order and owning the policy that
// decides which failures stop a run.
package service

import (
	"github.com/wangyifan349/resolvboot/internal/config"
	"github.com/wangyifan349/resolvboot/internal/distro"
	"github.com/wangyifan349/resolvboot/internal/domain"
	"github.com/wangyifan349/resolvboot/internal/errors"
	"github.com/wangyifan349/resolvboot/internal/log"
	"github.com/wangyifan349/resolvboot/internal/netinfo"
	"github.com/wangyifan349/resolvboot/internal/resolver"
	"github.com/wangyifan349/resolvboot/internal/tuning"
)

// BootstrapOptions configures which stages Run performs.
type BootstrapOptions struct {
	// SkipInstall skips the package-installation stage. Useful on hosts
	// where the toolset is preinstalled or the package mirror is offline.
	SkipInstall bool
}

// BootstrapService runs the bootstrap stages in order.
//
// The stages are strictly sequential and never revisited:
//  1. Distribution detection
//  2. Base tool installation
//  3. Resolver configuration (enable service, backup, write)
//  4. resolv.conf symlink convergence
//  5. Service restart and verification
//  6. TCP congestion-control enablement
//  7. Tuning advisory
//
// Error severity decides what a stage failure means: fatal errors abort the
// run (effects of earlier stages remain in place, there is no rollback),
// warnings and informational failures are reported and the run continues.
type BootstrapService struct {
	cfg  *config.Config
	deps *domain.AppDependencies

	// loopbackUp is a field so tests can run without a kernel to ask.
	loopbackUp func() (bool, error)
}

// NewBootstrapService creates a bootstrap service.
//
// Parameters:
//   - cfg: validated run configuration
//   - deps: host-facing collaborators (real or mocked)
func NewBootstrapService(cfg *config.Config, deps *domain.AppDependencies) *BootstrapService {
	return &BootstrapService{
		cfg:        cfg,
		deps:       deps,
		loopbackUp: netinfo.LoopbackUp,
	}
}

// Run executes the bootstrap chain.
func (s *BootstrapService) Run(opts BootstrapOptions) error {
	env := s.deps.Env()

	// Stage 1: distribution detection. An unsupported host fails here,
	// before anything is touched.
	profile, err := distro.Detect(env)
	if err != nil {
		return err
	}
	log.Infof("Detected package family: %s", profile.Family)

	// Stage 2: base tooling.
	if opts.SkipInstall {
		log.Infof("Skipping package installation")
	} else if err := s.handle(distro.InstallBaseTools(env, profile)); err != nil {
		return err
	}

	// Stage 3: resolver configuration.
	configurator := resolver.NewConfigurator(env)
	if err := s.handle(configurator.EnsureServiceEnabled()); err != nil {
		return err
	}
	if _, err := configurator.BackupConfig(); err != nil {
		return err
	}
	if err := s.handle(configurator.WriteConfig(resolver.DefaultResolverConfig())); err != nil {
		return err
	}

	// Stage 4: resolv.conf symlink.
	changed, err := resolver.EnsureStubSymlink(env)
	if err != nil {
		return err
	}
	if changed {
		log.Infof("%s now points at %s", resolver.ResolvConfPath, resolver.StubResolvPath)
	}

	// Stage 5: restart and verify.
	if err := s.verify(); err != nil {
		return err
	}

	// Stage 6: congestion control.
	enabler := tuning.NewEnabler(env, s.deps.ModuleLoader())
	if _, err := enabler.Enable(); err != nil {
		return err
	}

	// Stage 7: advisory. Print-only, cannot fail.
	tuning.PrintAdvisory()

	log.Infof("Bootstrap finished")
	return nil
}

// verify restarts the resolution service and checks the result: bounded
// readiness poll, loopback preflight, filtered status display and a single
// DNS smoke query.
func (s *BootstrapService) verify() error {
	verifier := resolver.NewVerifier(
		s.deps.Env(),
		s.deps.Querier(),
		s.cfg.Readiness.Timeout(),
		s.cfg.Readiness.Interval(),
		s.cfg.General.TestDomain,
		s.cfg.General.StrictSmokeTest,
	)

	if err := s.handle(verifier.RestartService()); err != nil {
		return err
	}
	if err := s.handle(verifier.WaitReady()); err != nil {
		return err
	}

	// The stub listener lives on 127.0.0.53, so a downed loopback would
	// explain a failing smoke test. Confirming it is informational only.
	if up, err := s.loopbackUp(); err != nil {
		log.Infof("Could not inspect the loopback interface: %v", err)
	} else if !up {
		log.Infof("Loopback interface reports down; the stub listener on %s may be unreachable", resolver.StubListenAddr)
	}

	if err := s.handle(verifier.ShowStatus()); err != nil {
		return err
	}

	return s.handle(verifier.SmokeTest())
}

// handle applies the severity policy to a stage result. Only fatal errors
// propagate; warnings and informational failures are reported here and the
// chain moves on.
func (s *BootstrapService) handle(err error) error {
	if err == nil {
		return nil
	}

	switch errors.SeverityOf(err) {
	case errors.SeverityWarning:
		log.Warnf("%v", err)
		return nil
	case errors.SeverityInfo:
		log.Infof("%v", err)
		return nil
	default:
		return err
	}
}
