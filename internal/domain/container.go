// Package domain holds the dependency-injection container that wires the
// host-facing collaborators together.
package domain

import (
	"github.com/wangyifan349/resolvboot/internal/host"
	"github.com/wangyifan349/resolvboot/internal/resolver"
	"github.com/wangyifan349/resolvboot/internal/tuning"
)

// AppDependencies is a dependency injection container that holds every
// host-facing collaborator the bootstrap stages use.
//
// Stages never talk to the operating system directly; routing file access,
// external commands and syscalls through this container enables:
//   - Easy testing with mock implementations
//   - Explicit dependency management instead of global state
//
// Usage:
//
//	deps := domain.NewDefaultDependencies()
//	svc := service.NewBootstrapService(cfg, deps)
type AppDependencies struct {
	env          host.Environment
	moduleLoader tuning.ModuleLoader
	querier      resolver.Querier
}

// NewDefaultDependencies creates a container with production implementations:
// the real filesystem and command runner, the init_module-based kernel module
// loader and a DNS client pointed at the systemd-resolved stub listener.
func NewDefaultDependencies() *AppDependencies {
	env := host.NewOSEnvironment()
	return &AppDependencies{
		env:          env,
		moduleLoader: tuning.NewKernelModuleLoader(env),
		querier:      resolver.NewStubQuerier(),
	}
}

// NewTestDependencies creates a container from the given implementations.
//
// This is a convenience method for testing: pass mock implementations for
// the collaborators you want to control.
func NewTestDependencies(env host.Environment, loader tuning.ModuleLoader, querier resolver.Querier) *AppDependencies {
	return &AppDependencies{
		env:          env,
		moduleLoader: loader,
		querier:      querier,
	}
}

// Env returns the host environment.
func (d *AppDependencies) Env() host.Environment {
	return d.env
}

// ModuleLoader returns the kernel module loader.
func (d *AppDependencies) ModuleLoader() tuning.ModuleLoader {
	return d.moduleLoader
}

// Querier returns the DNS smoke-test querier.
func (d *AppDependencies) Querier() resolver.Querier {
	return d.querier
}
