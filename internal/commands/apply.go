package commands

import (
	"flag"

	"github.com/wangyifan349/resolvboot/internal/config"
	"github.com/wangyifan349/resolvboot/internal/domain"
	"github.com/wangyifan349/resolvboot/internal/service"
)

func CreateApplyCommand() *ApplyCommand {
	gc := &ApplyCommand{
		fs: flag.NewFlagSet("apply", flag.ExitOnError),
	}

	gc.fs.BoolVar(&gc.SkipInstall, "skip-install", false, "Skip package installation (toolset already present)")

	return gc
}

type ApplyCommand struct {
	fs  *flag.FlagSet
	cfg *config.Config

	SkipInstall bool
}

func (g *ApplyCommand) Name() string {
	return g.fs.Name()
}

func (g *ApplyCommand) Init(args []string, ctx *AppContext) error {
	if err := g.fs.Parse(args); err != nil {
		return err
	}

	if cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	return nil
}

func (g *ApplyCommand) Run() error {
	deps := domain.NewDefaultDependencies()
	bootstrap := service.NewBootstrapService(g.cfg, deps)

	return bootstrap.Run(service.BootstrapOptions{
		SkipInstall: g.SkipInstall,
	})
}
