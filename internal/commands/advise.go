package commands

import (
	"flag"

	"github.com/wangyifan349/resolvboot/internal/tuning"
)

func CreateAdviseCommand() *AdviseCommand {
	gc := &AdviseCommand{
		fs: flag.NewFlagSet("advise", flag.ExitOnError),
	}
	return gc
}

// AdviseCommand prints the kernel tuning suggestions and exits.
type AdviseCommand struct {
	fs *flag.FlagSet
}

func (g *AdviseCommand) Name() string {
	return g.fs.Name()
}

func (g *AdviseCommand) Init(args []string, ctx *AppContext) error {
	return g.fs.Parse(args)
}

func (g *AdviseCommand) Run() error {
	tuning.PrintAdvisory()
	return nil
}
