package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wangyifan349/resolvboot/internal/commands"
	"github.com/wangyifan349/resolvboot/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", "/etc/resolvboot.conf", "Path to configuration file (optional, built-in defaults apply)")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "DNS resolution and TCP congestion-control bootstrap\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [command]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  apply                   Install tooling, configure the resolver and enable BBR (default)\n")
		fmt.Fprintf(os.Stderr, "  check                   Report how far the host matches the bootstrapped state (read-only)\n")
		fmt.Fprintf(os.Stderr, "  advise                  Print kernel tuning suggestions for manual review\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}

	cmds := []commands.Runner{
		commands.CreateApplyCommand(),
		commands.CreateCheckCommand(),
		commands.CreateAdviseCommand(),
	}

	args := flag.Args()

	// Running with no subcommand performs the full bootstrap: the tool is
	// built for a single zero-flag invocation on a fresh host.
	subcommand := "apply"
	if len(args) > 0 {
		subcommand = args[0]
		args = args[1:]
	}

	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args, ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
