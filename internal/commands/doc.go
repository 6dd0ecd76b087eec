// Package commands implements CLI command handlers for resolvboot.
//
// This package provides the command-line interface layer for the application,
// implementing the apply, check and advise subcommands. Each command
// implements the Runner interface and delegates business logic to the
// service layer.
//
// # Command Structure
//
// All commands follow a consistent pattern:
//   - Init(): Parse arguments and validate configuration
//   - Run(): Execute command using service layer
//   - Name(): Return command name for routing
//
// # Available Commands
//
//   - apply: Run the full bootstrap chain (also the default when resolvboot
//     is invoked without a subcommand)
//   - check: Report how far the host matches the bootstrapped state,
//     mutating nothing
//   - advise: Print kernel tuning suggestions for manual review
//
// # Example Usage
//
// Creating and running a command:
//
//	cmd := commands.CreateApplyCommand()
//	ctx := &commands.AppContext{
//	    ConfigPath: "/etc/resolvboot.conf",
//	    Verbose:    true,
//	}
//	if err := cmd.Init(args, ctx); err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cmd.Run(); err != nil {
//	    log.Fatalf("%v", err)
//	}
//
// Commands are thin wrappers around the service layer, keeping CLI concerns
// separate from bootstrap logic.
package commands
