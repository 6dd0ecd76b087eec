// Package host abstracts every interaction with global mutable host state.
//
// The bootstrap sequence touches exactly four host-global resources: the
// package database, the resolver configuration file, the resolver pointer
// and the persistent kernel-tuning file. All of them are reached through the
// Environment interface so the sequencing logic can run against a simulated
// environment in tests instead of a live OS.
//
// # Capabilities
//
//   - FileExists / ReadFile / WriteFile: marker probing and managed files
//   - AppendLineIfAbsent: exact-line idempotent appends to the tuning file
//   - CopyFile: backup artifacts before destructive overwrites
//   - PathInfo / Remove / Symlink: resolver pointer convergence
//   - RunCommand: package manager, service manager and sysctl invocations
//
// OSEnvironment is the production implementation. Tests use
// mocks.MockEnvironment, which simulates the same surface with in-memory
// state maps and a command log.
package host
