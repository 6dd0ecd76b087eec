package mocks

import (
	"fmt"
	"os"
	"strings"

	"github.com/wangyifan349/resolvboot/internal/host"
)

// CommandResult is a scripted outcome for one invocation of a command.
type CommandResult struct {
	Output string
	Err    error
}

// MockEnvironment is an in-memory implementation of the host.Environment
// interface.
//
// This allows testing the bootstrap sequencing logic without touching the
// package database, resolver files, the resolver pointer or the tuning file.
// Filesystem state lives in maps; command outcomes are scripted per command
// line and consumed in order (the last scripted result repeats). A command
// with no script succeeds with empty output.
type MockEnvironment struct {
	// Files maps a path to its content.
	Files map[string][]byte

	// Symlinks maps a link path to its target.
	Symlinks map[string]string

	// Dirs marks paths that behave as directories.
	Dirs map[string]bool

	// CommandResults maps a full command line (name and arguments joined by
	// spaces) to its scripted outcomes.
	CommandResults map[string][]CommandResult

	// CommandLog records every command line passed to RunCommand, in order.
	CommandLog []string

	// RunCommandFunc overrides RunCommand entirely if not nil.
	RunCommandFunc func(name string, args ...string) (string, error)

	// ReadFileErr, if set, is returned by ReadFile for the matching path.
	ReadFileErr map[string]error

	// WriteFileErr, if set, is returned by WriteFile for the matching path.
	WriteFileErr map[string]error

	// Track calls for verification in tests
	RunCommandCalls         int
	WriteFileCalls          int
	AppendLineIfAbsentCalls int
	CopyFileCalls           int
	RemoveCalls             int
	SymlinkCalls            int

	// RemovedPaths records every path passed to Remove, in order.
	RemovedPaths []string
}

// NewMockEnvironment creates a mock environment with empty state.
func NewMockEnvironment() *MockEnvironment {
	return &MockEnvironment{
		Files:          make(map[string][]byte),
		Symlinks:       make(map[string]string),
		Dirs:           make(map[string]bool),
		CommandResults: make(map[string][]CommandResult),
	}
}

// ScriptCommand appends a scripted result for the given command line.
func (m *MockEnvironment) ScriptCommand(cmdline string, output string, err error) {
	m.CommandResults[cmdline] = append(m.CommandResults[cmdline], CommandResult{Output: output, Err: err})
}

// FileExists reports whether the path is present as a file, symlink or directory.
func (m *MockEnvironment) FileExists(path string) bool {
	if _, ok := m.Files[path]; ok {
		return true
	}
	if _, ok := m.Symlinks[path]; ok {
		return true
	}
	return m.Dirs[path]
}

// ReadFile returns the simulated content of path.
func (m *MockEnvironment) ReadFile(path string) ([]byte, error) {
	if err, ok := m.ReadFileErr[path]; ok {
		return nil, err
	}
	if content, ok := m.Files[path]; ok {
		return content, nil
	}
	return nil, os.ErrNotExist
}

// WriteFile replaces the simulated content of path.
func (m *MockEnvironment) WriteFile(path string, data []byte, perm os.FileMode) error {
	m.WriteFileCalls++
	if err, ok := m.WriteFileErr[path]; ok {
		return err
	}
	m.Files[path] = append([]byte(nil), data...)
	return nil
}

// AppendLineIfAbsent applies the shared append-if-absent semantics to the
// simulated file.
func (m *MockEnvironment) AppendLineIfAbsent(path string, line string) (bool, error) {
	m.AppendLineIfAbsentCalls++
	if err, ok := m.WriteFileErr[path]; ok {
		return false, err
	}

	updated, appended := host.AppendLine(m.Files[path], line)
	if appended {
		m.Files[path] = updated
	}
	return appended, nil
}

// CopyFile copies simulated content from src to dst.
func (m *MockEnvironment) CopyFile(src string, dst string) error {
	m.CopyFileCalls++
	content, ok := m.Files[src]
	if !ok {
		return os.ErrNotExist
	}
	m.Files[dst] = append([]byte(nil), content...)
	return nil
}

// PathInfo classifies the simulated path.
func (m *MockEnvironment) PathInfo(path string) (host.PathKind, string, error) {
	if target, ok := m.Symlinks[path]; ok {
		return host.PathSymlink, target, nil
	}
	if _, ok := m.Files[path]; ok {
		return host.PathFile, "", nil
	}
	if m.Dirs[path] {
		return host.PathDir, "", nil
	}
	return host.PathAbsent, "", nil
}

// Remove deletes the simulated file or symlink.
func (m *MockEnvironment) Remove(path string) error {
	m.RemoveCalls++
	m.RemovedPaths = append(m.RemovedPaths, path)

	if _, ok := m.Files[path]; ok {
		delete(m.Files, path)
		return nil
	}
	if _, ok := m.Symlinks[path]; ok {
		delete(m.Symlinks, path)
		return nil
	}
	return os.ErrNotExist
}

// Symlink records a simulated symbolic link.
func (m *MockEnvironment) Symlink(target string, link string) error {
	m.SymlinkCalls++
	if m.FileExists(link) {
		return fmt.Errorf("symlink %s: %w", link, os.ErrExist)
	}
	m.Symlinks[link] = target
	return nil
}

// RunCommand returns the next scripted result for the command line.
func (m *MockEnvironment) RunCommand(name string, args ...string) (string, error) {
	m.RunCommandCalls++
	cmdline := strings.Join(append([]string{name}, args...), " ")
	m.CommandLog = append(m.CommandLog, cmdline)

	if m.RunCommandFunc != nil {
		return m.RunCommandFunc(name, args...)
	}

	results, ok := m.CommandResults[cmdline]
	if !ok || len(results) == 0 {
		return "", nil
	}

	result := results[0]
	if len(results) > 1 {
		m.CommandResults[cmdline] = results[1:]
	}
	return result.Output, result.Err
}

// CommandsMatching returns the logged command lines that start with prefix.
func (m *MockEnvironment) CommandsMatching(prefix string) []string {
	var matched []string
	for _, cmdline := range m.CommandLog {
		if strings.HasPrefix(cmdline, prefix) {
			matched = append(matched, cmdline)
		}
	}
	return matched
}
