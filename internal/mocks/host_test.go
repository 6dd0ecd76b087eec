package mocks

import (
	"errors"
	"testing"

	"github.com/wangyifan349/resolvboot/internal/host"
)

// TestMockEnvironment_DefaultCommandBehavior tests unscripted command handling
func TestMockEnvironment_DefaultCommandBehavior(t *testing.T) {
	mock := NewMockEnvironment()

	// Unscripted commands succeed with empty output
	out, err := mock.RunCommand("systemctl", "restart", "systemd-resolved")
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if out != "" {
		t.Errorf("Expected empty output, got: %q", out)
	}
	if mock.RunCommandCalls != 1 {
		t.Errorf("Expected 1 call, got %d", mock.RunCommandCalls)
	}

	// Every invocation lands in the log as a full command line
	if len(mock.CommandLog) != 1 || mock.CommandLog[0] != "systemctl restart systemd-resolved" {
		t.Errorf("Expected logged command line, got: %v", mock.CommandLog)
	}
}

// TestMockEnvironment_ScriptedCommands tests scripted results consumed in order
func TestMockEnvironment_ScriptedCommands(t *testing.T) {
	mock := NewMockEnvironment()
	mock.ScriptCommand("systemctl is-active --quiet systemd-resolved", "", errors.New("inactive"))
	mock.ScriptCommand("systemctl is-active --quiet systemd-resolved", "", nil)

	// First scripted result
	if _, err := mock.RunCommand("systemctl", "is-active", "--quiet", "systemd-resolved"); err == nil {
		t.Error("Expected first scripted error, got nil")
	}

	// Second scripted result
	if _, err := mock.RunCommand("systemctl", "is-active", "--quiet", "systemd-resolved"); err != nil {
		t.Errorf("Expected second scripted success, got: %v", err)
	}

	// The last scripted result repeats once the queue is drained
	if _, err := mock.RunCommand("systemctl", "is-active", "--quiet", "systemd-resolved"); err != nil {
		t.Errorf("Expected repeated last result, got: %v", err)
	}

	matched := mock.CommandsMatching("systemctl is-active")
	if len(matched) != 3 {
		t.Errorf("Expected 3 matching log entries, got %d", len(matched))
	}
}

// TestMockEnvironment_CustomCommandFunc tests the RunCommandFunc override
func TestMockEnvironment_CustomCommandFunc(t *testing.T) {
	expectedErr := errors.New("test error")

	mock := NewMockEnvironment()
	mock.RunCommandFunc = func(name string, args ...string) (string, error) {
		return "", expectedErr
	}

	if _, err := mock.RunCommand("apt-get", "update"); err != expectedErr {
		t.Errorf("Expected custom error, got: %v", err)
	}
	if mock.RunCommandCalls != 1 {
		t.Errorf("Expected 1 call, got %d", mock.RunCommandCalls)
	}
}

// TestMockEnvironment_FileState tests the simulated filesystem maps
func TestMockEnvironment_FileState(t *testing.T) {
	mock := NewMockEnvironment()

	// Test WriteFile / ReadFile
	if err := mock.WriteFile("/etc/systemd/resolved.conf", []byte("[Resolve]\n"), 0644); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if mock.WriteFileCalls != 1 {
		t.Errorf("Expected 1 call, got %d", mock.WriteFileCalls)
	}
	content, err := mock.ReadFile("/etc/systemd/resolved.conf")
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if string(content) != "[Resolve]\n" {
		t.Errorf("Expected written content back, got: %q", content)
	}

	// Test ReadFile for an absent path
	if _, err := mock.ReadFile("/etc/missing"); err == nil {
		t.Error("Expected error for absent path")
	}

	// Test CopyFile
	if err := mock.CopyFile("/etc/systemd/resolved.conf", "/etc/systemd/resolved.conf.bak-1"); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if !mock.FileExists("/etc/systemd/resolved.conf.bak-1") {
		t.Error("Expected backup copy to exist")
	}
	if err := mock.CopyFile("/etc/missing", "/tmp/out"); err == nil {
		t.Error("Expected error copying absent source")
	}

	// Test Remove
	if err := mock.Remove("/etc/systemd/resolved.conf"); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if mock.FileExists("/etc/systemd/resolved.conf") {
		t.Error("Expected file to be gone after Remove")
	}
	if len(mock.RemovedPaths) != 1 || mock.RemovedPaths[0] != "/etc/systemd/resolved.conf" {
		t.Errorf("Expected removed path recorded, got: %v", mock.RemovedPaths)
	}
	if err := mock.Remove("/etc/missing"); err == nil {
		t.Error("Expected error removing absent path")
	}
}

// TestMockEnvironment_AppendLineIfAbsent tests exact-line append semantics
func TestMockEnvironment_AppendLineIfAbsent(t *testing.T) {
	mock := NewMockEnvironment()
	mock.Files["/etc/sysctl.conf"] = []byte("vm.swappiness=10\n")

	// First append writes
	appended, err := mock.AppendLineIfAbsent("/etc/sysctl.conf", "net.core.default_qdisc=fq")
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if !appended {
		t.Error("Expected line to be appended")
	}

	// Second append is a no-op
	appended, err = mock.AppendLineIfAbsent("/etc/sysctl.conf", "net.core.default_qdisc=fq")
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if appended {
		t.Error("Expected no-op for present line")
	}

	if !host.ContainsLine(mock.Files["/etc/sysctl.conf"], "net.core.default_qdisc=fq") {
		t.Error("Expected line in simulated file")
	}
	if mock.AppendLineIfAbsentCalls != 2 {
		t.Errorf("Expected 2 calls, got %d", mock.AppendLineIfAbsentCalls)
	}
}

// TestMockEnvironment_PathInfo tests path classification
func TestMockEnvironment_PathInfo(t *testing.T) {
	mock := NewMockEnvironment()
	mock.Files["/etc/resolv.conf"] = []byte("nameserver 127.0.0.53\n")
	mock.Symlinks["/etc/localtime"] = "/usr/share/zoneinfo/UTC"
	mock.Dirs["/etc"] = true

	kind, _, err := mock.PathInfo("/etc/resolv.conf")
	if err != nil || kind != host.PathFile {
		t.Errorf("Expected file, got kind=%v err=%v", kind, err)
	}

	kind, target, err := mock.PathInfo("/etc/localtime")
	if err != nil || kind != host.PathSymlink {
		t.Errorf("Expected symlink, got kind=%v err=%v", kind, err)
	}
	if target != "/usr/share/zoneinfo/UTC" {
		t.Errorf("Expected symlink target, got: %q", target)
	}

	kind, _, err = mock.PathInfo("/etc")
	if err != nil || kind != host.PathDir {
		t.Errorf("Expected dir, got kind=%v err=%v", kind, err)
	}

	kind, _, err = mock.PathInfo("/nonexistent")
	if err != nil || kind != host.PathAbsent {
		t.Errorf("Expected absent, got kind=%v err=%v", kind, err)
	}

	// Symlink refuses an occupied path, like os.Symlink
	if err := mock.Symlink("/target", "/etc/resolv.conf"); err == nil {
		t.Error("Expected error creating symlink over existing file")
	}
	if err := mock.Symlink("/run/systemd/resolve/stub-resolv.conf", "/etc/resolv.conf.new"); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if mock.Symlinks["/etc/resolv.conf.new"] != "/run/systemd/resolve/stub-resolv.conf" {
		t.Error("Expected symlink to be recorded")
	}
}
