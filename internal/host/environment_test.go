package host

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAppendLine(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		line           string
		expectAppended bool
		expected       string
	}{
		{
			name:           "appends to empty content",
			content:        "",
			line:           "net.core.default_qdisc=fq",
			expectAppended: true,
			expected:       "net.core.default_qdisc=fq\n",
		},
		{
			name:           "appends after existing lines",
			content:        "vm.swappiness=10\n",
			line:           "net.core.default_qdisc=fq",
			expectAppended: true,
			expected:       "vm.swappiness=10\nnet.core.default_qdisc=fq\n",
		},
		{
			name:           "adds missing trailing newline before appending",
			content:        "vm.swappiness=10",
			line:           "net.core.default_qdisc=fq",
			expectAppended: true,
			expected:       "vm.swappiness=10\nnet.core.default_qdisc=fq\n",
		},
		{
			name:           "skips when exact line present",
			content:        "net.core.default_qdisc=fq\n",
			line:           "net.core.default_qdisc=fq",
			expectAppended: false,
			expected:       "net.core.default_qdisc=fq\n",
		},
		{
			name:           "matches line surrounded by whitespace",
			content:        "  net.core.default_qdisc=fq  \n",
			line:           "net.core.default_qdisc=fq",
			expectAppended: false,
			expected:       "  net.core.default_qdisc=fq  \n",
		},
		{
			name:           "does not match a substring of a longer line",
			content:        "net.core.default_qdisc=fq_codel\n",
			line:           "net.core.default_qdisc=fq",
			expectAppended: true,
			expected:       "net.core.default_qdisc=fq_codel\nnet.core.default_qdisc=fq\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, appended := AppendLine([]byte(tt.content), tt.line)
			if appended != tt.expectAppended {
				t.Errorf("appended = %v, want %v", appended, tt.expectAppended)
			}
			if string(out) != tt.expected {
				t.Errorf("content = %q, want %q", string(out), tt.expected)
			}
		})
	}
}

func TestOSEnvironmentAppendLineIfAbsent(t *testing.T) {
	env := NewOSEnvironment()
	path := filepath.Join(t.TempDir(), "sysctl.conf")

	appended, err := env.AppendLineIfAbsent(path, "net.ipv4.tcp_congestion_control=bbr")
	if err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	if !appended {
		t.Error("expected first append to write the line")
	}

	for i := 0; i < 3; i++ {
		appended, err = env.AppendLineIfAbsent(path, "net.ipv4.tcp_congestion_control=bbr")
		if err != nil {
			t.Fatalf("repeat append failed: %v", err)
		}
		if appended {
			t.Error("expected repeat append to be a no-op")
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if string(content) != "net.ipv4.tcp_congestion_control=bbr\n" {
		t.Errorf("unexpected file content: %q", string(content))
	}
}

func TestOSEnvironmentPathInfo(t *testing.T) {
	env := NewOSEnvironment()
	dir := t.TempDir()

	file := filepath.Join(dir, "regular")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	link := filepath.Join(dir, "link")
	if err := os.Symlink(file, link); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name         string
		path         string
		expectKind   PathKind
		expectTarget string
	}{
		{"absent path", filepath.Join(dir, "missing"), PathAbsent, ""},
		{"regular file", file, PathFile, ""},
		{"directory", dir, PathDir, ""},
		{"symlink with target", link, PathSymlink, file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, target, err := env.PathInfo(tt.path)
			if err != nil {
				t.Fatalf("PathInfo failed: %v", err)
			}
			if kind != tt.expectKind {
				t.Errorf("kind = %v, want %v", kind, tt.expectKind)
			}
			if target != tt.expectTarget {
				t.Errorf("target = %q, want %q", target, tt.expectTarget)
			}
		})
	}
}

func TestOSEnvironmentCopyFile(t *testing.T) {
	env := NewOSEnvironment()
	dir := t.TempDir()

	src := filepath.Join(dir, "resolved.conf")
	if err := os.WriteFile(src, []byte("[Resolve]\nDNS=10.0.0.1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "resolved.conf.bak")
	if err := env.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}

	content, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "[Resolve]\nDNS=10.0.0.1\n" {
		t.Errorf("unexpected copy content: %q", string(content))
	}
}
