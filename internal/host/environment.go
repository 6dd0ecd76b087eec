package host

import (
	"os"
	"strings"
)

// PathKind classifies what currently occupies a filesystem path.
type PathKind int

const (
	PathAbsent PathKind = iota
	PathFile
	PathDir
	PathSymlink
)

// String returns a human-readable path kind name.
func (k PathKind) String() string {
	switch k {
	case PathAbsent:
		return "absent"
	case PathFile:
		return "regular file"
	case PathDir:
		return "directory"
	case PathSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// Environment is the capability surface through which all host state is
// queried and mutated.
//
// Implementations: OSEnvironment (production), mocks.MockEnvironment (tests).
type Environment interface {
	// FileExists reports whether path exists. Used for marker probing.
	FileExists(path string) bool

	// ReadFile returns the full content of path.
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the content of path with data.
	WriteFile(path string, data []byte, perm os.FileMode) error

	// AppendLineIfAbsent appends line to the file at path unless an exactly
	// matching line is already present. A missing file counts as empty.
	// Reports whether the line was written.
	AppendLineIfAbsent(path string, line string) (bool, error)

	// CopyFile copies the content of src to dst, replacing dst if it exists.
	CopyFile(src string, dst string) error

	// PathInfo classifies the path without following symlinks. For a symlink
	// it also returns the link target.
	PathInfo(path string) (PathKind, string, error)

	// Remove deletes the file or symlink at path.
	Remove(path string) error

	// Symlink creates a symbolic link at link pointing to target.
	Symlink(target string, link string) error

	// RunCommand executes an external command and returns its combined
	// stdout and stderr output. A non-zero exit status is returned as an error.
	RunCommand(name string, args ...string) (string, error)
}

// ContainsLine reports whether content holds a line that, stripped of
// surrounding whitespace, equals line exactly. Substring matches do not
// count: "net.core.default_qdisc=fq" never matches a fq_codel line.
func ContainsLine(content []byte, line string) bool {
	for _, existing := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(existing) == line {
			return true
		}
	}
	return false
}

// AppendLine appends line to content unless an exactly matching line already
// exists. It is the single source of the append-if-absent semantics shared by
// the real and the simulated environment: a key can appear at most once no
// matter how often the bootstrap runs.
func AppendLine(content []byte, line string) ([]byte, bool) {
	if ContainsLine(content, line) {
		return content, false
	}

	out := content
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	out = append(out, []byte(line+"\n")...)
	return out, true
}
