package host

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/wangyifan349/resolvboot/internal/log"
	"github.com/wangyifan349/resolvboot/internal/utils"
)

// OSEnvironment implements Environment against the live operating system.
type OSEnvironment struct{}

// NewOSEnvironment creates the production host environment.
func NewOSEnvironment() *OSEnvironment {
	return &OSEnvironment{}
}

func (e *OSEnvironment) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (e *OSEnvironment) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (e *OSEnvironment) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (e *OSEnvironment) AppendLineIfAbsent(path string, line string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	updated, appended := AppendLine(content, line)
	if !appended {
		return false, nil
	}

	if err := os.WriteFile(path, updated, 0644); err != nil {
		return false, err
	}
	return true, nil
}

func (e *OSEnvironment) CopyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer utils.CloseOrWarn(in)

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer utils.CloseOrWarn(out)

	_, err = io.Copy(out, in)
	return err
}

func (e *OSEnvironment) PathInfo(path string) (PathKind, string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return PathAbsent, "", nil
		}
		return PathAbsent, "", err
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(path)
		if err != nil {
			return PathSymlink, "", err
		}
		return PathSymlink, target, nil
	case info.IsDir():
		return PathDir, "", nil
	default:
		return PathFile, "", nil
	}
}

func (e *OSEnvironment) Remove(path string) error {
	return os.Remove(path)
}

func (e *OSEnvironment) Symlink(target string, link string) error {
	return os.Symlink(target, link)
}

func (e *OSEnvironment) RunCommand(name string, args ...string) (string, error) {
	log.Debugf("Running command: %s %s", name, strings.Join(args, " "))

	output, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("%w, output: %s", err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}
