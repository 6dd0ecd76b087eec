package tuning

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/wangyifan349/resolvboot/internal/host"
	"github.com/wangyifan349/resolvboot/internal/log"
	"github.com/wangyifan349/resolvboot/internal/utils"
)

const (
	procModulesPath = "/proc/modules"
	modulesLibDir   = "/lib/modules"
)

// KernelModuleLoader loads kernel modules through the init_module syscall
// family, falling back to modprobe when the direct path cannot be used.
type KernelModuleLoader struct {
	env host.Environment
}

// NewKernelModuleLoader creates a loader operating through env.
func NewKernelModuleLoader(env host.Environment) *KernelModuleLoader {
	return &KernelModuleLoader{env: env}
}

// Load makes the named module available, treating already-loaded and
// built-in modules as success.
func (l *KernelModuleLoader) Load(name string) error {
	name = normalizeModuleName(name)

	if loaded, err := l.isLoaded(name); err == nil && loaded {
		log.Debugf("Kernel module %s is already loaded", name)
		return nil
	}
	if builtin, err := l.isBuiltin(name); err == nil && builtin {
		log.Debugf("Kernel module %s is built into this kernel", name)
		return nil
	}

	directErr := l.loadFromDisk(name)
	if directErr == nil {
		log.Debugf("Kernel module %s loaded", name)
		return nil
	}

	// modules.dep may reference compressed objects that init_module cannot
	// take directly; modprobe knows how to handle those.
	log.Debugf("Direct load of %s failed (%v), trying modprobe", name, directErr)
	if _, err := l.env.RunCommand("modprobe", name); err != nil {
		return fmt.Errorf("direct load failed: %v, modprobe failed: %w", directErr, err)
	}
	return nil
}

func (l *KernelModuleLoader) isLoaded(name string) (bool, error) {
	content, err := l.env.ReadFile(procModulesPath)
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(string(content), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && normalizeModuleName(fields[0]) == name {
			return true, nil
		}
	}
	return false, nil
}

func (l *KernelModuleLoader) isBuiltin(name string) (bool, error) {
	root, err := modulesRoot()
	if err != nil {
		return false, err
	}
	content, err := l.env.ReadFile(filepath.Join(root, "modules.builtin"))
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(string(content), "\n") {
		if line != "" && moduleNameFromPath(line) == name {
			return true, nil
		}
	}
	return false, nil
}

// loadFromDisk resolves the module and its dependency chain from modules.dep
// and inserts the objects in dependency order.
func (l *KernelModuleLoader) loadFromDisk(name string) error {
	root, err := modulesRoot()
	if err != nil {
		return err
	}
	chain, err := l.dependencyChain(root, name)
	if err != nil {
		return err
	}
	if len(chain) == 0 {
		return fmt.Errorf("module %s not present in %s", name, filepath.Join(root, "modules.dep"))
	}
	for _, objPath := range chain {
		if err := insertModule(objPath); err != nil {
			return fmt.Errorf("inserting %s: %w", objPath, err)
		}
	}
	return nil
}

// dependencyChain returns the module object paths to insert, dependencies
// first and the module itself last. An empty chain means the module is not
// listed in modules.dep.
func (l *KernelModuleLoader) dependencyChain(root string, name string) ([]string, error) {
	content, err := l.env.ReadFile(filepath.Join(root, "modules.dep"))
	if err != nil {
		return nil, err
	}
	for _, line := range strings.Split(string(content), "\n") {
		objPath, rest, found := strings.Cut(line, ":")
		if !found || moduleNameFromPath(objPath) != name {
			continue
		}
		var chain []string
		deps := strings.Fields(rest)
		for i := len(deps) - 1; i >= 0; i-- {
			chain = append(chain, filepath.Join(root, deps[i]))
		}
		return append(chain, filepath.Join(root, objPath)), nil
	}
	return nil, nil
}

func insertModule(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer utils.CloseOrWarn(f)

	err = unix.FinitModule(int(f.Fd()), "", 0)
	if errors.Is(err, unix.ENOSYS) {
		// Kernels predating finit_module take the module image directly.
		buf, readErr := io.ReadAll(f)
		if readErr != nil {
			return readErr
		}
		err = unix.InitModule(buf, "")
	}
	if errors.Is(err, unix.EEXIST) {
		// Another path already got the module in.
		return nil
	}
	return err
}

func modulesRoot() (string, error) {
	var uname unix.Utsname
	if err := unix.Uname(&uname); err != nil {
		return "", fmt.Errorf("failed to query kernel release: %w", err)
	}
	return filepath.Join(modulesLibDir, unix.ByteSliceToString(uname.Release[:])), nil
}

// moduleNameFromPath derives the module name from an object path such as
// kernel/net/ipv4/tcp_bbr.ko.xz.
func moduleNameFromPath(path string) string {
	base := filepath.Base(strings.TrimSpace(path))
	for ext := filepath.Ext(base); ext != ""; ext = filepath.Ext(base) {
		base = strings.TrimSuffix(base, ext)
	}
	return normalizeModuleName(base)
}

func normalizeModuleName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), "-", "_")
}
