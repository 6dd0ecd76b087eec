package resolver

import (
	"fmt"

	"github.com/wangyifan349/resolvboot/internal/errors"
	"github.com/wangyifan349/resolvboot/internal/host"
	"github.com/wangyifan349/resolvboot/internal/log"
)

// EnsureStubSymlink converges /etc/resolv.conf to a symbolic link targeting
// the stub endpoint. A correct link is left untouched. Anything else (a link
// with the wrong target, a regular file, nothing at all) is removed and
// replaced. Unlike the configuration backup, the displaced content is NOT
// preserved; resolv.conf is regenerated state, not operator configuration.
// Reports whether the pointer was changed.
func EnsureStubSymlink(env host.Environment) (bool, error) {
	kind, target, err := env.PathInfo(ResolvConfPath)
	if err != nil {
		return false, errors.NewFileError(fmt.Sprintf("failed to inspect %s", ResolvConfPath), err)
	}

	if kind == host.PathSymlink && target == StubResolvPath {
		log.Infof("%s already points to %s", ResolvConfPath, StubResolvPath)
		return false, nil
	}

	if kind != host.PathAbsent {
		log.Infof("Replacing %s (%s) with stub symlink", ResolvConfPath, kind)
		if err := env.Remove(ResolvConfPath); err != nil {
			return false, errors.NewFileError(fmt.Sprintf("failed to remove %s", ResolvConfPath), err)
		}
	} else {
		log.Infof("Creating stub symlink at %s", ResolvConfPath)
	}

	if err := env.Symlink(StubResolvPath, ResolvConfPath); err != nil {
		return false, errors.NewFileError(fmt.Sprintf("failed to link %s", ResolvConfPath), err)
	}

	return true, nil
}
