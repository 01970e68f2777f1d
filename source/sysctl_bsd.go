//go:build freebsd || darwin || openbsd || netbsd

package source

import (
	"golang.org/x/sys/unix"

	"github.com/teranos/sysfacts/errors"
)

func sysctlRaw(name string) ([]byte, error) {
	buf, err := unix.SysctlRaw(name)
	if err != nil {
		if errors.Is(err, unix.ENOENT) {
			return nil, errors.NewNotFoundError("sysctl %s", name)
		}
		return nil, errors.Wrapf(err, "sysctl %s", name)
	}
	return buf, nil
}
