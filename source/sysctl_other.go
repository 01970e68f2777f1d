//go:build !(freebsd || darwin || openbsd || netbsd)

package source

import "github.com/teranos/sysfacts/errors"

func sysctlRaw(name string) ([]byte, error) {
	return nil, errors.NewUnsupportedError("sysctl")
}
