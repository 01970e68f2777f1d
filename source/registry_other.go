//go:build !windows

package source

import "github.com/teranos/sysfacts/errors"

func openKey(path string) (Key, error) {
	return nil, errors.NewUnsupportedError("windows registry")
}
