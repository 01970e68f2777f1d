//go:build windows

package source

import (
	"golang.org/x/sys/windows/registry"

	"github.com/teranos/sysfacts/errors"
)

type windowsKey struct {
	path string
	key  registry.Key
}

// openKey opens path below HKEY_LOCAL_MACHINE for reading
func openKey(path string) (Key, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil, errors.NewNotFoundError("registry key %s", path)
		}
		return nil, errors.Wrapf(err, "failed to open registry key %s", path)
	}
	return &windowsKey{path: path, key: k}, nil
}

func (k *windowsKey) ValueNames() ([]string, error) {
	names, err := k.key.ReadValueNames(0)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list values of %s", k.path)
	}
	return names, nil
}

func (k *windowsKey) StringValue(name string) (string, error) {
	v, _, err := k.key.GetStringValue(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", errors.NewNotFoundError("registry value %s\\%s", k.path, name)
		}
		return "", errors.Wrapf(err, "failed to read %s\\%s", k.path, name)
	}
	return v, nil
}

func (k *windowsKey) Close() error {
	return k.key.Close()
}
