package domains

import (
	"context"

	"github.com/teranos/sysfacts/errors"
	"github.com/teranos/sysfacts/logger"
	"github.com/teranos/sysfacts/resolver"
	"github.com/teranos/sysfacts/source"
)

// Product release sub-values
const (
	EditionID        resolver.SubValue = "edition_id"
	InstallationType resolver.SubValue = "installation_type"
	ProductName      resolver.SubValue = "product_name"
	ReleaseID        resolver.SubValue = "release_id"
	DisplayVersion   resolver.SubValue = "display_version"
)

// ProductReleaseKey is read below HKEY_LOCAL_MACHINE
const ProductReleaseKey = `SOFTWARE\Microsoft\Windows NT\CurrentVersion`

// productReleaseSources lists, per sub-value, the registry value names that
// can supply it, most preferred first. DisplayVersion replaced ReleaseId in
// Windows 10 20H2; older builds only carry ReleaseId.
var productReleaseSources = []struct {
	sub   resolver.SubValue
	names []string
}{
	{EditionID, []string{"EditionID"}},
	{InstallationType, []string{"InstallationType"}},
	{ProductName, []string{"ProductName"}},
	{ReleaseID, []string{"DisplayVersion", "ReleaseId"}},
	{DisplayVersion, []string{"DisplayVersion"}},
}

func acquireProductRelease(src source.Source, opts Options) resolver.AcquireFunc {
	log := opts.Logger.Named(ProductRelease.String())

	wanted := make(map[string]bool)
	for _, s := range productReleaseSources {
		for _, name := range s.names {
			wanted[name] = true
		}
	}

	return func(ctx context.Context) (resolver.Values, error) {
		key, err := src.OpenKey(ProductReleaseKey)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open product release key")
		}
		defer func() {
			if err := key.Close(); err != nil {
				log.Warnw("Failed to close registry key",
					logger.FieldPath, ProductReleaseKey,
					logger.FieldError, err.Error())
			}
		}()

		names, err := key.ValueNames()
		if err != nil {
			return nil, errors.Wrap(err, "failed to list product release values")
		}

		found := make(map[string]string, len(wanted))
		for _, name := range names {
			if !wanted[name] {
				continue
			}
			value, err := key.StringValue(name)
			if err != nil {
				// One unreadable value only empties its own slot
				log.Debugw("Skipping registry value",
					logger.FieldPath, ProductReleaseKey+`\`+name,
					logger.FieldError, err.Error())
				continue
			}
			found[name] = value
		}

		values := make(resolver.Values, len(productReleaseSources))
		for _, s := range productReleaseSources {
			for _, name := range s.names {
				if v, ok := found[name]; ok {
					values[s.sub] = v
					break
				}
			}
		}
		return values, nil
	}
}
