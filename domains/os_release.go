package domains

import (
	"bufio"
	"context"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/sysfacts/errors"
	"github.com/teranos/sysfacts/logger"
	"github.com/teranos/sysfacts/resolver"
	"github.com/teranos/sysfacts/source"
)

// os-release sub-values
const (
	OSID              resolver.SubValue = "id"
	OSIDLike          resolver.SubValue = "id_like"
	OSName            resolver.SubValue = "name"
	OSPrettyName      resolver.SubValue = "pretty_name"
	OSVersion         resolver.SubValue = "version"
	OSVersionID       resolver.SubValue = "version_id"
	OSVersionCodename resolver.SubValue = "version_codename"
)

var osReleaseKeys = map[string]resolver.SubValue{
	"ID":               OSID,
	"ID_LIKE":          OSIDLike,
	"NAME":             OSName,
	"PRETTY_NAME":      OSPrettyName,
	"VERSION":          OSVersion,
	"VERSION_ID":       OSVersionID,
	"VERSION_CODENAME": OSVersionCodename,
}

func acquireOSRelease(src source.Source, opts Options) resolver.AcquireFunc {
	log := opts.Logger.Named(OSRelease.String())

	return func(ctx context.Context) (resolver.Values, error) {
		var lastErr error
		for _, path := range opts.OSReleasePaths {
			content, err := src.ReadFile(path)
			if err != nil {
				log.Debugw("os-release candidate unreadable", logger.FieldPath, path, logger.FieldError, err.Error())
				lastErr = err
				continue
			}
			return parseOSRelease(string(content)), nil
		}
		if lastErr == nil {
			lastErr = errors.NewNotFoundError("no os-release paths configured")
		}
		return nil, errors.Wrap(lastErr, "no readable os-release file")
	}
}

// parseOSRelease reads KEY=value lines as described by os-release(5).
// Values may be shell quoted; unknown keys and malformed lines are skipped.
func parseOSRelease(content string) resolver.Values {
	values := resolver.Values{}
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, raw, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		sub, known := osReleaseKeys[key]
		if !known {
			continue
		}
		words, err := shellquote.Split(raw)
		if err != nil {
			continue
		}
		if value := strings.Join(words, " "); value != "" {
			values[sub] = value
		}
	}
	return values
}
