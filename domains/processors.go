package domains

import (
	"context"

	"github.com/teranos/sysfacts/errors"
	"github.com/teranos/sysfacts/logger"
	"github.com/teranos/sysfacts/resolver"
	"github.com/teranos/sysfacts/source"
)

// Processor sub-values
const (
	Count         resolver.SubValue = "count"
	PhysicalCount resolver.SubValue = "physical_count"
	Models        resolver.SubValue = "models"
	SpeedHz       resolver.SubValue = "speed_hz"
	ISA           resolver.SubValue = "isa"
)

func acquireProcessors(src source.Source, opts Options) resolver.AcquireFunc {
	log := opts.Logger.Named(Processors.String())

	return func(ctx context.Context) (resolver.Values, error) {
		values := resolver.Values{ISA: opts.GOARCH}
		var errs error

		logical, err := src.CPUCounts(ctx, true)
		if err != nil {
			errs = errors.CombineErrors(errs, err)
		} else {
			values.Set(Count, logical, logical > 0)
		}

		physical, err := src.CPUCounts(ctx, false)
		if err != nil {
			errs = errors.CombineErrors(errs, err)
		} else {
			values.Set(PhysicalCount, physical, physical > 0)
		}

		info, err := src.CPUInfo(ctx)
		if err != nil {
			errs = errors.CombineErrors(errs, err)
		} else if len(info) > 0 {
			models := make([]string, 0, len(info))
			for _, c := range info {
				if c.ModelName != "" {
					models = append(models, c.ModelName)
				}
			}
			values.Set(Models, models, len(models) > 0)
			values.Set(SpeedHz, uint64(info[0].Mhz*1e6), info[0].Mhz > 0)
		}

		if errs != nil {
			if len(values) == 1 {
				// Nothing beyond the build architecture was learned
				return nil, errs
			}
			log.Debugw("Partial processor data", logger.FieldError, errs.Error())
		}
		return values, nil
	}
}
