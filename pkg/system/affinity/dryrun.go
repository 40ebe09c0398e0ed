package affinity

import (
	"github.com/rs/zerolog"

	"github.com/ja7ad/loadshift/pkg/types"
)

// DryRun logs the core set it would apply and touches nothing.
type DryRun struct {
	logger zerolog.Logger
}

// NewDryRun returns an actuator that only logs.
func NewDryRun(logger zerolog.Logger) *DryRun {
	return &DryRun{logger: logger.With().Str("component", "DryRunAffinity").Logger()}
}

// Apply logs pid and cores.
func (d *DryRun) Apply(pid int32, cores types.CoreSet) error {
	if cores.Len() == 0 {
		return ErrEmptySet
	}
	d.logger.Info().Int32("pid", pid).Str("cores", cores.String()).Msg("Would set CPU affinity")
	return nil
}
