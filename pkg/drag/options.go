package drag

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blocksnap/pkg/config"
	"github.com/matzehuels/blocksnap/pkg/errors"
	"github.com/matzehuels/blocksnap/pkg/observability"
	"github.com/matzehuels/blocksnap/pkg/render"
)

// IndicatorRadius is the radius of the dot drawn at each end of the
// connection line.
const IndicatorRadius = 9.0

// Options configures a drag [Session].
//
// Zero values are replaced with the defaults from [config.Default]; use
// [OptionsFromConfig] to honor a loaded configuration instead.
type Options struct {
	// SnapRadius is the search radius while no preview is shown.
	SnapRadius float64

	// ConnectingRadius is the search radius while a preview is shown.
	ConnectingRadius float64

	// PreferenceMargin is how much closer a new candidate must be than the
	// current one before the preview moves.
	PreferenceMargin float64

	// Policy chooses the preview mode. Defaults to [render.Classic].
	Policy render.Policy

	// Logger receives debug output. Defaults to the workspace logger.
	Logger *log.Logger

	// Hooks receives drag events. Defaults to [observability.Drag].
	Hooks observability.DragHooks
}

// OptionsFromConfig builds session options from cfg.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	if err := cfg.Validate(); err != nil {
		return Options{}, err
	}
	p, err := cfg.Policy()
	if err != nil {
		return Options{}, err
	}
	return Options{
		SnapRadius:       cfg.Snap.SnapRadius,
		ConnectingRadius: cfg.Snap.ConnectingRadius,
		PreferenceMargin: cfg.Snap.PreferenceMargin,
		Policy:           p,
	}, nil
}

// ValidateAndSetDefaults fills in zero values and rejects inconsistent radii.
func (o *Options) ValidateAndSetDefaults(fallback *log.Logger) error {
	def := config.Default()
	if o.SnapRadius == 0 {
		o.SnapRadius = def.Snap.SnapRadius
	}
	if o.ConnectingRadius == 0 {
		o.ConnectingRadius = max(def.Snap.ConnectingRadius, o.SnapRadius)
	}
	if o.PreferenceMargin == 0 {
		o.PreferenceMargin = def.Snap.PreferenceMargin
	}
	if o.Policy == nil {
		o.Policy = render.Classic{}
	}
	if o.Logger == nil {
		o.Logger = fallback
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Hooks == nil {
		o.Hooks = observability.Drag()
	}
	switch {
	case o.SnapRadius < 0:
		return errors.New(errors.ErrCodeInvalidInput, "snap radius must be positive, got %g", o.SnapRadius)
	case o.ConnectingRadius < o.SnapRadius:
		return errors.New(errors.ErrCodeInvalidInput,
			"connecting radius %g is smaller than snap radius %g", o.ConnectingRadius, o.SnapRadius)
	case o.PreferenceMargin < 0:
		return errors.New(errors.ErrCodeInvalidInput, "preference margin must not be negative, got %g", o.PreferenceMargin)
	}
	return nil
}
