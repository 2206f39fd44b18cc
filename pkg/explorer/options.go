package explorer

import (
	"github.com/charmbracelet/log"

	"github.com/ionutms/schemascope/pkg/errors"
	"github.com/ionutms/schemascope/pkg/export"
	"github.com/ionutms/schemascope/pkg/treemap"
)

// Options configures one exploration: which schema to open, the per-level
// ranges to apply, and how a rendered artifact should look.
type Options struct {
	// Schema is the catalog name of the type to explore (e.g. "Bar").
	Schema string

	// Filter narrows each level to a start:end slice of its sorted
	// candidates. Nil means no filtering.
	Filter *treemap.Filter

	// Format selects the artifact format for Render. Defaults to "svg".
	Format string

	// Colorscale selects the fill palette for rendered artifacts.
	// Defaults to the standard palette.
	Colorscale string

	// Sorted emits rendered nodes in id order instead of build order.
	Sorted bool

	// Refresh bypasses cached trees and artifacts and rebuilds them.
	Refresh bool

	// Logger overrides the runner's logger for this call.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent; callers may invoke it before handing options off.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Schema == "" {
		return errors.New(errors.ErrCodeInvalidInput, "schema name is required")
	}
	if err := errors.ValidateSchemaName(o.Schema); err != nil {
		return err
	}

	if o.Format == "" {
		o.Format = export.FormatSVG
	}
	if err := export.ValidateFormat(o.Format); err != nil {
		return err
	}

	if o.Colorscale == "" {
		o.Colorscale = export.DefaultColorscale
	}
	if err := export.ValidateColorscale(o.Colorscale); err != nil {
		return err
	}

	o.validated = true
	return nil
}
