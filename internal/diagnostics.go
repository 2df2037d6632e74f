package internal

import (
	"sync"

	"github.com/lychee-technology/typeschema"
	"go.uber.org/multierr"
)

type diagnostics struct {
	mu       sync.Mutex
	warnings []typeschema.Warning
}

var _ typeschema.Diagnostics = (*diagnostics)(nil)

func (d *diagnostics) report(w typeschema.Warning) {
	d.mu.Lock()
	d.warnings = append(d.warnings, w)
	d.mu.Unlock()
}

func (d *diagnostics) HasWarnings() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.warnings) > 0
}

func (d *diagnostics) Warnings() []typeschema.Warning {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]typeschema.Warning(nil), d.warnings...)
}

func (d *diagnostics) Strict() error {
	var err error
	for _, w := range d.Warnings() {
		err = multierr.Append(err, w)
	}
	if err == nil {
		return nil
	}
	return typeschema.NewSchemaError(typeschema.ErrorTypeUnresolvable, typeschema.ErrCodeUnresolvedWarnings,
		"generation produced warnings").
		WithDetail("count", len(multierr.Errors(err))).
		WithCause(err)
}
