// Package load moves the cleaned datasets into a relational backend. Both
// backends are idempotent: a run fully replaces the previous run's loaded
// state rather than merging into it.
package load

import (
	"context"

	"github.com/healthtech/etl/internal/transform"
)

// Loader loads one run's cleaned datasets. Doctors always load before
// appointments so the server backend's foreign key holds during insert.
type Loader interface {
	Load(ctx context.Context, doctors []transform.Doctor, appts []transform.Appointment) error
}
