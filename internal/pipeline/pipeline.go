// Package pipeline sequences one ETL run: extraction, doctor cleaning,
// appointment cleaning, file persistence, and the backend load. Stages run
// synchronously in that order; appointments are never cleaned before doctors
// because the referential filter needs the same-run doctor set.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/healthtech/etl/internal/load"
	"github.com/healthtech/etl/internal/transform"
)

// Extractor supplies the two raw row collections. Implementations fail fast
// when required source columns are missing.
type Extractor interface {
	ReadSources() (doctors, appts []transform.Row, err error)
}

// Persister writes the cleaned datasets as flat files for audit.
type Persister interface {
	WriteAll(doctors []transform.Doctor, appts []transform.Appointment) (doctorsPath, apptsPath string, err error)
}

// Pipeline runs the stages against a chosen load backend. A failure at any
// stage aborts the run; no stage is retried and there is no partial
// resumption.
type Pipeline struct {
	extractor Extractor
	cleaner   *transform.Cleaner
	persister Persister
	loader    load.Loader
	log       zerolog.Logger
}

// New assembles a Pipeline from its stage implementations.
func New(extractor Extractor, cleaner *transform.Cleaner, persister Persister, loader load.Loader, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		cleaner:   cleaner,
		persister: persister,
		loader:    loader,
		log:       log,
	}
}

// Run executes one full ETL run.
func (p *Pipeline) Run(ctx context.Context) error {
	p.log.Info().Msg("starting ETL pipeline")

	rawDoctors, rawAppts, err := p.extractor.ReadSources()
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	doctors := p.cleaner.CleanDoctors(rawDoctors)
	appts := p.cleaner.CleanAppointments(rawAppts, doctors)

	if _, _, err := p.persister.WriteAll(doctors, appts); err != nil {
		return fmt.Errorf("persist: %w", err)
	}

	if err := p.loader.Load(ctx, doctors, appts); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	p.log.Info().Msg("ETL pipeline completed successfully")
	return nil
}
