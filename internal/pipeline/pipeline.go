package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"schoolsdb/internal/extract"
	"schoolsdb/internal/load"
	"schoolsdb/internal/table"
	"schoolsdb/internal/transform"
	"schoolsdb/lib/telemetry"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const library_name = "schoolsdb.internal.pipeline"

var tracer = otel.Tracer(library_name)
var meter = otel.Meter(library_name)
var dataQualityEvents, _ = meter.Int64Counter("schoolsdb.data_quality_events")

func SetTracerProvider(provider trace.TracerProvider) {
	tracer = provider.Tracer(library_name)
}

// Counters sums the non-fatal data quality events of a run.
type Counters struct {
	UnmappedStates       int
	ConflictingStates    int
	MissingStudentCounts int
	InvalidStudentCounts int
	FlagColumns          []string
}

func (c Counters) record(ctx context.Context) {
	events := map[string]int{
		"unmapped_state":        c.UnmappedStates,
		"conflicting_state":     c.ConflictingStates,
		"missing_student_count": c.MissingStudentCounts,
		"invalid_student_count": c.InvalidStudentCounts,
	}
	for kind, n := range events {
		dataQualityEvents.Add(ctx, int64(n), metric.WithAttributes(attribute.String("kind", kind)))
	}
}

type Report struct {
	RunID    string
	Variant  Variant
	Tables   []load.Result
	Counters Counters
	Duration time.Duration
}

// Extract reads and transforms every source of the configured variant and
// returns the tables in write order. Nothing is written.
func Extract(ctx context.Context, cfg Config, api telemetry.API) ([]load.NamedTable, Counters, error) {
	var counters Counters
	p := cfg.plan()
	tables := map[string]*table.Table{}

	err := stageSpan(ctx, p.schools.source.Name, func(ctx context.Context) error {
		raw, err := extract.Load(ctx, p.schools.source)
		if err != nil {
			return err
		}

		states, stateStats, err := transform.BuildStates(raw, p.schools.descriptionColumn, api)
		if err != nil {
			return fmt.Errorf("build states: %w", err)
		}
		counters.ConflictingStates = stateStats.Conflicting

		schools, schoolStats, err := transform.TransformSchools(raw, states, p.schools.options, api)
		if err != nil {
			return fmt.Errorf("transform %s: %w", p.schools.source.Name, err)
		}
		counters.UnmappedStates = schoolStats.UnmappedState
		counters.FlagColumns = schoolStats.FlagColumns

		tables[TableStates] = states.Table
		tables[p.schools.table] = schools
		return nil
	})
	if err != nil {
		return nil, counters, err
	}

	for _, s := range p.stages {
		err := stageSpan(ctx, s.source.Name, func(ctx context.Context) error {
			t, err := extract.Load(ctx, s.source)
			if err != nil {
				return err
			}
			if s.transform != nil {
				t, err = s.transform(t, api, &counters)
				if err != nil {
					return fmt.Errorf("transform %s: %w", s.source.Name, err)
				}
			}
			tables[s.table] = t
			return nil
		})
		if err != nil {
			return nil, counters, err
		}
	}

	out := make([]load.NamedTable, len(p.order))
	for i, name := range p.order {
		out[i] = load.NamedTable{Name: name, Table: tables[name]}
	}
	return out, counters, nil
}

func stageSpan(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(ctx, name)
	defer span.End()

	err := fn(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// Run extracts every source, then replaces each output table in db. An
// extract or transform failure writes nothing.
func Run(ctx context.Context, cfg Config, db *sql.DB, api telemetry.API) (Report, error) {
	cfg, err := cfg.WithDefaults()
	if err != nil {
		return Report{}, err
	}

	start := time.Now()
	report := Report{
		RunID:   uuid.NewString(),
		Variant: cfg.Variant,
	}
	api = telemetry.NewScopedAPI("pipeline", api)

	ctx, span := tracer.Start(ctx, "Run", trace.WithAttributes(
		attribute.String("run_id", report.RunID),
		attribute.String("variant", string(cfg.Variant)),
	))
	defer span.End()

	api.ReportDebug("starting run", report.RunID, cfg.Variant, cfg.DataDir)

	tables, counters, err := Extract(ctx, cfg, api)
	report.Counters = counters
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return report, err
	}
	counters.record(ctx)

	report.Tables, err = load.NewLoader(db, api).ReplaceAll(ctx, tables)
	report.Duration = time.Since(start)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return report, err
	}
	return report, nil
}
