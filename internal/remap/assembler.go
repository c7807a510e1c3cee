// Package remap assembles a model-ready record collection by populating the
// slots of a per-model template with payloads drawn from an operational
// source file, applying the static field mappings where the two naming
// schemes diverge.
package remap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/overcastwx/grib-remap/internal/grib"
	"github.com/overcastwx/grib-remap/internal/gridmsg"
	"github.com/overcastwx/grib-remap/internal/observability"
)

// Assembler orchestrates one or more remapping operations. It is safe to run
// independent operations concurrently from the same Assembler: all mutable
// state is owned per call.
type Assembler struct {
	table   grib.Table
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Assembler with the given mapping table and observability.
func New(table grib.Table, logger *slog.Logger, metrics *observability.Metrics) *Assembler {
	return &Assembler{
		table:   table,
		logger:  logger,
		metrics: metrics,
	}
}

// Report summarizes one completed remap operation.
type Report struct {
	Model       string
	Slots       int
	Duration    time.Duration
	CompletedAt time.Time
}

// Assemble populates every retained template slot from the source store and
// returns the output sequence in template order.
//
// The template's retained records define the output exactly: count, order,
// and per-slot metadata are copied verbatim, except where a mapping rewrites
// the payload. When extra matchers are given, only template records
// satisfying them are retained. Any selection failure aborts the whole
// operation; no partial output is ever returned.
func (a *Assembler) Assemble(template, source *grib.RecordStore, extra grib.Matchers) ([]*grib.Record, error) {
	slots := template.Filter(extra).Records()
	pool := a.indexSource(slots, source)

	out := make([]*grib.Record, 0, len(slots))
	for _, slot := range slots {
		rec, err := a.resolveSlot(slot, pool)
		if err != nil {
			a.metrics.RemapFailures.WithLabelValues(errorKind(err)).Inc()
			return nil, fmt.Errorf("slot %s: %w", slot, err)
		}
		out = append(out, rec)
	}

	if len(out) != len(slots) {
		err := &grib.StructuralMismatchError{Want: len(slots), Got: len(out)}
		a.metrics.RemapFailures.WithLabelValues(errorKind(err)).Inc()
		return nil, err
	}

	a.metrics.SlotsAssembled.Add(float64(len(out)))
	return out, nil
}

// indexSource buckets source records by short name, restricted to the names
// any retained slot can require: the slot's own short name on the identity
// branch, or the mapping entry's source field on the mapped branch. The index
// is purely a performance optimization over rescanning the source per slot;
// because every selection constrains the short name too, it never changes
// which records a selection can see.
func (a *Assembler) indexSource(slots []*grib.Record, source *grib.RecordStore) map[string][]*grib.Record {
	needed := make(map[string]bool, len(slots))
	for _, slot := range slots {
		if m, ok := a.table.Lookup(slot.LevelType, slot.ShortName); ok {
			needed[m.SourceField] = true
		} else {
			needed[slot.ShortName] = true
		}
	}

	pool := make(map[string][]*grib.Record, len(needed))
	for _, rec := range source.Records() {
		if needed[rec.ShortName] {
			pool[rec.ShortName] = append(pool[rec.ShortName], rec)
		}
	}
	return pool
}

// resolveSlot produces the populated output record for one template slot.
// Selection never mutates the pool; the output record owns a fresh payload.
func (a *Assembler) resolveSlot(slot *grib.Record, pool map[string][]*grib.Record) (*grib.Record, error) {
	out := slot.Clone()

	mapping, ok := a.table.Lookup(slot.LevelType, slot.ShortName)
	if !ok {
		// Identity branch: same name, same level metadata, values copied.
		src, err := grib.SelectOne(pool[slot.ShortName], grib.Matchers{
			grib.MatchShortName: slot.ShortName,
			grib.MatchLevelType: slot.LevelType,
			grib.MatchLevel:     slot.Level,
		})
		if err != nil {
			return nil, err
		}
		out.Values = mat.DenseCopyOf(src.Values)
		return out, nil
	}

	levelType := slot.LevelType
	if mapping.SourceLevelType != "" {
		levelType = mapping.SourceLevelType
	}
	level := slot.Level
	if mapping.SourceLevel != nil {
		level = *mapping.SourceLevel
	}

	src, err := grib.SelectOne(pool[mapping.SourceField], grib.Matchers{
		grib.MatchShortName: mapping.SourceField,
		grib.MatchLevelType: levelType,
		grib.MatchLevel:     level,
	})
	if err != nil {
		return nil, err
	}

	out.Values = mapping.Transform(src.Values)
	return out, nil
}

// Run executes a complete remap operation: load the template and source
// stores from disk, assemble, and write the output file. Both input file
// handles are released before assembly begins; no I/O happens during slot
// resolution. Any failure leaves no partial output behind.
func (a *Assembler) Run(ctx context.Context, model, templatePath, sourcePath, outPath string, extra grib.Matchers) (*Report, error) {
	start := clock.Now()
	a.metrics.RemapRunning.Set(1)
	defer a.metrics.RemapRunning.Set(0)

	a.logger.Info("remap operation starting",
		"model", model,
		"template", templatePath,
		"source", sourcePath,
		"out", outPath,
	)

	if _, err := os.Stat(templatePath); errors.Is(err, fs.ErrNotExist) {
		mErr := &grib.MissingTemplateError{Model: model, Path: templatePath}
		a.metrics.RemapFailures.WithLabelValues(errorKind(mErr)).Inc()
		return nil, mErr
	}

	template, err := a.loadStore(templatePath, "template")
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source, err := a.loadStore(sourcePath, "source")
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := a.Assemble(template, source, extra)
	if err != nil {
		return nil, err
	}

	if err := gridmsg.WriteFile(outPath, out); err != nil {
		a.metrics.RemapFailures.WithLabelValues("io").Inc()
		// Don't leave a truncated output file for downstream consumers.
		_ = os.Remove(outPath)
		return nil, fmt.Errorf("write output: %w", err)
	}

	report := &Report{
		Model:       model,
		Slots:       len(out),
		Duration:    clock.Since(start),
		CompletedAt: clock.Now(),
	}
	a.metrics.RemapDuration.Observe(report.Duration.Seconds())
	a.logger.Info("remap operation complete",
		"model", model,
		"slots", report.Slots,
		"duration", report.Duration,
	)
	return report, nil
}

func (a *Assembler) loadStore(path, kind string) (*grib.RecordStore, error) {
	records, err := gridmsg.ReadFile(path)
	if err != nil {
		a.metrics.RemapFailures.WithLabelValues("io").Inc()
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}
	a.metrics.RecordsLoaded.WithLabelValues(kind).Add(float64(len(records)))
	a.logger.Debug("store loaded", "kind", kind, "path", path, "records", len(records))
	return grib.NewRecordStore(records), nil
}

// errorKind maps an error to its metrics label.
func errorKind(err error) string {
	var (
		noMatch    *grib.NoMatchError
		ambiguous  *grib.AmbiguousMatchError
		missing    *grib.MissingTemplateError
		structural *grib.StructuralMismatchError
	)
	switch {
	case errors.As(err, &noMatch):
		return "no_match"
	case errors.As(err, &ambiguous):
		return "ambiguous_match"
	case errors.As(err, &missing):
		return "missing_template"
	case errors.As(err, &structural):
		return "structural_mismatch"
	default:
		return "io"
	}
}
