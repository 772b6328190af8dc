package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/setterboard/internal/adapters/source"
	"github.com/okian/setterboard/internal/demo"
	"github.com/okian/setterboard/internal/domain/model"
	"github.com/okian/setterboard/internal/domain/pipeline"
	"github.com/okian/setterboard/internal/domain/types"
	"github.com/okian/setterboard/internal/domain/window"
	"github.com/okian/setterboard/pkg/logger"
	"github.com/okian/setterboard/pkg/metrics"
)

// Compute builds a report from rows already in hand. An empty mapping falls
// back to the configured one and an empty range to the default range.
func (s *Service) Compute(ctx context.Context, rows []model.RawRow, mapping model.FieldMap, win window.Window) (types.Report, error) {
	return s.compute(ctx, rows, mapping, win, s.clock())
}

// Report fetches the rows of a stored offer and builds its report. The demo
// offer is generated locally and needs no stored entry.
func (s *Service) Report(ctx context.Context, offerID string, win window.Window) (types.Report, error) {
	now := s.clock()

	// Demo rows are always laid out by the demo columns, whatever mapping
	// a stored copy of the demo offer carries.
	if offerID == demo.OfferID {
		return s.compute(ctx, s.demo.Rows(now, s.location), demo.FieldMap(), win, now)
	}

	o, err := s.store.Get(ctx, offerID)
	if err != nil {
		return types.Report{}, fmt.Errorf("loading offer %s: %w", offerID, err)
	}

	rows, err := s.source.Fetch(ctx, source.Request{
		APIKey: o.APIKey,
		BaseID: o.BaseID,
		Table:  o.TableName,
	})
	if err != nil {
		metrics.RecordErrorByComponent("source", "fetch")
		s.logger.Error(ctx, "fetching offer rows",
			logger.String("offer", o.ID),
			logger.Error(err))
		return types.Report{}, fmt.Errorf("fetching offer %s: %w", o.ID, err)
	}

	return s.compute(ctx, rows, o.Mapping, win, now)
}

func (s *Service) compute(ctx context.Context, rows []model.RawRow, mapping model.FieldMap, win window.Window, now time.Time) (types.Report, error) {
	win, err := s.resolveWindow(win)
	if err != nil {
		return types.Report{}, err
	}
	if mapping.IsZero() {
		mapping = s.fields
	}

	start := time.Now()
	report := pipeline.Run(pipeline.Input{
		Rows:      rows,
		Fields:    mapping,
		Window:    win,
		Now:       now,
		Clusterer: s.clusterer,
	})
	elapsed := time.Since(start)

	metrics.RecordPipelineRun(string(win.Range), float64(elapsed.Milliseconds()))
	metrics.RecordRows(report.Records, report.UndatedRecords)
	metrics.RecordClusters(len(report.Entries), report.ExactMerges, report.FuzzyMerges)
	s.reports.Add(1)
	s.lastReportAt.Store(now.UnixMilli())

	switch {
	case report.NoDatesFound:
		s.logger.Warn(ctx, "no record carries a parseable date; check the date column mapping",
			logger.String("dateColumn", mapping.Date),
			logger.Int("records", report.Records))
	case report.UndatedRecords > 0:
		s.logger.Debug(ctx, "undated records only count toward all time",
			logger.Int("undated", report.UndatedRecords))
	}

	s.logger.Debug(ctx, "report computed",
		logger.String("range", string(win.Range)),
		logger.Int("records", report.Records),
		logger.Int("inWindow", report.InWindow),
		logger.Int("setters", len(report.Entries)),
		logger.Int("fuzzyMerges", report.FuzzyMerges),
		logger.Duration("took", elapsed))

	return report, nil
}

// resolveWindow applies the default range and rejects unknown ones.
func (s *Service) resolveWindow(win window.Window) (window.Window, error) {
	if win.Range == "" {
		win.Range = s.defaultRange
	}
	r, err := window.ParseRange(string(win.Range))
	if err != nil {
		return window.Window{}, fmt.Errorf("%w: %w", ErrInvalidWindow, err)
	}
	win.Range = r
	if r != window.Custom {
		win.Start, win.End = model.Date{}, model.Date{}
	}
	return win, nil
}
