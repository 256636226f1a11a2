package ingest

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bitfantasy/toolcat/internal/catalog/entity"
	"github.com/bitfantasy/toolcat/internal/shared/cache"
	"github.com/bitfantasy/toolcat/internal/shared/logging"
	"github.com/bitfantasy/toolcat/internal/shared/metrics"
)

// TableStats counts what happened to the rows of one table.
type TableStats struct {
	Table   string `json:"table"`
	Loaded  int    `json:"loaded"`
	Skipped int    `json:"skipped"`
}

// Report summarizes one load.
type Report struct {
	Tools    TableStats    `json:"tools"`
	Geometry []TableStats  `json:"geometry"`
	Duration time.Duration `json:"duration"`
}

// Loaded is the number of rows written across all tables.
func (r *Report) Loaded() int {
	n := r.Tools.Loaded
	for _, g := range r.Geometry {
		n += g.Loaded
	}
	return n
}

// Loader writes tools first, then each family's geometry, then purges
// cached value lists.
type Loader struct {
	tools    *ToolLoader
	geometry []*GeometryLoader
	cache    cache.Cache
	logger   *zap.Logger
}

// NewLoader creates a loader for every family. A nil cache is allowed.
func NewLoader(db *gorm.DB, c cache.Cache, logger *zap.Logger) *Loader {
	logger = logging.OrGlobal(logger)
	if c == nil {
		c = cache.Nop{}
	}
	l := &Loader{tools: NewToolLoader(db, logger), cache: c, logger: logger}
	for _, f := range Families() {
		l.geometry = append(l.geometry, NewGeometryLoader(db, f, logger))
	}
	return l
}

// Load writes the tools of t, then each family's geometry, and reports
// per-table counts. Rows that fail parsing or the group check are skipped;
// any write error aborts the load.
func (l *Loader) Load(ctx context.Context, t *Table) (*Report, error) {
	start := time.Now()
	report := &Report{Tools: TableStats{Table: entity.Tool{}.TableName()}}

	tools, skipped, err := l.tools.Parse(t)
	if err != nil {
		return nil, err
	}
	report.Tools.Skipped = skipped
	if err := l.tools.Write(ctx, tools); err != nil {
		return nil, err
	}
	report.Tools.Loaded = len(tools)
	record(report.Tools)

	for _, g := range l.geometry {
		stats := TableStats{Table: g.Family().Table()}
		rows, bad := g.Parse(t, tools)
		rows, mismatched, err := g.Verify(ctx, rows)
		if err != nil {
			return nil, err
		}
		if err := g.Write(ctx, rows, g.Columns(t)); err != nil {
			return nil, err
		}
		stats.Loaded, stats.Skipped = len(rows), bad+mismatched
		report.Geometry = append(report.Geometry, stats)
		record(stats)
	}

	if err := l.cache.Purge(ctx); err != nil {
		l.logger.Warn("failed to purge value cache after load", zap.Error(err))
	}

	report.Duration = time.Since(start)
	l.logger.Info("catalog loaded",
		zap.Int("tools", report.Tools.Loaded),
		zap.Int("rows", report.Loaded()),
		zap.Duration("duration", report.Duration))
	return report, nil
}

func record(s TableStats) {
	metrics.RowsIngested.WithLabelValues(s.Table, metrics.OutcomeLoaded).Add(float64(s.Loaded))
	metrics.RowsIngested.WithLabelValues(s.Table, metrics.OutcomeSkipped).Add(float64(s.Skipped))
}
