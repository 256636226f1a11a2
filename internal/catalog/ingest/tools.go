package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bitfantasy/toolcat/internal/catalog/entity"
	"github.com/bitfantasy/toolcat/internal/catalog/enum"
	"github.com/bitfantasy/toolcat/internal/shared/logging"
)

// DefaultBatchSize is the number of rows per insert statement.
const DefaultBatchSize = 500

// ToolLoader writes the header columns of every row into tools.
type ToolLoader struct {
	db        *gorm.DB
	batchSize int
	logger    *zap.Logger
}

// NewToolLoader creates a ToolLoader writing DefaultBatchSize rows per statement.
func NewToolLoader(db *gorm.DB, logger *zap.Logger) *ToolLoader {
	return &ToolLoader{db: db, batchSize: DefaultBatchSize, logger: logging.OrGlobal(logger)}
}

// Parse turns table rows into tools. Rows without a valid id or marking are
// skipped and counted. When an id repeats, the last row wins and each earlier
// one counts as skipped. Cells that neither the header columns nor the row's
// geometry family consume are kept in Extra.
func (l *ToolLoader) Parse(t *Table) ([]entity.Tool, int, error) {
	idCol := -1
	for _, label := range idLabels {
		if i := t.Index(label); i >= 0 {
			idCol = i
			break
		}
	}
	if idCol < 0 {
		return nil, 0, fmt.Errorf("%w: no id column", ErrBadHeader)
	}
	markingCol := t.Index(LabelMarking)
	if markingCol < 0 {
		return nil, 0, fmt.Errorf("%w: no %q column", ErrBadHeader, LabelMarking)
	}
	groupCol, standardCol := t.Index(LabelGroup), t.Index(LabelStandard)

	consumed := familyLabels()
	var tools []entity.Tool
	seen := make(map[int64]int)
	skipped := 0
	for n, row := range t.Rows {
		id, err := cast.ToInt64E(trimZeroDecimal(row[idCol]))
		if err != nil || row[idCol] == "" || row[markingCol] == "" {
			l.logger.Warn("skipping source row",
				zap.Int("row", n+2),
				zap.String("id", row[idCol]),
				zap.String("marking", row[markingCol]))
			skipped++
			continue
		}

		tool := entity.Tool{ID: id, Marking: row[markingCol]}
		if groupCol >= 0 {
			tool.Group = row[groupCol]
		}
		if standardCol >= 0 {
			tool.Standard = row[standardCol]
		}

		used := consumed[groupOf(tool.Group)]
		extra := datatypes.JSONMap{}
		for i, cell := range row {
			label := t.Header[i]
			if cell == "" || i == idCol || i == markingCol || i == groupCol || i == standardCol || used[label] {
				continue
			}
			extra[label] = cell
		}
		if len(extra) > 0 {
			tool.Extra = extra
		}
		if i, ok := seen[id]; ok {
			l.logger.Warn("duplicate tool id, keeping the later row",
				zap.Int("row", n+2),
				zap.Int64("id", id),
				zap.String("replaced_marking", tools[i].Marking),
				zap.String("marking", tool.Marking))
			tools[i] = tool
			skipped++
			continue
		}
		seen[id] = len(tools)
		tools = append(tools, tool)
	}
	return tools, skipped, nil
}

// Write upserts tools by id.
func (l *ToolLoader) Write(ctx context.Context, tools []entity.Tool) error {
	if len(tools) == 0 {
		return nil
	}
	now := time.Now()
	for i := range tools {
		tools[i].UpdatedAt = now
	}
	err := l.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"marking", "group", "standard", "extra", "updated_at"}),
		}).
		CreateInBatches(&tools, l.batchSize).Error
	if err != nil {
		return fmt.Errorf("upsert tools: %w", err)
	}
	return nil
}

func groupOf(cell string) enum.Group {
	g, err := enum.Groups.FromValue(cell)
	if err != nil {
		return ""
	}
	return g
}

func familyLabels() map[enum.Group]map[string]bool {
	out := make(map[enum.Group]map[string]bool)
	for _, f := range Families() {
		labels := make(map[string]bool, len(f.Columns))
		for _, c := range f.Columns {
			labels[c.Label] = true
		}
		out[f.Group] = labels
	}
	return out
}
