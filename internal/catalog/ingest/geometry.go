package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bitfantasy/toolcat/internal/catalog/entity"
	"github.com/bitfantasy/toolcat/internal/shared/logging"
)

var (
	ErrBadHeader = errors.New("bad table header")
	ErrIntegrity = errors.New("geometry row does not match its tool")
)

const foreignKeyViolation = "23503"

// GeometryRow is one parsed geometry record keyed by database column.
type GeometryRow struct {
	ToolID int64
	Values map[string]any
}

// GeometryLoader writes the rows of one family into its geometry table.
type GeometryLoader struct {
	db        *gorm.DB
	family    Family
	batchSize int
	logger    *zap.Logger
}

// NewGeometryLoader creates the loader of one geometry family.
func NewGeometryLoader(db *gorm.DB, family Family, logger *zap.Logger) *GeometryLoader {
	return &GeometryLoader{db: db, family: family, batchSize: DefaultBatchSize, logger: logging.OrGlobal(logger)}
}

func (l *GeometryLoader) Family() Family { return l.family }

// Columns returns the family columns present in the table header.
func (l *GeometryLoader) Columns(t *Table) []Column {
	var cols []Column
	for _, c := range l.family.Columns {
		if t.Has(c.Label) {
			cols = append(cols, c)
		}
	}
	return cols
}

// Parse selects the rows of the family and converts their cells. A row with
// an unparseable cell is skipped whole, as is a row whose id has no parsed
// tool of this family. A repeated id keeps the last row, matching ToolLoader.
func (l *GeometryLoader) Parse(t *Table, tools []entity.Tool) ([]GeometryRow, int) {
	cols := l.Columns(t)
	byID := make(map[int64]entity.Tool, len(tools))
	for _, tool := range tools {
		byID[tool.ID] = tool
	}

	var rows []GeometryRow
	seen := make(map[int64]int)
	skipped := 0
	idCol := -1
	for _, label := range idLabels {
		if i := t.Index(label); i >= 0 {
			idCol = i
			break
		}
	}
	groupCol := t.Index(LabelGroup)
	if idCol < 0 || groupCol < 0 {
		return nil, 0
	}

	for _, raw := range t.Rows {
		if groupOf(raw[groupCol]) != l.family.Group {
			continue
		}
		id, err := cast.ToInt64E(trimZeroDecimal(raw[idCol]))
		if err != nil || raw[idCol] == "" {
			continue
		}
		if tool, ok := byID[id]; !ok || groupOf(tool.Group) != l.family.Group {
			l.logger.Warn("skipping geometry row without a matching tool",
				zap.String("table", l.family.Table()),
				zap.Int64("tool_id", id),
				zap.Error(ErrIntegrity))
			skipped++
			continue
		}

		row := GeometryRow{ToolID: id, Values: make(map[string]any, len(cols))}
		bad := false
		for _, c := range cols {
			cell := raw[t.Index(c.Label)]
			v, err := parseCell(cell, c.Kind)
			if err != nil {
				l.logger.Warn("skipping geometry row with malformed cell",
					zap.String("table", l.family.Table()),
					zap.Int64("tool_id", id),
					zap.String("column", c.Label),
					zap.String("value", cell))
				bad = true
				break
			}
			row.Values[c.Label] = v
		}
		if bad {
			skipped++
			continue
		}
		if i, ok := seen[id]; ok {
			rows[i] = row
			skipped++
			continue
		}
		seen[id] = len(rows)
		rows = append(rows, row)
	}
	return rows, skipped
}

// Verify drops rows whose tool is missing from the database or carries
// another group, so a tool never gains geometry in two tables.
func (l *GeometryLoader) Verify(ctx context.Context, rows []GeometryRow) ([]GeometryRow, int, error) {
	if len(rows) == 0 {
		return rows, 0, nil
	}
	ids := make([]any, len(rows))
	for i, r := range rows {
		ids[i] = r.ToolID
	}

	var heads []entity.Tool
	err := l.db.WithContext(ctx).
		Select("id", "group").
		Where(clause.IN{Column: clause.Column{Name: "id"}, Values: ids}).
		Find(&heads).Error
	if err != nil {
		return nil, 0, fmt.Errorf("verify %s: %w", l.family.Table(), err)
	}
	groups := make(map[int64]string, len(heads))
	for _, h := range heads {
		groups[h.ID] = h.Group
	}

	kept := rows[:0]
	dropped := 0
	for _, r := range rows {
		g, ok := groups[r.ToolID]
		if !ok || groupOf(g) != l.family.Group {
			l.logger.Warn("skipping geometry row",
				zap.String("table", l.family.Table()),
				zap.Int64("tool_id", r.ToolID),
				zap.String("tool_group", g),
				zap.Error(ErrIntegrity))
			dropped++
			continue
		}
		kept = append(kept, r)
	}
	return kept, dropped, nil
}

// Write upserts rows by tool_id. Only columns present in the source are updated.
func (l *GeometryLoader) Write(ctx context.Context, rows []GeometryRow, cols []Column) error {
	if len(rows) == 0 {
		return nil
	}
	now := time.Now()
	updates := []string{"updated_at"}
	for _, c := range cols {
		updates = append(updates, c.Label)
	}

	records := make([]map[string]any, len(rows))
	for i, r := range rows {
		rec := make(map[string]any, len(r.Values)+3)
		for k, v := range r.Values {
			rec[k] = v
		}
		rec["tool_id"] = r.ToolID
		rec["created_at"] = now
		rec["updated_at"] = now
		records[i] = rec
	}

	for start := 0; start < len(records); start += l.batchSize {
		end := min(start+l.batchSize, len(records))
		err := l.db.WithContext(ctx).
			Model(l.family.Model).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "tool_id"}},
				DoUpdates: clause.AssignmentColumns(updates),
			}).
			Create(records[start:end]).Error
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
				return fmt.Errorf("upsert %s: %w: %s", l.family.Table(), ErrIntegrity, pgErr.Detail)
			}
			return fmt.Errorf("upsert %s: %w", l.family.Table(), err)
		}
	}
	return nil
}

func trimZeroDecimal(s string) string {
	f, err := cast.ToFloat64E(s)
	if err != nil || f != float64(int64(f)) {
		return s
	}
	return cast.ToString(int64(f))
}
