// Package normalize turns loosely typed source rows into typed records.
//
// Nothing here fails: malformed numbers become 0, malformed dates become the
// zero Date and missing names become UnknownName.
package normalize

import (
	"strconv"
	"strings"

	"github.com/okian/setterboard/internal/domain/model"
)

// Record normalizes one row. index is the row's position in its source and
// only matters for rows without an id.
func Record(index int, row model.RawRow, fm model.FieldMap) model.NormalizedRecord {
	id := row.ID
	if id == "" {
		id = "row-" + strconv.Itoa(index)
	}

	rec := model.NormalizedRecord{ID: id}
	if col := strings.TrimSpace(fm.Date); col != "" {
		rec.Date = ParseDate(row.Fields[col])
	}
	rec.Name = ResolveName(row.Fields, fm)
	rec.Key = Key(rec.Name)
	for _, m := range model.AllMetrics {
		if col := fm.Column(m); col != "" {
			rec.Set(m, SmartNumber(row.Fields[col]))
		}
	}
	return rec
}

// Records normalizes rows in order.
func Records(rows []model.RawRow, fm model.FieldMap) []model.NormalizedRecord {
	out := make([]model.NormalizedRecord, len(rows))
	for i, row := range rows {
		out[i] = Record(i, row, fm)
	}
	return out
}
