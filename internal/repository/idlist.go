package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// jsonArray renders ids as a jsonb literal for containment checks.
func jsonArray(ids ...string) string {
	b, _ := json.Marshal(ids)
	return string(b)
}

// pushID appends id to the jsonb array column of the row with the given
// primary key, unless it is already there.
func pushID(ctx context.Context, db *gorm.DB, table interface{}, rowID interface{}, column, id string) (int64, error) {
	elem := jsonArray(id)
	result := db.WithContext(ctx).Model(table).
		Where("id = ? AND NOT ("+column+" @> ?::jsonb)", rowID, elem).
		Update(column, gorm.Expr(column+" || ?::jsonb", elem))
	return result.RowsAffected, result.Error
}

// pullID removes id from the jsonb array column of one row.
func pullID(ctx context.Context, db *gorm.DB, table interface{}, rowID interface{}, column, id string) (int64, error) {
	result := db.WithContext(ctx).Model(table).
		Where("id = ?", rowID).
		Update(column, gorm.Expr(column+" - ?::text", id))
	return result.RowsAffected, result.Error
}

// pullIDEverywhere removes id from the jsonb array column of every row in
// the table that references it. It is not scoped to a project.
func pullIDEverywhere(ctx context.Context, db *gorm.DB, table interface{}, column, id string) error {
	return db.WithContext(ctx).Model(table).
		Where(column+" @> ?::jsonb", jsonArray(id)).
		Update(column, gorm.Expr(column+" - ?::text", id)).Error
}

// validUUIDs drops ids that cannot be compared with a uuid column. Lists
// written by older clients may hold such ids.
func validUUIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			out = append(out, id)
		}
	}
	return out
}
