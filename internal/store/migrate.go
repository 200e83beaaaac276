package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const tableSessionValues = "session_values"

// Column names of the session_values table.
const (
	colLearnerID = "learner_id"
	colKey       = "key"
	colValue     = "value"
	colUpdatedAt = "updated_at" // unix seconds
	colExpiresAt = "expires_at" // unix seconds, NULL for no expiry
)

var (
	sessionValuesColumns = []*entschema.Column{
		{Name: colLearnerID, Type: field.TypeString},
		{Name: colKey, Type: field.TypeString},
		{Name: colValue, Type: field.TypeBytes},
		{Name: colUpdatedAt, Type: field.TypeInt64},
		{Name: colExpiresAt, Type: field.TypeInt64, Nullable: true},
	}

	sessionValuesTable = &entschema.Table{
		Name:       tableSessionValues,
		Columns:    sessionValuesColumns,
		PrimaryKey: []*entschema.Column{sessionValuesColumns[0], sessionValuesColumns[1]},
		Indexes: []*entschema.Index{
			{
				Name:    "sessionvalues_expires_at",
				Columns: []*entschema.Column{sessionValuesColumns[4]},
			},
		},
	}
)

// migrate creates or upgrades the session tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := entschema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, sessionValuesTable)
}
