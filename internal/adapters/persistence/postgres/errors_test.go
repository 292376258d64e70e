package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jsamuelsen11/guidedtours/internal/domain"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "record not found", err: gorm.ErrRecordNotFound, wantErr: domain.ErrNotFound},
		{name: "wrapped not found", err: fmt.Errorf("query: %w", gorm.ErrRecordNotFound), wantErr: domain.ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505", Message: "duplicate key"}, wantErr: domain.ErrConflict},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, wantErr: domain.ErrValidation},
		{name: "not null violation", err: &pgconn.PgError{Code: "23502", ColumnName: "title"}, wantErr: domain.ErrValidation},
		{name: "string truncation", err: &pgconn.PgError{Code: "22001"}, wantErr: domain.ErrValidation},
		{name: "other pg error", err: &pgconn.PgError{Code: "40001"}, wantErr: domain.ErrPersistence},
		{name: "plain error", err: errors.New("connection reset"), wantErr: domain.ErrPersistence},
		{name: "cancelled", err: context.Canceled, wantErr: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := mapError("tour 5", tt.err)
			assert.ErrorIs(t, got, tt.wantErr)
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, mapError("tour 5", nil))
}

func TestMapError_KeepsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	got := mapError("list tours", cause)

	assert.ErrorIs(t, got, cause)
	assert.Contains(t, got.Error(), "list tours")
}

func TestMapError_ValidationField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		err   *pgconn.PgError
		field string
	}{
		{name: "column", err: &pgconn.PgError{Code: "23502", ColumnName: "title"}, field: "title"},
		{name: "constraint", err: &pgconn.PgError{Code: "23503", ConstraintName: "fk_steps_tour"}, field: "fk_steps_tour"},
		{name: "unnamed", err: &pgconn.PgError{Code: "22001"}, field: "record"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var verr *domain.ValidationError
			require.ErrorAs(t, mapError("create tour", tt.err), &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}
