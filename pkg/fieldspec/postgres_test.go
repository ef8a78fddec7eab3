package fieldspec_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/entityvalidator/pkg/fieldspec"
)

// fakeQuerier serves canned results for the two queries PostgresSource issues.
type fakeQuerier struct {
	label    *string
	labelErr error
	rows     [][]any
	queryErr error
	rowsErr  error

	queriedArgs []any
}

func (q *fakeQuerier) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	if q.labelErr != nil {
		return fakeRow{err: q.labelErr}
	}
	return fakeRow{values: []any{q.label}}
}

func (q *fakeQuerier) Query(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
	q.queriedArgs = args
	if q.queryErr != nil {
		return nil, q.queryErr
	}
	return &fakeRows{rows: q.rows, err: q.rowsErr, pos: -1}, nil
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.values)
}

type fakeRows struct {
	rows [][]any
	err  error
	pos  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	return assign(dest, r.rows[r.pos])
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.pos], nil
}

func assign(dest, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(values))
	}
	for i, v := range values {
		target := reflect.ValueOf(dest[i]).Elem()
		if v == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(v))
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestPostgresSource_Schema(t *testing.T) {
	t.Parallel()

	t.Run("reads label and ordered field instances", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{
			label: ptr("title"),
			rows: [][]any{
				{"field_body", "body", "value", true, int32(1), "text_with_summary", []string{}, []byte(`{}`)},
				{"field_image", "", "", false, int32(-1), "image", []string{"file_extension"}, []byte(`{"max_resolution":"800X600","file_extensions":"png jpg"}`)},
			},
		}

		schema, err := fieldspec.NewPostgresSource(q).Schema(context.Background(), "node", "issue")
		require.NoError(t, err)
		assert.Equal(t, []any{"node", "issue"}, q.queriedArgs)

		assert.Equal(t, "title", schema.LabelKey)
		require.Len(t, schema.Fields, 2)

		body := schema.Fields[0]
		assert.Equal(t, "field_body", body.Name)
		assert.Equal(t, "body", body.Property)
		assert.Equal(t, "value", body.SubProperty)
		assert.True(t, body.Required)
		assert.Equal(t, fieldspec.Single, body.Cardinality)
		assert.Equal(t, fieldspec.KindTextWithSummary, body.Kind)
		assert.Empty(t, body.Validators)

		image := schema.Fields[1]
		assert.Equal(t, fieldspec.Unbounded, image.Cardinality)
		assert.Equal(t, []fieldspec.ValidatorName{fieldspec.ValidatorFileExtension}, image.Validators)
		assert.Equal(t, "800X600", image.Settings.MaxResolution)
		assert.Equal(t, "png jpg", image.Settings.FileExtensions)
	})

	t.Run("unknown entity type", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{labelErr: pgx.ErrNoRows}
		schema, err := fieldspec.NewPostgresSource(q).Schema(context.Background(), "node", "issue")
		require.NoError(t, err)
		assert.True(t, schema.IsEmpty())
	})

	t.Run("unknown variant keeps the label", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{label: ptr("title")}
		schema, err := fieldspec.NewPostgresSource(q).Schema(context.Background(), "node", "missing")
		require.NoError(t, err)
		assert.Equal(t, "title", schema.LabelKey)
		assert.Empty(t, schema.Fields)
	})

	t.Run("null label key", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{rows: [][]any{
			{"mail", "", "", true, int32(1), "email", []string{}, []byte(nil)},
		}}
		schema, err := fieldspec.NewPostgresSource(q).Schema(context.Background(), "user", "user")
		require.NoError(t, err)
		assert.Empty(t, schema.LabelKey)
		require.Len(t, schema.Fields, 1)
	})

	t.Run("query failures", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("connection reset")
		for _, q := range []*fakeQuerier{
			{labelErr: boom},
			{label: ptr("title"), queryErr: boom},
			{label: ptr("title"), rowsErr: boom},
		} {
			_, err := fieldspec.NewPostgresSource(q).Schema(context.Background(), "node", "issue")
			assert.ErrorIs(t, err, fieldspec.ErrFailedToQuerySchema)
			assert.ErrorIs(t, err, boom)
		}
	})

	t.Run("malformed settings", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{
			label: ptr("title"),
			rows: [][]any{
				{"field_body", "", "", false, int32(1), "text", []string{}, []byte(`{"max_length":"many"}`)},
			},
		}
		_, err := fieldspec.NewPostgresSource(q).Schema(context.Background(), "node", "issue")
		assert.ErrorIs(t, err, fieldspec.ErrFailedToDecodeFields)
	})
}

func TestConnectPostgres_InvalidConnectionString(t *testing.T) {
	t.Parallel()

	_, err := fieldspec.ConnectPostgres(context.Background(), fieldspec.PostgresConfig{
		ConnectionString: "postgres://%zz",
	})
	assert.ErrorIs(t, err, fieldspec.ErrFailedToParseDBConfig)
}
