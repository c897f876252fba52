package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// MockDB implements db.DBTX and remembers the statements it was given.
type MockDB struct {
	ExecFunc     func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryFunc    func(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, arguments ...any) pgx.Row

	Statements []string
}

func (m *MockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	m.Statements = append(m.Statements, sql)
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, sql, arguments...)
	}
	return pgconn.CommandTag{}, nil
}

func (m *MockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	m.Statements = append(m.Statements, sql)
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, arguments...)
	}
	return &MockRows{}, nil
}

func (m *MockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	m.Statements = append(m.Statements, sql)
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, sql, arguments...)
	}
	return &MockRows{}
}

// playRow is one play_history row in scan order.
type playRow struct {
	id          int64
	guildID     int64
	source      string
	title       string
	url         string
	requestedBy string
	playedAt    time.Time
}

// MockRows implements pgx.Rows over a fixed set of play_history rows.
type MockRows struct {
	Rows    []playRow
	ScanErr error
	IterErr error

	pos    int
	closed bool
}

func (m *MockRows) Next() bool {
	if m.closed || m.pos >= len(m.Rows) {
		return false
	}
	m.pos++
	return true
}

func (m *MockRows) Scan(dest ...any) error {
	if m.ScanErr != nil {
		return m.ScanErr
	}
	if m.pos == 0 || m.pos > len(m.Rows) {
		return fmt.Errorf("scan called without a current row")
	}
	if len(dest) != 7 {
		return fmt.Errorf("expected 7 scan targets, got %d", len(dest))
	}

	row := m.Rows[m.pos-1]
	*dest[0].(*int64) = row.id
	*dest[1].(*int64) = row.guildID
	*dest[2].(*string) = row.source
	*dest[3].(*string) = row.title
	*dest[4].(*string) = row.url
	*dest[5].(*string) = row.requestedBy
	*dest[6].(*pgtype.Timestamptz) = pgtype.Timestamptz{Time: row.playedAt, Valid: true}
	return nil
}

func (m *MockRows) Close()     { m.closed = true }
func (m *MockRows) Err() error { return m.IterErr }

func (m *MockRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (m *MockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (m *MockRows) Values() ([]any, error)                       { return nil, nil }
func (m *MockRows) RawValues() [][]byte                          { return nil }
func (m *MockRows) Conn() *pgx.Conn                              { return nil }
