package orm

import (
	"context"
	"database/sql/driver"
	"time"

	"github.com/gopsql/db"
	"github.com/gopsql/logger"
)

type (
	// EntityPointer is satisfied by *T when *T implements Entity.
	EntityPointer[T any] interface {
		*T
		Entity
	}

	// Model binds a registered entity type to a database connection and an
	// optional logger. Create it with NewModel:
	//  people, err := orm.NewModel[Person](conn, logger.StandardLogger)
	Model[T any, PT EntityPointer[T]] struct {
		connection db.DB
		logger     logger.Logger
		table      *Table
	}
)

// NewModel registers the entity type T (see Register()) and returns its
// Model. For available options, see SetOptions().
func NewModel[T any, PT EntityPointer[T]](options ...interface{}) (*Model[T, PT], error) {
	table, err := Register(PT(new(T)))
	if err != nil {
		return nil, err
	}
	m := &Model[T, PT]{table: table}
	m.SetOptions(options...)
	return m, nil
}

// MustNewModel is like NewModel but panics if the entity type is invalid.
func MustNewModel[T any, PT EntityPointer[T]](options ...interface{}) *Model[T, PT] {
	m, err := NewModel[T, PT](options...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Model[T, PT]) String() string {
	return "model of " + m.table.String()
}

// Table returns the registered metadata of the Model.
func (m Model[T, PT]) Table() *Table {
	return m.table
}

// Table name of the Model.
func (m Model[T, PT]) TableName() string {
	return m.table.Name()
}

// New returns a new zero entity.
func (m Model[T, PT]) New() PT {
	return PT(new(T))
}

// Clone returns a copy of the model.
func (m *Model[T, PT]) Clone() *Model[T, PT] {
	return &Model[T, PT]{
		connection: m.connection,
		logger:     m.logger,
		table:      m.table,
	}
}

// Quiet returns a copy of the model without logger.
func (m *Model[T, PT]) Quiet() *Model[T, PT] {
	return m.Clone().SetLogger(nil)
}

// SetOptions sets database connection (see SetConnection()) and/or logger (see
// SetLogger()).
func (m *Model[T, PT]) SetOptions(options ...interface{}) *Model[T, PT] {
	for _, option := range options {
		switch o := option.(type) {
		case db.DB:
			m.SetConnection(o)
		case logger.Logger:
			m.SetLogger(o)
		}
	}
	return m
}

// Return database connection for the Model.
func (m *Model[T, PT]) Connection() db.DB {
	return m.connection
}

// Set a database connection for the Model. ErrNoConnection is returned by
// operations if no connection is set.
func (m *Model[T, PT]) SetConnection(db db.DB) *Model[T, PT] {
	m.connection = db
	return m
}

// Set the logger for the Model. Use logger.StandardLogger if you want to use
// Go's built-in standard logging package. By default, no logger is used, so
// the SQL statements are not printed to the console.
func (m *Model[T, PT]) SetLogger(logger logger.Logger) *Model[T, PT] {
	m.logger = logger
	return m
}

func (m Model[T, PT]) exec(ctx context.Context, tx db.Tx, sql string, args []interface{}) (db.Result, error) {
	if tx == nil && m.connection == nil {
		return nil, ErrNoConnection
	}
	args = bindValues(args)
	start := time.Now()
	var result db.Result
	var err error
	if tx != nil {
		result, err = tx.ExecContext(ctx, sql, args...)
	} else {
		result, err = m.connection.Exec(sql, args...)
	}
	m.log(sql, args, time.Since(start))
	return result, execError(sql, err)
}

func (m Model[T, PT]) query(ctx context.Context, tx db.Tx, sql string, args []interface{}) (db.Rows, error) {
	if tx == nil && m.connection == nil {
		return nil, ErrNoConnection
	}
	args = bindValues(args)
	start := time.Now()
	var rows db.Rows
	var err error
	if tx != nil {
		rows, err = tx.QueryContext(ctx, sql, args...)
	} else {
		rows, err = m.connection.Query(sql, args...)
	}
	m.log(sql, args, time.Since(start))
	if err != nil {
		return nil, execError(sql, err)
	}
	return rows, nil
}

// queryRow scans the first row of the query into dest.
func (m Model[T, PT]) queryRow(ctx context.Context, tx db.Tx, sql string, args []interface{}, dest ...interface{}) error {
	if tx == nil && m.connection == nil {
		return ErrNoConnection
	}
	args = bindValues(args)
	start := time.Now()
	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, sql, args...).Scan(dest...)
	} else {
		err = m.connection.QueryRow(sql, args...).Scan(dest...)
	}
	m.log(sql, args, time.Since(start))
	return execError(sql, err)
}

// bindValues converts entity values to driver values, so pointers become
// their targets or NULL and all integer kinds become int64. A nil []byte is
// NULL.
func bindValues(values []interface{}) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = bindValue(v)
	}
	return out
}

func bindValue(v interface{}) interface{} {
	c, err := driver.DefaultParameterConverter.ConvertValue(v)
	if err != nil {
		return v
	}
	if b, ok := c.([]byte); ok && b == nil {
		return nil
	}
	return c
}
