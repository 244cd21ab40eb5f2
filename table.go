package orm

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
)

type (
	// Table is the registered, read-only metadata of an entity type, with
	// all of its statements generated once at registration. Get one with
	// Register() or from Model.Table().
	Table struct {
		schema        Schema
		where         string
		writable      []int
		autoIncrement int

		createSQL    string
		dropSQL      string
		selectSQL    string
		insertSQL    string
		insertAllSQL string
		updateSQL    string
		deleteSQL    string
	}
)

var registry = struct {
	sync.RWMutex
	tables map[string]*Table
}{
	tables: map[string]*Table{},
}

// Register validates the metadata of an entity type and adds it to the
// registry, keyed by table name. The entity is only used to read its
// metadata, a zero value is fine:
//
//	table, err := orm.Register(&Person{})
//
// A Schema without Table is named after the entity type, see ToTableName.
// Registering the same schema again returns the existing table. A different
// schema under an already registered table name is an ErrInvalidMetadata.
// Abstract and concrete types are registered separately.
func Register(e Entity) (*Table, error) {
	t, err := newTable(e)
	if err != nil {
		return nil, err
	}
	key := registryKey(t.schema.Table, t.schema.Abstract)
	registry.Lock()
	defer registry.Unlock()
	if existing, ok := registry.tables[key]; ok {
		if existing.schema.equal(t.schema) && existing.where == t.where {
			return existing, nil
		}
		return nil, fmt.Errorf("%w: table %s is already registered with a different schema",
			ErrInvalidMetadata, t.schema.Table)
	}
	registry.tables[key] = t
	return t, nil
}

// MustRegister is like Register but panics if registration fails.
func MustRegister(e Entity) *Table {
	t, err := Register(e)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns a registered concrete table by name. Abstract types such
// as Base are kept apart, so their names never clash with real tables.
func Lookup(name string) (*Table, bool) {
	registry.RLock()
	defer registry.RUnlock()
	t, ok := registry.tables[registryKey(name, false)]
	return t, ok
}

func registryKey(name string, abstract bool) string {
	if abstract {
		return "abstract:" + name
	}
	return name
}

// Tables returns all registered tables sorted by name, concrete before
// abstract.
func Tables() []*Table {
	registry.RLock()
	out := make([]*Table, 0, len(registry.tables))
	for _, t := range registry.tables {
		out = append(out, t)
	}
	registry.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].schema.Table != out[j].schema.Table {
			return out[i].schema.Table < out[j].schema.Table
		}
		return !out[i].schema.Abstract
	})
	return out
}

func newTable(e Entity) (*Table, error) {
	s := e.Schema()
	if s.Table == "" {
		s.Table = ToTableName(e)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if n := len(e.Values()); n != len(s.Mapping) {
		return nil, fmt.Errorf("%w: table %s maps %d columns but Values() returns %d",
			ErrInvalidMetadata, s.Table, len(s.Mapping), n)
	}
	if n := len(e.Pointers()); n != len(s.Mapping) {
		return nil, fmt.Errorf("%w: table %s maps %d columns but Pointers() returns %d",
			ErrInvalidMetadata, s.Table, len(s.Mapping), n)
	}
	s.Mapping = append([]Mapping(nil), s.Mapping...)
	t := &Table{
		schema:        s,
		where:         e.UniqueWhereCondition(),
		writable:      s.writableIndexes(),
		autoIncrement: s.autoIncrementIndex(),
	}
	if s.Abstract {
		return t, nil
	}
	var err error
	if t.createSQL, err = CreateStatement(s); err != nil {
		return nil, err
	}
	if t.dropSQL, err = DropStatement(s); err != nil {
		return nil, err
	}
	if t.selectSQL, err = SelectStatement(s); err != nil {
		return nil, err
	}
	if t.insertSQL, err = InsertStatement(s); err != nil {
		return nil, err
	}
	if t.insertAllSQL, err = InsertAllStatement(s); err != nil {
		return nil, err
	}
	if t.updateSQL, err = UpdateStatement(s, t.where); err != nil {
		return nil, err
	}
	if t.deleteSQL, err = DeleteStatement(s, t.where); err != nil {
		return nil, err
	}
	return t, nil
}

func (t Table) String() string {
	kind := "table"
	if t.schema.Abstract {
		kind = "abstract table"
	}
	return kind + ` "` + t.schema.Table + `" has ` + strconv.Itoa(len(t.schema.Mapping)) + " columns"
}

// Name of the table.
func (t Table) Name() string {
	return t.schema.Table
}

// Abstract tables only share their columns with other types and have no
// statements.
func (t Table) Abstract() bool {
	return t.schema.Abstract
}

// Mapping returns a copy of the field to column mapping in order.
func (t Table) Mapping() []Mapping {
	return append([]Mapping(nil), t.schema.Mapping...)
}

// Schema returns a copy of the registered schema.
func (t Table) Schema() Schema {
	s := t.schema
	s.Mapping = t.Mapping()
	return s
}

// UniqueWhereCondition returns the condition that identifies one row, for
// example "uid = ?".
func (t Table) UniqueWhereCondition() string {
	return t.where
}

// FieldByName returns the mapping entry of a field, nil if no such field.
func (t Table) FieldByName(name string) *Mapping {
	for _, m := range t.schema.Mapping {
		if m.Field == name {
			return &m
		}
	}
	return nil
}

func (t Table) CreateStatement() (string, error) {
	return t.statement("CREATE TABLE", t.createSQL)
}

func (t Table) DropStatement() (string, error) {
	return t.statement("DROP TABLE", t.dropSQL)
}

func (t Table) SelectStatement() (string, error) {
	return t.statement("SELECT", t.selectSQL)
}

func (t Table) InsertStatement() (string, error) {
	return t.statement("INSERT", t.insertSQL)
}

func (t Table) InsertAllStatement() (string, error) {
	return t.statement("INSERT", t.insertAllSQL)
}

func (t Table) UpdateStatement() (string, error) {
	return t.statement("UPDATE", t.updateSQL)
}

func (t Table) DeleteStatement() (string, error) {
	return t.statement("DELETE", t.deleteSQL)
}

func (t Table) statement(operation, sql string) (string, error) {
	if t.schema.Abstract {
		return "", fmt.Errorf("%w: %s on abstract type %s", ErrUnsupportedOperation, operation, t.schema.Table)
	}
	return sql, nil
}

// insertValues returns the values bound to the INSERT statement and the
// statement itself. Identified entities keep their identifier.
func (t Table) insertValues(e Entity) (string, []interface{}) {
	values := e.Values()
	if t.autoIncrement >= 0 {
		if i, ok := e.(Identifiable); ok && i.Identified() {
			return t.insertAllSQL, values
		}
	}
	return t.insertSQL, pick(values, t.writable)
}

// updateValues returns the values bound to the UPDATE statement, the unique
// value last.
func (t Table) updateValues(e Entity) []interface{} {
	return append(pick(e.Values(), t.writable), e.UniqueValue())
}

func pick(values []interface{}, idx []int) []interface{} {
	out := make([]interface{}, 0, len(idx)+1)
	for _, i := range idx {
		out = append(out, values[i])
	}
	return out
}
