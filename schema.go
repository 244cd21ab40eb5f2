package orm

import (
	"fmt"
	"strings"
)

type (
	// Mapping is one entry of an entity's field to column mapping. Field is
	// the key used in JSON input and output.
	Mapping struct {
		Field  string
		Column Column
	}

	// Schema is the static metadata of an entity type. The order of Mapping
	// decides the order of columns in every generated statement, and
	// Entity.Values() and Entity.Pointers() must follow the same order.
	// An empty Table is derived from the entity type name at registration.
	Schema struct {
		Table    string
		Abstract bool
		Mapping  []Mapping
	}

	// Entity is implemented by every struct that is stored in a table.
	//  type Person struct {
	//  	orm.Base
	//  	Name string
	//  }
	//
	//  func (Person) Schema() orm.Schema {
	//  	return orm.Schema{
	//  		Table:   "people",
	//  		Mapping: orm.BaseMapping(orm.Field("Name", orm.Text, orm.NotNull)),
	//  	}
	//  }
	//
	//  func (p Person) Values() []interface{} {
	//  	return []interface{}{p.UID, p.Name}
	//  }
	//
	//  func (p *Person) Pointers() []interface{} {
	//  	return []interface{}{&p.UID, &p.Name}
	//  }
	// UniqueWhereCondition and UniqueValue are usually provided by Base.
	Entity interface {
		Schema() Schema
		Values() []interface{}
		Pointers() []interface{}
		UniqueWhereCondition() string
		UniqueValue() interface{}
	}

	// Identifiable entities receive the value of the AUTOINCREMENT column
	// after their first insert.
	Identifiable interface {
		Identified() bool
		SetIdentifier(int64)
	}

	// KeyGenerator entities assign their own unique value right before they
	// are inserted.
	KeyGenerator interface {
		GenerateKey()
	}
)

// Field creates a mapping entry whose column name is derived from the field
// name with DefaultColumnNamer. The column is validated when the schema is
// registered.
//
//	orm.Field("FullName", orm.Text, orm.NotNull) // full_name TEXT NOT NULL
func Field(name string, dataType ColumnType, modifiers ...Modifier) Mapping {
	return Mapping{
		Field:  name,
		Column: newColumn(ToColumnName(name), dataType, modifiers...),
	}
}

// Map creates a mapping entry from a field name and an existing column.
func Map(field string, column Column) Mapping {
	return Mapping{Field: field, Column: column}
}

// Columns returns the columns in mapping order.
func (s Schema) Columns() []Column {
	out := make([]Column, 0, len(s.Mapping))
	for _, m := range s.Mapping {
		out = append(out, m.Column)
	}
	return out
}

// Fields returns the field names in mapping order.
func (s Schema) Fields() []string {
	out := make([]string, 0, len(s.Mapping))
	for _, m := range s.Mapping {
		out = append(out, m.Field)
	}
	return out
}

// Validate checks the table name, every column and the uniqueness of field
// and column names. Concrete (non-abstract) schemas must also have exactly
// one PRIMARY KEY column and at most one AUTOINCREMENT column.
func (s Schema) Validate() error {
	if !validIdentifier(s.Table) {
		return fmt.Errorf("%w: table name %q is not a valid identifier", ErrInvalidMetadata, s.Table)
	}
	if len(s.Mapping) == 0 {
		return fmt.Errorf("%w: table %s has no columns", ErrInvalidMetadata, s.Table)
	}
	fields := map[string]bool{}
	columns := map[string]bool{}
	var primaryKeys, autoIncrements int
	for _, m := range s.Mapping {
		if m.Field == "" {
			return fmt.Errorf("%w: table %s has an empty field name", ErrInvalidMetadata, s.Table)
		}
		if fields[m.Field] {
			return fmt.Errorf("%w: table %s has duplicate field %s", ErrInvalidMetadata, s.Table, m.Field)
		}
		fields[m.Field] = true
		if err := m.Column.Validate(); err != nil {
			return fmt.Errorf("table %s: %w", s.Table, err)
		}
		name := strings.ToLower(m.Column.Name())
		if columns[name] {
			return fmt.Errorf("%w: table %s has duplicate column %s", ErrInvalidMetadata, s.Table, m.Column.Name())
		}
		columns[name] = true
		if m.Column.Has(PrimaryKey) {
			primaryKeys++
		}
		if m.Column.Has(AutoIncrement) {
			autoIncrements++
		}
	}
	if s.Abstract {
		return nil
	}
	if primaryKeys != 1 {
		return fmt.Errorf("%w: table %s must have one identifier (PRIMARY KEY) column, got %d", ErrInvalidMetadata, s.Table, primaryKeys)
	}
	if autoIncrements > 1 {
		return fmt.Errorf("%w: table %s has more than one AUTOINCREMENT column", ErrInvalidMetadata, s.Table)
	}
	return nil
}

// autoIncrementIndex returns the mapping index of the AUTOINCREMENT column
// or -1.
func (s Schema) autoIncrementIndex() int {
	for i, m := range s.Mapping {
		if m.Column.Has(AutoIncrement) {
			return i
		}
	}
	return -1
}

// writableIndexes returns mapping indexes of columns whose values are bound
// in INSERT and UPDATE statements, which are all but the AUTOINCREMENT one.
func (s Schema) writableIndexes() (out []int) {
	for i, m := range s.Mapping {
		if m.Column.Has(AutoIncrement) {
			continue
		}
		out = append(out, i)
	}
	return
}

func (s Schema) equal(o Schema) bool {
	if s.Table != o.Table || s.Abstract != o.Abstract || len(s.Mapping) != len(o.Mapping) {
		return false
	}
	for i := range s.Mapping {
		if s.Mapping[i] != o.Mapping[i] {
			return false
		}
	}
	return true
}
