package orm

import (
	"fmt"
	"regexp"
	"strings"
)

type (
	// ColumnType is a SQLite type affinity. Only the values declared below
	// are valid.
	ColumnType string

	// Modifier is a set of column constraints. Combine with "|":
	//  orm.PrimaryKey | orm.AutoIncrement
	Modifier uint8

	// Column describes one table column. Columns are created with NewColumn
	// (or Field for schema declarations) and cannot be changed afterwards.
	Column struct {
		name      string
		dataType  ColumnType
		modifiers Modifier
	}
)

const (
	Null    ColumnType = "NULL"
	Integer ColumnType = "INTEGER"
	Text    ColumnType = "TEXT"
	Real    ColumnType = "REAL"
	Blob    ColumnType = "BLOB"
)

const (
	PrimaryKey Modifier = 1 << iota
	AutoIncrement
	Unique
	NotNull
)

// canonical keyword order in CREATE statements
var modifierKeywords = []struct {
	modifier Modifier
	keyword  string
}{
	{PrimaryKey, "PRIMARY KEY"},
	{AutoIncrement, "AUTOINCREMENT"},
	{Unique, "UNIQUE"},
	{NotNull, "NOT NULL"},
}

var identifierRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Valid reports whether t is one of Null, Integer, Text, Real or Blob.
func (t ColumnType) Valid() bool {
	switch t {
	case Null, Integer, Text, Real, Blob:
		return true
	}
	return false
}

func (t ColumnType) String() string {
	return string(t)
}

// Has reports whether all modifiers in o are set in m.
func (m Modifier) Has(o Modifier) bool {
	return m&o == o
}

// String returns the SQL keywords of the modifier set in the order PRIMARY
// KEY, AUTOINCREMENT, UNIQUE, NOT NULL.
func (m Modifier) String() string {
	keywords := []string{}
	for _, k := range modifierKeywords {
		if m.Has(k.modifier) {
			keywords = append(keywords, k.keyword)
		}
	}
	return strings.Join(keywords, " ")
}

// NewColumn creates a column. ErrInvalidMetadata is returned if name is not
// a valid SQL identifier or dataType is unknown. AutoIncrement requires
// PrimaryKey, and PrimaryKey requires the Integer type.
//
//	orm.NewColumn("uid", orm.Integer, orm.PrimaryKey, orm.AutoIncrement)
func NewColumn(name string, dataType ColumnType, modifiers ...Modifier) (Column, error) {
	c := newColumn(name, dataType, modifiers...)
	if err := c.Validate(); err != nil {
		return Column{}, err
	}
	return c, nil
}

// MustColumn is like NewColumn but panics if the column is invalid. Useful
// for package-level schema declarations.
func MustColumn(name string, dataType ColumnType, modifiers ...Modifier) Column {
	c, err := NewColumn(name, dataType, modifiers...)
	if err != nil {
		panic(err)
	}
	return c
}

func newColumn(name string, dataType ColumnType, modifiers ...Modifier) Column {
	c := Column{name: name, dataType: dataType}
	for _, m := range modifiers {
		c.modifiers |= m
	}
	return c
}

// Name of the column in database.
func (c Column) Name() string {
	return c.name
}

// Type of the column in database.
func (c Column) Type() ColumnType {
	return c.dataType
}

// Modifiers of the column.
func (c Column) Modifiers() Modifier {
	return c.modifiers
}

// Has reports whether the column has modifier m.
func (c Column) Has(m Modifier) bool {
	return c.modifiers.Has(m)
}

// Definition returns the column part of a CREATE TABLE statement, for
// example "uid INTEGER PRIMARY KEY AUTOINCREMENT".
func (c Column) Definition() string {
	def := c.name + " " + string(c.dataType)
	if m := c.modifiers.String(); m != "" {
		def += " " + m
	}
	return def
}

func (c Column) String() string {
	return c.Definition()
}

// Validate checks the column against the same rules as NewColumn.
func (c Column) Validate() error {
	if c.name == "" {
		return fmt.Errorf("%w: empty column name", ErrInvalidMetadata)
	}
	if !identifierRegexp.MatchString(c.name) {
		return fmt.Errorf("%w: column name %q is not a valid identifier", ErrInvalidMetadata, c.name)
	}
	if !c.dataType.Valid() {
		return fmt.Errorf("%w: column %s has unknown type %q", ErrInvalidMetadata, c.name, c.dataType)
	}
	if c.Has(AutoIncrement) && !c.Has(PrimaryKey) {
		return fmt.Errorf("%w: column %s is AUTOINCREMENT but not PRIMARY KEY", ErrInvalidMetadata, c.name)
	}
	if c.Has(PrimaryKey) && c.dataType != Integer {
		return fmt.Errorf("%w: PRIMARY KEY column %s must be INTEGER", ErrInvalidMetadata, c.name)
	}
	return nil
}

func validIdentifier(name string) bool {
	return identifierRegexp.MatchString(name)
}
