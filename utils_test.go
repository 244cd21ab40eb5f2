package orm_test

import (
	"testing"

	"github.com/gopsql/orm"
)

type (
	user    struct{}
	product struct{}
)

func TestToTableName(t *testing.T) {
	defer func(namer func(string) string) {
		orm.DefaultTableNamer = namer
	}(orm.DefaultTableNamer)

	cases := [][]interface{}{
		{user{}, "users"},
		{&user{}, "users"},
		{&product{}, "products"},
		{nil, ""},
	}
	for i, c := range cases {
		got := orm.ToTableName(c[0])
		expected, ok := c[1].(string)
		if !ok {
			t.Errorf("case %d type conversion failed", i)
		}
		if got == expected {
			t.Logf("case %d passed", i)
		} else {
			t.Errorf("case %d failed, got %s", i, got)
		}
	}

	orm.DefaultTableNamer = nil
	if got := orm.ToTableName(user{}); got != "user" {
		t.Errorf("ToTableName() without namer = %q, want %q", got, "user")
	}
}

func TestToUnderscore(t *testing.T) {
	cases := [][]string{
		{"column", "column"},
		{"Column", "column"},
		{"ColumnName", "column_name"},
		{"UserID", "user_i_d"},
		{"Address2", "address2"},
	}
	for i, c := range cases {
		got := orm.ToUnderscore(c[0])
		expected := c[1]
		if got == expected {
			t.Logf("case %d passed", i)
		} else {
			t.Errorf("case %d failed, got %s", i, got)
		}
	}
}

func TestToPluralUnderscore(t *testing.T) {
	cases := [][]string{
		{"", ""},
		{"User", "users"},
		{"Category", "categories"},
		{"Address", "addresses"},
		{"Photo", "photoes"},
		{"PostComment", "post_comments"},
	}
	for i, c := range cases {
		got := orm.ToPluralUnderscore(c[0])
		expected := c[1]
		if got == expected {
			t.Logf("case %d passed", i)
		} else {
			t.Errorf("case %d failed, got %s", i, got)
		}
	}
}

func TestToColumnName(t *testing.T) {
	defer func(namer func(string) string) {
		orm.DefaultColumnNamer = namer
	}(orm.DefaultColumnNamer)

	if got := orm.ToColumnName("FullName"); got != "full_name" {
		t.Errorf("ToColumnName() = %q, want %q", got, "full_name")
	}
	orm.DefaultColumnNamer = nil
	if got := orm.ToColumnName("FullName"); got != "FullName" {
		t.Errorf("ToColumnName() without namer = %q, want %q", got, "FullName")
	}
}
