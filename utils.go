package orm

import (
	"reflect"
	"strings"
	"unicode"
)

var (
	// DefaultColumnNamer converts a field name passed to Field() into its
	// column name. Default is ToUnderscore, so "FullName" is stored in
	// column "full_name". Set it to nil to use field names as column names.
	DefaultColumnNamer func(string) string = ToUnderscore

	// DefaultTableNamer converts the type name of an entity whose Schema has
	// no Table into its table name. Default is ToPluralUnderscore, so type
	// "PostComment" is stored in table "post_comments".
	DefaultTableNamer func(string) string = ToPluralUnderscore
)

// ToTableName returns the table name derived from the type name of an
// entity using DefaultTableNamer.
func ToTableName(e interface{}) string {
	rt := reflect.TypeOf(e)
	if rt == nil {
		return ""
	}
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if DefaultTableNamer != nil {
		return DefaultTableNamer(rt.Name())
	}
	return rt.Name()
}

// ToColumnName returns the column name of a field name using
// DefaultColumnNamer.
func ToColumnName(fieldName string) string {
	if DefaultColumnNamer != nil {
		return DefaultColumnNamer(fieldName)
	}
	return fieldName
}

// Convert a word to its plural form. Add "es" for "s" or "o" ending,
// "y" ending will be replaced with "ies", for other endings, add "s".
// For example, "product" will be converted to "products".
func ToPlural(in string) string {
	if in == "" {
		return ""
	}
	if strings.HasSuffix(in, "y") {
		return in[:len(in)-1] + "ies"
	}
	if strings.HasSuffix(in, "s") || strings.HasSuffix(in, "o") {
		return in + "es"
	}
	return in + "s"
}

// Convert a "CamelCase" word to its plural "snake_case" (underscore) form.
// For example, "PostComment" will be converted to "post_comments".
func ToPluralUnderscore(in string) string {
	return ToPlural(ToUnderscore(in))
}

// Convert "CamelCase" word to its "snake_case" (underscore) form. For example,
// "FullName" will be converted to "full_name".
func ToUnderscore(str string) string { // from govalidator
	var output []rune
	var segment []rune
	for _, r := range str {
		// not treat number as separate segment
		if !unicode.IsLower(r) && string(r) != "_" && !unicode.IsNumber(r) {
			output = addSegment(output, segment)
			segment = nil
		}
		segment = append(segment, unicode.ToLower(r))
	}
	output = addSegment(output, segment)
	return string(output)
}

func addSegment(inrune, segment []rune) []rune { // from govalidator
	if len(segment) == 0 {
		return inrune
	}
	if len(inrune) != 0 {
		inrune = append(inrune, '_')
	}
	inrune = append(inrune, segment...)
	return inrune
}
