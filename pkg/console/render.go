package console

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/hacheck/hacheck/pkg/logger"
)

var renderLog = logger.New("console:render")

// RenderStruct renders a Go struct to console output using reflection and struct tags.
// It supports:
// - Rendering structs as markdown-style headers with key-value pairs
// - Rendering slices as tables using the console table renderer
// - Rendering maps as markdown headers, keys sorted
//
// Struct tags:
// - `console:"title:My Title"` - Sets the title for a section
// - `console:"header:Column Name"` - Sets the column header name for table columns
// - `console:"default:n/a"` - Shown instead of a zero value
// - `console:"maxlen:40"` - Truncates long values
// - `console:"omitempty"` - Skips zero values
// - `console:"-"` - Skips the field entirely
func RenderStruct(v any) string {
	renderLog.Printf("Rendering struct: type=%T", v)
	var output strings.Builder
	renderValue(reflect.ValueOf(v), "", &output, 0)
	return output.String()
}

// renderValue recursively renders a reflect.Value to the output builder
func renderValue(val reflect.Value, title string, output *strings.Builder, depth int) {
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Struct:
		renderStruct(val, title, output, depth)
	case reflect.Slice, reflect.Array:
		renderSlice(val, title, output, depth)
	case reflect.Map:
		renderMap(val, title, output, depth)
	}
}

func writeTitle(output *strings.Builder, title string, depth int) {
	if title == "" {
		return
	}
	fmt.Fprintf(output, "%s %s\n\n", strings.Repeat("#", depth+1), title)
}

// renderStruct renders a struct as markdown-style headers with key-value pairs
func renderStruct(val reflect.Value, title string, output *strings.Builder, depth int) {
	typ := val.Type()
	writeTitle(output, title, depth)

	// Track the longest field name for alignment
	maxFieldLen := 0
	for i := range val.NumField() {
		tag := parseConsoleTag(typ.Field(i).Tag.Get("console"))
		if tag.skip || (tag.omitempty && isZeroValue(val.Field(i))) {
			continue
		}
		maxFieldLen = max(maxFieldLen, len(fieldLabel(typ.Field(i), tag)))
	}

	for i := range val.NumField() {
		field := val.Field(i)
		fieldType := typ.Field(i)
		if !fieldType.IsExported() {
			continue
		}

		tag := parseConsoleTag(fieldType.Tag.Get("console"))
		if tag.skip || (tag.omitempty && isZeroValue(field)) {
			continue
		}
		fieldName := fieldLabel(fieldType, tag)

		fieldToCheck := field
		if field.Kind() == reflect.Ptr && !field.IsNil() {
			fieldToCheck = field.Elem()
		}

		switch fieldToCheck.Kind() {
		case reflect.Struct, reflect.Slice, reflect.Array, reflect.Map:
			subTitle := tag.title
			if subTitle == "" {
				subTitle = fieldName
			}
			renderValue(field, subTitle, output, depth+1)
		default:
			paddedName := fmt.Sprintf("%-*s", maxFieldLen, fieldName)
			fmt.Fprintf(output, "  %s: %v\n", paddedName, formatFieldValueWithTag(field, tag))
		}
	}

	output.WriteString("\n")
}

func fieldLabel(field reflect.StructField, tag consoleTag) string {
	if tag.header != "" {
		return tag.header
	}
	return field.Name
}

// renderSlice renders a slice of structs as a table and anything else as a list
func renderSlice(val reflect.Value, title string, output *strings.Builder, depth int) {
	if val.Len() == 0 {
		return
	}
	writeTitle(output, title, depth)

	elemType := val.Type().Elem()
	for elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}

	if elemType.Kind() == reflect.Struct {
		output.WriteString(RenderTable(buildTableConfig(val, elemType)))
		return
	}
	for i := range val.Len() {
		fmt.Fprintf(output, "  • %v\n", formatFieldValue(val.Index(i)))
	}
	output.WriteString("\n")
}

// renderMap renders a map as key-value lines in key order
func renderMap(val reflect.Value, title string, output *strings.Builder, depth int) {
	if val.Len() == 0 {
		return
	}
	writeTitle(output, title, depth)

	keys := val.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
	})
	for _, key := range keys {
		fmt.Fprintf(output, "  %-18s %v\n", fmt.Sprintf("%v:", key), formatFieldValue(val.MapIndex(key)))
	}
	output.WriteString("\n")
}

// buildTableConfig builds a TableConfig from a slice of structs
func buildTableConfig(val reflect.Value, elemType reflect.Type) TableConfig {
	var config TableConfig
	var fieldIndices []int
	var fieldTags []consoleTag

	for i := range elemType.NumField() {
		field := elemType.Field(i)
		tag := parseConsoleTag(field.Tag.Get("console"))
		if tag.skip || !field.IsExported() {
			continue
		}
		config.Headers = append(config.Headers, fieldLabel(field, tag))
		fieldIndices = append(fieldIndices, i)
		fieldTags = append(fieldTags, tag)
	}

	for i := range val.Len() {
		elem := val.Index(i)
		for elem.Kind() == reflect.Ptr && !elem.IsNil() {
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct {
			continue
		}

		row := make([]string, 0, len(fieldIndices))
		for j, fieldIdx := range fieldIndices {
			row = append(row, formatFieldValueWithTag(elem.Field(fieldIdx), fieldTags[j]))
		}
		config.Rows = append(config.Rows, row)
	}

	return config
}

// consoleTag represents parsed console struct tag
type consoleTag struct {
	title      string
	header     string
	defaultVal string
	maxLen     int
	omitempty  bool
	skip       bool
}

// parseConsoleTag parses the console struct tag
func parseConsoleTag(tag string) consoleTag {
	result := consoleTag{}

	if tag == "-" {
		result.skip = true
		return result
	}

	for part := range strings.SplitSeq(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "omitempty" {
			result.omitempty = true
		} else if after, ok := strings.CutPrefix(part, "title:"); ok {
			result.title = after
		} else if after, ok := strings.CutPrefix(part, "header:"); ok {
			result.header = after
		} else if after, ok := strings.CutPrefix(part, "default:"); ok {
			result.defaultVal = after
		} else if after, ok := strings.CutPrefix(part, "maxlen:"); ok {
			if n, err := strconv.Atoi(after); err == nil {
				result.maxLen = n
			}
		}
	}

	return result
}

// isZeroValue checks if a reflect.Value is the zero value for its type
func isZeroValue(val reflect.Value) bool {
	if !val.IsValid() {
		return true
	}

	switch val.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return val.Len() == 0
	case reflect.Interface, reflect.Ptr:
		return val.IsNil()
	default:
		return val.IsZero()
	}
}

// formatFieldValue formats a reflect.Value as a string for display
func formatFieldValue(val reflect.Value) string {
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return "-"
		}
		val = val.Elem()
	}

	if !val.IsValid() {
		return "-"
	}
	if val.Kind() == reflect.String && val.Len() == 0 {
		return "-"
	}
	if s, ok := val.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", val.Interface())
}

// formatFieldValueWithTag formats a reflect.Value for display, applying the
// default and maxlen tag options
func formatFieldValueWithTag(val reflect.Value, tag consoleTag) string {
	baseValue := formatFieldValue(val)

	if tag.defaultVal != "" && isZeroValue(val) {
		baseValue = tag.defaultVal
	}

	if tag.maxLen > 0 && len(baseValue) > tag.maxLen {
		if tag.maxLen > 3 {
			baseValue = baseValue[:tag.maxLen-3] + "..."
		} else {
			baseValue = baseValue[:tag.maxLen]
		}
	}

	return baseValue
}
