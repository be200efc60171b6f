package models

import "fmt"

// attrString coerces a loosely-typed attribute value to a string column value.
func attrString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// attrBool coerces a loosely-typed attribute value to a bool column value.
func attrBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "TRUE" || t == "True"
	default:
		return false
	}
}
