package audit

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// NilValue is the canonical form of a missing value. It is deliberately
// distinct from the empty string so clearing a field and setting it to ""
// produce different audit entries.
const NilValue = "<nil>"

// Stringify renders a value in its canonical audit form. The same logical
// value always yields the same string, so Diff can compare old and new
// without caring about the underlying Go type:
//
//	nil and nil pointers     -> "<nil>"
//	midnight UTC time.Time   -> "2006-01-02"
//	other time.Time          -> RFC 3339
//	integers                 -> base-10
//	bool                     -> "true" / "false"
//	everything else          -> fmt.Sprintf("%v") after pointer deref
func Stringify(v interface{}) string {
	if v == nil {
		return NilValue
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return NilValue
		}
		return Stringify(rv.Elem().Interface())
	}

	switch val := rv.Interface().(type) {
	case time.Time:
		return formatTime(val)
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	}

	// Named string types (statuses, stages, roles) land here.
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return fmt.Sprintf("%v", rv.Interface())
}

func formatTime(t time.Time) string {
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return u.Format("2006-01-02")
	}
	return u.Format(time.RFC3339)
}
