package entity

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NativeIDKey = "_id"
	IDKey       = "id"
)

// Document is a stored record as the store hands it back.
type Document map[string]any

// ToAPIRepresentation returns a copy of doc with the native identifier
// moved to "id" as a string. Empty and nil documents are returned as is.
// doc itself is never modified.
func ToAPIRepresentation(doc Document) Document {
	if len(doc) == 0 {
		return doc
	}

	out := make(Document, len(doc))
	for key, value := range doc {
		out[key] = apiValue(value)
	}

	if id, ok := out[NativeIDKey]; ok && !isEmptyID(id) {
		delete(out, NativeIDKey)
		out[IDKey] = idString(id)
	}

	return out
}

// Stored datetimes are rendered as naive UTC ISO 8601 text, with
// microseconds only when there is a fractional part.
const (
	apiDateLayout         = "2006-01-02T15:04:05"
	apiDateFractionLayout = "2006-01-02T15:04:05.000000"
)

// FormatAPIDate renders t the way documents carry dates in API responses.
func FormatAPIDate(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond() == 0 {
		return t.Format(apiDateLayout)
	}
	return t.Format(apiDateFractionLayout)
}

func apiValue(value any) any {
	switch v := value.(type) {
	case primitive.DateTime:
		return FormatAPIDate(v.Time())
	case time.Time:
		return FormatAPIDate(v)
	default:
		return value
	}
}

func isEmptyID(id any) bool {
	switch v := id.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case primitive.ObjectID:
		return v.IsZero()
	default:
		return false
	}
}

func idString(id any) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
