package entity

import (
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DayBounds returns the half-open range [start, end) of the UTC calendar
// day t falls on.
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// OnDay keeps the documents whose "date" is a timestamp on the same UTC
// calendar date as day. Documents without a timestamp date are dropped.
func OnDay(docs []Document, day time.Time) []Document {
	start, end := DayBounds(day)

	return lo.Filter(docs, func(doc Document, _ int) bool {
		date, ok := timestamp(doc["date"])
		if !ok {
			return false
		}
		return !date.Before(start) && date.Before(end)
	})
}

func timestamp(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case primitive.DateTime:
		return v.Time(), true
	default:
		return time.Time{}, false
	}
}
