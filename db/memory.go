package db

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"events/entity"
)

// MemoryStore keeps documents in process. Records go through a BSON
// round trip on insert, so documents read back have the shapes the mongo
// driver produces (primitive.DateTime, primitive.A, int32...).
//
// Filters support field equality and the $gt, $gte, $lt and $lte operators.
type MemoryStore struct {
	mu          sync.RWMutex
	name        string
	collections map[string][]bson.M
	err         error
}

func NewMemoryStore(name string) *MemoryStore {
	return &MemoryStore{
		name:        name,
		collections: make(map[string][]bson.M),
	}
}

// FailWith makes every following operation fail with err, as a lost
// connection would. Pass nil to recover.
func (s *MemoryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *MemoryStore) InsertOne(ctx context.Context, collection string, record any) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return primitive.NilObjectID, storeError("insert_one", collection, s.err)
	}

	raw, err := bson.Marshal(record)
	if err != nil {
		return primitive.NilObjectID, storeError("insert_one", collection, err)
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return primitive.NilObjectID, storeError("insert_one", collection, err)
	}

	id, ok := doc[entity.NativeIDKey].(primitive.ObjectID)
	if !ok {
		id = primitive.NewObjectID()
		doc[entity.NativeIDKey] = id
	}

	s.collections[collection] = append(s.collections[collection], doc)

	return id, nil
}

func (s *MemoryStore) FindMany(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return nil, storeError("find_many", collection, s.err)
	}

	docs := []bson.M{}
	for _, doc := range s.collections[collection] {
		if limit > 0 && int64(len(docs)) >= limit {
			break
		}

		matched, err := matches(doc, filter)
		if err != nil {
			return nil, storeError("find_many", collection, err)
		}
		if matched {
			docs = append(docs, cloneDocument(doc))
		}
	}

	return docs, nil
}

func (s *MemoryStore) FindOneByID(ctx context.Context, collection string, id string) (bson.M, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidIdentifier, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return nil, storeError("find_one", collection, s.err)
	}

	for _, doc := range s.collections[collection] {
		if doc[entity.NativeIDKey] == objectID {
			return cloneDocument(doc), nil
		}
	}

	return nil, entity.ErrNotFound
}

func (s *MemoryStore) Name() string {
	return s.name
}

func (s *MemoryStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return nil, storeError("list_collections", "", s.err)
	}

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

func cloneDocument(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func matches(doc bson.M, filter bson.M) (bool, error) {
	for field, condition := range filter {
		value := doc[field]

		operators, ok := condition.(bson.M)
		if !ok {
			if !equal(value, condition) {
				return false, nil
			}
			continue
		}

		for op, operand := range operators {
			cmp, orderable := compare(value, operand)
			if !orderable {
				return false, nil
			}

			var match bool
			switch op {
			case "$gt":
				match = cmp > 0
			case "$gte":
				match = cmp >= 0
			case "$lt":
				match = cmp < 0
			case "$lte":
				match = cmp <= 0
			default:
				return false, fmt.Errorf("unsupported operator %s", op)
			}
			if !match {
				return false, nil
			}
		}
	}

	return true, nil
}

func equal(a, b any) bool {
	if cmp, ok := compare(a, b); ok {
		return cmp == 0
	}
	return reflect.DeepEqual(a, b)
}

// compare orders two BSON values of the same family (dates, numbers,
// strings). ok is false when they cannot be compared.
func compare(a, b any) (int, bool) {
	if ta, ok := asTime(a); ok {
		tb, ok := asTime(b)
		if !ok {
			return 0, false
		}
		return ta.Compare(tb), true
	}

	if na, ok := asNumber(a); ok {
		nb, ok := asNumber(b)
		if !ok {
			return 0, false
		}
		switch {
		case na < nb:
			return -1, true
		case na > nb:
			return 1, true
		default:
			return 0, true
		}
	}

	sa, ok := a.(string)
	if !ok {
		return 0, false
	}
	sb, ok := b.(string)
	if !ok {
		return 0, false
	}
	return strings.Compare(sa, sb), true
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	default:
		return time.Time{}, false
	}
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
