package store

import (
	"bytes"
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryDatabase is an in-process Database for tests.
type MemoryDatabase struct {
	mu   sync.Mutex
	cols map[string]*MemoryCollection
}

func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{cols: make(map[string]*MemoryCollection)}
}

func (m *MemoryDatabase) Collection(name string) Collection {
	m.mu.Lock()
	defer m.mu.Unlock()

	col, ok := m.cols[name]
	if !ok {
		col = NewMemoryCollection()
		m.cols[name] = col
	}
	return col
}

type MemoryCollection struct {
	mu   sync.RWMutex
	byID map[primitive.ObjectID]bson.M
}

func NewMemoryCollection() *MemoryCollection {
	return &MemoryCollection{byID: make(map[primitive.ObjectID]bson.M)}
}

// Len reports how many documents are stored.
func (m *MemoryCollection) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

func (m *MemoryCollection) InsertOne(ctx context.Context, doc bson.M) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := primitive.NewObjectID()
	stored := copyDoc(doc)
	stored["_id"] = id
	m.byID[id] = stored
	return id, nil
}

func (m *MemoryCollection) FindByID(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDoc(doc), nil
}

func (m *MemoryCollection) Find(ctx context.Context, q Query) ([]bson.M, error) {
	m.mu.RLock()
	matched := make([]bson.M, 0)
	for _, doc := range m.byID {
		if matches(doc, q.Filter) {
			matched = append(matched, copyDoc(doc))
		}
	}
	m.mu.RUnlock()

	if q.SortBy != "" {
		sort.Slice(matched, func(i, j int) bool {
			if c := compareValues(matched[i][q.SortBy], matched[j][q.SortBy]); c != 0 {
				return c > 0
			}
			a, _ := matched[i]["_id"].(primitive.ObjectID)
			b, _ := matched[j]["_id"].(primitive.ObjectID)
			return bytes.Compare(a[:], b[:]) > 0
		})
	}

	if q.Skip >= int64(len(matched)) {
		return []bson.M{}, nil
	}
	matched = matched[q.Skip:]
	if q.Limit > 0 && q.Limit < int64(len(matched)) {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (m *MemoryCollection) Count(ctx context.Context, f Filter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, doc := range m.byID {
		if matches(doc, f) {
			n++
		}
	}
	return n, nil
}

// UpdateByID applies fields like $set on top-level keys.
func (m *MemoryCollection) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.byID[id]
	if !ok {
		return UpdateResult{}, nil
	}

	modified := false
	for k, v := range fields {
		if cur, exists := doc[k]; !exists || !reflect.DeepEqual(cur, v) {
			doc[k] = v
			modified = true
		}
	}

	res := UpdateResult{MatchedCount: 1}
	if modified {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (m *MemoryCollection) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return 0, nil
	}
	delete(m.byID, id)
	return 1, nil
}

func copyDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func matches(doc bson.M, f Filter) bool {
	for k, want := range f.Equals {
		if !reflect.DeepEqual(doc[k], want) {
			return false
		}
	}
	for k, sub := range f.Contains {
		s, ok := doc[k].(string)
		if !ok || !strings.Contains(strings.ToLower(s), strings.ToLower(sub)) {
			return false
		}
	}
	return true
}

// compareValues orders the value kinds that show up as sort keys. Missing or
// unknown values sort before everything else.
func compareValues(a, b any) int {
	ta, aok := asTime(a)
	tb, bok := asTime(b)
	switch {
	case aok && bok:
		return ta.Compare(tb)
	case aok:
		return 1
	case bok:
		return -1
	}

	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb)
		}
	}

	fa, aok := asFloat(a)
	fb, bok := asFloat(b)
	switch {
	case aok && bok && fa < fb:
		return -1
	case aok && bok && fa > fb:
		return 1
	case aok && !bok:
		return 1
	case !aok && bok:
		return -1
	}
	return 0
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	}
	return time.Time{}, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
