package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentdesk/student-record-manager/internal/domain/record"
)

func seededStore(students ...*record.Student) *record.Store {
	store := record.NewStore()
	for _, s := range students {
		store.Append(s)
	}
	return store
}

func student(name string, age int, grade record.Grade) *record.Student {
	return record.NewStudent(record.NewStudentParams{Name: name, Age: age, Grade: grade})
}

// ─────────────────────────────────────────────────────────────────────────────
// List
// ─────────────────────────────────────────────────────────────────────────────

func TestListStudentsNumbersInInsertionOrder(t *testing.T) {
	store := seededStore(
		student("Zoe", 20, record.GradeA),
		student("Alice", 22, record.GradeB),
		student("Mike", 21, record.GradeC),
	)
	handler := NewListStudentsHandler(store)

	result, err := handler.Handle(context.Background(), ListStudentsQuery{})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	require.Len(t, result.Entries, 3)
	assert.Equal(t, 1, result.Entries[0].Position)
	assert.Equal(t, "Zoe", result.Entries[0].Student.Name)
	assert.Equal(t, 2, result.Entries[1].Position)
	assert.Equal(t, "Alice", result.Entries[1].Student.Name)
	assert.Equal(t, 3, result.Entries[2].Position)
	assert.Equal(t, "Mike", result.Entries[2].Student.Name)
}

func TestListStudentsEmptyStore(t *testing.T) {
	handler := NewListStudentsHandler(record.NewStore())

	result, err := handler.Handle(context.Background(), ListStudentsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Entries)
}

// ─────────────────────────────────────────────────────────────────────────────
// Search
// ─────────────────────────────────────────────────────────────────────────────

func searchFixture() *record.Store {
	return seededStore(
		student("Alice Johnson", 20, record.GradeA),
		student("Bob Smith", 22, record.GradeB),
		student("alice cooper", 22, record.GradeA),
	)
}

func TestSearchByNameIsCaseInsensitiveSubstring(t *testing.T) {
	handler := NewSearchStudentsHandler(searchFixture())

	result, err := handler.Handle(context.Background(), SearchStudentsQuery{Name: "ALICE"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, "Alice Johnson", result.Entries[0].Student.Name)
	assert.Equal(t, 1, result.Entries[0].Position)
	assert.Equal(t, "alice cooper", result.Entries[1].Student.Name)
	assert.Equal(t, 3, result.Entries[1].Position)
}

func TestSearchByAge(t *testing.T) {
	handler := NewSearchStudentsHandler(searchFixture())

	age := 22
	result, err := handler.Handle(context.Background(), SearchStudentsQuery{Age: &age})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
}

func TestSearchByGradeIgnoresCase(t *testing.T) {
	handler := NewSearchStudentsHandler(searchFixture())

	result, err := handler.Handle(context.Background(), SearchStudentsQuery{Grade: "a"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
}

func TestSearchCombinesCriteriaWithAnd(t *testing.T) {
	handler := NewSearchStudentsHandler(searchFixture())

	age := 22
	result, err := handler.Handle(context.Background(), SearchStudentsQuery{Name: "alice", Age: &age})
	require.NoError(t, err)

	require.Equal(t, 1, result.Total)
	assert.Equal(t, "alice cooper", result.Entries[0].Student.Name)
}

func TestSearchNoMatchesIsNotAnError(t *testing.T) {
	handler := NewSearchStudentsHandler(searchFixture())

	result, err := handler.Handle(context.Background(), SearchStudentsQuery{Name: "nobody"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
}

func TestSearchRequiresAtLeastOneCriterion(t *testing.T) {
	handler := NewSearchStudentsHandler(searchFixture())

	_, err := handler.Handle(context.Background(), SearchStudentsQuery{})
	assert.Error(t, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// Statistics
// ─────────────────────────────────────────────────────────────────────────────

func TestStatisticsAverageAge(t *testing.T) {
	store := seededStore(
		student("Alice", 20, record.GradeA),
		student("Bob", 22, record.GradeA),
		student("Carol", 24, record.GradeB),
	)
	handler := NewGetStatisticsHandler(store, nil)

	stats, err := handler.Handle(context.Background(), GetStatisticsQuery{})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalStudents)
	assert.Equal(t, 22.0, stats.AverageAge)
	assert.Equal(t, 2, stats.GradeDistribution[record.GradeA])
	assert.Equal(t, 1, stats.GradeDistribution[record.GradeB])
	assert.Equal(t, 0, stats.GradeDistribution[record.GradeC])
	assert.Equal(t, 0, stats.GradeDistribution[record.GradeD])
	assert.Equal(t, 0, stats.GradeDistribution[record.GradeF])
}

func TestStatisticsAverageAgeRounding(t *testing.T) {
	store := seededStore(
		student("Alice", 20, record.GradeA),
		student("Bob", 21, record.GradeB),
		student("Carol", 21, record.GradeC),
	)
	handler := NewGetStatisticsHandler(store, nil)

	stats, err := handler.Handle(context.Background(), GetStatisticsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 20.67, stats.AverageAge)
}

func TestStatisticsEmptyStore(t *testing.T) {
	handler := NewGetStatisticsHandler(record.NewStore(), nil)

	stats, err := handler.Handle(context.Background(), GetStatisticsQuery{})
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalStudents)
	assert.Equal(t, 0.0, stats.AverageAge)
	require.Len(t, stats.GradeDistribution, 5)
	for _, g := range record.CanonicalGrades {
		assert.Equal(t, 0, stats.GradeDistribution[g])
	}
}

func TestStatisticsIncludesObservedNonCanonicalGrades(t *testing.T) {
	store := seededStore(student("Eve", 30, "E"))
	handler := NewGetStatisticsHandler(store, nil)

	stats, err := handler.Handle(context.Background(), GetStatisticsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.GradeDistribution[record.Grade("E")])
}

// mapCache is a trivial StatsCache used to observe caching behavior.
type mapCache struct {
	entries map[string]any
	gets    int
	sets    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]any)}
}

func (c *mapCache) Get(ctx context.Context, key string) (any, bool) {
	c.gets++
	v, ok := c.entries[key]
	return v, ok
}

func (c *mapCache) Set(ctx context.Context, key string, value any) {
	c.sets++
	c.entries[key] = value
}

func (c *mapCache) Delete(ctx context.Context, key string) {
	delete(c.entries, key)
}

func TestStatisticsAreCached(t *testing.T) {
	store := seededStore(student("Alice", 20, record.GradeA))
	cache := newMapCache()
	handler := NewGetStatisticsHandler(store, cache)
	ctx := context.Background()

	first, err := handler.Handle(ctx, GetStatisticsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, err := handler.Handle(ctx, GetStatisticsQuery{})
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.sets)
}

func TestStatisticsInvalidate(t *testing.T) {
	store := seededStore(student("Alice", 20, record.GradeA))
	cache := newMapCache()
	handler := NewGetStatisticsHandler(store, cache)
	ctx := context.Background()

	stats, err := handler.Handle(ctx, GetStatisticsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalStudents)

	store.Append(student("Bob", 22, record.GradeB))
	handler.Invalidate(ctx)

	stats, err = handler.Handle(ctx, GetStatisticsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 21.0, stats.AverageAge)
}
