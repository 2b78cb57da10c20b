package feed

import (
	"fmt"
	"github.com/google/go-cmp/cmp"
	"github.com/rookgm/orderfeed/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/rand"
	"sync"
	"testing"
	"time"
)

func mustNormalize(t *testing.T, raw string) models.Order {
	t.Helper()
	o, err := Normalize([]byte(raw))
	require.NoError(t, err)
	return o
}

func TestReconciler_Scenarios(t *testing.T) {
	r := NewReconciler()

	// A
	r.ReplaceAll([]models.Order{
		mustNormalize(t, `{"id":1,"status":"Delivered","createdAt":"2024-01-01"}`),
		mustNormalize(t, `{"id":2,"status":"Pending","createdAt":"2024-01-02"}`),
	})
	assert.Equal(t, []string{"2", "1"}, ids(r.CurrentView()))

	// B
	out := r.IngestOne(mustNormalize(t, `{"id":3,"status":"Pending","createdAt":"2024-01-03"}`))
	assert.Equal(t, models.Inserted, out)
	assert.Equal(t, []string{"3", "2", "1"}, ids(r.CurrentView()))

	// C
	before := r.CurrentView()
	out = r.IngestOne(mustNormalize(t, `{"id":2,"status":"Pending","createdAt":"2024-01-02"}`))
	assert.Equal(t, models.Ignored, out)
	if diff := cmp.Diff(before, r.CurrentView()); diff != "" {
		t.Errorf("view changed after duplicate (-want +got):\n%s", diff)
	}

	// E
	r.ReplaceAll([]models.Order{mustNormalize(t, `{"id":2,"status":"Pending","createdAt":"2024-01-02"}`)})
	assert.Equal(t, []string{"2"}, ids(r.CurrentView()))
	assert.False(t, r.Contains("1"))
	assert.False(t, r.Contains("3"))
}

func TestReconciler_IngestDuplicateNeverOverwrites(t *testing.T) {
	r := NewReconciler()
	r.ReplaceAll([]models.Order{mustNormalize(t, `{"id":"a","status":"Pending","createdAt":"2024-01-01"}`)})

	out := r.IngestOne(mustNormalize(t, `{"id":"a","status":"Delivered","createdAt":"2024-02-01"}`))

	assert.Equal(t, models.Ignored, out)
	view := r.CurrentView()
	require.Len(t, view, 1)
	assert.Equal(t, models.StatusPending, view[0].Status)
}

func TestReconciler_MissingIDAlwaysInserted(t *testing.T) {
	r := NewReconciler()
	o := mustNormalize(t, `{"status":"Pending","createdAt":"2024-01-01"}`)

	assert.Equal(t, models.Inserted, r.IngestOne(o))
	assert.Equal(t, models.Inserted, r.IngestOne(o))
	assert.Equal(t, 2, r.Len())
	assert.False(t, r.Contains(""))
}

func TestReconciler_ReplaceAllDedupsSnapshot(t *testing.T) {
	r := NewReconciler()
	r.ReplaceAll([]models.Order{
		mustNormalize(t, `{"id":"a","status":"Pending","createdAt":"2024-01-01"}`),
		mustNormalize(t, `{"id":"a","status":"Delivered","createdAt":"2024-01-05"}`),
	})

	view := r.CurrentView()
	require.Len(t, view, 1)
	assert.Equal(t, models.StatusPending, view[0].Status)
}

func TestReconciler_Dedup(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	r := NewReconciler()
	statuses := []models.Status{models.StatusPending, models.StatusOutForDelivery, models.StatusDelivered, models.StatusUnknown}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 500; i++ {
		o := models.Order{
			ID:        fmt.Sprintf("o%d", rnd.Intn(40)),
			Status:    statuses[rnd.Intn(len(statuses))],
			CreatedAt: base.Add(time.Duration(rnd.Intn(10)) * time.Hour),
		}
		r.IngestOne(o)
	}

	view := r.CurrentView()
	seen := map[string]bool{}
	for _, o := range view {
		assert.False(t, seen[o.ID], "duplicate id %s", o.ID)
		seen[o.ID] = true
	}
	assert.True(t, IsSorted(view))
}

func TestReconciler_IdempotentReplay(t *testing.T) {
	r := NewReconciler()
	o := mustNormalize(t, `{"id":"p","status":"Pending","createdAt":"2024-01-01"}`)

	assert.Equal(t, models.Inserted, r.IngestOne(o))
	first := r.CurrentView()
	assert.Equal(t, models.Ignored, r.IngestOne(o))

	if diff := cmp.Diff(first, r.CurrentView()); diff != "" {
		t.Errorf("replay changed view (-want +got):\n%s", diff)
	}
}

func TestReconciler_SnapshotAuthority(t *testing.T) {
	r := NewReconciler()
	r.IngestOne(mustNormalize(t, `{"id":"push","status":"Pending","createdAt":"2024-03-01"}`))

	snapshot := []models.Order{
		mustNormalize(t, `{"id":"s1","status":"Delivered","createdAt":"2024-01-01"}`),
		mustNormalize(t, `{"id":"s2","status":"Pending","createdAt":"2024-01-01"}`),
		mustNormalize(t, `{"id":"s3","status":"OutForDelivery","createdAt":"2024-01-02"}`),
	}
	want := append([]models.Order(nil), snapshot...)
	Sort(want)

	r.ReplaceAll(snapshot)

	if diff := cmp.Diff(want, r.CurrentView()); diff != "" {
		t.Errorf("view mismatch (-want +got):\n%s", diff)
	}
	// the id dropped by the snapshot can be pushed again
	assert.Equal(t, models.Inserted, r.IngestOne(mustNormalize(t, `{"id":"push","status":"Pending"}`)))
}

func TestReconciler_CurrentViewIsCopy(t *testing.T) {
	r := NewReconciler()
	r.IngestOne(models.Order{ID: "a", Status: models.StatusPending})

	view := r.CurrentView()
	view[0].ID = "changed"

	assert.Equal(t, []string{"a"}, ids(r.CurrentView()))
}

func TestReconciler_Observer(t *testing.T) {
	r := NewReconciler()
	var got [][]string
	r.Subscribe(ObserverFunc(func(view []models.Order) {
		got = append(got, ids(view))
	}))

	r.ReplaceAll([]models.Order{{ID: "a", Status: models.StatusDelivered}})
	r.IngestOne(models.Order{ID: "b", Status: models.StatusPending})
	r.IngestOne(models.Order{ID: "b", Status: models.StatusPending})

	assert.Equal(t, [][]string{{"a"}, {"b", "a"}}, got)
}

func TestReconciler_ConcurrentWriters(t *testing.T) {
	r := NewReconciler()
	var wg sync.WaitGroup
	var mu sync.Mutex
	inserted := 0

	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if r.IngestOne(models.Order{ID: fmt.Sprintf("o%d", i), Status: models.StatusPending}) == models.Inserted {
					mu.Lock()
					inserted++
					mu.Unlock()
				}
				_ = r.CurrentView()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, inserted)
	assert.Equal(t, 100, r.Len())
}
