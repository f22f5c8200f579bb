package showtimes

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSnapshotStore_EmptyAtStart(t *testing.T) {
	store := NewSnapshotStore()

	snap := store.Read()
	require.Nil(t, snap.Document)
	require.False(t, store.IsFresh(time.Now(), time.Hour))
}

func TestSnapshotStore_WriteThenRead(t *testing.T) {
	store := NewSnapshotStore()
	doc := testShowtime(map[string]string{"A": "01"})
	now := time.Now()

	store.Write(doc, now)

	snap := store.Read()
	require.Same(t, doc, snap.Document)
	require.Equal(t, now, snap.FetchedAt)
}

func TestSnapshotStore_Freshness(t *testing.T) {
	store := NewSnapshotStore()
	fetchedAt := time.Now()
	store.Write(testShowtime(map[string]string{"A": "0"}), fetchedAt)

	ttl := 5 * time.Second

	require.True(t, store.IsFresh(fetchedAt, ttl))
	require.True(t, store.IsFresh(fetchedAt.Add(3*time.Second), ttl))
	require.False(t, store.IsFresh(fetchedAt.Add(5*time.Second), ttl), "freshness window is half-open")
	require.False(t, store.IsFresh(fetchedAt.Add(time.Minute), ttl))
}

func TestSnapshotStore_WriteReplacesWholesale(t *testing.T) {
	store := NewSnapshotStore()
	first := testShowtime(map[string]string{"A": "0"})
	second := testShowtime(map[string]string{"B": "1"})

	store.Write(first, time.Now())
	store.Write(second, time.Now())

	require.Same(t, second, store.Read().Document)
}

func TestSnapshotStore_ConcurrentReadersAndWriter(t *testing.T) {
	store := NewSnapshotStore()
	doc := testShowtime(map[string]string{"A": "010"})

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			store.Write(doc, time.Now())
		}
		close(stop)
	}()

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				snap := store.Read()
				if snap.Document != nil {
					// A reader must never see a document without its
					// fetch time, or vice versa.
					require.False(t, snap.FetchedAt.IsZero())
				}
				select {
				case <-stop:
					return
				default:
				}
			}
		}()
	}

	wg.Wait()
}
