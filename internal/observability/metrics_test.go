package observability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetricsCountsRequestsAndErrors(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/employees", "GET", 200, time.Millisecond)
	m.RecordRequest("/employees", "GET", 200, 3*time.Millisecond)
	m.RecordRequest("/department", "POST", 500, time.Millisecond)
	m.RecordError("/department", "POST", "INTERNAL_ERROR")

	snap := m.Snapshot()
	require.Equal(t, int64(2), snap.Requests["/employees|GET|200"])
	require.Equal(t, int64(1), snap.Requests["/department|POST|500"])
	require.Equal(t, int64(1), snap.Errors["/department|POST|INTERNAL_ERROR"])
	require.Equal(t, 2*time.Millisecond, snap.AvgLatency["/employees|GET|200"])
	require.Equal(t, time.Millisecond, snap.AvgLatency["/department|POST|500"])
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, 0)
	m.RecordError("/", "GET", "X")
	require.Empty(t, m.Snapshot().Requests)
}

func TestMetricsConcurrentRecording(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordRequest("/employees", "GET", 200, time.Microsecond)
		}()
	}
	wg.Wait()
	require.Equal(t, int64(50), m.Snapshot().Requests["/employees|GET|200"])
}
