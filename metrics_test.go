package asyncpipe_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	asyncpipe "github.com/routerify/async-pipe-go"
)

func TestCollector(t *testing.T) {
	r := require.New(t)

	w, pr := asyncpipe.Pipe(8)
	defer w.Close()
	defer pr.Close()

	c := asyncpipe.NewCollector()
	c.Track("test", w)

	reg := prometheus.NewPedanticRegistry()
	r.NoError(reg.Register(c))

	n, err := w.PollWrite([]byte("hello"), nil)
	r.NoError(err)
	r.Equal(5, n)

	buf := make([]byte, 3)
	_, err = pr.PollRead(buf, nil)
	r.NoError(err)

	expected := `
# HELP asyncpipe_buffered_bytes Bytes currently buffered in the pipe.
# TYPE asyncpipe_buffered_bytes gauge
asyncpipe_buffered_bytes{pipe="test"} 2
# HELP asyncpipe_capacity_bytes Fixed buffer capacity of the pipe.
# TYPE asyncpipe_capacity_bytes gauge
asyncpipe_capacity_bytes{pipe="test"} 8
# HELP asyncpipe_read_bytes_total Bytes delivered to the read half.
# TYPE asyncpipe_read_bytes_total counter
asyncpipe_read_bytes_total{pipe="test"} 3
# HELP asyncpipe_written_bytes_total Bytes accepted from the write half.
# TYPE asyncpipe_written_bytes_total counter
asyncpipe_written_bytes_total{pipe="test"} 5
`
	r.NoError(testutil.CollectAndCompare(c, strings.NewReader(expected),
		"asyncpipe_buffered_bytes",
		"asyncpipe_capacity_bytes",
		"asyncpipe_read_bytes_total",
		"asyncpipe_written_bytes_total",
	))
}

func TestCollectorTrackDefaultsToPipeID(t *testing.T) {
	r := require.New(t)

	w, pr := asyncpipe.Pipe(8)
	defer w.Close()
	defer pr.Close()

	c := asyncpipe.NewCollector()
	c.Track("", pr)

	count := testutil.CollectAndCount(c)
	r.Equal(7, count, "one tracked pipe exports seven series")

	c.Forget(pr.ID())
	r.Zero(testutil.CollectAndCount(c))
}
