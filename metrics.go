package asyncpipe

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// StatsSource is anything that can report pipe statistics. Both pipe halves
// implement it.
type StatsSource interface {
	ID() string
	Stats() Stats
}

// Collector exports statistics for a set of tracked pipes as Prometheus
// metrics. Register it with a prometheus.Registerer; nothing is registered
// globally.
type Collector struct {
	mu    sync.Mutex
	pipes map[string]StatsSource

	buffered *prometheus.Desc
	capacity *prometheus.Desc
	written  *prometheus.Desc
	read     *prometheus.Desc
	parks    *prometheus.Desc
	closed   *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	pipeLabel := []string{"pipe"}
	return &Collector{
		pipes: make(map[string]StatsSource),
		buffered: prometheus.NewDesc(
			"asyncpipe_buffered_bytes",
			"Bytes currently buffered in the pipe.",
			pipeLabel, nil,
		),
		capacity: prometheus.NewDesc(
			"asyncpipe_capacity_bytes",
			"Fixed buffer capacity of the pipe.",
			pipeLabel, nil,
		),
		written: prometheus.NewDesc(
			"asyncpipe_written_bytes_total",
			"Bytes accepted from the write half.",
			pipeLabel, nil,
		),
		read: prometheus.NewDesc(
			"asyncpipe_read_bytes_total",
			"Bytes delivered to the read half.",
			pipeLabel, nil,
		),
		parks: prometheus.NewDesc(
			"asyncpipe_parks_total",
			"Poll operations that returned would-block.",
			[]string{"pipe", "side"}, nil,
		),
		closed: prometheus.NewDesc(
			"asyncpipe_closed",
			"Whether the pipe has been closed (1) or is open (0).",
			pipeLabel, nil,
		),
	}
}

// Track starts exporting metrics for src under the given name. An empty name
// uses the pipe's ID. Tracking a name twice replaces the earlier source.
func (c *Collector) Track(name string, src StatsSource) {
	if name == "" {
		name = src.ID()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pipes[name] = src
}

// Forget stops exporting metrics for the named pipe.
func (c *Collector) Forget(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pipes, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.buffered
	ch <- c.capacity
	ch <- c.written
	ch <- c.read
	ch <- c.parks
	ch <- c.closed
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	sources := make(map[string]StatsSource, len(c.pipes))
	for name, src := range c.pipes {
		sources[name] = src
	}
	c.mu.Unlock()

	for name, src := range sources {
		st := src.Stats()
		ch <- prometheus.MustNewConstMetric(c.buffered, prometheus.GaugeValue, float64(st.Buffered), name)
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(st.Capacity), name)
		ch <- prometheus.MustNewConstMetric(c.written, prometheus.CounterValue, float64(st.BytesWritten), name)
		ch <- prometheus.MustNewConstMetric(c.read, prometheus.CounterValue, float64(st.BytesRead), name)
		ch <- prometheus.MustNewConstMetric(c.parks, prometheus.CounterValue, float64(st.WriterParks), name, "writer")
		ch <- prometheus.MustNewConstMetric(c.parks, prometheus.CounterValue, float64(st.ReaderParks), name, "reader")
		closed := 0.0
		if st.Closed {
			closed = 1.0
		}
		ch <- prometheus.MustNewConstMetric(c.closed, prometheus.GaugeValue, closed, name)
	}
}
