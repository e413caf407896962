package server

import (
	"sort"

	"github.com/puzpuzpuz/xsync/v3"
)

// routeStatsTable counts requests and failures per route. Counters are created
// lazily and never removed.
type routeStatsTable struct {
	requests *xsync.MapOf[string, *xsync.Counter]
	failures *xsync.MapOf[string, *xsync.Counter]
}

func newRouteStats() *routeStatsTable {
	return &routeStatsTable{
		requests: xsync.NewMapOf[string, *xsync.Counter](),
		failures: xsync.NewMapOf[string, *xsync.Counter](),
	}
}

func counter(m *xsync.MapOf[string, *xsync.Counter], route string) *xsync.Counter {
	c, _ := m.LoadOrCompute(route, xsync.NewCounter)
	return c
}

func (s *routeStatsTable) record(route string, failed bool) {
	counter(s.requests, route).Inc()
	if failed {
		counter(s.failures, route).Inc()
	}
}

// RouteCount is the wire form of one route's counters.
type RouteCount struct {
	Route    string `json:"route"`
	Requests int64  `json:"requests"`
	Failures int64  `json:"failures"`
}

func (s *routeStatsTable) snapshot() []RouteCount {
	var out []RouteCount
	s.requests.Range(func(route string, c *xsync.Counter) bool {
		rc := RouteCount{Route: route, Requests: c.Value()}
		if f, ok := s.failures.Load(route); ok {
			rc.Failures = f.Value()
		}
		out = append(out, rc)
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Route < out[j].Route })
	return out
}
