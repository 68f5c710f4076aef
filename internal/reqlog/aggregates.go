package reqlog

import (
	"context"
	"fmt"
)

// QueryCount is a query string with its request count.
type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// AgentCount is a user-agent string with its request count.
type AgentCount struct {
	Agent string `json:"agent"`
	Count int    `json:"count"`
}

// LogLine is one recent request as served to the admin surface.
type LogLine struct {
	Timestamp      string `json:"timestamp"`
	Endpoint       string `json:"endpoint"`
	Query          string `json:"query"`
	IP             string `json:"ip"`
	UserAgent      string `json:"user_agent"`
	ResultCount    int    `json:"results_count"`
	ResponseTimeMS int64  `json:"response_time_ms"`
}

// Activity aggregates the last N hours of request logs.
type Activity struct {
	Period        string       `json:"period"`
	TotalRequests int          `json:"total_requests"`
	UniqueIPs     int          `json:"unique_ips"`
	TopQueries    []QueryCount `json:"top_queries"`
	TopUserAgents []AgentCount `json:"top_user_agents"`
	Recent        []LogLine    `json:"recent"`
}

// PeriodStats counts requests and distinct callers over one time window.
type PeriodStats struct {
	Requests  int `json:"requests"`
	UniqueIPs int `json:"unique_ips"`
}

// Dashboard aggregates usage across fixed time windows.
type Dashboard struct {
	Today        PeriodStats    `json:"today"`
	Last7Days    PeriodStats    `json:"last_7_days"`
	Last30Days   PeriodStats    `json:"last_30_days"`
	AllTime      PeriodStats    `json:"all_time"`
	TopEndpoints map[string]int `json:"top_endpoints"`
	TopQueries7d []QueryCount   `json:"top_queries_7d"`
}

// RecentActivity returns aggregates over the last hours, with up to limit
// raw log lines.
func (s *Sink) RecentActivity(ctx context.Context, hours, limit int) (*Activity, error) {
	since := fmt.Sprintf("-%d hours", hours)
	a := &Activity{Period: fmt.Sprintf("last %d hours", hours)}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM request_logs WHERE timestamp >= datetime('now', ?)`,
		since).Scan(&a.TotalRequests); err != nil {
		return nil, fmt.Errorf("count requests: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT ip) FROM request_logs WHERE timestamp >= datetime('now', ?)`,
		since).Scan(&a.UniqueIPs); err != nil {
		return nil, fmt.Errorf("count ips: %w", err)
	}

	queries, err := s.topPairs(ctx, `SELECT query, COUNT(*) AS count FROM request_logs
		WHERE timestamp >= datetime('now', ?) AND query IS NOT NULL AND query != ''
		GROUP BY query ORDER BY count DESC LIMIT 10`, since)
	if err != nil {
		return nil, fmt.Errorf("top queries: %w", err)
	}
	for _, p := range queries {
		a.TopQueries = append(a.TopQueries, QueryCount{Query: p.key, Count: p.count})
	}

	agents, err := s.topPairs(ctx, `SELECT user_agent, COUNT(*) AS count FROM request_logs
		WHERE timestamp >= datetime('now', ?) AND user_agent IS NOT NULL AND user_agent != ''
		GROUP BY user_agent ORDER BY count DESC LIMIT 10`, since)
	if err != nil {
		return nil, fmt.Errorf("top agents: %w", err)
	}
	for _, p := range agents {
		a.TopUserAgents = append(a.TopUserAgents, AgentCount{Agent: p.key, Count: p.count})
	}

	rows, err := s.db.QueryContext(ctx, `SELECT timestamp, endpoint,
			COALESCE(query, ''), COALESCE(ip, ''), COALESCE(user_agent, ''),
			COALESCE(results_count, 0), COALESCE(response_time_ms, 0)
		FROM request_logs
		WHERE timestamp >= datetime('now', ?)
		ORDER BY timestamp DESC LIMIT ?`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("recent logs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l LogLine
		if err := rows.Scan(&l.Timestamp, &l.Endpoint, &l.Query, &l.IP,
			&l.UserAgent, &l.ResultCount, &l.ResponseTimeMS); err != nil {
			return nil, fmt.Errorf("scan log line: %w", err)
		}
		a.Recent = append(a.Recent, l)
	}
	return a, rows.Err()
}

// UsageDashboard aggregates usage over today / 7d / 30d / all-time windows.
func (s *Sink) UsageDashboard(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{TopEndpoints: make(map[string]int)}

	for _, w := range []struct {
		dest     *PeriodStats
		interval string
	}{
		{&d.Today, "-1 days"},
		{&d.Last7Days, "-7 days"},
		{&d.Last30Days, "-30 days"},
	} {
		if err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*), COUNT(DISTINCT ip) FROM request_logs
			 WHERE timestamp >= datetime('now', ?)`,
			w.interval).Scan(&w.dest.Requests, &w.dest.UniqueIPs); err != nil {
			return nil, fmt.Errorf("period stats %s: %w", w.interval, err)
		}
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT ip) FROM request_logs`).
		Scan(&d.AllTime.Requests, &d.AllTime.UniqueIPs); err != nil {
		return nil, fmt.Errorf("all-time stats: %w", err)
	}

	endpoints, err := s.topPairs(ctx,
		`SELECT endpoint, COUNT(*) AS count FROM request_logs
		 GROUP BY endpoint ORDER BY count DESC`)
	if err != nil {
		return nil, fmt.Errorf("top endpoints: %w", err)
	}
	for _, p := range endpoints {
		d.TopEndpoints[p.key] = p.count
	}

	queries, err := s.topPairs(ctx, `SELECT query, COUNT(*) AS count FROM request_logs
		WHERE timestamp >= datetime('now', '-7 days') AND query IS NOT NULL AND query != ''
		GROUP BY query ORDER BY count DESC LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("top queries: %w", err)
	}
	for _, p := range queries {
		d.TopQueries7d = append(d.TopQueries7d, QueryCount{Query: p.key, Count: p.count})
	}

	return d, nil
}

type pair struct {
	key   string
	count int
}

func (s *Sink) topPairs(ctx context.Context, query string, args ...any) ([]pair, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []pair
	for rows.Next() {
		var p pair
		if err := rows.Scan(&p.key, &p.count); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}
