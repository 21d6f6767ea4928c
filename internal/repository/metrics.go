package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Metrics stores API and row metrics in Redis
type Metrics struct {
	client *redis.Client
}

// APIStats represents statistics for an API path
type APIStats struct {
	Path         string  `json:"path"`
	TotalCalls   int64   `json:"total_calls"`
	SuccessCalls int64   `json:"success_calls"`
	ErrorCalls   int64   `json:"error_calls"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

// RowStats counts resolved display states for one catalog endpoint
type RowStats struct {
	Endpoint string `json:"endpoint"`
	Ready    int64  `json:"ready"`
	Empty    int64  `json:"empty"`
	Error    int64  `json:"error"`
}

// OverallStats represents overall system statistics
type OverallStats struct {
	TotalAPICalls int64      `json:"total_api_calls"`
	TodayAPICalls int64      `json:"today_api_calls"`
	AvgLatencyMs  float64    `json:"avg_latency_ms"`
	ErrorRate     float64    `json:"error_rate"`
	TopEndpoints  []APIStats `json:"top_endpoints"`
	Rows          []RowStats `json:"rows"`
	Uptime        int64      `json:"uptime_seconds"`
}

// NewMetrics creates a new Metrics instance on a shared client
func NewMetrics(client *redis.Client) *Metrics {
	return &Metrics{client: client}
}

// RecordAPICall records an API call
func (m *Metrics) RecordAPICall(ctx context.Context, path string, statusCode int, latencyMs float64) error {
	today := time.Now().Format("2006-01-02")

	pipe := m.client.Pipeline()

	pathKey := fmt.Sprintf("metrics:path:%s", path)
	pipe.HIncrBy(ctx, pathKey, "total", 1)
	pipe.HIncrByFloat(ctx, pathKey, "latency_sum", latencyMs)
	if statusCode >= 200 && statusCode < 400 {
		pipe.HIncrBy(ctx, pathKey, "success", 1)
	} else {
		pipe.HIncrBy(ctx, pathKey, "error", 1)
	}

	dailyKey := fmt.Sprintf("metrics:daily:%s", today)
	pipe.HIncrBy(ctx, dailyKey, "total", 1)
	pipe.Expire(ctx, dailyKey, 30*24*time.Hour) // Keep 30 days

	pipe.Incr(ctx, "metrics:global:total")
	pipe.IncrByFloat(ctx, "metrics:global:latency_sum", latencyMs)
	pipe.SAdd(ctx, "metrics:paths", path)

	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to record metrics")
		return err
	}
	return nil
}

// RecordRowOutcome counts the display state a row fetch resolved to
func (m *Metrics) RecordRowOutcome(ctx context.Context, endpoint, state string) error {
	pipe := m.client.Pipeline()
	pipe.HIncrBy(ctx, fmt.Sprintf("metrics:row:%s", endpoint), state, 1)
	pipe.SAdd(ctx, "metrics:rows", endpoint)
	_, err := pipe.Exec(ctx)
	return err
}

// GetAPIStats gets statistics for a specific API path
func (m *Metrics) GetAPIStats(ctx context.Context, path string) (*APIStats, error) {
	result, err := m.client.HGetAll(ctx, fmt.Sprintf("metrics:path:%s", path)).Result()
	if err != nil {
		return nil, err
	}

	total, _ := strconv.ParseInt(result["total"], 10, 64)
	success, _ := strconv.ParseInt(result["success"], 10, 64)
	errors, _ := strconv.ParseInt(result["error"], 10, 64)
	latencySum, _ := strconv.ParseFloat(result["latency_sum"], 64)

	stats := &APIStats{
		Path:         path,
		TotalCalls:   total,
		SuccessCalls: success,
		ErrorCalls:   errors,
	}
	if total > 0 {
		stats.AvgLatencyMs = latencySum / float64(total)
	}
	return stats, nil
}

// GetRowStats gets state counts for one endpoint
func (m *Metrics) GetRowStats(ctx context.Context, endpoint string) (*RowStats, error) {
	result, err := m.client.HGetAll(ctx, fmt.Sprintf("metrics:row:%s", endpoint)).Result()
	if err != nil {
		return nil, err
	}
	ready, _ := strconv.ParseInt(result["ready"], 10, 64)
	empty, _ := strconv.ParseInt(result["empty"], 10, 64)
	failed, _ := strconv.ParseInt(result["error"], 10, 64)
	return &RowStats{Endpoint: endpoint, Ready: ready, Empty: empty, Error: failed}, nil
}

// GetOverallStats gets overall system statistics
func (m *Metrics) GetOverallStats(ctx context.Context) (*OverallStats, error) {
	stats := &OverallStats{}

	total, _ := m.client.Get(ctx, "metrics:global:total").Int64()
	latencySum, _ := m.client.Get(ctx, "metrics:global:latency_sum").Float64()
	stats.TotalAPICalls = total
	if total > 0 {
		stats.AvgLatencyMs = latencySum / float64(total)
	}

	todayKey := fmt.Sprintf("metrics:daily:%s", time.Now().Format("2006-01-02"))
	stats.TodayAPICalls, _ = m.client.HGet(ctx, todayKey, "total").Int64()

	paths, err := m.client.SMembers(ctx, "metrics:paths").Result()
	if err != nil {
		return nil, err
	}
	var totalErrors int64
	for _, path := range paths {
		pathStats, err := m.GetAPIStats(ctx, path)
		if err == nil && pathStats.TotalCalls > 0 {
			stats.TopEndpoints = append(stats.TopEndpoints, *pathStats)
			totalErrors += pathStats.ErrorCalls
		}
	}
	sort.Slice(stats.TopEndpoints, func(i, j int) bool {
		return stats.TopEndpoints[i].TotalCalls > stats.TopEndpoints[j].TotalCalls
	})
	if len(stats.TopEndpoints) > 10 {
		stats.TopEndpoints = stats.TopEndpoints[:10]
	}
	if total > 0 {
		stats.ErrorRate = float64(totalErrors) / float64(total) * 100
	}

	endpoints, _ := m.client.SMembers(ctx, "metrics:rows").Result()
	sort.Strings(endpoints)
	for _, ep := range endpoints {
		if rs, err := m.GetRowStats(ctx, ep); err == nil {
			stats.Rows = append(stats.Rows, *rs)
		}
	}

	startTime, err := m.client.Get(ctx, "metrics:server:start_time").Int64()
	if err == nil && startTime > 0 {
		stats.Uptime = time.Now().Unix() - startTime
	}

	return stats, nil
}

// RecordServerStart records server start time
func (m *Metrics) RecordServerStart(ctx context.Context) {
	m.client.Set(ctx, "metrics:server:start_time", time.Now().Unix(), 0)
}

// ResetMetrics resets all metrics
func (m *Metrics) ResetMetrics(ctx context.Context) error {
	var keys []string
	iter := m.client.Scan(ctx, 0, "metrics:*", 200).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return m.client.Del(ctx, keys...).Err()
	}
	return nil
}
