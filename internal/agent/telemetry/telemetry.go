package telemetry

import (
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pepo-gtm/pepo/config"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pepo_runs_total",
		Help: "Workflow runs executed, by goal.",
	}, []string{"goal"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pepo_run_duration_seconds",
		Help:    "Wall-clock duration of workflow runs.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"goal"})

	stepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pepo_steps_total",
		Help: "Executor loop steps taken across all runs.",
	})

	toolCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pepo_tool_calls_total",
		Help: "Tool invocations, by tool name and outcome.",
	}, []string{"tool", "outcome"})

	llmTokensTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pepo_llm_tokens_total",
		Help: "LLM tokens consumed, by model and direction.",
	}, []string{"model", "direction"})

	llmCostTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pepo_llm_cost_dollars_total",
		Help: "Estimated LLM spend in US dollars.",
	})
)

// Telemetry provides run metrics and cost tracking
type Telemetry struct {
	config config.TelemetryConfig
	logger *log.Logger

	mu          sync.RWMutex
	totalRuns   int64
	totalSteps  int64
	totalCost   float64
	totalTokens int64
	costByModel map[string]float64
}

// NewTelemetry creates a new telemetry instance
func NewTelemetry(cfg config.TelemetryConfig) *Telemetry {
	return &Telemetry{
		config:      cfg,
		logger:      log.New(log.Writer(), "[TELEMETRY] ", log.LstdFlags),
		costByModel: make(map[string]float64),
	}
}

// RecordRun records a completed workflow run.
func (t *Telemetry) RecordRun(goal string, duration time.Duration, steps int, cost float64) {
	if !t.config.Enabled {
		return
	}
	runsTotal.WithLabelValues(goal).Inc()
	runDuration.WithLabelValues(goal).Observe(duration.Seconds())
	stepsTotal.Add(float64(steps))

	t.mu.Lock()
	t.totalRuns++
	t.totalSteps += int64(steps)
	t.totalCost += cost
	t.mu.Unlock()

	if t.config.CostTracking {
		t.logger.Printf("run goal=%s steps=%d duration=%s cost=$%.4f", goal, steps, duration.Round(time.Millisecond), cost)
	}
}

// RecordToolCall records one tool invocation and its outcome.
func (t *Telemetry) RecordToolCall(tool string, ok bool) {
	if !t.config.Enabled {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	toolCallsTotal.WithLabelValues(tool, outcome).Inc()
}

// RecordLLMUsage records token consumption and spend for one model call.
func (t *Telemetry) RecordLLMUsage(model string, inputTokens, outputTokens int64, cost float64) {
	if !t.config.Enabled {
		return
	}
	llmTokensTotal.WithLabelValues(model, "input").Add(float64(inputTokens))
	llmTokensTotal.WithLabelValues(model, "output").Add(float64(outputTokens))
	llmCostTotal.Add(cost)

	t.mu.Lock()
	t.totalTokens += inputTokens + outputTokens
	t.costByModel[model] += cost
	t.mu.Unlock()
}

// TotalCost returns the accumulated workflow spend for this process.
func (t *Telemetry) TotalCost() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totalCost
}

// Snapshot returns a point-in-time view of the counters for the ops API.
func (t *Telemetry) Snapshot() map[string]interface{} {
	t.mu.RLock()
	defer t.mu.RUnlock()
	byModel := make(map[string]float64, len(t.costByModel))
	for k, v := range t.costByModel {
		byModel[k] = v
	}
	return map[string]interface{}{
		"total_runs":    t.totalRuns,
		"total_steps":   t.totalSteps,
		"total_cost":    t.totalCost,
		"total_tokens":  t.totalTokens,
		"cost_by_model": byModel,
	}
}
