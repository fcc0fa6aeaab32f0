package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"agentdesk/internal/gateway"
	"agentdesk/internal/model"
	"agentdesk/internal/repository"
)

// Fixed instruction messages for the gateway maintenance actions. The
// gateway's main agent executes these through its own tooling.
const (
	heartbeatInstruction = `Trigger a heartbeat now. Run the cron wake tool with mode "now".`
	restartInstruction   = "Restart the gateway now. Use the gateway restart tool."
)

// GatewayClient is the gateway surface the metrics dashboard needs.
type GatewayClient interface {
	Probe(ctx context.Context) gateway.Status
	SendMessage(ctx context.Context, message string) error
	ListCronJobs(ctx context.Context) ([]gateway.CronJob, error)
	AddCronJob(ctx context.Context, job gateway.CronJob) (gateway.CronJob, error)
	DeleteCronJob(ctx context.Context, jobID string) error
}

// TaskStats summarizes task rows by status as an activity proxy.
type TaskStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
}

// SessionStats is derived from the health probe; the gateway does not expose
// a session list over HTTP.
type SessionStats struct {
	ActiveSessions int `json:"activeSessions"`
	TotalSessions  int `json:"totalSessions"`
	TotalTokens    int `json:"totalTokens"`
}

// StatusReport is the dashboard's top-level status payload.
type StatusReport struct {
	Gateway   gateway.Status `json:"gateway"`
	Sessions  SessionStats   `json:"sessions"`
	Tasks     TaskStats      `json:"tasks"`
	Timestamp int64          `json:"timestamp"`
}

// CostBudget holds the configured spend ceilings.
type CostBudget struct {
	Daily   decimal.Decimal `json:"daily"`
	Monthly decimal.Decimal `json:"monthly"`
}

// CostReport is the dashboard's spend estimate payload.
type CostReport struct {
	DailySpend       decimal.Decimal `json:"dailySpend"`
	MonthlySpend     decimal.Decimal `json:"monthlySpend"`
	EstimatedDaily   decimal.Decimal `json:"estimatedDaily"`
	EstimatedMonthly decimal.Decimal `json:"estimatedMonthly"`
	Budget           CostBudget      `json:"budget"`
	UsagePercent     int64           `json:"usagePercent"`
}

// ModelUsage is a per-model usage and cost line.
type ModelUsage struct {
	Model        string          `json:"model"`
	TokensIn     int64           `json:"tokensIn"`
	TokensOut    int64           `json:"tokensOut"`
	CallCount    int64           `json:"callCount"`
	CostEstimate decimal.Decimal `json:"costEstimate"`
}

// AgentActivity is a per-agent activity line.
type AgentActivity struct {
	Agent     string `json:"agent"`
	Sessions  int    `json:"sessions"`
	TaskCount int64  `json:"taskCount"`
}

// MetricsService aggregates gateway health, task activity and spend figures
// for the admin dashboard.
type MetricsService interface {
	StatusReport(ctx context.Context) *StatusReport
	CostReport(ctx context.Context) *CostReport
	ModelsReport(ctx context.Context) []ModelUsage
	AgentsReport(ctx context.Context) []AgentActivity
	ListCronJobs(ctx context.Context) ([]gateway.CronJob, error)
	AddCronJob(ctx context.Context, job gateway.CronJob) (gateway.CronJob, error)
	DeleteCronJob(ctx context.Context, jobID string) error
	TriggerHeartbeat(ctx context.Context) error
	RestartGateway(ctx context.Context) error
}

type metricsService struct {
	gateway GatewayClient
	tasks   repository.TaskRepository
	now     func() time.Time
}

// NewMetricsService creates a metrics service.
func NewMetricsService(gw GatewayClient, tasks repository.TaskRepository) MetricsService {
	return &metricsService{
		gateway: gw,
		tasks:   tasks,
		now:     time.Now,
	}
}

// StatusReport probes the gateway and counts tasks by status. A failed task
// count degrades to zeros rather than failing the report.
func (s *metricsService) StatusReport(ctx context.Context) *StatusReport {
	status := s.gateway.Probe(ctx)

	var stats TaskStats
	if counts, err := s.tasks.CountByStatus(ctx); err == nil {
		for state, count := range counts {
			stats.Total += count
			switch state {
			case model.TaskStatusPending:
				stats.Pending = count
			case model.TaskStatusCompleted:
				stats.Completed = count
			case model.TaskStatusFailed:
				stats.Failed = count
			}
		}
	}

	sessions := SessionStats{}
	if status.OK {
		sessions.ActiveSessions = 1
		sessions.TotalSessions = 1
	}

	return &StatusReport{
		Gateway:   status,
		Sessions:  sessions,
		Tasks:     stats,
		Timestamp: s.now().UnixMilli(),
	}
}

// CostReport returns the static spend model. Figures are placeholders until
// the gateway exposes real usage accounting.
func (s *metricsService) CostReport(ctx context.Context) *CostReport {
	daily := decimal.NewFromFloat(0.15)
	budgetDaily := decimal.NewFromInt(5)

	return &CostReport{
		DailySpend:       daily,
		MonthlySpend:     daily.Mul(decimal.NewFromInt(30)),
		EstimatedDaily:   decimal.NewFromFloat(0.10),
		EstimatedMonthly: decimal.NewFromInt(3),
		Budget: CostBudget{
			Daily:   budgetDaily,
			Monthly: decimal.NewFromInt(100),
		},
		UsagePercent: daily.Div(budgetDaily).Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
	}
}

// ModelsReport returns the static per-model usage figures. Like CostReport,
// the numbers are placeholders until the gateway exposes usage accounting.
func (s *metricsService) ModelsReport(ctx context.Context) []ModelUsage {
	return []ModelUsage{
		{
			Model:        "claude-haiku-4-5",
			TokensIn:     15000,
			TokensOut:    45000,
			CallCount:    128,
			CostEstimate: decimal.NewFromFloat(0.008),
		},
		{
			Model:        "claude-sonnet-4-5",
			TokensIn:     3000,
			TokensOut:    12000,
			CallCount:    8,
			CostEstimate: decimal.NewFromFloat(0.045),
		},
	}
}

// AgentsReport is empty until the gateway exposes per-agent accounting.
func (s *metricsService) AgentsReport(ctx context.Context) []AgentActivity {
	return []AgentActivity{}
}

func (s *metricsService) ListCronJobs(ctx context.Context) ([]gateway.CronJob, error) {
	return s.gateway.ListCronJobs(ctx)
}

func (s *metricsService) AddCronJob(ctx context.Context, job gateway.CronJob) (gateway.CronJob, error) {
	return s.gateway.AddCronJob(ctx, job)
}

func (s *metricsService) DeleteCronJob(ctx context.Context, jobID string) error {
	return s.gateway.DeleteCronJob(ctx, jobID)
}

func (s *metricsService) TriggerHeartbeat(ctx context.Context) error {
	if err := s.gateway.SendMessage(ctx, heartbeatInstruction); err != nil {
		return fmt.Errorf("trigger heartbeat: %w", err)
	}
	return nil
}

func (s *metricsService) RestartGateway(ctx context.Context) error {
	if err := s.gateway.SendMessage(ctx, restartInstruction); err != nil {
		return fmt.Errorf("restart gateway: %w", err)
	}
	return nil
}
