package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"agentdesk/internal/gateway"
	"agentdesk/internal/model"
)

// MockGatewayClient is a mock implementation of GatewayClient.
type MockGatewayClient struct {
	mock.Mock
}

func (m *MockGatewayClient) Probe(ctx context.Context) gateway.Status {
	args := m.Called(ctx)
	return args.Get(0).(gateway.Status)
}

func (m *MockGatewayClient) SendMessage(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockGatewayClient) ListCronJobs(ctx context.Context) ([]gateway.CronJob, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gateway.CronJob), args.Error(1)
}

func (m *MockGatewayClient) AddCronJob(ctx context.Context, job gateway.CronJob) (gateway.CronJob, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(gateway.CronJob), args.Error(1)
}

func (m *MockGatewayClient) DeleteCronJob(ctx context.Context, jobID string) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

func TestMetricsService_StatusReport(t *testing.T) {
	gw := new(MockGatewayClient)
	gw.On("Probe", mock.Anything).Return(gateway.Status{OK: true, LastCheck: 1700000000000})

	tasks := new(MockTaskRepository)
	tasks.On("CountByStatus", mock.Anything).Return(map[string]int64{
		model.TaskStatusPending:   2,
		model.TaskStatusRunning:   1,
		model.TaskStatusCompleted: 5,
		model.TaskStatusFailed:    1,
	}, nil)

	svc := NewMetricsService(gw, tasks)
	report := svc.StatusReport(context.Background())

	assert.True(t, report.Gateway.OK)
	assert.Equal(t, int64(9), report.Tasks.Total)
	assert.Equal(t, int64(2), report.Tasks.Pending)
	assert.Equal(t, int64(5), report.Tasks.Completed)
	assert.Equal(t, int64(1), report.Tasks.Failed)
	assert.Equal(t, 1, report.Sessions.ActiveSessions)
	assert.NotZero(t, report.Timestamp)
}

// A database outage degrades the task block to zeros instead of failing the
// whole report.
func TestMetricsService_StatusReport_TaskCountFailure(t *testing.T) {
	gw := new(MockGatewayClient)
	gw.On("Probe", mock.Anything).Return(gateway.Status{OK: false})

	tasks := new(MockTaskRepository)
	tasks.On("CountByStatus", mock.Anything).Return(nil, assert.AnError)

	svc := NewMetricsService(gw, tasks)
	report := svc.StatusReport(context.Background())

	assert.False(t, report.Gateway.OK)
	assert.Equal(t, TaskStats{}, report.Tasks)
	assert.Equal(t, SessionStats{}, report.Sessions)
}

func TestMetricsService_StatusReport_Timestamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	gw := new(MockGatewayClient)
	gw.On("Probe", mock.Anything).Return(gateway.Status{})
	tasks := new(MockTaskRepository)
	tasks.On("CountByStatus", mock.Anything).Return(map[string]int64{}, nil)

	svc := NewMetricsService(gw, tasks).(*metricsService)
	svc.now = func() time.Time { return now }

	report := svc.StatusReport(context.Background())
	assert.Equal(t, now.UnixMilli(), report.Timestamp)
}

func TestMetricsService_CostReport(t *testing.T) {
	svc := NewMetricsService(new(MockGatewayClient), new(MockTaskRepository))
	report := svc.CostReport(context.Background())

	assert.Equal(t, "0.15", report.DailySpend.String())
	assert.Equal(t, "4.5", report.MonthlySpend.String())
	assert.Equal(t, "5", report.Budget.Daily.String())
	assert.Equal(t, "100", report.Budget.Monthly.String())
	assert.Equal(t, int64(3), report.UsagePercent)
}

func TestMetricsService_ModelsReport(t *testing.T) {
	svc := NewMetricsService(new(MockGatewayClient), new(MockTaskRepository))
	models := svc.ModelsReport(context.Background())

	assert.Len(t, models, 2)
	assert.Equal(t, "claude-haiku-4-5", models[0].Model)
	assert.Equal(t, int64(15000), models[0].TokensIn)
	assert.Equal(t, int64(45000), models[0].TokensOut)
	assert.Equal(t, int64(128), models[0].CallCount)
	assert.Equal(t, "0.008", models[0].CostEstimate.String())
	assert.Equal(t, "claude-sonnet-4-5", models[1].Model)
	assert.Equal(t, int64(8), models[1].CallCount)
	assert.Equal(t, "0.045", models[1].CostEstimate.String())
}

func TestMetricsService_AgentsReport(t *testing.T) {
	svc := NewMetricsService(new(MockGatewayClient), new(MockTaskRepository))
	agents := svc.AgentsReport(context.Background())

	assert.NotNil(t, agents)
	assert.Empty(t, agents)
}

func TestMetricsService_MaintenanceInstructions(t *testing.T) {
	gw := new(MockGatewayClient)
	gw.On("SendMessage", mock.Anything, heartbeatInstruction).Return(nil)
	gw.On("SendMessage", mock.Anything, restartInstruction).Return(nil)

	svc := NewMetricsService(gw, new(MockTaskRepository))
	assert.NoError(t, svc.TriggerHeartbeat(context.Background()))
	assert.NoError(t, svc.RestartGateway(context.Background()))

	gw.AssertExpectations(t)
}

func TestMetricsService_CronPassthrough(t *testing.T) {
	gw := new(MockGatewayClient)
	gw.On("ListCronJobs", mock.Anything).Return([]gateway.CronJob{{"id": "job-1"}}, nil)
	gw.On("AddCronJob", mock.Anything, gateway.CronJob{"schedule": "* * * * *"}).Return(gateway.CronJob{"id": "job-2"}, nil)
	gw.On("DeleteCronJob", mock.Anything, "job-1").Return(nil)

	svc := NewMetricsService(gw, new(MockTaskRepository))

	jobs, err := svc.ListCronJobs(context.Background())
	assert.NoError(t, err)
	assert.Len(t, jobs, 1)

	created, err := svc.AddCronJob(context.Background(), gateway.CronJob{"schedule": "* * * * *"})
	assert.NoError(t, err)
	assert.Equal(t, "job-2", created["id"])

	assert.NoError(t, svc.DeleteCronJob(context.Background(), "job-1"))

	gw.AssertExpectations(t)
}
