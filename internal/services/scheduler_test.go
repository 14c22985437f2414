package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJob struct {
	name     string
	schedule Schedule
	runs     int
	err      error
}

func (j *fakeJob) Name() string       { return j.name }
func (j *fakeJob) Schedule() Schedule { return j.schedule }
func (j *fakeJob) Execute(ctx context.Context) error {
	j.runs++
	return j.err
}

func TestSchedulerService_AddAndRun(t *testing.T) {
	scheduler := NewSchedulerService()
	defer func() { _ = scheduler.Stop(context.Background()) }()

	job := &fakeJob{name: "expiry", schedule: Hourly}
	require.NoError(t, scheduler.AddJob(job))
	assert.Equal(t, 1, scheduler.GetJobCount())

	require.NoError(t, scheduler.RunJobNow(context.Background(), "expiry"))
	assert.Equal(t, 1, job.runs)

	assert.Error(t, scheduler.RunJobNow(context.Background(), "missing"))
}

func TestSchedulerService_RunJobNowPropagatesError(t *testing.T) {
	scheduler := NewSchedulerService()
	defer func() { _ = scheduler.Stop(context.Background()) }()

	jobErr := errors.New("boom")
	require.NoError(t, scheduler.AddJob(&fakeJob{name: "daily", schedule: Daily, err: jobErr}))

	assert.Equal(t, jobErr, scheduler.RunJobNow(context.Background(), "daily"))
}

func TestSchedulerService_StartWithoutJobs(t *testing.T) {
	scheduler := NewSchedulerService()

	require.NoError(t, scheduler.Start(context.Background()))
	assert.False(t, scheduler.IsRunning())
	assert.NoError(t, scheduler.Stop(context.Background()))
}

func TestSchedulerService_StartStop(t *testing.T) {
	scheduler := NewSchedulerService()
	require.NoError(t, scheduler.AddJob(&fakeJob{name: "expiry", schedule: Hourly}))

	require.NoError(t, scheduler.Start(context.Background()))
	assert.True(t, scheduler.IsRunning())

	require.NoError(t, scheduler.Stop(context.Background()))
	assert.False(t, scheduler.IsRunning())
}

func TestSchedulerService_UnknownSchedule(t *testing.T) {
	scheduler := NewSchedulerService()
	assert.Error(t, scheduler.AddJob(&fakeJob{name: "odd", schedule: Schedule(42)}))
}
