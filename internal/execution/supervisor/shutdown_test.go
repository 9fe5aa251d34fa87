package supervisor_test

import (
	"testing"
	"time"

	"github.com/guohuiyuan/music-dl-desktop/internal/execution/supervisor"
	"github.com/guohuiyuan/music-dl-desktop/internal/execution/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newCoordinator(platform *mockPlatform, s *sleeper) *supervisor.Coordinator {
	return supervisor.NewCoordinator(platform, "worker", 500*time.Millisecond, s.sleep, zap.NewNop())
}

func TestCoordinator_Shutdown_GracefulSkipsForceKill(t *testing.T) {
	ev := &events{}
	s := &sleeper{events: ev}
	platform := &mockPlatform{}

	process := &mockProcess{}
	process.On("Terminate").Return(nil).Run(func(mock.Arguments) { ev.add("terminate") })

	outcome := newCoordinator(platform, s).Shutdown(process)

	assert.True(t, outcome.Graceful)
	assert.False(t, outcome.ForceAttempted)
	assert.NoError(t, outcome.GracefulErr)
	assert.Equal(t, []string{"terminate", "sleep 500ms"}, ev.all())
	platform.AssertNotCalled(t, "ForceKill", "worker")
}

func TestCoordinator_Shutdown_FailureForceKillsOnceBeforeSettle(t *testing.T) {
	ev := &events{}
	s := &sleeper{events: ev}

	platform := &mockPlatform{}
	platform.On("ForceKill", "worker").Return(nil).Run(func(mock.Arguments) { ev.add("force kill") })

	process := &mockProcess{}
	process.On("Terminate").Return(assert.AnError).Run(func(mock.Arguments) { ev.add("terminate") })

	outcome := newCoordinator(platform, s).Shutdown(process)

	assert.False(t, outcome.Graceful)
	assert.ErrorIs(t, outcome.GracefulErr, assert.AnError)
	assert.True(t, outcome.ForceAttempted)
	assert.NoError(t, outcome.ForceErr)
	assert.Equal(t, []string{"terminate", "force kill", "sleep 500ms"}, ev.all())
	platform.AssertNumberOfCalls(t, "ForceKill", 1)
}

func TestCoordinator_Shutdown_ForceKillFailureIsSwallowed(t *testing.T) {
	ev := &events{}
	s := &sleeper{events: ev}

	platform := &mockPlatform{}
	platform.On("ForceKill", "worker").Return(assert.AnError)

	process := &mockProcess{}
	process.On("Terminate").Return(assert.AnError)

	outcome := newCoordinator(platform, s).Shutdown(process)

	assert.True(t, outcome.ForceAttempted)
	assert.ErrorIs(t, outcome.ForceErr, assert.AnError)
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, s.durations())
}

func TestCoordinator_Shutdown_ForceKillUnsupported(t *testing.T) {
	ev := &events{}
	s := &sleeper{events: ev}

	platform := &mockPlatform{}
	platform.On("ForceKill", "worker").Return(worker.ErrForceKillUnsupported)

	process := &mockProcess{}
	process.On("Terminate").Return(assert.AnError)

	outcome := newCoordinator(platform, s).Shutdown(process)

	assert.False(t, outcome.Graceful)
	assert.False(t, outcome.ForceAttempted)
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, s.durations())
}
