package supervisor_test

import (
	"context"
	"sync"
	"time"

	"github.com/guohuiyuan/music-dl-desktop/internal/execution/supervisor"
	"github.com/guohuiyuan/music-dl-desktop/internal/execution/worker"
	"github.com/stretchr/testify/mock"
)

// events records the order in which collaborators are called.
type events struct {
	mu   sync.Mutex
	list []string
}

func (e *events) add(event string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.list = append(e.list, event)
}

func (e *events) all() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]string(nil), e.list...)
}

type mockProcess struct {
	mock.Mock
}

func (p *mockProcess) Terminate() error {
	return p.Called().Error(0)
}

func (p *mockProcess) Pid() int {
	return 4242
}

func (p *mockProcess) Path() string {
	return "../../../worker"
}

type mockPlatform struct {
	mock.Mock
	worker.Platform
}

func (p *mockPlatform) ForceKill(binary string) error {
	return p.Called(binary).Error(0)
}

type sleeper struct {
	events *events
	mu     sync.Mutex
	calls  []time.Duration
}

func (s *sleeper) sleep(d time.Duration) {
	s.mu.Lock()
	s.calls = append(s.calls, d)
	s.mu.Unlock()

	s.events.add("sleep " + d.String())
}

func (s *sleeper) durations() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]time.Duration(nil), s.calls...)
}

func testConfig() worker.Config {
	return worker.Config{
		Binary:        "worker",
		SearchDirs:    worker.DefaultSearchDirs,
		Port:          37777,
		URLPath:       "/music",
		StartupDelay:  2 * time.Second,
		ShutdownDelay: 500 * time.Millisecond,
		Args:          worker.DefaultArgs,
	}
}

type fixture struct {
	supervisor *supervisor.WorkerSupervisor
	process    *mockProcess
	platform   *mockPlatform
	sleeper    *sleeper
	events     *events
	launches   int
}

func newFixture(launchErr error) (*fixture, error) {
	ev := &events{}

	f := &fixture{
		process:  &mockProcess{},
		platform: &mockPlatform{},
		sleeper:  &sleeper{events: ev},
		events:   ev,
	}

	launch := func(context.Context, worker.Config) (supervisor.Process, error) {
		f.launches++
		ev.add("launch")

		if launchErr != nil {
			return nil, launchErr
		}

		return f.process, nil
	}

	s, err := supervisor.New(supervisor.Params{
		Config:   testConfig(),
		Platform: f.platform,
		LaunchFn: launch,
		Sleep:    f.sleeper.sleep,
	})
	if err != nil {
		return nil, err
	}

	f.supervisor = s

	return f, nil
}
