package control

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/guohuiyuan/music-dl-desktop/internal/execution/supervisor"
	"github.com/guohuiyuan/music-dl-desktop/util"
	"go.uber.org/zap"
)

// Status is the body of the status endpoint.
type Status struct {
	State    string `json:"state"`
	Pid      int    `json:"pid,omitempty"`
	Path     string `json:"path,omitempty"`
	Endpoint string `json:"endpoint"`

	// Alive is true if the os still reports the worker pid
	Alive bool `json:"alive"`
}

// NewStatusHandler reports the supervisor state as json.
func NewStatusHandler(s supervisor.Supervisor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := Status{
			State:    s.State().String(),
			Pid:      s.Pid(),
			Path:     s.Path(),
			Endpoint: s.Endpoint(),
		}

		if status.Pid > 0 {
			status.Alive = util.IsProcessAlive(status.Pid)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(status)
	})
}

// NewOpenHandler redirects to the worker endpoint.
func NewOpenHandler(s supervisor.Supervisor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.Endpoint(), http.StatusTemporaryRedirect)
	})
}

// NewShutdownHandler forwards a shutdown request to the host. Only the
// first request is forwarded, later ones are accepted and ignored.
func NewShutdownHandler(shutdown func() error, log *zap.Logger) http.Handler {
	var once sync.Once

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() {
			log.Info("shutdown requested")

			if err := shutdown(); err != nil {
				log.Error("failed to request shutdown", zap.Error(err))
			}
		})

		w.WriteHeader(http.StatusAccepted)
	})
}
