package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/samuelfneumann/aiplayground/config"
	"github.com/sirupsen/logrus"
)

const (
	// MinTrainEpisodes and MaxTrainEpisodes bound the number of episodes
	// a single training request may run
	MinTrainEpisodes = 1
	MaxTrainEpisodes = 1000

	defaultTrainEpisodes = 10
)

// Server serves the dashboard of a single Session over HTTP. Requests
// are handled one at a time.
type Server struct {
	mu      sync.Mutex
	session *Session
	metrics *Metrics

	config *config.DashboardConfig
	server *http.Server
	log    logrus.FieldLogger
}

// NewServer creates a new dashboard server for a fresh Session
// described by cfg
func NewServer(cfg *config.Config, log logrus.FieldLogger) (*Server, error) {
	session, err := NewSession(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("new server: %w", err)
	}

	s := &Server{
		session: session,
		metrics: NewMetrics(),
		config:  &cfg.Dashboard,
		log:     log,
	}
	s.server = &http.Server{
		Addr:              cfg.Dashboard.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Handler returns the HTTP handler of the dashboard
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/train", s.handleTrain)
	mux.HandleFunc("/feedback", s.handleFeedback)
	mux.HandleFunc("/reset", s.handleReset)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/chart", s.handleChart)
	mux.HandleFunc("/grid.png", s.handleGrid)
	mux.Handle("/metrics", s.metrics.Handler())
	mux.HandleFunc("/health", s.handleHealth)

	return s.logRequests(mux)
}

// Run serves the dashboard until ctx is cancelled, then shuts the
// server down gracefully
func (s *Server) Run(ctx context.Context) error {
	errs := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.server.Addr).Info("Starting dashboard")
		if err := s.server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err, ok := <-errs:
		if !ok {
			return nil
		}
		return fmt.Errorf("dashboard: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("Stopping dashboard...")
	timeout := time.Duration(s.config.ShutdownTimeout) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// withSession runs f while holding exclusive access to the Session
func (s *Server) withSession(f func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.session)
}

func (s *Server) snapshot() Snapshot {
	var snap Snapshot
	s.withSession(func(session *Session) { snap = session.Snapshot() })
	return snap
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, s.snapshot()); err != nil {
		s.log.WithError(err).Error("Failed to render dashboard")
	}
}

func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	n := defaultTrainEpisodes
	if v := r.FormValue("episodes"); v != "" {
		var err error
		n, err = strconv.Atoi(v)
		if err != nil || n < MinTrainEpisodes || n > MaxTrainEpisodes {
			http.Error(w, fmt.Sprintf("episodes must be an integer in "+
				"[%d, %d]", MinTrainEpisodes, MaxTrainEpisodes),
				http.StatusBadRequest)
			return
		}
	}

	s.withSession(func(session *Session) {
		for _, e := range session.Train(n) {
			s.metrics.ObserveEpisode(e)
		}
		s.metrics.SetStates(session.Agent().QTable().Len())
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var err error
	s.withSession(func(session *Session) {
		err = session.Answer(r.FormValue("advice"))
		s.metrics.SetStates(session.Agent().QTable().Len())
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.metrics.ObserveFeedback()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var err error
	s.withSession(func(session *Session) { err = session.Reset() })
	if err != nil {
		s.log.WithError(err).Error("Failed to reset session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.metrics.ObserveReset()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.snapshot()); err != nil {
		s.log.WithError(err).Error("Failed to encode stats")
	}
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderRewards(w, s.snapshot().Rewards); err != nil {
		s.log.WithError(err).Error("Failed to render reward chart")
	}
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := renderGrid(w, s.snapshot()); err != nil {
		s.log.WithError(err).Error("Failed to render grid")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// allowMethod reports whether r uses method, replying with an error if
// it does not
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// statusRecorder records the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests logs every request handled by next
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Debug("request handled")
	})
}

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"percent": func(f float64) float64 { return 100 * f },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>AI Playground</title>
</head>
<body>
<h1>Autonomous AI Playground with Communication</h1>

<h2>Training Controls</h2>
<form method="post" action="/train">
  <label>Episodes to train
    <input type="number" name="episodes" min="1" max="1000" value="10">
  </label>
  <button type="submit">Train</button>
</form>
<form method="post" action="/reset">
  <button type="submit">Reset Agent &amp; Env</button>
</form>

<h2>Agent Statistics</h2>
<p>Total Episodes: {{.Stats.Episodes}}</p>
<p>Last Episode Reward: {{.Stats.LastReward}}</p>
<p>Average Reward (last 50): {{printf "%.2f" .Stats.AverageReward}}</p>
<p>Episodes reaching the target: {{printf "%.0f" (percent .SuccessRate)}}%</p>
{{if .Rewards}}<iframe src="/chart" width="950" height="550" frameborder="0"></iframe>{{end}}

<h2>Chat with the AI</h2>
{{range .Chat}}
{{if eq .Role "AI"}}<p style="color:blue"><b>AI:</b> {{.Content}}</p>
{{else}}<p style="color:green"><b>You:</b> {{.Content}}</p>{{end}}
{{end}}
{{if .Message}}<p><i>The AI is waiting for your advice.</i></p>{{end}}
<form method="post" action="/feedback">
  <label>Your answer (up/down/left/right):
    <input type="text" name="advice">
  </label>
  <button type="submit">Send</button>
</form>

<h2>Environment Visualization</h2>
<p>Agent at {{.Position}}, target at {{.Target}}</p>
<img src="/grid.png" alt="grid world">
</body>
</html>
`))
