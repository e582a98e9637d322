// Package api exposes HTTP control of a running Kapi.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Ts0n/rekapi/kapi"
)

// An Executor runs fn on the goroutine that owns the Kapi and waits for it.
// *kapi.Loop is one.
type Executor interface {
	Do(ctx context.Context, fn func()) error
}

// A Snapshotter renders the current picture of the show.
type Snapshotter interface {
	Snapshot(w io.Writer) error
}

// Options configures an Api.
type Options struct {
	// Snapshot serves GET /frame.png when set.
	Snapshot Snapshotter
	// StaticDir is served at / when set.
	StaticDir string
}

// Api serves play controls and state for a Kapi.
type Api struct {
	kapi *kapi.Kapi
	exec Executor
	opts Options
	mux  *http.ServeMux
}

// State is the body of GET /state.
type State struct {
	PlayState       string                `json:"playState"`
	Millisecond     float64               `json:"millisecond"`
	Position        float64               `json:"position"`
	AnimationLength float64               `json:"animationLength"`
	FPS             float64               `json:"fps"`
	Actors          map[string]kapi.State `json:"actors"`
}

// NewApi creates an Api for k. Every engine call goes through exec.
func NewApi(k *kapi.Kapi, exec Executor, optFns ...func(o *Options)) *Api {
	a := new(Api)
	a.kapi = k
	a.exec = exec
	for _, fn := range optFns {
		fn(&a.opts)
	}

	a.mux = http.NewServeMux()
	a.mux.HandleFunc("GET /timeline", a.handleTimeline)
	a.mux.HandleFunc("GET /state", a.handleState)
	a.mux.HandleFunc("POST /play", a.handlePlay)
	a.mux.HandleFunc("POST /pause", a.control(func(k *kapi.Kapi) { k.Pause() }))
	a.mux.HandleFunc("POST /stop", a.control(func(k *kapi.Kapi) { k.Stop() }))
	if a.opts.Snapshot != nil {
		a.mux.HandleFunc("GET /frame.png", a.handleFrame)
	}
	if a.opts.StaticDir != "" {
		a.mux.Handle("/", http.FileServer(http.Dir(a.opts.StaticDir)))
	}
	return a
}

// Handler returns the Api's routes.
func (a *Api) Handler() http.Handler { return a.mux }

// Serve listens on addr until the server fails.
func (a *Api) Serve(addr string) error {
	kapi.Logger().Info("api listening", "addr", addr)
	return http.ListenAndServe(addr, a.mux)
}

func (a *Api) do(w http.ResponseWriter, r *http.Request, fn func()) bool {
	if err := a.exec.Do(r.Context(), fn); err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusRequestTimeout
		}
		http.Error(w, err.Error(), status)
		return false
	}
	return true
}

func (a *Api) handleTimeline(w http.ResponseWriter, r *http.Request) {
	var t kapi.Timeline
	if a.do(w, r, func() { t = a.kapi.ExportTimeline() }) {
		writeJSON(w, t)
	}
}

func (a *Api) state() State {
	s := State{
		PlayState:       a.kapi.PlayState().String(),
		Millisecond:     a.kapi.LastUpdatedMillisecond(),
		Position:        a.kapi.LastPositionUpdated(),
		AnimationLength: a.kapi.AnimationLength(),
		FPS:             a.kapi.FPS(),
		Actors:          make(map[string]kapi.State, a.kapi.ActorCount()),
	}
	for _, x := range a.kapi.Actors() {
		s.Actors[x.ID()] = x.Get()
	}
	return s
}

func (a *Api) handleState(w http.ResponseWriter, r *http.Request) {
	var s State
	if a.do(w, r, func() { s = a.state() }) {
		writeJSON(w, s)
	}
}

// handlePlay accepts ?iterations=n and ?from=ms. Without from, a paused
// animation resumes where it stopped.
func (a *Api) handlePlay(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	iterations := kapi.Infinite
	if v := q.Get("iterations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "bad iterations: "+err.Error(), http.StatusBadRequest)
			return
		}
		iterations = n
	}
	from := -1.0
	if v := q.Get("from"); v != "" {
		ms, err := strconv.ParseFloat(v, 64)
		if err != nil || ms < 0 {
			http.Error(w, "bad from: "+v, http.StatusBadRequest)
			return
		}
		from = ms
	}

	a.control(func(k *kapi.Kapi) {
		if from >= 0 {
			k.PlayFrom(from, iterations)
		} else {
			k.Play(iterations)
		}
	})(w, r)
}

func (a *Api) control(fn func(k *kapi.Kapi)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var s State
		if a.do(w, r, func() { fn(a.kapi); s = a.state() }) {
			writeJSON(w, s)
		}
	}
}

func (a *Api) handleFrame(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	var err error
	if !a.do(w, r, func() { err = a.opts.Snapshot.Snapshot(&buf) }) {
		return
	}
	if err != nil {
		kapi.Logger().Warn("snapshot failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		kapi.Logger().Warn("response not written", "error", err)
	}
}
