package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/blocksnap/pkg/errors"
	"github.com/matzehuels/blocksnap/pkg/geom"
	"github.com/matzehuels/blocksnap/pkg/render/nodelink"
	"github.com/matzehuels/blocksnap/pkg/render/snapshot"
	"github.com/matzehuels/blocksnap/pkg/scenario"
)

type blockState struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Position geom.Point `json:"position"`
	Parent   string     `json:"parent,omitempty"`
	Faded    bool       `json:"faded,omitempty"`
}

type stateResponse struct {
	State  scenario.State `json:"state"`
	Blocks []blockState   `json:"blocks"`
}

type beginRequest struct {
	BlockID string `json:"blockId"`
}

type moveRequest struct {
	DX   float64 `json:"dx"`
	DY   float64 `json:"dy"`
	Over string  `json:"over,omitempty"`
}

// snapshotLocked describes the world. s.mu must be held.
func (s *Server) snapshotLocked(st scenario.State) stateResponse {
	resp := stateResponse{State: st, Blocks: []blockState{}}
	for _, b := range s.world.Workspace.Blocks() {
		bs := blockState{ID: b.ID(), Type: b.Type(), Position: b.Position(), Faded: b.Faded()}
		if p := b.Parent(); p != nil {
			bs.Parent = p.ID()
		}
		resp.Blocks = append(resp.Blocks, bs)
	}
	return resp
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.snapshotLocked(s.world.State()))
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.world.Workspace.Events().Events())
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	dot := nodelink.ToDOT(s.world.Workspace, nodelink.Options{Markers: true, Detailed: r.URL.Query().Has("detailed")})
	s.mu.Unlock()
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = io.WriteString(w, dot)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	dot := nodelink.ToDOT(s.world.Workspace, nodelink.Options{Markers: true})
	s.mu.Unlock()
	svg, hit, err := nodelink.RenderSVGCached(r.Context(), s.opts.Cache, dot)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Cache", cacheStatus(hit))
	_, _ = w.Write(svg)
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	png, err := snapshot.RenderPNG(s.world.Workspace, s.world.SnapshotOptions())
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reset(); err != nil {
		s.writeError(w, err)
		return
	}
	resp := s.snapshotLocked(s.world.State())
	s.publishLocked(resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBegin(w http.ResponseWriter, r *http.Request) {
	var req beginRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.BlockID == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "blockId is required"))
		return
	}
	s.apply(w, scenario.Step{Begin: req.BlockID})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.apply(w, scenario.Step{Move: []float64{req.DX, req.DY}, Over: req.Over})
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	s.apply(w, scenario.Step{End: true})
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	s.apply(w, scenario.Step{Cancel: true})
}

// apply runs one step. A fatal drag error abandons the drag so the next
// request starts from a consistent workspace.
func (s *Server) apply(w http.ResponseWriter, step scenario.Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if step.Over != "" {
		if _, ok := s.world.Area(step.Over); !ok {
			s.writeError(w, errors.New(errors.ErrCodeNotFound, "no area %q", step.Over))
			return
		}
	}
	st, err := s.world.Apply(step)
	if err != nil {
		if errors.IsFatal(err) {
			if cerr := s.world.Controller.Cancel(); cerr != nil {
				s.logger.Warn("cancel after failure", "err", cerr)
			}
		}
		s.writeError(w, err)
		return
	}
	resp := s.snapshotLocked(st)
	s.publishLocked(resp)
	writeJSON(w, http.StatusOK, resp)
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "request body holds more than one JSON value")
	}
	return nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
