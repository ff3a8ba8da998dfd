package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	errs "github.com/matzehuels/spiderweb/pkg/errors"
	"github.com/matzehuels/spiderweb/pkg/graph"
)

type showRequest struct {
	ID *int `json:"id"`
}

func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"hi": "spiderweb"})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	g, _, err := s.loadGraph(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	var req showRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if req.ID == nil {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "missing node id"))
		return
	}

	g, name, err := s.loadGraph(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	node, ok := findNode(g, *req.ID)
	if !ok {
		s.writeError(w, r, errs.New(errs.ErrCodeNodeNotFound, "node %d not found", *req.ID))
		return
	}

	ev := OpenEvent{
		ID:     uuid.NewString(),
		NodeID: node.ID,
		Name:   node.Name,
		Kind:   node.Kind,
		Graph:  name,
		At:     time.Now().UTC(),
	}
	s.record(ev)
	s.logger.Info("open", "node", ev.NodeID, "name", ev.Name, "kind", ev.Kind, "event", ev.ID)

	if s.show != nil {
		if err := s.show(r.Context(), ev); err != nil {
			s.logger.Warn("open handler failed", "node", ev.NodeID, "err", err)
			s.writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "open %s", ev.Name))
			return
		}
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events := s.Events()
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		if n < len(events) {
			events = events[len(events)-n:]
		}
	}
	writeJSON(w, http.StatusOK, events)
}

// loadGraph loads the graph named by ?name= (or the server default) and
// fills in missing node sizes.
func (s *Server) loadGraph(r *http.Request) (graph.Graph, string, error) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = s.name
	}
	g, err := s.store.Load(r.Context(), name)
	if err != nil {
		return graph.Graph{}, name, err
	}
	return graph.Normalize(g), name, nil
}

func findNode(g graph.Graph, id int) (graph.Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return graph.Node{}, false
}

type errorResponse struct {
	Code  errs.Code `json:"code,omitempty"`
	Error string    `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.HTTPStatus(err)
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{Code: errs.GetCode(err), Error: errs.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
