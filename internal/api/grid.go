package api

import (
	"net/http"

	"github.com/pbaille/dayplan/internal/grid"
)

// GridView is the grid state plus the counts and chart shown beside it.
// Version grows with every dispatch; the page ignores views older than the
// last one it rendered.
type GridView struct {
	grid.State
	Version     uint64         `json:"version"`
	Allocated   int            `json:"allocated"`
	Unallocated int            `json:"unallocated"`
	Labels      map[string]int `json:"labels"`
	Chart       map[string]any `json:"chart"`
}

func newGridView(snap grid.Snapshot) GridView {
	st := snap.State
	labels := make(map[string]int)
	for _, sh := range grid.Breakdown(st) {
		if sh.Name != grid.Unallocated {
			labels[sh.Name] = sh.Value
		}
	}
	if st.Slots == nil {
		st.Slots = []grid.Slot{}
	}
	return GridView{
		State:       st,
		Version:     snap.Version,
		Allocated:   grid.Allocated(st),
		Unallocated: grid.UnallocatedCount(st),
		Labels:      labels,
		Chart:       grid.ChartOption(st),
	}
}

// PaintRequest is the request body for painting a slot
type PaintRequest struct {
	Slot    int    `json:"slot"`
	Event   string `json:"event"`
	Buttons int    `json:"buttons"`
}

// SelectRequest is the request body for toggling the palette
type SelectRequest struct {
	Label string `json:"label"`
}

func (s *Server) getGrid(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newGridView(s.grid.Snapshot()))
}

func (s *Server) resetGrid(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newGridView(s.grid.Dispatch(grid.Reset{})))
}

func (s *Server) paintGrid(w http.ResponseWriter, r *http.Request) {
	var req PaintRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kind, err := grid.ParseEvent(req.Event)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	st := s.grid.Dispatch(grid.Paint{Slot: req.Slot, Event: kind, Buttons: req.Buttons})
	writeJSON(w, http.StatusOK, newGridView(st))
}

func (s *Server) selectLabel(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, newGridView(s.grid.Dispatch(grid.Select{Label: req.Label})))
}

func (s *Server) gridChart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, grid.ChartOption(s.grid.Snapshot().State))
}
