package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pedigraph/pedigraph/pkg/lineage"
	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warnf("encode response: %v", err)
	}
}

// writeError maps domain errors to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, lineage.ErrPersonNotFound):
		status = http.StatusNotFound
	case errors.Is(err, lineage.ErrGenerationsOutOfRange):
		status = http.StatusBadRequest
	}
	s.writeJSON(w, status, errorBody{Error: err.Error(), RequestID: requestIDFrom(r.Context())})
}

// personSummary is the compact person representation used in responses.
type personSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Sex       string `json:"sex"`
	BirthYear int    `json:"birth_year,omitempty"`
	DeathYear int    `json:"death_year,omitempty"`
	Place     string `json:"birth_place,omitempty"`
}

func summarize(p *pedigree.Person) personSummary {
	return personSummary{
		ID:        p.ID,
		Name:      p.Name,
		Sex:       p.Sex.String(),
		BirthYear: p.Birth.YearOrZero(),
		DeathYear: p.Death.YearOrZero(),
		Place:     p.BirthPlace,
	}
}
