package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pedigraph/pedigraph/pkg/cache"
	"github.com/pedigraph/pedigraph/pkg/lineage"
	"github.com/pedigraph/pedigraph/pkg/report"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"persons":  s.store.PersonCount(),
		"families": s.store.FamilyCount(),
	})
}

func (s *Server) handlePerson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p := s.store.Person(id)
	if p == nil {
		s.writeError(w, r, lineage.ErrPersonNotFound)
		return
	}

	father, mother := s.store.Parents(id)
	resp := map[string]any{
		"person":     summarize(p),
		"occupation": p.Occupation,
		"quality":    p.Quality().String(),
	}
	if father != nil {
		resp["father"] = summarize(father)
	}
	if mother != nil {
		resp["mother"] = summarize(mother)
	}
	var children []personSummary
	for _, c := range s.store.Children(id) {
		children = append(children, summarize(c))
	}
	resp["children"] = children
	s.writeJSON(w, http.StatusOK, resp)
}

// maxGen reads the max_gen query parameter, defaulting to the server cap.
func (s *Server) maxGen(r *http.Request) int {
	if v := r.URL.Query().Get("max_gen"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return s.opts.MaxGen
}

func (s *Server) handleAncestors(w http.ResponseWriter, r *http.Request) {
	enum, err := lineage.EnumerateAncestors(s.store, chi.URLParam(r, "id"), s.maxGen(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	type ancestorResp struct {
		Person     personSummary `json:"person"`
		Generation int           `json:"generation"`
		Path       string        `json:"path"`
		Line       string        `json:"line"`
	}
	resp := struct {
		Root          personSummary  `json:"root"`
		MaxGen        int            `json:"max_generations"`
		CycleDetected bool           `json:"cycle_detected,omitempty"`
		Ancestors     []ancestorResp `json:"ancestors"`
	}{Root: summarize(enum.Root), MaxGen: enum.MaxGen, CycleDetected: enum.CycleDetected}
	for _, rec := range enum.Records {
		resp.Ancestors = append(resp.Ancestors, ancestorResp{
			Person:     summarize(rec.Person),
			Generation: rec.Generation,
			Path:       rec.Path.String(),
			Line:       rec.Path.LineLabel(),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCOI(w http.ResponseWriter, r *http.Request) {
	result, err := lineage.Consanguinity(s.store, chi.URLParam(r, "id"), s.maxGen(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	type contribution struct {
		Ancestor personSummary `json:"ancestor"`
		Paths    int           `json:"independent_paths"`
		Value    float64       `json:"contribution"`
	}
	resp := struct {
		Person          personSummary  `json:"person"`
		Outcome         string         `json:"outcome"`
		COI             float64        `json:"coi"`
		Percent         float64        `json:"coi_percent"`
		Classification  string         `json:"classification"`
		MaxGen          int            `json:"max_generations"`
		CycleDetected   bool           `json:"cycle_detected,omitempty"`
		CommonAncestors []contribution `json:"common_ancestors,omitempty"`
	}{
		Person:         summarize(result.Person),
		Outcome:        result.Outcome.String(),
		COI:            result.COI,
		Percent:        result.Percent(),
		Classification: result.Classification,
		MaxGen:         result.MaxGen,
		CycleDetected:  result.CycleDetected,
	}
	for _, c := range result.CommonAncestors {
		resp.CommonAncestors = append(resp.CommonAncestors, contribution{
			Ancestor: summarize(c.Ancestor),
			Paths:    len(c.Pairs),
			Value:    c.Value,
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDescendants(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p := s.store.Person(id)
	if p == nil {
		s.writeError(w, r, lineage.ErrPersonNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"person":      summarize(p),
		"descendants": lineage.CountDescendants(s.store, id),
	})
}

func (s *Server) handleBrickWalls(w http.ResponseWriter, r *http.Request) {
	root := r.URL.Query().Get("root")
	maxGen := s.maxGen(r)

	key := cache.QueryKey(s.opts.TreeHash, "brickwalls", root, maxGen)
	if s.serveCached(w, r, key) {
		return
	}

	rep, err := lineage.FindLineTerminals(s.store, root, maxGen, s.opts.Thresholds)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	type terminalResp struct {
		Person      personSummary `json:"person"`
		Generation  int           `json:"generation"`
		Path        string        `json:"path,omitempty"`
		Line        string        `json:"line,omitempty"`
		Descendants int           `json:"descendants"`
		Quality     string        `json:"quality"`
		Priority    int           `json:"priority"`
	}
	resp := struct {
		TotalPersons   int            `json:"total_persons"`
		WithParents    int            `json:"with_parents"`
		WithoutParents int            `json:"without_parents"`
		CycleDetected  bool           `json:"cycle_detected,omitempty"`
		Terminals      []terminalResp `json:"terminals"`
	}{
		TotalPersons:   rep.TotalPersons,
		WithParents:    rep.WithParents,
		WithoutParents: rep.WithoutParents,
		CycleDetected:  rep.CycleDetected,
	}
	for _, t := range rep.Terminals {
		resp.Terminals = append(resp.Terminals, terminalResp{
			Person:      summarize(t.Person),
			Generation:  t.Generation,
			Path:        t.Path.String(),
			Line:        t.Line,
			Descendants: t.Descendants,
			Quality:     t.Quality.String(),
			Priority:    t.Priority,
		})
	}
	s.writeCached(w, r, key, resp)
}

func (s *Server) handleInbreedingReport(w http.ResponseWriter, r *http.Request) {
	maxGen := s.maxGen(r)
	key := cache.QueryKey(s.opts.TreeHash, "inbreeding", maxGen)
	if s.serveCached(w, r, key) {
		return
	}

	survey, err := report.SurveyInbreeding(s.store, maxGen)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	type marriageResp struct {
		Husband        personSummary `json:"husband"`
		Wife           personSummary `json:"wife"`
		COI            float64       `json:"coi"`
		Level          string        `json:"level"`
		Classification string        `json:"classification"`
	}
	resp := struct {
		FamiliesTotal int            `json:"families_total"`
		Related       int            `json:"related_marriages"`
		MeanCOI       float64        `json:"mean_coi"`
		MaxCOI        float64        `json:"max_coi"`
		Marriages     []marriageResp `json:"marriages"`
	}{
		FamiliesTotal: survey.FamiliesTotal,
		Related:       len(survey.Marriages),
		MeanCOI:       survey.MeanCOI,
		MaxCOI:        survey.MaxCOI,
	}
	for _, m := range survey.Marriages {
		resp.Marriages = append(resp.Marriages, marriageResp{
			Husband:        summarize(m.Husband),
			Wife:           summarize(m.Wife),
			COI:            m.Result.COI,
			Level:          m.Level.String(),
			Classification: m.Result.Classification,
		})
	}
	s.writeCached(w, r, key, resp)
}

func (s *Server) handleLifespanReport(w http.ResponseWriter, r *http.Request) {
	key := cache.QueryKey(s.opts.TreeHash, "lifespan")
	if s.serveCached(w, r, key) {
		return
	}
	s.writeCached(w, r, key, report.SurveyLifespans(s.store))
}

// serveCached writes a previously memoized response for key, reporting
// whether it did. Cache failures degrade to recomputation.
func (s *Server) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	data, ok, err := s.opts.Cache.Get(r.Context(), key)
	if err != nil {
		s.logger.Warnf("cache get: %v", err)
		return false
	}
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "hit")
	_, _ = w.Write(data)
	return true
}

// writeCached sends the response and memoizes its encoding under key.
func (s *Server) writeCached(w http.ResponseWriter, r *http.Request, key string, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.opts.Cache.Set(r.Context(), key, data, s.opts.CacheTTL); err != nil {
		s.logger.Warnf("cache set: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
