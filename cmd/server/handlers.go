package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/budget"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/estimate"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/history"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/pricing"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/settings"
)

const maxBodyBytes = 1 << 20

func (s *server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats := estimate.Categories()
	out := make([]categoryView, len(cats))
	for i, c := range cats {
		out[i] = categoryView{Slug: string(c), Label: c.Label(), SupportsLabor: c.SupportsLabor()}
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *server) handleEstimatePreview(w http.ResponseWriter, r *http.Request) {
	item, ok := s.estimateFromRequest(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.itemView(item))
}

func (s *server) handleBudget(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.budgetView())
}

type nameRequest struct {
	Name string `json:"name"`
}

func (s *server) handleBudgetRename(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.budget.SetProjectName(req.Name)
	s.writeJSON(w, http.StatusOK, s.budgetView())
}

func (s *server) handleBudgetAddItem(w http.ResponseWriter, r *http.Request) {
	item, ok := s.estimateFromRequest(w, r)
	if !ok {
		return
	}
	s.budget.Add(item)
	s.writeJSON(w, http.StatusCreated, s.budgetView())
}

func (s *server) handleBudgetRemoveItem(w http.ResponseWriter, r *http.Request) {
	s.budget.Remove(chi.URLParam(r, "id"))
	s.writeJSON(w, http.StatusOK, s.budgetView())
}

func (s *server) handleBudgetClear(w http.ResponseWriter, r *http.Request) {
	s.budget.Clear()
	s.writeJSON(w, http.StatusOK, s.budgetView())
}

func (s *server) handleBudgetSave(w http.ResponseWriter, r *http.Request) {
	saved, err := s.budget.Save(s.history)
	if errors.Is(err, budget.ErrEmptyBudget) {
		s.writeError(w, http.StatusConflict, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !s.history.LastSaveSucceeded() {
		s.log.Warn("budget saved in memory only", "id", saved.ID)
	}
	s.writeJSON(w, http.StatusOK, saveResultView{
		Budget:    s.savedBudgetView(saved),
		Persisted: s.history.LastSaveSucceeded(),
	})
}

func (s *server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.savedBudgetViews(s.history.Search(r.URL.Query().Get("q"))))
}

func (s *server) handleHistoryStats(w http.ResponseWriter, r *http.Request) {
	st := s.history.Stats()
	code := s.currency()
	s.writeJSON(w, http.StatusOK, statsView{
		Stats:                 st,
		FormattedTotalValue:   pricing.FormatCurrency(st.TotalValue, code),
		FormattedAverageValue: pricing.FormatCurrency(st.AverageValue, code),
	})
}

func (s *server) handleHistoryLoad(w http.ResponseWriter, r *http.Request) {
	entry, err := s.history.Load(chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.budget.Load(entry)
	s.writeJSON(w, http.StatusOK, s.budgetView())
}

// handleHistoryDuplicate copies the entry and opens the copy in the session.
func (s *server) handleHistoryDuplicate(w http.ResponseWriter, r *http.Request) {
	dup, err := s.history.Duplicate(chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.budget.Load(dup)
	s.writeJSON(w, http.StatusCreated, saveResultView{
		Budget:    s.savedBudgetView(dup),
		Persisted: s.history.LastSaveSucceeded(),
	})
}

func (s *server) handleHistoryRename(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.history.Rename(id, req.Name); err != nil {
		s.writeStoreError(w, err)
		return
	}
	entry, err := s.history.Load(id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if current, ok := s.budget.CurrentBudgetID(); ok && current == id {
		s.budget.SetProjectName(entry.Name)
	}
	s.writeJSON(w, http.StatusOK, s.savedBudgetView(entry))
}

func (s *server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	if !s.history.Delete(chi.URLParam(r, "id")) {
		s.writeError(w, http.StatusNotFound, history.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleHistoryDeleteAll(w http.ResponseWriter, r *http.Request) {
	s.history.DeleteAll()
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleSettings(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.settingsView())
}

func (s *server) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var patch settings.Patch
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	s.settings.Update(patch)
	s.writeJSON(w, http.StatusOK, s.settingsView())
}

func (s *server) handleSettingsReset(w http.ResponseWriter, r *http.Request) {
	s.settings.Reset()
	s.writeJSON(w, http.StatusOK, s.settingsView())
}

// estimateFromRequest runs the estimator named by the {category} URL param
// against the JSON form in the body. It writes the error response itself.
func (s *server) estimateFromRequest(w http.ResponseWriter, r *http.Request) (estimate.CalculationItem, bool) {
	category, err := estimate.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return estimate.CalculationItem{}, false
	}

	var raw map[string]any
	if !s.decodeJSON(w, r, &raw) {
		return estimate.CalculationItem{}, false
	}
	form, err := formFromJSON(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return estimate.CalculationItem{}, false
	}

	item, err := s.estimator.Estimate(category, form)
	if errors.Is(err, estimate.ErrIncompleteInput) {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return estimate.CalculationItem{}, false
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return estimate.CalculationItem{}, false
	}
	return item, true
}

// formFromJSON accepts form values as JSON strings or numbers.
func formFromJSON(raw map[string]any) (estimate.Form, error) {
	form := make(estimate.Form, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			form[k] = val
		case float64:
			form[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case nil:
		default:
			return nil, fmt.Errorf("field %q must be a string or a number", k)
		}
	}
	return form, nil
}

func (s *server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON body: %w", err))
		return false
	}
	return true
}

// writeJSON encodes before writing the header so an unencodable value turns
// into a 500 instead of a truncated body.
func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.log.Error("encode response", "status", status, "err", err)
		body, status = []byte(`{"error":"internal error"}`), http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		s.log.Debug("write response", "err", err)
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorView{Error: err.Error()})
}

func (s *server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, history.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeError(w, http.StatusInternalServerError, err)
}
