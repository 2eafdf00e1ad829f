package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/varunrevoori/harmony/internal/appointment"
	"github.com/varunrevoori/harmony/internal/availability"
)

// resolveProvider maps the authenticated provider account onto its provider
// record. Provider routes act on that record, never on an id from the URL.
func resolveProvider(svc *appointment.Service, w http.ResponseWriter, r *http.Request) (*appointment.Provider, bool) {
	actor, _ := ActorFrom(r.Context())
	provider, err := svc.ProviderForUser(r.Context(), actor.ID)
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	return provider, true
}

func providerAppointmentsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := resolveProvider(svc, w, r)
		if !ok {
			return
		}

		list, err := svc.ListProviderAppointments(r.Context(), provider.ID, listFilterFromQuery(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponses(list))
	}
}

func providerStatsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := resolveProvider(svc, w, r)
		if !ok {
			return
		}

		stats, err := svc.ProviderStats(r.Context(), provider.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func listRulesHandler(appts *appointment.Service, rules *availability.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := resolveProvider(appts, w, r)
		if !ok {
			return
		}

		list, err := rules.ListRules(r.Context(), provider.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]RuleResponse, 0, len(list))
		for i := range list {
			out = append(out, toRuleResponse(&list[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func addWindowHandler(appts *appointment.Service, rules *availability.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := resolveProvider(appts, w, r)
		if !ok {
			return
		}

		var req WindowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		rule, err := rules.UpsertWindow(r.Context(), provider.ID, req.DayOfWeek, availability.TimeWindow{
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRuleResponse(rule))
	}
}

func removeWindowHandler(appts *appointment.Service, rules *availability.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := resolveProvider(appts, w, r)
		if !ok {
			return
		}

		var req WindowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		rule, err := rules.RemoveWindow(r.Context(), provider.ID, req.DayOfWeek, availability.TimeWindow{
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRuleResponse(rule))
	}
}

func setRuleActiveHandler(appts *appointment.Service, rules *availability.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := resolveProvider(appts, w, r)
		if !ok {
			return
		}

		weekday := chi.URLParam(r, "weekday")

		var req RuleActiveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		rule, err := rules.SetActive(r.Context(), provider.ID, weekday, req.IsActive)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRuleResponse(rule))
	}
}

func addExceptionHandler(appts *appointment.Service, rules *availability.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := resolveProvider(appts, w, r)
		if !ok {
			return
		}

		var req ExceptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		date, err := parseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
			return
		}

		rule, err := rules.AddException(r.Context(), provider.ID, availability.ExceptionDate{
			Date:     date,
			Reason:   req.Reason,
			Category: availability.ExceptionCategory(req.Category),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRuleResponse(rule))
	}
}

func listExceptionsHandler(appts *appointment.Service, rules *availability.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := resolveProvider(appts, w, r)
		if !ok {
			return
		}

		q := r.URL.Query()
		from, err := parseDate(q.Get("from"))
		if err != nil {
			from = time.Now().UTC()
		}
		to, err := parseDate(q.Get("to"))
		if err != nil {
			to = from.AddDate(0, 3, 0)
		}

		exceptions, err := rules.ListExceptions(r.Context(), provider.ID, from, to)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, exceptions)
	}
}
