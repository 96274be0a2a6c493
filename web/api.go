package web

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"sparkmeals/services"

	"github.com/gorilla/mux"
)

const maxRequestBody = 1 << 20

// send relays an order confirmation to the WhatsApp API.
func (s *Server) send(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Unauthorized"})
		return
	}

	var req services.SendRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}

	result, err := s.relay.Send(r.Context(), req)
	if err != nil {
		status, body := s.relayError(err)
		writeJSON(w, status, body)
		return
	}
	s.metrics.WhatsAppSends.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"data":      result.Data,
		"reference": result.Reference,
	})
}

// relayError maps a relay failure to a status code and JSON body.
func (s *Server) relayError(err error) (int, map[string]any) {
	if errors.Is(err, services.ErrMissingFields) {
		return http.StatusBadRequest, map[string]any{"error": "Missing required fields"}
	}
	if errors.Is(err, services.ErrInvalidOrder) {
		return http.StatusBadRequest, map[string]any{"error": "Invalid order details"}
	}
	var upstream *services.UpstreamError
	if errors.As(err, &upstream) {
		s.metrics.WhatsAppSends.WithLabelValues("upstream_error").Inc()
		return upstream.Status, map[string]any{
			"error":   "Failed to send WhatsApp message",
			"details": upstream.Details,
		}
	}
	s.metrics.WhatsAppSends.WithLabelValues("error").Inc()
	return http.StatusInternalServerError, map[string]any{"error": "Internal server error"}
}

// authorized requires "Bearer <secret>"; an unset secret rejects everything.
func (s *Server) authorized(r *http.Request) bool {
	if s.secret == "" {
		return false
	}
	got := r.Header.Get("Authorization")
	want := "Bearer " + s.secret
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func (s *Server) listMeals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, services.FilterMeals(q.Get("q"), q.Get("category")))
}

func (s *Server) getMeal(w http.ResponseWriter, r *http.Request) {
	meal, ok := services.GetMealByIDString(mux.Vars(r)["id"])
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Meal not found"})
		return
	}
	writeJSON(w, http.StatusOK, meal)
}
