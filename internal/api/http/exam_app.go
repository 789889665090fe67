package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/studymitra/examprep-backend/internal/content"
)

// ExamAppConfig carries the details printed on practice admit cards.
type ExamAppConfig struct {
	ExamDate string
	Centre   string
}

// POST /exam-applications — stores the applicant and issues a practice admit
// card number.
func CreateExamApplicationHandler(store content.Store, cfg ExamAppConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name     string `json:"name"`
			Phone    string `json:"phone"`
			Email    string `json:"email"`
			Language string `json:"language"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, 400, "bad json")
			return
		}
		if req.Name == "" || req.Phone == "" {
			writeError(w, 400, "name and phone are required")
			return
		}
		if req.Language != "mr" {
			req.Language = "en"
		}

		id := uuid.NewString()
		app := content.ExamApplication{
			ID:         id,
			CardNumber: cardNumber(id),
			Name:       req.Name,
			Phone:      req.Phone,
			Email:      req.Email,
			Language:   req.Language,
			ExamDate:   cfg.ExamDate,
			Centre:     cfg.Centre,
			CreatedAt:  time.Now().Unix(),
		}
		if err := store.CreateExamApplication(r.Context(), app); err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, 201, app)
	}
}

// GET /exam-applications/{card}
func GetAdmitCardHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		card := chi.URLParam(r, "card")
		app, err := store.GetExamApplicationByCard(r.Context(), card)
		if err != nil {
			if errors.Is(err, content.ErrNotFound) {
				writeError(w, 404, "admit card not found")
				return
			}
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, app)
	}
}

// cardNumber derives a short printable admit-card number from the
// application id.
func cardNumber(id string) string {
	compact := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	return "MOCK-" + compact[:10]
}
