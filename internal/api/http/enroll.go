package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/studymitra/examprep-backend/internal/content"
)

// POST /enrollments — records a training-course signup with its payment
// reference and issues a receipt id. Payment capture itself happens at the
// gateway; only the reference lands here.
func CreateEnrollmentHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name       string `json:"name"`
			Phone      string `json:"phone"`
			Email      string `json:"email"`
			Course     string `json:"course"`
			PaymentRef string `json:"payment_ref"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, 400, "bad json")
			return
		}
		if req.Name == "" || req.Phone == "" || req.Course == "" {
			writeError(w, 400, "name, phone and course are required")
			return
		}
		e := content.Enrollment{
			ID:         uuid.NewString(),
			Name:       req.Name,
			Phone:      req.Phone,
			Email:      req.Email,
			Course:     req.Course,
			PaymentRef: req.PaymentRef,
			CreatedAt:  time.Now().Unix(),
		}
		if err := store.CreateEnrollment(r.Context(), e); err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, 201, map[string]string{"receipt": e.ID})
	}
}

// GET /admin/enrollments
func ListEnrollmentsHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := store.ListEnrollments(r.Context())
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		if out == nil {
			out = []content.Enrollment{}
		}
		writeJSON(w, 200, out)
	}
}
