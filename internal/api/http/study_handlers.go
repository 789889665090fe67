package http

import (
	"errors"
	"net/http"

	"github.com/studymitra/examprep-backend/internal/content"
)

// Student-facing study reads. Public, no auth.

// GET /chapters — active chapters in display order.
func ListChaptersHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chapters, err := store.ListChapters(r.Context())
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		out := []content.Chapter{}
		for _, c := range chapters {
			if c.IsActive && c.DisplayInApp {
				out = append(out, c)
			}
		}
		writeJSON(w, 200, out)
	}
}

// GET /chapters/{chapterNumber}/questions?reveal=true
// Answers and explanations are stripped unless reveal is set, so practice
// screens can quiz before showing the key.
func ListChapterQuestionsHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ch, err := chapterFromNumberParam(r, store)
		if err != nil {
			status := 500
			if errors.Is(err, content.ErrNotFound) {
				status = 404
			}
			writeError(w, status, "chapter not found")
			return
		}
		questions, err := store.ListQuestionsByChapter(r.Context(), ch.ID)
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		if questions == nil {
			questions = []content.Question{}
		}
		if r.URL.Query().Get("reveal") != "true" {
			for i := range questions {
				questions[i].CorrectAnswer = ""
				questions[i].ExplanationEn = ""
				questions[i].ExplanationMr = ""
			}
		}
		writeJSON(w, 200, questions)
	}
}

// GET /chapters/{chapterNumber}/revisions
func ListChapterRevisionsHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ch, err := chapterFromNumberParam(r, store)
		if err != nil {
			status := 500
			if errors.Is(err, content.ErrNotFound) {
				status = 404
			}
			writeError(w, status, "chapter not found")
			return
		}
		revisions, err := store.ListRevisionsByChapter(r.Context(), ch.ID)
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		if revisions == nil {
			revisions = []content.Revision{}
		}
		writeJSON(w, 200, revisions)
	}
}
