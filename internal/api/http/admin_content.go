package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/studymitra/examprep-backend/internal/content"
)

// Admin CRUD over chapters, questions and revision notes. These are thin
// handlers; all bulk reconciliation goes through the ingest service instead.

func ListChaptersAdminHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chapters, err := store.ListChapters(r.Context())
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		if chapters == nil {
			chapters = []content.Chapter{}
		}
		writeJSON(w, 200, chapters)
	}
}

func UpsertChapterHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c content.Chapter
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			writeError(w, 400, "bad json")
			return
		}
		if c.ChapterNumber <= 0 || c.TitleEn == "" {
			writeError(w, 400, "chapter_number and title_en are required")
			return
		}
		created, err := store.UpsertChapter(r.Context(), c)
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, map[string]any{"created": created})
	}
}

func DeleteChapterHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, 400, "bad id")
			return
		}
		if err := store.DeleteChapter(r.Context(), id); err != nil {
			writeError(w, 500, err.Error())
			return
		}
		w.WriteHeader(204)
	}
}

func CreateQuestionHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q content.Question
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			writeError(w, 400, "bad json")
			return
		}
		if q.ChapterID == 0 && q.ChapterNumber > 0 {
			ch, err := store.GetChapterByNumber(r.Context(), q.ChapterNumber)
			if err != nil {
				writeError(w, 400, "chapter not found")
				return
			}
			q.ChapterID = ch.ID
		}
		if q.ChapterID == 0 || q.QuestionEn == "" || q.CorrectAnswer == "" {
			writeError(w, 400, "chapter, question_en and correct_answer are required")
			return
		}
		id, err := store.CreateQuestion(r.Context(), q)
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, 201, map[string]any{"id": id})
	}
}

func DeleteQuestionHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, 400, "bad id")
			return
		}
		if err := store.DeleteQuestion(r.Context(), id); err != nil {
			writeError(w, 500, err.Error())
			return
		}
		w.WriteHeader(204)
	}
}

func CreateRevisionHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rv content.Revision
		if err := json.NewDecoder(r.Body).Decode(&rv); err != nil {
			writeError(w, 400, "bad json")
			return
		}
		if rv.ChapterID == 0 && rv.ChapterNumber > 0 {
			ch, err := store.GetChapterByNumber(r.Context(), rv.ChapterNumber)
			if err != nil {
				writeError(w, 400, "chapter not found")
				return
			}
			rv.ChapterID = ch.ID
		}
		if rv.ChapterID == 0 || rv.TitleEn == "" {
			writeError(w, 400, "chapter and title_en are required")
			return
		}
		if rv.TitleMr == "" {
			rv.TitleMr = rv.TitleEn
		}
		id, err := store.CreateRevision(r.Context(), rv)
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, 201, map[string]any{"id": id})
	}
}

// PATCH /admin/revisions/{id}/media — the bulk converter never carries
// image/video URLs, only the admin screen sets them.
func UpdateRevisionMediaHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, 400, "bad id")
			return
		}
		var req struct {
			ImageURL string `json:"image_url"`
			VideoURL string `json:"video_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, 400, "bad json")
			return
		}
		if err := store.UpdateRevisionMedia(r.Context(), id, req.ImageURL, req.VideoURL); err != nil {
			writeError(w, 500, err.Error())
			return
		}
		w.WriteHeader(204)
	}
}

func DeleteRevisionHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, 400, "bad id")
			return
		}
		if err := store.DeleteRevision(r.Context(), id); err != nil {
			writeError(w, 500, err.Error())
			return
		}
		w.WriteHeader(204)
	}
}

func chapterFromNumberParam(r *http.Request, store content.Store) (content.Chapter, error) {
	n, err := strconv.Atoi(chi.URLParam(r, "chapterNumber"))
	if err != nil {
		return content.Chapter{}, content.ErrNotFound
	}
	return store.GetChapterByNumber(r.Context(), n)
}
