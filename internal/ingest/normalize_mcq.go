package ingest

import (
	"strings"

	"github.com/studymitra/examprep-backend/internal/content"
)

// NormalizeMCQ maps one loosely-shaped upload row to the canonical question
// shape. Pure and total: absent or malformed fields degrade to safe defaults
// and the guard decides acceptance. The second return reports whether any
// structural conversion (nested bilingual object, positional options array)
// happened, beyond plain key aliasing.
func NormalizeMCQ(rec Record) (content.Question, bool) {
	converted := false

	q := content.Question{
		ChapterNumber: rec.intOr(1, "chapterNumber", "chapter", "chapterNo", "chapterId", "ch"),
	}

	if v, ok := rec.raw("question"); ok {
		if en, mr, isObj := bilingual(v); isObj {
			q.QuestionEn, q.QuestionMr = en, mr
			converted = true
		}
	}
	if q.QuestionEn == "" {
		q.QuestionEn = rec.str("questionEn", "question", "q", "questionText", "text")
	}
	if q.QuestionMr == "" {
		q.QuestionMr = rec.str("questionMr", "questionMarathi", "qMr")
	}

	if normalizeOptions(rec, &q) {
		converted = true
	}

	q.CorrectAnswer = normalizeAnswer(rec.str("correctAnswer", "correct", "answer", "ans"))
	q.Difficulty = normalizeDifficulty(rec.str("difficulty", "level"))

	if v, ok := rec.raw("explanation"); ok {
		if en, mr, isObj := bilingual(v); isObj {
			q.ExplanationEn, q.ExplanationMr = en, mr
			converted = true
		}
	}
	if q.ExplanationEn == "" {
		q.ExplanationEn = rec.str("explanationEn", "explanation", "solution", "solutionEn")
	}
	if q.ExplanationMr == "" {
		q.ExplanationMr = rec.str("explanationMr", "explanationMarathi", "solutionMr")
	}

	return q, converted
}

// normalizeOptions fills the four option pairs from any of the three accepted
// shapes and reports whether a structural conversion occurred.
func normalizeOptions(rec Record, q *content.Question) bool {
	letters := []struct {
		en *string
		mr *string
	}{
		{&q.OptionAEn, &q.OptionAMr},
		{&q.OptionBEn, &q.OptionBMr},
		{&q.OptionCEn, &q.OptionCMr},
		{&q.OptionDEn, &q.OptionDMr},
	}

	if v, ok := rec.raw("options"); ok {
		switch opts := v.(type) {
		case []any:
			// positional array: [0]→A ... [3]→D, English only
			for i, slot := range letters {
				if i < len(opts) {
					*slot.en = asString(opts[i])
				}
			}
			return true
		case map[string]any:
			converted := false
			keys := []string{"A", "B", "C", "D"}
			for i, slot := range letters {
				ov, ok := Record(opts).raw(keys[i], strings.ToLower(keys[i]))
				if !ok {
					continue
				}
				if en, mr, isObj := bilingual(ov); isObj {
					*slot.en, *slot.mr = en, mr
					converted = true
				} else {
					*slot.en = asString(ov)
				}
			}
			return converted
		}
	}

	// flat suffixed aliases
	q.OptionAEn = rec.str("optionAEn", "optionA", "a", "option1")
	q.OptionBEn = rec.str("optionBEn", "optionB", "b", "option2")
	q.OptionCEn = rec.str("optionCEn", "optionC", "c", "option3")
	q.OptionDEn = rec.str("optionDEn", "optionD", "d", "option4")
	q.OptionAMr = rec.str("optionAMr", "optionAMarathi", "aMr")
	q.OptionBMr = rec.str("optionBMr", "optionBMarathi", "bMr")
	q.OptionCMr = rec.str("optionCMr", "optionCMarathi", "cMr")
	q.OptionDMr = rec.str("optionDMr", "optionDMarathi", "dMr")
	return false
}

// normalizeAnswer maps numeric answers 1-4 to A-D and uppercases letters.
// Unrecognized values pass through uppercased; the guard and the storage
// constraint bound the domain downstream.
func normalizeAnswer(v string) string {
	switch strings.TrimSpace(v) {
	case "1":
		return "A"
	case "2":
		return "B"
	case "3":
		return "C"
	case "4":
		return "D"
	}
	return strings.ToUpper(strings.TrimSpace(v))
}

// normalizeDifficulty is deliberately lossy: anything not recognizably easy
// or hard becomes MODERATE.
func normalizeDifficulty(v string) string {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "EASY", "1":
		return "EASY"
	case "HARD", "DIFFICULT", "3":
		return "HARD"
	default:
		return "MODERATE"
	}
}
