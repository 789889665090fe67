package ingest

import (
	"context"
	"fmt"

	"github.com/studymitra/examprep-backend/internal/content"
)

// guardMCQ validates one normalized question against the chapter index and
// already-persisted rows. It returns the resolved chapter id on acceptance,
// or a human-readable skip reason. Checks run in a fixed order so the first
// failure is the one reported.
func guardMCQ(ctx context.Context, store content.Store, idx ChapterIndex, q content.Question) (int64, string, error) {
	chapterID, ok := idx.Lookup(q.ChapterNumber)
	if !ok {
		return 0, fmt.Sprintf("Chapter %d not found", q.ChapterNumber), nil
	}
	// options C/D are collected but not required here; the source pipeline
	// only ever enforced A/B and changing that needs product sign-off
	if q.QuestionEn == "" || q.OptionAEn == "" || q.OptionBEn == "" || q.CorrectAnswer == "" {
		return 0, "Missing required fields", nil
	}
	if !validAnswer(q.CorrectAnswer) {
		return 0, fmt.Sprintf("Invalid correctAnswer %q", q.CorrectAnswer), nil
	}
	dup, err := store.QuestionExists(ctx, chapterID, q.QuestionEn)
	if err != nil {
		return 0, "", err
	}
	if dup {
		return 0, "Duplicate question", nil
	}
	return chapterID, "", nil
}

func validAnswer(a string) bool {
	switch a {
	case "A", "B", "C", "D":
		return true
	}
	return false
}

// guardRevision validates one normalized revision note.
func guardRevision(ctx context.Context, store content.Store, idx ChapterIndex, rv content.Revision) (int64, string, error) {
	// only absent/non-numeric/zero numbers are invalid here; a negative
	// number is a real lookup that fails as "not found"
	if !rv.ChapterNumberOK || rv.ChapterNumber == 0 {
		return 0, "Invalid chapterNumber", nil
	}
	chapterID, ok := idx.Lookup(rv.ChapterNumber)
	if !ok {
		return 0, fmt.Sprintf("Chapter %d not found", rv.ChapterNumber), nil
	}
	// unreachable today (the normalizer synthesizes titleEn and backfills
	// titleMr) but kept in case the fallback rules change
	if rv.TitleEn == "" || rv.TitleMr == "" {
		return 0, "Missing titleEn or titleMr", nil
	}
	dup, err := store.RevisionExists(ctx, chapterID, rv.TitleEn, rv.Order)
	if err != nil {
		return 0, "", err
	}
	if dup {
		return 0, "Duplicate revision", nil
	}
	return chapterID, "", nil
}
