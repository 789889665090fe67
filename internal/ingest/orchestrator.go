package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/studymitra/examprep-backend/internal/content"
)

// Kind selects which content type an upload carries.
type Kind string

const (
	KindMCQ      Kind = "mcq"
	KindRevision Kind = "revision"
	KindChapters Kind = "chapters"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindMCQ, KindRevision, KindChapters:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown upload type %q", s)
}

// SkipDetail records why one input row was not persisted. Row is 1-based.
type SkipDetail struct {
	Row    int    `json:"row"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Summary aggregates one whole upload. Counts cover the entire batch;
// SkipDetails and Errors are capped at maxDetails entries.
type Summary struct {
	Inserted          int          `json:"inserted"`
	InsertedOrUpdated int          `json:"inserted_or_updated"`
	Converted         int          `json:"converted"`
	Skipped           int          `json:"skipped"`
	SkipDetails       []SkipDetail `json:"skip_details,omitempty"`
	Errors            []string     `json:"errors,omitempty"`
}

const maxDetails = 10

func (s *Summary) skip(row int, field, reason string) {
	s.Skipped++
	if len(s.SkipDetails) < maxDetails {
		s.SkipDetails = append(s.SkipDetails, SkipDetail{Row: row, Field: field, Reason: reason})
	}
}

// Service drives an upload batch end to end: optional reset, chapter-index
// build, then per record normalize → guard → write. Records are processed
// strictly in input order so later duplicate checks see earlier writes.
type Service struct {
	store content.Store
	log   *zap.Logger
}

func NewService(store content.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log}
}

// Ingest processes one upload request. A returned error is systemic (reset
// failure, index build failure) and fails the whole request; per-record
// problems only ever surface as skip counts and details.
func (s *Service) Ingest(ctx context.Context, kind Kind, records []Record, resetIDs bool) (Summary, error) {
	if resetIDs {
		if err := reset(ctx, s.store, kind); err != nil {
			return Summary{}, fmt.Errorf("reset %s: %w", kind, err)
		}
		s.log.Info("content tables reset", zap.String("kind", string(kind)))
	}

	idx, err := BuildChapterIndex(ctx, s.store)
	if err != nil {
		return Summary{}, fmt.Errorf("build chapter index: %w", err)
	}

	var sum Summary
	switch kind {
	case KindMCQ:
		sum = s.ingestMCQs(ctx, idx, records)
	case KindRevision:
		sum = s.ingestRevisions(ctx, idx, records)
	case KindChapters:
		sum = s.ingestChapters(ctx, records)
	default:
		return Summary{}, fmt.Errorf("unknown upload type %q", kind)
	}

	s.log.Info("bulk upload processed",
		zap.String("kind", string(kind)),
		zap.Int("records", len(records)),
		zap.Int("inserted", sum.Inserted+sum.InsertedOrUpdated),
		zap.Int("converted", sum.Converted),
		zap.Int("skipped", sum.Skipped))
	return sum, nil
}

func (s *Service) ingestMCQs(ctx context.Context, idx ChapterIndex, records []Record) Summary {
	var sum Summary
	for i, rec := range records {
		row := i + 1
		q, converted := NormalizeMCQ(rec)

		chapterID, reason, err := guardMCQ(ctx, s.store, idx, q)
		if err != nil {
			sum.skip(row, q.QuestionEn, err.Error())
			continue
		}
		if reason != "" {
			sum.skip(row, q.QuestionEn, reason)
			continue
		}

		q.ChapterID = chapterID
		if _, err := s.store.CreateQuestion(ctx, q); err != nil {
			// one bad row never loses the rest of the upload
			s.log.Warn("question insert failed", zap.Int("row", row), zap.Error(err))
			sum.skip(row, q.QuestionEn, err.Error())
			continue
		}
		sum.Inserted++
		if converted {
			sum.Converted++
		}
	}
	return sum
}

func (s *Service) ingestRevisions(ctx context.Context, idx ChapterIndex, records []Record) Summary {
	var sum Summary
	for i, rec := range records {
		row := i + 1
		rv := NormalizeRevision(rec)

		chapterID, reason, err := guardRevision(ctx, s.store, idx, rv)
		if err != nil {
			sum.skip(row, rv.TitleEn, err.Error())
			continue
		}
		if reason != "" {
			sum.skip(row, rv.TitleEn, reason)
			continue
		}

		rv.ChapterID = chapterID
		if _, err := s.store.CreateRevision(ctx, rv); err != nil {
			s.log.Warn("revision insert failed", zap.Int("row", row), zap.Error(err))
			sum.skip(row, rv.TitleEn, err.Error())
			continue
		}
		sum.Inserted++
		// revision uploads have no single canonical input shape, so every
		// accepted row counts as converted
		sum.Converted++
	}
	return sum
}

// ingestChapters upserts by chapter number, so "skipped" does not apply:
// rows either land (create or update) or collect a hard error.
func (s *Service) ingestChapters(ctx context.Context, records []Record) Summary {
	var sum Summary
	for i, rec := range records {
		row := i + 1
		c, ok := NormalizeChapter(rec)
		if !ok {
			sum.addError(fmt.Sprintf("row %d: missing or invalid chapterNumber", row))
			continue
		}
		if _, err := s.store.UpsertChapter(ctx, c); err != nil {
			s.log.Warn("chapter upsert failed", zap.Int("row", row), zap.Error(err))
			sum.addError(fmt.Sprintf("row %d (chapter %d): %v", row, c.ChapterNumber, err))
			continue
		}
		sum.InsertedOrUpdated++
	}
	return sum
}

func (s *Summary) addError(msg string) {
	s.Skipped++
	if len(s.Errors) < maxDetails {
		s.Errors = append(s.Errors, msg)
	}
}
