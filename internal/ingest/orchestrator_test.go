package ingest_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymitra/examprep-backend/internal/content"
	"github.com/studymitra/examprep-backend/internal/ingest"
)

/* ---------------- in-memory fake satisfying content.Store ---------------- */

type fakeStore struct {
	chapters    []content.Chapter
	questions   []content.Question
	revisions   []content.Revision
	questionSeq int64
	revisionSeq int64
	chapterSeq  int64

	failCreateQuestion map[string]error // questionEn -> error
	resetErr           error
	resetCalls         [][]string
}

func newFakeStore(chapters ...content.Chapter) *fakeStore {
	s := &fakeStore{failCreateQuestion: map[string]error{}}
	for _, c := range chapters {
		s.chapterSeq++
		c.ID = s.chapterSeq
		s.chapters = append(s.chapters, c)
	}
	return s
}

func (s *fakeStore) ListChapters(ctx context.Context) ([]content.Chapter, error) {
	return append([]content.Chapter(nil), s.chapters...), nil
}

func (s *fakeStore) GetChapterByNumber(ctx context.Context, number int) (content.Chapter, error) {
	for _, c := range s.chapters {
		if c.ChapterNumber == number {
			return c, nil
		}
	}
	return content.Chapter{}, content.ErrNotFound
}

func (s *fakeStore) UpsertChapter(ctx context.Context, c content.Chapter) (bool, error) {
	for i, old := range s.chapters {
		if old.ChapterNumber == c.ChapterNumber {
			c.ID = old.ID
			s.chapters[i] = c
			return false, nil
		}
	}
	s.chapterSeq++
	c.ID = s.chapterSeq
	s.chapters = append(s.chapters, c)
	return true, nil
}

func (s *fakeStore) DeleteChapter(ctx context.Context, id int64) error {
	for i, c := range s.chapters {
		if c.ID == id {
			s.chapters = append(s.chapters[:i], s.chapters[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakeStore) CreateQuestion(ctx context.Context, q content.Question) (int64, error) {
	if err, ok := s.failCreateQuestion[q.QuestionEn]; ok {
		return 0, err
	}
	s.questionSeq++
	q.ID = s.questionSeq
	s.questions = append(s.questions, q)
	return q.ID, nil
}

func (s *fakeStore) QuestionExists(ctx context.Context, chapterID int64, questionEn string) (bool, error) {
	for _, q := range s.questions {
		if q.ChapterID == chapterID && q.QuestionEn == questionEn {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) ListQuestionsByChapter(ctx context.Context, chapterID int64) ([]content.Question, error) {
	var out []content.Question
	for _, q := range s.questions {
		if q.ChapterID == chapterID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *fakeStore) DeleteQuestion(ctx context.Context, id int64) error { return nil }

func (s *fakeStore) CreateRevision(ctx context.Context, rv content.Revision) (int64, error) {
	s.revisionSeq++
	rv.ID = s.revisionSeq
	s.revisions = append(s.revisions, rv)
	return rv.ID, nil
}

func (s *fakeStore) RevisionExists(ctx context.Context, chapterID int64, titleEn string, order int) (bool, error) {
	for _, rv := range s.revisions {
		if rv.ChapterID == chapterID && rv.TitleEn == titleEn && rv.Order == order {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) ListRevisionsByChapter(ctx context.Context, chapterID int64) ([]content.Revision, error) {
	return nil, nil
}

func (s *fakeStore) UpdateRevisionMedia(ctx context.Context, id int64, imageURL, videoURL string) error {
	return nil
}

func (s *fakeStore) DeleteRevision(ctx context.Context, id int64) error { return nil }

func (s *fakeStore) Reset(ctx context.Context, tables ...string) error {
	if s.resetErr != nil {
		return s.resetErr
	}
	s.resetCalls = append(s.resetCalls, tables)
	for _, t := range tables {
		switch t {
		case content.TableQuestions:
			s.questions, s.questionSeq = nil, 0
		case content.TableRevisions:
			s.revisions, s.revisionSeq = nil, 0
		case content.TableChapters:
			s.chapters, s.chapterSeq = nil, 0
		}
	}
	return nil
}

func (s *fakeStore) CreateEnrollment(ctx context.Context, e content.Enrollment) error { return nil }
func (s *fakeStore) ListEnrollments(ctx context.Context) ([]content.Enrollment, error) {
	return nil, nil
}
func (s *fakeStore) CreateExamApplication(ctx context.Context, a content.ExamApplication) error {
	return nil
}
func (s *fakeStore) GetExamApplicationByCard(ctx context.Context, card string) (content.ExamApplication, error) {
	return content.ExamApplication{}, content.ErrNotFound
}

/* ---------------- helpers ---------------- */

func chapter(n int, title string) content.Chapter {
	return content.Chapter{ChapterNumber: n, TitleEn: title, IsActive: true, DisplayInApp: true}
}

func mcqRecord(chapterNumber int, question string) ingest.Record {
	return ingest.Record{
		"chapterNumber": float64(chapterNumber),
		"questionEn":    question,
		"optionAEn":     "opt a",
		"optionBEn":     "opt b",
		"optionCEn":     "opt c",
		"optionDEn":     "opt d",
		"correctAnswer": "A",
	}
}

/* ---------------- tests ---------------- */

func TestIngestMCQIdempotentReupload(t *testing.T) {
	store := newFakeStore(chapter(1, "Introduction"))
	svc := ingest.NewService(store, nil)

	batch := []ingest.Record{
		mcqRecord(1, "What is RERA?"),
		mcqRecord(1, "Who appoints the authority?"),
		mcqRecord(1, "What is a promoter?"),
	}

	sum, err := svc.Ingest(context.Background(), ingest.KindMCQ, batch, false)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Inserted)
	assert.Equal(t, 0, sum.Skipped)

	sum, err = svc.Ingest(context.Background(), ingest.KindMCQ, batch, false)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Inserted)
	assert.Equal(t, 3, sum.Skipped)
	for _, d := range sum.SkipDetails {
		assert.Equal(t, "Duplicate question", d.Reason)
	}
}

func TestIngestMCQDuplicateWithinBatch(t *testing.T) {
	store := newFakeStore(chapter(1, "Introduction"))
	svc := ingest.NewService(store, nil)

	sum, err := svc.Ingest(context.Background(), ingest.KindMCQ, []ingest.Record{
		mcqRecord(1, "Same question"),
		mcqRecord(1, "Same question"),
	}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Inserted)
	assert.Equal(t, 1, sum.Skipped)
	require.Len(t, sum.SkipDetails, 1)
	assert.Equal(t, 2, sum.SkipDetails[0].Row)
	assert.Equal(t, "Duplicate question", sum.SkipDetails[0].Reason)
}

func TestIngestMCQChapterNotFoundIsolation(t *testing.T) {
	store := newFakeStore(chapter(1, "Introduction"))
	svc := ingest.NewService(store, nil)

	batch := []ingest.Record{
		mcqRecord(1, "q1"),
		mcqRecord(1, "q2"),
		mcqRecord(99, "q3"),
		mcqRecord(1, "q4"),
		mcqRecord(1, "q5"),
	}
	sum, err := svc.Ingest(context.Background(), ingest.KindMCQ, batch, false)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Inserted)
	assert.Equal(t, 1, sum.Skipped)
	require.Len(t, sum.SkipDetails, 1)
	assert.Equal(t, 3, sum.SkipDetails[0].Row)
	assert.Equal(t, "Chapter 99 not found", sum.SkipDetails[0].Reason)
}

func TestIngestMCQMissingRequiredFields(t *testing.T) {
	store := newFakeStore(chapter(1, "Introduction"))
	svc := ingest.NewService(store, nil)

	rec := mcqRecord(1, "no option b")
	delete(rec, "optionBEn")
	sum, err := svc.Ingest(context.Background(), ingest.KindMCQ, []ingest.Record{rec}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Inserted)
	require.Len(t, sum.SkipDetails, 1)
	assert.Equal(t, "Missing required fields", sum.SkipDetails[0].Reason)
}

// Options C and D have never been required by the upload checks, only A and
// B. That asymmetry is load-bearing for existing curriculum sheets.
func TestIngestMCQOptionsCDNotRequired(t *testing.T) {
	store := newFakeStore(chapter(1, "Introduction"))
	svc := ingest.NewService(store, nil)

	rec := mcqRecord(1, "true/false style")
	delete(rec, "optionCEn")
	delete(rec, "optionDEn")
	sum, err := svc.Ingest(context.Background(), ingest.KindMCQ, []ingest.Record{rec}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Inserted)
	assert.Equal(t, 0, sum.Skipped)
}

func TestIngestMCQPersistErrorDoesNotAbortBatch(t *testing.T) {
	store := newFakeStore(chapter(1, "Introduction"))
	store.failCreateQuestion["boom"] = errors.New("constraint violation")
	svc := ingest.NewService(store, nil)

	sum, err := svc.Ingest(context.Background(), ingest.KindMCQ, []ingest.Record{
		mcqRecord(1, "ok1"),
		mcqRecord(1, "boom"),
		mcqRecord(1, "ok2"),
	}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Inserted)
	assert.Equal(t, 1, sum.Skipped)
	require.Len(t, sum.SkipDetails, 1)
	assert.Equal(t, "constraint violation", sum.SkipDetails[0].Reason)
}

func TestIngestMCQResetThenReseed(t *testing.T) {
	store := newFakeStore(chapter(1, "Introduction"))
	svc := ingest.NewService(store, nil)

	_, err := svc.Ingest(context.Background(), ingest.KindMCQ, []ingest.Record{
		mcqRecord(1, "old question"),
	}, false)
	require.NoError(t, err)

	sum, err := svc.Ingest(context.Background(), ingest.KindMCQ, []ingest.Record{
		mcqRecord(1, "new question"),
	}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Inserted)

	require.Len(t, store.questions, 1)
	assert.Equal(t, "new question", store.questions[0].QuestionEn)
	assert.Equal(t, int64(1), store.questions[0].ID, "sequence must restart at 1")
}

func TestIngestResetFailureAbortsBeforeInserts(t *testing.T) {
	store := newFakeStore(chapter(1, "Introduction"))
	store.resetErr = errors.New("db unreachable")
	svc := ingest.NewService(store, nil)

	_, err := svc.Ingest(context.Background(), ingest.KindMCQ, []ingest.Record{
		mcqRecord(1, "never inserted"),
	}, true)
	require.Error(t, err)
	assert.Empty(t, store.questions)
}

func TestIngestChaptersResetOrder(t *testing.T) {
	store := newFakeStore()
	svc := ingest.NewService(store, nil)

	_, err := svc.Ingest(context.Background(), ingest.KindChapters, []ingest.Record{
		{"chapterNumber": float64(1), "titleEn": "Intro"},
	}, true)
	require.NoError(t, err)
	require.Len(t, store.resetCalls, 1)
	assert.Equal(t, []string{content.TableRevisions, content.TableQuestions, content.TableChapters},
		store.resetCalls[0], "dependents must be wiped before chapters")
}

func TestIngestChapterUpsertIdempotence(t *testing.T) {
	store := newFakeStore()
	svc := ingest.NewService(store, nil)

	rec := ingest.Record{"chapterNumber": float64(3), "titleEn": "Registration", "titleMr": "नोंदणी"}

	sum, err := svc.Ingest(context.Background(), ingest.KindChapters, []ingest.Record{rec}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.InsertedOrUpdated)

	sum, err = svc.Ingest(context.Background(), ingest.KindChapters, []ingest.Record{rec}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.InsertedOrUpdated)

	require.Len(t, store.chapters, 1)
	assert.Equal(t, 3, store.chapters[0].ChapterNumber)
}

func TestIngestChaptersRejectsMissingNumber(t *testing.T) {
	store := newFakeStore()
	svc := ingest.NewService(store, nil)

	sum, err := svc.Ingest(context.Background(), ingest.KindChapters, []ingest.Record{
		{"titleEn": "No number"},
		{"courseChapter": "7", "titleEn": "Aliased number"},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.InsertedOrUpdated)
	require.Len(t, sum.Errors, 1)
	assert.Contains(t, sum.Errors[0], "chapterNumber")
}

func TestIngestRevisionTitleFallback(t *testing.T) {
	store := newFakeStore(chapter(2, "Authority"))
	svc := ingest.NewService(store, nil)

	sum, err := svc.Ingest(context.Background(), ingest.KindRevision, []ingest.Record{
		{"chapterNumber": float64(2), "titleEn": "Key Points"},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Inserted, "missing titleMr must not reject the row")
	require.Len(t, store.revisions, 1)
	assert.Equal(t, "Key Points", store.revisions[0].TitleMr)
}

func TestIngestRevisionInvalidChapterNumber(t *testing.T) {
	store := newFakeStore(chapter(2, "Authority"))
	svc := ingest.NewService(store, nil)

	sum, err := svc.Ingest(context.Background(), ingest.KindRevision, []ingest.Record{
		{"titleEn": "No chapter at all"},
		{"chapterNumber": "not-a-number", "titleEn": "Bad number"},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Inserted)
	assert.Equal(t, 2, sum.Skipped)
	for _, d := range sum.SkipDetails {
		assert.Equal(t, "Invalid chapterNumber", d.Reason)
	}
}

func TestIngestRevisionNegativeChapterFailsAsNotFound(t *testing.T) {
	store := newFakeStore(chapter(2, "Authority"))
	svc := ingest.NewService(store, nil)

	sum, err := svc.Ingest(context.Background(), ingest.KindRevision, []ingest.Record{
		{"chapterNumber": float64(-5), "titleEn": "Negative"},
		{"chapterNumber": float64(0), "titleEn": "Zero"},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Inserted)
	require.Len(t, sum.SkipDetails, 2)
	assert.Equal(t, "Chapter -5 not found", sum.SkipDetails[0].Reason,
		"a negative number is a real lookup, not a malformed field")
	assert.Equal(t, "Invalid chapterNumber", sum.SkipDetails[1].Reason)
}

func TestIngestRevisionDuplicateKey(t *testing.T) {
	store := newFakeStore(chapter(2, "Authority"))
	svc := ingest.NewService(store, nil)

	rec := ingest.Record{"chapterNumber": float64(2), "titleEn": "Summary", "order": float64(1)}
	sum, err := svc.Ingest(context.Background(), ingest.KindRevision, []ingest.Record{rec, rec}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Inserted)
	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, "Duplicate revision", sum.SkipDetails[0].Reason)

	// same title, different order is a distinct note
	rec2 := ingest.Record{"chapterNumber": float64(2), "titleEn": "Summary", "order": float64(2)}
	sum, err = svc.Ingest(context.Background(), ingest.KindRevision, []ingest.Record{rec2}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Inserted)
}

func TestIngestSkipDetailsCappedAtTen(t *testing.T) {
	store := newFakeStore(chapter(1, "Introduction"))
	svc := ingest.NewService(store, nil)

	var batch []ingest.Record
	for i := 0; i < 15; i++ {
		batch = append(batch, mcqRecord(42, fmt.Sprintf("q%d", i)))
	}
	sum, err := svc.Ingest(context.Background(), ingest.KindMCQ, batch, false)
	require.NoError(t, err)
	assert.Equal(t, 15, sum.Skipped, "counts cover the whole batch")
	assert.Len(t, sum.SkipDetails, 10, "details are bounded")
}

func TestIngestUnknownKind(t *testing.T) {
	svc := ingest.NewService(newFakeStore(), nil)
	_, err := svc.Ingest(context.Background(), ingest.Kind("bogus"), []ingest.Record{{}}, false)
	require.Error(t, err)
}
