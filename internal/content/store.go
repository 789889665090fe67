package content

import "context"

// Table names accepted by Reset, in the dependency order callers must use.
const (
	TableChapters  = "chapters"
	TableQuestions = "questions"
	TableRevisions = "revision_contents"
)

// Store is the persistence surface the ingest engine and the HTTP handlers
// depend on. The SQL implementation lives in store_sql.go; tests substitute
// an in-memory fake.
type Store interface {
	ListChapters(ctx context.Context) ([]Chapter, error)
	GetChapterByNumber(ctx context.Context, number int) (Chapter, error)
	// UpsertChapter creates or updates by ChapterNumber and reports whether a
	// new row was created.
	UpsertChapter(ctx context.Context, c Chapter) (created bool, err error)
	DeleteChapter(ctx context.Context, id int64) error

	CreateQuestion(ctx context.Context, q Question) (int64, error)
	QuestionExists(ctx context.Context, chapterID int64, questionEn string) (bool, error)
	ListQuestionsByChapter(ctx context.Context, chapterID int64) ([]Question, error)
	DeleteQuestion(ctx context.Context, id int64) error

	CreateRevision(ctx context.Context, rv Revision) (int64, error)
	RevisionExists(ctx context.Context, chapterID int64, titleEn string, order int) (bool, error)
	ListRevisionsByChapter(ctx context.Context, chapterID int64) ([]Revision, error)
	UpdateRevisionMedia(ctx context.Context, id int64, imageURL, videoURL string) error
	DeleteRevision(ctx context.Context, id int64) error

	// Reset wipes the named tables in the given order and restarts their
	// identifier sequences at 1, all inside one transaction.
	Reset(ctx context.Context, tables ...string) error

	CreateEnrollment(ctx context.Context, e Enrollment) error
	ListEnrollments(ctx context.Context) ([]Enrollment, error)

	CreateExamApplication(ctx context.Context, a ExamApplication) error
	GetExamApplicationByCard(ctx context.Context, cardNumber string) (ExamApplication, error)
}
