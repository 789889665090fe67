package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNotFound = errors.New("not found")

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) ListChapters(ctx context.Context) ([]Chapter, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,chapter_number,title_en,title_mr,act_chapter_name_en,act_chapter_name_mr,
		description_en,description_mr,maharera_equivalent_en,maharera_equivalent_mr,sections,order_index,is_active,display_in_app
		FROM chapters ORDER BY order_index, chapter_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Chapter
	for rows.Next() {
		var c Chapter
		if err := rows.Scan(&c.ID, &c.ChapterNumber, &c.TitleEn, &c.TitleMr, &c.ActChapterNameEn, &c.ActChapterNameMr,
			&c.DescriptionEn, &c.DescriptionMr, &c.MahareraEquivalentEn, &c.MahareraEquivalentMr,
			&c.Sections, &c.OrderIndex, &c.IsActive, &c.DisplayInApp); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetChapterByNumber(ctx context.Context, number int) (Chapter, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,chapter_number,title_en,title_mr,act_chapter_name_en,act_chapter_name_mr,
		description_en,description_mr,maharera_equivalent_en,maharera_equivalent_mr,sections,order_index,is_active,display_in_app
		FROM chapters WHERE chapter_number=$1`, number)
	var c Chapter
	err := row.Scan(&c.ID, &c.ChapterNumber, &c.TitleEn, &c.TitleMr, &c.ActChapterNameEn, &c.ActChapterNameMr,
		&c.DescriptionEn, &c.DescriptionMr, &c.MahareraEquivalentEn, &c.MahareraEquivalentMr,
		&c.Sections, &c.OrderIndex, &c.IsActive, &c.DisplayInApp)
	if errors.Is(err, sql.ErrNoRows) {
		return Chapter{}, ErrNotFound
	}
	return c, err
}

func (s *SQLStore) UpsertChapter(ctx context.Context, c Chapter) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM chapters WHERE chapter_number=$1`, c.ChapterNumber).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.ExecContext(ctx, `INSERT INTO chapters
			(chapter_number,title_en,title_mr,act_chapter_name_en,act_chapter_name_mr,description_en,description_mr,
			 maharera_equivalent_en,maharera_equivalent_mr,sections,order_index,is_active,display_in_app,created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
			c.ChapterNumber, c.TitleEn, c.TitleMr, c.ActChapterNameEn, c.ActChapterNameMr, c.DescriptionEn, c.DescriptionMr,
			c.MahareraEquivalentEn, c.MahareraEquivalentMr, c.Sections, c.OrderIndex, c.IsActive, c.DisplayInApp, time.Now().Unix())
		return true, err
	case err != nil:
		return false, err
	default:
		_, err = s.db.ExecContext(ctx, `UPDATE chapters SET title_en=$1, title_mr=$2, act_chapter_name_en=$3, act_chapter_name_mr=$4,
			description_en=$5, description_mr=$6, maharera_equivalent_en=$7, maharera_equivalent_mr=$8, sections=$9,
			order_index=$10, is_active=$11, display_in_app=$12 WHERE chapter_number=$13`,
			c.TitleEn, c.TitleMr, c.ActChapterNameEn, c.ActChapterNameMr, c.DescriptionEn, c.DescriptionMr,
			c.MahareraEquivalentEn, c.MahareraEquivalentMr, c.Sections, c.OrderIndex, c.IsActive, c.DisplayInApp, c.ChapterNumber)
		return false, err
	}
}

func (s *SQLStore) DeleteChapter(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chapters WHERE id=$1`, id)
	return err
}

func (s *SQLStore) CreateQuestion(ctx context.Context, q Question) (int64, error) {
	if s.driver == "postgres" {
		var id int64
		err := s.db.QueryRowContext(ctx, `INSERT INTO questions
			(chapter_id,question_en,question_mr,option_a_en,option_a_mr,option_b_en,option_b_mr,
			 option_c_en,option_c_mr,option_d_en,option_d_mr,correct_answer,difficulty,explanation_en,explanation_mr,created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16) RETURNING id`,
			q.ChapterID, q.QuestionEn, q.QuestionMr, q.OptionAEn, q.OptionAMr, q.OptionBEn, q.OptionBMr,
			q.OptionCEn, q.OptionCMr, q.OptionDEn, q.OptionDMr, q.CorrectAnswer, q.Difficulty,
			q.ExplanationEn, q.ExplanationMr, time.Now().Unix()).Scan(&id)
		return id, err
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO questions
		(chapter_id,question_en,question_mr,option_a_en,option_a_mr,option_b_en,option_b_mr,
		 option_c_en,option_c_mr,option_d_en,option_d_mr,correct_answer,difficulty,explanation_en,explanation_mr,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		q.ChapterID, q.QuestionEn, q.QuestionMr, q.OptionAEn, q.OptionAMr, q.OptionBEn, q.OptionBMr,
		q.OptionCEn, q.OptionCMr, q.OptionDEn, q.OptionDMr, q.CorrectAnswer, q.Difficulty,
		q.ExplanationEn, q.ExplanationMr, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLStore) QuestionExists(ctx context.Context, chapterID int64, questionEn string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM questions WHERE chapter_id=$1 AND question_en=$2`, chapterID, questionEn).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *SQLStore) ListQuestionsByChapter(ctx context.Context, chapterID int64) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,chapter_id,question_en,question_mr,option_a_en,option_a_mr,
		option_b_en,option_b_mr,option_c_en,option_c_mr,option_d_en,option_d_mr,correct_answer,difficulty,
		explanation_en,explanation_mr FROM questions WHERE chapter_id=$1 ORDER BY id`, chapterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.ChapterID, &q.QuestionEn, &q.QuestionMr, &q.OptionAEn, &q.OptionAMr,
			&q.OptionBEn, &q.OptionBMr, &q.OptionCEn, &q.OptionCMr, &q.OptionDEn, &q.OptionDMr,
			&q.CorrectAnswer, &q.Difficulty, &q.ExplanationEn, &q.ExplanationMr); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id)
	return err
}

func (s *SQLStore) CreateRevision(ctx context.Context, rv Revision) (int64, error) {
	qa := rv.QA
	if qa == nil {
		qa = []QA{}
	}
	buf, err := json.Marshal(qa)
	if err != nil {
		return 0, err
	}
	if s.driver == "postgres" {
		var id int64
		err := s.db.QueryRowContext(ctx, `INSERT INTO revision_contents
			(chapter_id,title_en,title_mr,content_en,content_mr,image_url,video_url,qa_json,ord,created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING id`,
			rv.ChapterID, rv.TitleEn, rv.TitleMr, rv.ContentEn, rv.ContentMr, rv.ImageURL, rv.VideoURL,
			string(buf), rv.Order, time.Now().Unix()).Scan(&id)
		return id, err
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO revision_contents
		(chapter_id,title_en,title_mr,content_en,content_mr,image_url,video_url,qa_json,ord,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		rv.ChapterID, rv.TitleEn, rv.TitleMr, rv.ContentEn, rv.ContentMr, rv.ImageURL, rv.VideoURL,
		string(buf), rv.Order, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLStore) RevisionExists(ctx context.Context, chapterID int64, titleEn string, order int) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM revision_contents WHERE chapter_id=$1 AND title_en=$2 AND ord=$3`,
		chapterID, titleEn, order).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *SQLStore) ListRevisionsByChapter(ctx context.Context, chapterID int64) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,chapter_id,title_en,title_mr,content_en,content_mr,
		image_url,video_url,qa_json,ord FROM revision_contents WHERE chapter_id=$1 ORDER BY ord, id`, chapterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Revision
	for rows.Next() {
		var rv Revision
		var qaJSON string
		if err := rows.Scan(&rv.ID, &rv.ChapterID, &rv.TitleEn, &rv.TitleMr, &rv.ContentEn, &rv.ContentMr,
			&rv.ImageURL, &rv.VideoURL, &qaJSON, &rv.Order); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(qaJSON), &rv.QA); err != nil {
			rv.QA = []QA{}
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateRevisionMedia(ctx context.Context, id int64, imageURL, videoURL string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE revision_contents SET image_url=$1, video_url=$2 WHERE id=$3`, imageURL, videoURL, id)
	return err
}

func (s *SQLStore) DeleteRevision(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM revision_contents WHERE id=$1`, id)
	return err
}

// Reset wipes tables in the given order and restarts their sequences at 1.
// Runs in one transaction so a failed reset never leaves a half-wiped state.
func (s *SQLStore) Reset(ctx context.Context, tables ...string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range tables {
		switch t {
		case TableChapters, TableQuestions, TableRevisions:
		default:
			return fmt.Errorf("reset: unknown table %q", t)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return fmt.Errorf("reset %s: %w", t, err)
		}
		if err := s.resetSequence(ctx, tx, t); err != nil {
			return fmt.Errorf("reset sequence %s: %w", t, err)
		}
	}
	return tx.Commit()
}

func (s *SQLStore) resetSequence(ctx context.Context, tx *sql.Tx, table string) error {
	if s.driver == "postgres" {
		_, err := tx.ExecContext(ctx, `ALTER SEQUENCE `+table+`_id_seq RESTART WITH 1`)
		return err
	}
	// sqlite keeps AUTOINCREMENT counters in sqlite_sequence, which only
	// exists once something has been inserted
	_, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name=$1`, table)
	if err != nil && strings.Contains(err.Error(), "no such table") {
		return nil
	}
	return err
}

func (s *SQLStore) CreateEnrollment(ctx context.Context, e Enrollment) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO enrollments (id,name,phone,email,course,payment_ref,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`, e.ID, e.Name, e.Phone, e.Email, e.Course, e.PaymentRef, e.CreatedAt)
	return err
}

func (s *SQLStore) ListEnrollments(ctx context.Context) ([]Enrollment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,name,phone,email,course,payment_ref,created_at
		FROM enrollments ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Enrollment
	for rows.Next() {
		var e Enrollment
		if err := rows.Scan(&e.ID, &e.Name, &e.Phone, &e.Email, &e.Course, &e.PaymentRef, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLStore) CreateExamApplication(ctx context.Context, a ExamApplication) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO exam_applications (id,card_number,name,phone,email,language,exam_date,centre,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		a.ID, a.CardNumber, a.Name, a.Phone, a.Email, a.Language, a.ExamDate, a.Centre, a.CreatedAt)
	return err
}

func (s *SQLStore) GetExamApplicationByCard(ctx context.Context, cardNumber string) (ExamApplication, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,card_number,name,phone,email,language,exam_date,centre,created_at
		FROM exam_applications WHERE card_number=$1`, cardNumber)
	var a ExamApplication
	err := row.Scan(&a.ID, &a.CardNumber, &a.Name, &a.Phone, &a.Email, &a.Language, &a.ExamDate, &a.Centre, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ExamApplication{}, ErrNotFound
	}
	return a, err
}
