package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/studymitra/examprep-backend/internal/content"
	"github.com/studymitra/examprep-backend/internal/ingest"
)

// memStore is the minimal persistence fake the upload handler tests need.
// Any method an upload should never touch panics via the nil embedded Store.
type memStore struct {
	content.Store
	chapters  []content.Chapter
	questions []content.Question
	revisions []content.Revision
}

func (m *memStore) ListChapters(ctx context.Context) ([]content.Chapter, error) {
	return m.chapters, nil
}

func (m *memStore) QuestionExists(ctx context.Context, chapterID int64, questionEn string) (bool, error) {
	for _, q := range m.questions {
		if q.ChapterID == chapterID && q.QuestionEn == questionEn {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateQuestion(ctx context.Context, q content.Question) (int64, error) {
	q.ID = int64(len(m.questions) + 1)
	m.questions = append(m.questions, q)
	return q.ID, nil
}

func (m *memStore) RevisionExists(ctx context.Context, chapterID int64, titleEn string, order int) (bool, error) {
	for _, rv := range m.revisions {
		if rv.ChapterID == chapterID && rv.TitleEn == titleEn && rv.Order == order {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateRevision(ctx context.Context, rv content.Revision) (int64, error) {
	rv.ID = int64(len(m.revisions) + 1)
	m.revisions = append(m.revisions, rv)
	return rv.ID, nil
}

func buildWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func postMultipart(t *testing.T, store content.Store, fields map[string]string, file io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("file", "upload.bin")
	require.NoError(t, err)
	_, err = io.Copy(fw, file)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	h := BulkUploadHandler(ingest.NewService(store, nil), nil)
	req := httptest.NewRequest("POST", "/admin/bulk-upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestSheetRecordsHeaderKeysAndBlankRows(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"questionEn", " chapterNumber ", "", "optionA"},
		{"Q1", 2, "dropped", "Yes"},
		{"", "", "", ""},
		{"Q2", 3, "", "No"},
	})

	records, err := sheetRecords(buf)
	require.NoError(t, err)
	require.Len(t, records, 2, "the all-empty row must not produce a record")

	assert.Equal(t, "Q1", records[0]["questionEn"])
	assert.Equal(t, "2", records[0]["chapterNumber"], "header keys are trimmed, cells arrive formatted")
	assert.Equal(t, "Yes", records[0]["optionA"])
	assert.Len(t, records[0], 3, "the unnamed column must be dropped")
	assert.Equal(t, "Q2", records[1]["questionEn"])
}

func TestSheetRecordsHeaderOnly(t *testing.T) {
	buf := buildWorkbook(t, [][]any{{"questionEn", "chapterNumber"}})
	_, err := sheetRecords(buf)
	require.EqualError(t, err, "spreadsheet has no data rows")
}

func TestSheetRecordsGarbageFile(t *testing.T) {
	_, err := sheetRecords(strings.NewReader("this is not a workbook"))
	require.EqualError(t, err, "file is not a readable spreadsheet")
}

func TestBulkUploadMultipartSpreadsheet(t *testing.T) {
	store := &memStore{chapters: []content.Chapter{{ID: 7, ChapterNumber: 2, TitleEn: "Registration"}}}
	buf := buildWorkbook(t, [][]any{
		{"chapterNumber", "questionEn", "optionA", "optionB", "correctAnswer"},
		{2, "What is RERA?", "An act", "A person", "a"},
	})

	rec := postMultipart(t, store, map[string]string{"type": "mcq"}, buf)
	require.Equal(t, 200, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "1 questions inserted")

	require.Len(t, store.questions, 1)
	assert.Equal(t, int64(7), store.questions[0].ChapterID, "sheet chapter number must resolve to the stored chapter")
	assert.Equal(t, "A", store.questions[0].CorrectAnswer)
}

func TestBulkUploadMultipartJSONFile(t *testing.T) {
	store := &memStore{chapters: []content.Chapter{{ID: 3, ChapterNumber: 1, TitleEn: "Intro"}}}
	file := strings.NewReader(`{"chapterNumber":1,"titleEn":"Key definitions"}`)

	rec := postMultipart(t, store, map[string]string{"type": "revision"}, file)
	require.Equal(t, 200, rec.Code, rec.Body.String())

	require.Len(t, store.revisions, 1)
	assert.Equal(t, int64(3), store.revisions[0].ChapterID)
	assert.Equal(t, "Key definitions", store.revisions[0].TitleEn)
}

func TestBulkUploadMultipartUnreadableSpreadsheet(t *testing.T) {
	rec := postMultipart(t, &memStore{}, map[string]string{"type": "mcq"},
		strings.NewReader("not an xlsx"))
	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "not a readable spreadsheet")
}

func TestJSONFileRecordsShapes(t *testing.T) {
	one, err := jsonFileRecords(strings.NewReader(`{"titleEn":"A"}`))
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "A", one[0]["titleEn"])

	many, err := jsonFileRecords(strings.NewReader(`[{"titleEn":"A"},{"titleEn":"B"}]`))
	require.NoError(t, err)
	assert.Len(t, many, 2)

	_, err = jsonFileRecords(strings.NewReader(`"just a string"`))
	require.EqualError(t, err, "file must contain a JSON object or array")

	_, err = jsonFileRecords(strings.NewReader(`{broken`))
	require.EqualError(t, err, "file is not valid JSON")
}
