package http

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymitra/examprep-backend/internal/content"
	"github.com/studymitra/examprep-backend/internal/ingest"
)

// untouchedStore panics on any call: requests that fail structural validation
// must never reach persistence.
type untouchedStore struct{ content.Store }

func postJSON(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	svc := ingest.NewService(untouchedStore{}, nil)
	h := BulkUploadHandler(svc, nil)
	req := httptest.NewRequest("POST", "/admin/bulk-upload", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestBulkUploadRejectsNonArrayData(t *testing.T) {
	rec := postJSON(t, `{"type":"mcq","data":"not-an-array"}`)
	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "no records")
}

func TestBulkUploadRejectsBadJSON(t *testing.T) {
	rec := postJSON(t, `{"type":"mcq",`)
	assert.Equal(t, 400, rec.Code)
}

func TestBulkUploadRejectsUnknownType(t *testing.T) {
	rec := postJSON(t, `{"type":"videos","data":[{"a":1}]}`)
	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown upload type")
}

func TestBulkUploadRejectsEmptyList(t *testing.T) {
	rec := postJSON(t, `{"type":"mcq","data":[]}`)
	assert.Equal(t, 400, rec.Code)
}

func TestExtractRecordsShapes(t *testing.T) {
	one := map[string]any{"questionEn": "X"}

	cases := map[string]any{
		"top-level array":    []any{one},
		"data array":         map[string]any{"data": []any{one}},
		"data.questions":     map[string]any{"data": map[string]any{"questions": []any{one}}},
		"top-level key":      map[string]any{"questions": []any{one}},
		"single data object": map[string]any{"data": one},
	}
	for name, body := range cases {
		records := extractRecords(body, "questions")
		require.Len(t, records, 1, name)
		assert.Equal(t, "X", records[0]["questionEn"], name)
	}

	assert.Nil(t, extractRecords(map[string]any{"data": "nope"}, "questions"))
	assert.Nil(t, extractRecords("nope", "questions"))
}

func TestExtractRecordsKeyedByType(t *testing.T) {
	body := map[string]any{"chapters": []any{map[string]any{"chapterNumber": 1}}}
	assert.Len(t, extractRecords(body, "chapters"), 1)
	assert.Nil(t, extractRecords(body, "questions"), "wrapper key must match the upload type")
}

func TestParseResetValue(t *testing.T) {
	assert.True(t, parseResetValue(true))
	assert.True(t, parseResetValue("true"))
	assert.False(t, parseResetValue("false"))
	assert.False(t, parseResetValue(nil))
	assert.False(t, parseResetValue("garbage"))
}
