package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/studymitra/examprep-backend/internal/auth"
	"github.com/studymitra/examprep-backend/internal/ingest"
)

// POST /admin/bulk-upload
//
// Accepts either application/json {type, data, resetIds} or multipart
// form-data (file= + type= + resetIds=). For type=mcq the file is decoded as
// a spreadsheet; for other types the file bytes are parsed as JSON.
func BulkUploadHandler(svc *ingest.Service, log *zap.Logger) http.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")

		var (
			kindStr  string
			resetIDs bool
			records  []ingest.Record
		)

		switch {
		case strings.HasPrefix(ct, "multipart/form-data"):
			f, _, err := r.FormFile("file")
			if err != nil {
				writeError(w, 400, "file required")
				return
			}
			defer f.Close()
			kindStr = r.FormValue("type")
			resetIDs = parseResetFlag(r.FormValue("resetIds"))

			kind, err := ingest.ParseKind(kindStr)
			if err != nil {
				writeError(w, 400, err.Error())
				return
			}
			if kind == ingest.KindMCQ {
				records, err = sheetRecords(f)
			} else {
				records, err = jsonFileRecords(f)
			}
			if err != nil {
				writeError(w, 400, err.Error())
				return
			}

		case strings.HasPrefix(ct, "application/json"), ct == "":
			var body any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				writeError(w, 400, "bad json")
				return
			}
			kindStr = r.URL.Query().Get("type")
			resetIDs = parseResetFlag(r.URL.Query().Get("resetIds"))
			if obj, ok := body.(map[string]any); ok {
				if t, ok := obj["type"].(string); ok {
					kindStr = t
				}
				if v, ok := obj["resetIds"]; ok {
					resetIDs = parseResetValue(v)
				}
			}
			kind, err := ingest.ParseKind(kindStr)
			if err != nil {
				writeError(w, 400, err.Error())
				return
			}
			records = extractRecords(body, recordListKey(kind))

		default:
			writeError(w, 400, "unsupported content type")
			return
		}

		if len(records) == 0 {
			writeError(w, 400, "no records found in request")
			return
		}

		kind, _ := ingest.ParseKind(kindStr)
		sum, err := svc.Ingest(r.Context(), kind, records, resetIDs)
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}

		// destructive uploads are worth an audit trail of who ran them
		log.Info("bulk upload accepted",
			zap.String("admin", auth.SubjectFromContext(r.Context())),
			zap.String("type", string(kind)),
			zap.Bool("reset", resetIDs),
			zap.Int("records", len(records)))

		writeJSON(w, 200, uploadResponse(kind, sum))
	}
}

func uploadResponse(kind ingest.Kind, sum ingest.Summary) map[string]any {
	if kind == ingest.KindChapters {
		details := map[string]any{"insertedOrUpdated": sum.InsertedOrUpdated}
		if len(sum.Errors) > 0 {
			details["errors"] = sum.Errors
		}
		return map[string]any{
			"message": fmt.Sprintf("Upload complete: %d chapters inserted or updated, %d errors",
				sum.InsertedOrUpdated, sum.Skipped),
			"details": details,
		}
	}
	noun := "questions"
	if kind == ingest.KindRevision {
		noun = "revision notes"
	}
	details := map[string]any{
		"inserted":  sum.Inserted,
		"converted": sum.Converted,
		"skipped":   sum.Skipped,
	}
	if len(sum.SkipDetails) > 0 {
		details["skippedItems"] = sum.SkipDetails
	}
	return map[string]any{
		"message": fmt.Sprintf("Upload complete: %d %s inserted (%d converted), %d skipped",
			sum.Inserted, noun, sum.Converted, sum.Skipped),
		"details": details,
	}
}

// recordListKey names the wrapper array key tried for a given upload type.
func recordListKey(kind ingest.Kind) string {
	switch kind {
	case ingest.KindChapters:
		return "chapters"
	case ingest.KindRevision:
		return "revisions"
	default:
		return "questions"
	}
}

// extractRecords pulls the record list out of whichever wrapper shape the
// upload used. Tried in order: top-level array, .data array, .data.{key},
// top-level .{key}, then a single .data object wrapped as one record.
func extractRecords(body any, key string) []ingest.Record {
	switch b := body.(type) {
	case []any:
		return toRecords(b)
	case map[string]any:
		if arr, ok := b["data"].([]any); ok {
			return toRecords(arr)
		}
		if inner, ok := b["data"].(map[string]any); ok {
			if arr, ok := inner[key].([]any); ok {
				return toRecords(arr)
			}
		}
		if arr, ok := b[key].([]any); ok {
			return toRecords(arr)
		}
		if inner, ok := b["data"].(map[string]any); ok {
			return []ingest.Record{ingest.Record(inner)}
		}
	}
	return nil
}

func toRecords(items []any) []ingest.Record {
	out := make([]ingest.Record, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, ingest.Record(m))
		}
	}
	return out
}

// jsonFileRecords parses uploaded file bytes as UTF-8 JSON: either a single
// object or an array of objects.
func jsonFileRecords(r io.Reader) ([]ingest.Record, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var body any
	if err := json.Unmarshal(buf, &body); err != nil {
		return nil, errors.New("file is not valid JSON")
	}
	switch b := body.(type) {
	case []any:
		return toRecords(b), nil
	case map[string]any:
		return []ingest.Record{ingest.Record(b)}, nil
	}
	return nil, errors.New("file must contain a JSON object or array")
}

func parseResetFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func parseResetValue(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return parseResetFlag(b)
	}
	return false
}
