package ingest

import (
	"encoding/json"

	"github.com/studymitra/examprep-backend/internal/content"
)

// NormalizeChapter maps one loosely-shaped upload row to the canonical
// chapter shape. The second return is false when no usable chapter number
// could be resolved; such rows are rejected outright by the upsert flow.
func NormalizeChapter(rec Record) (content.Chapter, bool) {
	f, ok := rec.num("chapterNumber", "courseChapter", "chapter", "chapterNo")
	if !ok || int(f) <= 0 {
		return content.Chapter{}, false
	}

	c := content.Chapter{
		ChapterNumber: int(f),
		TitleEn:       rec.str("titleEn", "title", "name", "chapterName"),
		TitleMr:       rec.str("titleMr", "titleMarathi", "nameMarathi"),

		ActChapterNameEn: rec.str("actChapterNameEn", "actChapterName"),
		ActChapterNameMr: rec.str("actChapterNameMr", "actChapterNameMarathi"),

		DescriptionEn: rec.str("descriptionEn", "description"),
		DescriptionMr: rec.str("descriptionMr", "descriptionMarathi"),

		MahareraEquivalentEn: rec.str("mahareraEquivalentEn", "mahareraEquivalent"),
		MahareraEquivalentMr: rec.str("mahareraEquivalentMr", "mahareraEquivalentMarathi"),

		OrderIndex:   rec.intOr(int(f), "orderIndex", "order", "sequence"),
		IsActive:     boolOr(rec, true, "isActive", "active"),
		DisplayInApp: boolOr(rec, true, "displayInApp", "showInApp"),
	}

	// sections arrive either as an opaque string or a list; stored as a
	// JSON-encoded string either way
	if v, ok := rec.raw("sections"); ok {
		switch sv := v.(type) {
		case string:
			c.Sections = sv
		case []any:
			if buf, err := json.Marshal(sv); err == nil {
				c.Sections = string(buf)
			}
		}
	}

	return c, true
}

func boolOr(rec Record, def bool, keys ...string) bool {
	v, ok := rec.raw(keys...)
	if !ok {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch b {
		case "true", "TRUE", "1", "yes":
			return true
		case "false", "FALSE", "0", "no":
			return false
		}
	case float64:
		return b != 0
	}
	return def
}
