package ingest

import (
	"fmt"

	"github.com/studymitra/examprep-backend/internal/content"
)

// NormalizeRevision maps one loosely-shaped upload row to the canonical
// revision-note shape. Pure and total. Unlike questions, chapterNumber gets
// no default here: a row without a usable number is marked invalid
// (ChapterNumberOK=false) and left for the guard to reject.
func NormalizeRevision(rec Record) content.Revision {
	rv := content.Revision{}

	if f, ok := rec.num("chapterNumber", "chapter", "chapterNo", "courseChapter", "chapterId"); ok {
		rv.ChapterNumber = int(f)
		rv.ChapterNumberOK = true
	}

	// title may be a nested bilingual object or flat aliases
	if v, ok := rec.raw("title"); ok {
		if en, mr, isObj := bilingual(v); isObj {
			rv.TitleEn, rv.TitleMr = en, mr
		}
	}
	if rv.TitleEn == "" {
		rv.TitleEn = rec.str("titleEn", "title", "heading", "name", "topicEn")
	}
	if rv.TitleEn == "" {
		rv.TitleEn = fmt.Sprintf("Chapter %d Revision", rv.ChapterNumber)
	}
	if rv.TitleMr == "" {
		rv.TitleMr = rec.str("titleMr", "titleMarathi", "topicMr")
	}
	if rv.TitleMr == "" {
		// Marathi UI shows the English title when no translation was supplied
		rv.TitleMr = rv.TitleEn
	}

	if v, ok := rec.raw("content"); ok {
		if en, mr, isObj := bilingual(v); isObj {
			rv.ContentEn, rv.ContentMr = en, mr
		}
	}
	if rv.ContentEn == "" {
		rv.ContentEn = rec.str("contentEn", "content", "notes", "description", "text")
	}
	if rv.ContentMr == "" {
		// no English fallback for body content, unlike titles
		rv.ContentMr = rec.str("contentMr", "contentMarathi", "notesMarathi")
	}

	rv.QA = normalizeQAList(rec)
	rv.ImageURL = rec.str("imageUrl", "image", "imageURL")
	rv.Order = rec.intOr(0, "order", "sequence", "sr", "srNo")

	return rv
}

// normalizeQAList remaps each element of the qa list to the canonical pair
// shape, backfilling Marathi from English so the Q&A UI never renders empty.
func normalizeQAList(rec Record) []content.QA {
	v, ok := rec.raw("qaJson", "questions", "qna", "qa", "questionsAndAnswers")
	if !ok {
		return []content.QA{}
	}
	items, isList := v.([]any)
	if !isList {
		return []content.QA{}
	}
	out := make([]content.QA, 0, len(items))
	for _, item := range items {
		m, isMap := item.(map[string]any)
		if !isMap {
			continue
		}
		el := Record(m)
		qa := content.QA{
			QuestionEn: el.str("questionEn", "question", "q"),
			QuestionMr: el.str("questionMr", "questionMarathi", "qMr"),
			AnswerEn:   el.str("answerEn", "answer", "a"),
			AnswerMr:   el.str("answerMr", "answerMarathi", "aMr"),
		}
		if qa.QuestionMr == "" {
			qa.QuestionMr = qa.QuestionEn
		}
		if qa.AnswerMr == "" {
			qa.AnswerMr = qa.AnswerEn
		}
		out = append(out, qa)
	}
	return out
}
