package ingest

import (
	"context"

	"github.com/studymitra/examprep-backend/internal/content"
)

// ChapterIndex is a request-scoped lookup from public chapter number to the
// internal storage identifier. It is rebuilt once per upload; chapter counts
// are bounded by curriculum size so a full scan is fine.
type ChapterIndex map[int]int64

func BuildChapterIndex(ctx context.Context, store content.Store) (ChapterIndex, error) {
	chapters, err := store.ListChapters(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(ChapterIndex, len(chapters))
	for _, c := range chapters {
		idx[c.ChapterNumber] = c.ID
	}
	return idx, nil
}

func (idx ChapterIndex) Lookup(chapterNumber int) (int64, bool) {
	id, ok := idx[chapterNumber]
	return id, ok
}
