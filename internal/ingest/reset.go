package ingest

import (
	"context"
	"fmt"

	"github.com/studymitra/examprep-backend/internal/content"
)

// reset wipes the content tables for the given kind and restarts their id
// sequences at 1. Dependents go first: revision notes and questions both
// reference chapters. The store runs the whole wipe in one transaction, so a
// failure here aborts the upload before any insert is attempted.
func reset(ctx context.Context, store content.Store, kind Kind) error {
	switch kind {
	case KindMCQ:
		return store.Reset(ctx, content.TableQuestions)
	case KindRevision:
		return store.Reset(ctx, content.TableRevisions)
	case KindChapters:
		return store.Reset(ctx, content.TableRevisions, content.TableQuestions, content.TableChapters)
	default:
		return fmt.Errorf("reset: unknown content kind %q", kind)
	}
}
