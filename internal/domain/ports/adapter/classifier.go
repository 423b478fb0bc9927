package adapter

import (
	"context"

	"wallpaper-unlock/internal/domain/model"
)

// ReceiptClassifier is the port for the external image-understanding service
// that inspects a transfer-receipt screenshot.
//
// Implementations receive the raw image bytes exactly as submitted and the
// amount the caller expects to see on the receipt. They may fail with any
// error (unreachable, malformed output, timeout); callers must map every
// failure to a generic user-facing reason and must not trust the judgment's
// verified flag without running it through model.DecideVerification.
type ReceiptClassifier interface {
	Name() string
	Classify(ctx context.Context, image []byte, expectedAmount int64) (model.ClassifierJudgment, error)
}
