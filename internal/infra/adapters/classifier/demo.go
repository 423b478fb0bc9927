package classifier

import (
	"context"
	"time"

	"wallpaper-unlock/internal/domain/model"
	"wallpaper-unlock/internal/domain/ports/adapter"
)

var _ adapter.ReceiptClassifier = (*DemoClassifier)(nil)

// DemoClassifier auto-accepts every submission after a fixed delay. It exists
// for demos and UI testing without an API key and is only wired when
// verification.demo_mode is set in config; production wiring never reaches it.
type DemoClassifier struct {
	delay time.Duration
}

func NewDemoClassifier(delay time.Duration) *DemoClassifier {
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &DemoClassifier{delay: delay}
}

func (d *DemoClassifier) Name() string { return "demo" }

func (d *DemoClassifier) Classify(ctx context.Context, image []byte, expectedAmount int64) (model.ClassifierJudgment, error) {
	select {
	case <-time.After(d.delay):
	case <-ctx.Done():
		return model.ClassifierJudgment{}, ctx.Err()
	}
	return model.ClassifierJudgment{
		Verified:       true,
		DetectedAmount: expectedAmount,
		Provider:       "demo",
		Reason:         "Demo Mode: Verified successfully (No API Key)",
	}, nil
}
