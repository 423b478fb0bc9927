package classifier

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"wallpaper-unlock/internal/domain/model"
)

const receiptPrompt = `Analyze this payment receipt screenshot commonly used in Pakistan (JazzCash or Easypaisa).
I am expecting a payment of %d PKR.

Please extract:
1. The amount paid.
2. The service provider (JazzCash or Easypaisa).
3. Whether the transaction looks successful.

Return JSON with this schema:
{"verified": boolean, "detectedAmount": number, "provider": string, "reason": string}

Strictly return valid JSON. If the image is not a receipt or unclear, set verified to false.`

// parseJudgment turns a model's text reply into a judgment.
//
// Parsing is defensive: fenced code blocks are unwrapped, and any missing
// field decodes to its failing value (verified=false, amount=0), so a sparse
// reply can never pass the policy by accident. Non-JSON replies are an error.
func parseJudgment(raw string) (model.ClassifierJudgment, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// Language tags come back in whatever casing the model fancies.
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	var wire struct {
		Verified       bool    `json:"verified"`
		DetectedAmount float64 `json:"detectedAmount"`
		Provider       string  `json:"provider"`
		Reason         string  `json:"reason"`
	}
	if err := json.Unmarshal([]byte(s), &wire); err != nil {
		return model.ClassifierJudgment{}, fmt.Errorf("classifier: malformed judgment: %w", err)
	}
	return model.ClassifierJudgment{
		Verified:       wire.Verified,
		DetectedAmount: int64(wire.DetectedAmount),
		Provider:       wire.Provider,
		Reason:         wire.Reason,
	}, nil
}

// imageMIME sniffs the submitted bytes; receipts are screenshots so jpeg/png
// is the norm, jpeg when undecidable.
func imageMIME(image []byte) string {
	mt := http.DetectContentType(image)
	if strings.HasPrefix(mt, "image/") {
		return mt
	}
	return "image/jpeg"
}
