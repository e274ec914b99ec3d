package correspondence

import "time"

// VerificationResult is the public projection of an archived letter.
// A zero value with Found unset is the NotFound result.
type VerificationResult struct {
	Found       bool
	Number      string
	Title       string
	TypeCode    string
	Recipient   string
	SignedBy    string
	SignedRole  string
	Date        string
	CreatedAt   time.Time
	Fingerprint string
}

// NotFoundResult is returned for every lookup that does not find a letter.
func NotFoundResult() VerificationResult {
	return VerificationResult{}
}

// NewVerificationResult projects the public subset of a letter.
func NewVerificationResult(l *Letter) VerificationResult {
	return VerificationResult{
		Found:       true,
		Number:      l.Number,
		Title:       l.Title,
		TypeCode:    l.TypeCode,
		Recipient:   l.Recipient,
		SignedBy:    l.SignedBy,
		SignedRole:  l.SignedRole,
		Date:        l.Date,
		CreatedAt:   l.CreatedAt,
		Fingerprint: l.Fingerprint(),
	}
}
