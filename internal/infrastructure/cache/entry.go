package cache

import (
	"time"

	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
)

// cachedResult is the wire form of a verification result
type cachedResult struct {
	Number      string    `json:"number"`
	Title       string    `json:"title"`
	TypeCode    string    `json:"type_code"`
	Recipient   string    `json:"recipient"`
	SignedBy    string    `json:"signed_by"`
	SignedRole  string    `json:"signed_role"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	Fingerprint string    `json:"fingerprint"`
}

func fromDomain(r correspondence.VerificationResult) cachedResult {
	return cachedResult{
		Number:      r.Number,
		Title:       r.Title,
		TypeCode:    r.TypeCode,
		Recipient:   r.Recipient,
		SignedBy:    r.SignedBy,
		SignedRole:  r.SignedRole,
		Date:        r.Date,
		CreatedAt:   r.CreatedAt,
		Fingerprint: r.Fingerprint,
	}
}

func (e cachedResult) toDomain() correspondence.VerificationResult {
	return correspondence.VerificationResult{
		Found:       true,
		Number:      e.Number,
		Title:       e.Title,
		TypeCode:    e.TypeCode,
		Recipient:   e.Recipient,
		SignedBy:    e.SignedBy,
		SignedRole:  e.SignedRole,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
		Fingerprint: e.Fingerprint,
	}
}
