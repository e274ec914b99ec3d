package correspondence

import (
	"time"

	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
)

// =============================================================================
// Issuance DTOs
// =============================================================================

// IssueLetterRequest represents a request to issue a numbered letter
type IssueLetterRequest struct {
	TypeCode        string `json:"type_code" binding:"required,lettertype"`
	DivisionCode    string `json:"division_code" binding:"required,divisioncode"`
	Title           string `json:"title" binding:"required,max=255"`
	Date            string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Sender          string `json:"sender" binding:"max=255"`
	Recipient       string `json:"recipient" binding:"required,max=255"`
	Content         string `json:"content"`
	AttachmentCount int    `json:"attachment_count" binding:"min=0"`
	SignedBy        string `json:"signed_by" binding:"max=255"`
	SignedRole      string `json:"signed_role" binding:"max=255"`
	QRCodeURL       string `json:"qr_code_url" binding:"omitempty,url,max=1024"`
}

// ReserveNumberRequest represents a quick number reservation.
// Blank fields are filled with reservation placeholders.
type ReserveNumberRequest struct {
	TypeCode     string `json:"type_code" binding:"required,lettertype"`
	DivisionCode string `json:"division_code" binding:"required,divisioncode"`
	Title        string `json:"title" binding:"max=255"`
	Recipient    string `json:"recipient" binding:"max=255"`
	Content      string `json:"content"`
}

// UpdateLetterRequest represents an in-place edit of an archived letter
type UpdateLetterRequest struct {
	Title           *string `json:"title" binding:"omitempty,min=1,max=255"`
	Date            *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Sender          *string `json:"sender" binding:"omitempty,max=255"`
	Recipient       *string `json:"recipient" binding:"omitempty,min=1,max=255"`
	Content         *string `json:"content"`
	AttachmentCount *int    `json:"attachment_count" binding:"omitempty,min=0"`
	SignedBy        *string `json:"signed_by" binding:"omitempty,max=255"`
	SignedRole      *string `json:"signed_role" binding:"omitempty,max=255"`
	QRCodeURL       *string `json:"qr_code_url" binding:"omitempty,max=1024"`
}

// ListLettersRequest represents an archive search
type ListLettersRequest struct {
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search       string `form:"search" binding:"max=255"`
	SortBy       string `form:"sort_by" binding:"omitempty,oneof=archive_seq issue_date title recipient type_code division_code created_at updated_at"`
	SortOrder    string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
	TypeCode     string `form:"type_code"`
	DivisionCode string `form:"division_code"`
	NumberOnly   *bool  `form:"number_only"`
}

// LetterResponse represents an archived letter
type LetterResponse struct {
	ID              string    `json:"id"`
	Number          string    `json:"number"`
	TypeCode        string    `json:"type_code"`
	DivisionCode    string    `json:"division_code"`
	Title           string    `json:"title"`
	Date            string    `json:"date"`
	Sender          string    `json:"sender"`
	Recipient       string    `json:"recipient"`
	Content         string    `json:"content"`
	AttachmentCount int       `json:"attachment_count"`
	SignedBy        string    `json:"signed_by"`
	SignedRole      string    `json:"signed_role"`
	QRCodeURL       string    `json:"qr_code_url"`
	IsNumberOnly    bool      `json:"is_number_only"`
	Fingerprint     string    `json:"fingerprint"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// =============================================================================
// Counter DTOs
// =============================================================================

// OverrideCounterRequest represents an administrative counter override
type OverrideCounterRequest struct {
	Value *int64 `json:"value" binding:"required,min=0"`
}

// CounterSnapshotResponse represents the counter state
type CounterSnapshotResponse struct {
	GlobalSequence int64            `json:"global_sequence"`
	NextSerial     int64            `json:"next_serial"`
	Counters       map[string]int64 `json:"counters"`
}

// CounterOverrideResponse reports the effect of an override
type CounterOverrideResponse struct {
	Key        string `json:"key"`
	Previous   int64  `json:"previous"`
	Value      int64  `json:"value"`
	NextSerial int64  `json:"next_serial,omitempty"`
}

// =============================================================================
// Verification, catalog and dashboard DTOs
// =============================================================================

// VerificationResponse is the public verification result
type VerificationResponse struct {
	Found       bool       `json:"found"`
	Number      string     `json:"number,omitempty"`
	Title       string     `json:"title,omitempty"`
	TypeCode    string     `json:"type_code,omitempty"`
	TypeName    string     `json:"type_name,omitempty"`
	Recipient   string     `json:"recipient,omitempty"`
	SignedBy    string     `json:"signed_by,omitempty"`
	SignedRole  string     `json:"signed_role,omitempty"`
	Date        string     `json:"date,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	Fingerprint string     `json:"fingerprint,omitempty"`
}

// LetterTypeResponse represents a letter-type catalog entry
type LetterTypeResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// DivisionResponse represents a division catalog entry
type DivisionResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// TypeCountResponse is one bar of the per-type chart
type TypeCountResponse struct {
	TypeCode string `json:"type_code"`
	TypeName string `json:"type_name"`
	Total    int64  `json:"total"`
}

// DashboardStatsResponse summarizes the archive
type DashboardStatsResponse struct {
	Total     int64               `json:"total"`
	Issued    int64               `json:"issued"`
	ThisMonth int64               `json:"this_month"`
	ByType    []TypeCountResponse `json:"by_type"`
}

func toLetterResponse(l *correspondence.Letter) LetterResponse {
	return LetterResponse{
		ID:              l.ID.String(),
		Number:          l.Number,
		TypeCode:        l.TypeCode,
		DivisionCode:    l.DivisionCode,
		Title:           l.Title,
		Date:            l.Date,
		Sender:          l.Sender,
		Recipient:       l.Recipient,
		Content:         l.Content,
		AttachmentCount: l.AttachmentCount,
		SignedBy:        l.SignedBy,
		SignedRole:      l.SignedRole,
		QRCodeURL:       l.QRCodeURL,
		IsNumberOnly:    l.IsNumberOnly,
		Fingerprint:     l.Fingerprint(),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

func toLetterResponses(letters []correspondence.Letter) []LetterResponse {
	out := make([]LetterResponse, len(letters))
	for i := range letters {
		out[i] = toLetterResponse(&letters[i])
	}
	return out
}

func toVerificationResponse(r correspondence.VerificationResult, typeName string) VerificationResponse {
	if !r.Found {
		return VerificationResponse{Found: false}
	}
	createdAt := r.CreatedAt
	return VerificationResponse{
		Found:       true,
		Number:      r.Number,
		Title:       r.Title,
		TypeCode:    r.TypeCode,
		TypeName:    typeName,
		Recipient:   r.Recipient,
		SignedBy:    r.SignedBy,
		SignedRole:  r.SignedRole,
		Date:        r.Date,
		CreatedAt:   &createdAt,
		Fingerprint: r.Fingerprint,
	}
}
