package correspondence

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/shared"
)

// DateLayout is the calendar-date layout of a letter's issue date.
const DateLayout = "2006-01-02"

// Placeholders written into a number reservation when the caller leaves fields blank.
const (
	ReservationRecipient = "(Penerima Belum Ditentukan)"
	ReservationContent   = "Nomor ini telah direservasi melalui sistem Ambil Nomor Cepat."
)

// ReservationTitle returns the placeholder title of a reservation for the given type.
func ReservationTitle(typeCode string) string {
	return fmt.Sprintf("(Reservasi Nomor - %s)", typeCode)
}

// Letter is the archived unit and the aggregate root of this context.
// Number is assigned exactly once and never changes afterwards.
type Letter struct {
	ID              uuid.UUID
	Number          string
	TypeCode        string
	DivisionCode    string
	Title           string
	Date            string
	Sender          string
	Recipient       string
	Content         string
	AttachmentCount int
	SignedBy        string
	SignedRole      string
	QRCodeURL       string
	IsNumberOnly    bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LetterDraft carries the caller-supplied fields of a new letter.
type LetterDraft struct {
	TypeCode        string
	DivisionCode    string
	Title           string
	Date            string
	Sender          string
	Recipient       string
	Content         string
	AttachmentCount int
	SignedBy        string
	SignedRole      string
	QRCodeURL       string
	IsNumberOnly    bool
}

// NewLetter validates a draft and creates an unnumbered letter.
func NewLetter(draft LetterDraft, now time.Time) (*Letter, error) {
	if strings.TrimSpace(draft.TypeCode) == "" {
		return nil, invalid("letter type code is required")
	}
	if strings.TrimSpace(draft.DivisionCode) == "" {
		return nil, invalid("division code is required")
	}
	if err := validateDate(draft.Date); err != nil {
		return nil, err
	}
	if strings.TrimSpace(draft.Title) == "" {
		return nil, invalid("title is required")
	}
	if strings.TrimSpace(draft.Recipient) == "" {
		return nil, invalid("recipient is required")
	}
	if draft.AttachmentCount < 0 {
		return nil, invalid("attachment count cannot be negative")
	}

	base := shared.NewBaseEntity(now.UTC())
	return &Letter{
		ID:              base.ID,
		TypeCode:        strings.TrimSpace(draft.TypeCode),
		DivisionCode:    strings.ToUpper(strings.TrimSpace(draft.DivisionCode)),
		Title:           strings.TrimSpace(draft.Title),
		Date:            draft.Date,
		Sender:          strings.TrimSpace(draft.Sender),
		Recipient:       strings.TrimSpace(draft.Recipient),
		Content:         draft.Content,
		AttachmentCount: draft.AttachmentCount,
		SignedBy:        strings.TrimSpace(draft.SignedBy),
		SignedRole:      strings.TrimSpace(draft.SignedRole),
		QRCodeURL:       draft.QRCodeURL,
		IsNumberOnly:    draft.IsNumberOnly,
		CreatedAt:       base.CreatedAt,
		UpdatedAt:       base.UpdatedAt,
	}, nil
}

// IssueDate parses the letter's calendar date in loc.
func (l *Letter) IssueDate(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, l.Date, loc)
}

// AssignNumber sets the document number of a letter that has none yet.
func (l *Letter) AssignNumber(number string) error {
	if l.Number != "" {
		return shared.NewDomainError("INVALID_STATE", "document number is already assigned")
	}
	if strings.TrimSpace(number) == "" {
		return invalid("document number cannot be empty")
	}
	l.Number = number
	return nil
}

// NormalizedNumber returns the lookup key of the letter's number.
func (l *Letter) NormalizedNumber() string {
	return NormalizeNumber(l.Number)
}

// LetterRevision carries the editable fields of an archived letter.
// Nil fields are left unchanged.
type LetterRevision struct {
	Title           *string
	Date            *string
	Sender          *string
	Recipient       *string
	Content         *string
	AttachmentCount *int
	SignedBy        *string
	SignedRole      *string
	QRCodeURL       *string
}

// Revise applies an in-place edit. Number, type, division and creation time stay fixed.
// A reservation that receives content becomes an issued letter.
func (l *Letter) Revise(rev LetterRevision, now time.Time) error {
	if rev.Title != nil {
		if strings.TrimSpace(*rev.Title) == "" {
			return invalid("title cannot be empty")
		}
		l.Title = strings.TrimSpace(*rev.Title)
	}
	if rev.Date != nil {
		if err := validateDate(*rev.Date); err != nil {
			return err
		}
		l.Date = *rev.Date
	}
	if rev.Sender != nil {
		l.Sender = strings.TrimSpace(*rev.Sender)
	}
	if rev.Recipient != nil {
		if strings.TrimSpace(*rev.Recipient) == "" {
			return invalid("recipient cannot be empty")
		}
		l.Recipient = strings.TrimSpace(*rev.Recipient)
	}
	if rev.Content != nil {
		l.Content = *rev.Content
		if strings.TrimSpace(*rev.Content) != "" && *rev.Content != ReservationContent {
			l.IsNumberOnly = false
		}
	}
	if rev.AttachmentCount != nil {
		if *rev.AttachmentCount < 0 {
			return invalid("attachment count cannot be negative")
		}
		l.AttachmentCount = *rev.AttachmentCount
	}
	if rev.SignedBy != nil {
		l.SignedBy = strings.TrimSpace(*rev.SignedBy)
	}
	if rev.SignedRole != nil {
		l.SignedRole = strings.TrimSpace(*rev.SignedRole)
	}
	if rev.QRCodeURL != nil {
		l.QRCodeURL = *rev.QRCodeURL
	}
	l.UpdatedAt = now.UTC()
	return nil
}

// Fingerprint returns the display-only authenticity cue printed on a letter:
// AYS-SHA256-{first 8 of the upper-cased id}-{upper-cased hex of createdAt in ms}.
// It is not a content hash.
func (l *Letter) Fingerprint() string {
	id := strings.ToUpper(l.ID.String())
	if len(id) > 8 {
		id = id[:8]
	}
	stamp := strings.ToUpper(strconv.FormatInt(l.CreatedAt.UnixMilli(), 16))
	return "AYS-SHA256-" + id + "-" + stamp
}

func validateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return invalid("date must use the YYYY-MM-DD layout")
	}
	return nil
}

func invalid(message string) error {
	return shared.NewDomainError(shared.ErrInvalidInput.Code, message)
}
