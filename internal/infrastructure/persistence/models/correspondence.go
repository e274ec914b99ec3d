package models

import (
	"time"

	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/shared"
)

// LetterCounterModel is the GORM model for the letter_counters table
type LetterCounterModel struct {
	Key       string    `gorm:"column:counter_key;type:varchar(64);primaryKey"`
	Value     int64     `gorm:"column:counter_value;not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for LetterCounterModel
func (LetterCounterModel) TableName() string {
	return "letter_counters"
}

// LetterModel is the GORM model for the letters table.
// ArchiveSeq records insertion order and never changes after the first insert.
type LetterModel struct {
	BaseModel
	ArchiveSeq       int64  `gorm:"column:archive_seq;not null;uniqueIndex:idx_letters_archive_seq"`
	Number           string `gorm:"type:varchar(100);not null"`
	NumberNormalized string `gorm:"column:number_normalized;type:varchar(100);not null;uniqueIndex:idx_letters_number_normalized"`
	TypeCode         string `gorm:"column:type_code;type:varchar(10);not null;index"`
	DivisionCode     string `gorm:"column:division_code;type:varchar(10);not null;index"`
	Title            string `gorm:"type:varchar(255);not null"`
	IssueDate        string `gorm:"column:issue_date;type:varchar(10);not null;index"`
	Sender           string `gorm:"type:varchar(255);not null;default:''"`
	Recipient        string `gorm:"type:varchar(255);not null"`
	Content          string `gorm:"type:text;not null;default:''"`
	AttachmentCount  int    `gorm:"column:attachment_count;not null;default:0"`
	SignedBy         string `gorm:"column:signed_by;type:varchar(255);not null;default:''"`
	SignedRole       string `gorm:"column:signed_role;type:varchar(255);not null;default:''"`
	QRCodeURL        string `gorm:"column:qr_code_url;type:varchar(1024);not null;default:''"`
	IsNumberOnly     bool   `gorm:"column:is_number_only;not null;default:false"`
}

// TableName returns the table name for LetterModel
func (LetterModel) TableName() string {
	return "letters"
}

// ToDomain converts LetterModel to domain Letter
func (m *LetterModel) ToDomain() *correspondence.Letter {
	base := m.BaseModel.ToDomain()
	return &correspondence.Letter{
		ID:              base.ID,
		Number:          m.Number,
		TypeCode:        m.TypeCode,
		DivisionCode:    m.DivisionCode,
		Title:           m.Title,
		Date:            m.IssueDate,
		Sender:          m.Sender,
		Recipient:       m.Recipient,
		Content:         m.Content,
		AttachmentCount: m.AttachmentCount,
		SignedBy:        m.SignedBy,
		SignedRole:      m.SignedRole,
		QRCodeURL:       m.QRCodeURL,
		IsNumberOnly:    m.IsNumberOnly,
		CreatedAt:       base.CreatedAt,
		UpdatedAt:       base.UpdatedAt,
	}
}

// LetterModelFromDomain creates a LetterModel from domain Letter.
// ArchiveSeq is left for the repository to assign.
func LetterModelFromDomain(l *correspondence.Letter) *LetterModel {
	m := &LetterModel{
		Number:           l.Number,
		NumberNormalized: l.NormalizedNumber(),
		TypeCode:         l.TypeCode,
		DivisionCode:     l.DivisionCode,
		Title:            l.Title,
		IssueDate:        l.Date,
		Sender:           l.Sender,
		Recipient:        l.Recipient,
		Content:          l.Content,
		AttachmentCount:  l.AttachmentCount,
		SignedBy:         l.SignedBy,
		SignedRole:       l.SignedRole,
		QRCodeURL:        l.QRCodeURL,
		IsNumberOnly:     l.IsNumberOnly,
	}
	m.FromDomainBaseEntity(shared.BaseEntity{ID: l.ID, CreatedAt: l.CreatedAt, UpdatedAt: l.UpdatedAt})
	return m
}

// LetterTypeModel is the GORM model for the letter_types catalog table
type LetterTypeModel struct {
	Code      string `gorm:"type:varchar(10);primaryKey"`
	Name      string `gorm:"type:varchar(100);not null"`
	SortOrder int    `gorm:"column:sort_order;not null;default:0"`
}

// TableName returns the table name for LetterTypeModel
func (LetterTypeModel) TableName() string {
	return "letter_types"
}

// ToDomain converts LetterTypeModel to domain LetterType
func (m *LetterTypeModel) ToDomain() correspondence.LetterType {
	return correspondence.LetterType{Code: m.Code, Name: m.Name}
}

// DivisionModel is the GORM model for the divisions catalog table
type DivisionModel struct {
	Code      string `gorm:"type:varchar(10);primaryKey"`
	Name      string `gorm:"type:varchar(100);not null"`
	SortOrder int    `gorm:"column:sort_order;not null;default:0"`
}

// TableName returns the table name for DivisionModel
func (DivisionModel) TableName() string {
	return "divisions"
}

// ToDomain converts DivisionModel to domain Division
func (m *DivisionModel) ToDomain() correspondence.Division {
	return correspondence.Division{Code: m.Code, Name: m.Name}
}

// CorrespondenceModels lists the models of the correspondence context, in
// dependency order, for AutoMigrate.
func CorrespondenceModels() []any {
	return []any{
		&LetterTypeModel{},
		&DivisionModel{},
		&LetterCounterModel{},
		&LetterModel{},
	}
}
