package persistence

import (
	"testing"
	"time"

	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/stretchr/testify/require"
)

func newNumberedLetter(t *testing.T, number, typeCode string, date string) *correspondence.Letter {
	t.Helper()
	letter, err := correspondence.NewLetter(correspondence.LetterDraft{
		TypeCode:     typeCode,
		DivisionCode: "RIN",
		Title:        "Undangan Rapat " + number,
		Date:         date,
		Sender:       correspondence.DefaultSender,
		Recipient:    "Ketua Panitia",
		Content:      "Isi surat",
		SignedBy:     correspondence.DefaultSigner,
		SignedRole:   correspondence.DefaultSignerRole,
	}, time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, letter.AssignNumber(number))
	return letter
}
