package memory

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/shared"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/persistence"
)

// LetterRepository is the in-memory Archive Store. Letters are kept in
// insertion order.
type LetterRepository struct {
	store *Store
	held  bool
}

// Upsert inserts the letter or replaces the one with the same ID in place.
func (r *LetterRepository) Upsert(_ context.Context, letter *correspondence.Letter) error {
	key := letter.NormalizedNumber()
	if key == "" {
		return shared.NewDomainError("INVALID_INPUT", "letter has no number")
	}

	var err error
	r.store.write(r.held, func() {
		if idx, ok := r.store.byNumber[key]; ok && r.store.letters[idx].ID != letter.ID {
			err = shared.ErrNumberConflict
			return
		}
		if idx, ok := r.store.byID[letter.ID]; ok {
			stored := *letter
			stored.CreatedAt = r.store.letters[idx].CreatedAt
			delete(r.store.byNumber, r.store.letters[idx].NormalizedNumber())
			r.store.letters[idx] = stored
			r.store.byNumber[key] = idx
			return
		}
		r.store.letters = append(r.store.letters, *letter)
		idx := len(r.store.letters) - 1
		r.store.byID[letter.ID] = idx
		r.store.byNumber[key] = idx
	})
	return err
}

// List returns every letter in insertion order.
func (r *LetterRepository) List(_ context.Context) ([]correspondence.Letter, error) {
	var letters []correspondence.Letter
	r.store.read(r.held, func() {
		letters = make([]correspondence.Letter, len(r.store.letters))
		copy(letters, r.store.letters)
	})
	return letters, nil
}

// FindByID finds a letter by ID.
func (r *LetterRepository) FindByID(_ context.Context, id uuid.UUID) (*correspondence.Letter, error) {
	var found *correspondence.Letter
	r.store.read(r.held, func() {
		if idx, ok := r.store.byID[id]; ok {
			l := r.store.letters[idx]
			found = &l
		}
	})
	if found == nil {
		return nil, shared.ErrNotFound
	}
	return found, nil
}

// FindByNumber finds a letter by its normalized number.
func (r *LetterRepository) FindByNumber(_ context.Context, number string) (*correspondence.Letter, error) {
	key := correspondence.NormalizeNumber(number)
	var found *correspondence.Letter
	r.store.read(r.held, func() {
		if idx, ok := r.store.byNumber[key]; ok && key != "" {
			l := r.store.letters[idx]
			found = &l
		}
	})
	if found == nil {
		return nil, shared.ErrNotFound
	}
	return found, nil
}

// Search returns one page of matching letters, newest first.
func (r *LetterRepository) Search(_ context.Context, filter correspondence.LetterFilter) ([]correspondence.Letter, int64, error) {
	filter.Filter = filter.Normalize()
	var matched []correspondence.Letter
	r.store.read(r.held, func() {
		for i := range r.store.letters {
			if matches(&r.store.letters[i], filter) {
				matched = append(matched, r.store.letters[i])
			}
		}
	})
	sortLetters(matched, filter.OrderBy, filter.OrderDir)

	total := int64(len(matched))
	start := filter.Offset()
	if start >= len(matched) {
		return []correspondence.Letter{}, total, nil
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// sortLetters orders letters held in insertion order the way the SQL store
// does: by the whitelisted field, ties by insertion, both in one direction.
func sortLetters(letters []correspondence.Letter, orderBy, orderDir string) {
	field, dir := persistence.LetterOrder(orderBy, orderDir)
	if less := letterLess(field); less != nil {
		sort.SliceStable(letters, func(i, j int) bool { return less(&letters[i], &letters[j]) })
	}
	if dir == "DESC" {
		slices.Reverse(letters)
	}
}

func letterLess(field string) func(a, b *correspondence.Letter) bool {
	switch field {
	case "issue_date":
		return func(a, b *correspondence.Letter) bool { return a.Date < b.Date }
	case "title":
		return func(a, b *correspondence.Letter) bool { return a.Title < b.Title }
	case "recipient":
		return func(a, b *correspondence.Letter) bool { return a.Recipient < b.Recipient }
	case "type_code":
		return func(a, b *correspondence.Letter) bool { return a.TypeCode < b.TypeCode }
	case "division_code":
		return func(a, b *correspondence.Letter) bool { return a.DivisionCode < b.DivisionCode }
	case "created_at":
		return func(a, b *correspondence.Letter) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "updated_at":
		return func(a, b *correspondence.Letter) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	}
	return nil
}

func matches(l *correspondence.Letter, filter correspondence.LetterFilter) bool {
	if filter.TypeCode != "" && l.TypeCode != filter.TypeCode {
		return false
	}
	if filter.DivisionCode != "" && !strings.EqualFold(l.DivisionCode, filter.DivisionCode) {
		return false
	}
	if filter.NumberOnly != nil && l.IsNumberOnly != *filter.NumberOnly {
		return false
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Title), search) ||
		strings.Contains(l.NormalizedNumber(), correspondence.NormalizeNumber(search)) ||
		strings.Contains(strings.ToLower(l.Recipient), search)
}

// Stats counts the archive for the dashboard.
func (r *LetterRepository) Stats(_ context.Context, monthPrefix string) (*correspondence.LetterStats, error) {
	stats := &correspondence.LetterStats{ByType: make(map[string]int64)}
	r.store.read(r.held, func() {
		for i := range r.store.letters {
			l := &r.store.letters[i]
			stats.Total++
			if !l.IsNumberOnly {
				stats.Issued++
			}
			if strings.HasPrefix(l.Date, monthPrefix) {
				stats.ThisMonth++
			}
			stats.ByType[l.TypeCode]++
		}
	})
	return stats, nil
}

var _ correspondence.LetterRepository = (*LetterRepository)(nil)
