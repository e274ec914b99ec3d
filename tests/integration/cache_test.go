package integration

import (
	"context"
	"testing"
	"time"

	corrapp "github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/application/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/cache"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/persistence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisVerificationCache(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	rdb := NewTestRedis(t)
	ctx := context.Background()
	c := cache.NewRedisVerificationCacheWithClient(rdb.Client, "", time.Minute)

	key := correspondence.NormalizeNumber("02.001/DIV-RIN/IV/2026")
	result := correspondence.VerificationResult{
		Found:       true,
		Number:      "02.001/DIV-RIN/IV/2026",
		Title:       "Undangan",
		TypeCode:    "02",
		Recipient:   "Mitra",
		SignedBy:    correspondence.DefaultSigner,
		SignedRole:  correspondence.DefaultSignerRole,
		Date:        "2026-04-15",
		CreatedAt:   issueDay,
		Fingerprint: "abc123",
	}

	t.Run("miss", func(t *testing.T) {
		_, ok, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, key, result))

		got, ok, err := c.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, result.Number, got.Number)
		assert.True(t, got.CreatedAt.Equal(result.CreatedAt))

		ttl, err := rdb.Client.TTL(ctx, cache.DefaultKeyPrefix+key).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("invalidate", func(t *testing.T) {
		require.NoError(t, c.Invalidate(ctx, key))
		_, ok, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	require.NoError(t, rdb.FlushAll(ctx))
}

// Verification over postgres with a Redis cache: a found result is cached,
// an edit drops the entry, and the next lookup sees the new title.
func TestVerification_PostgresWithRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := NewSharedTestDB(t)
	db.CleanTables()
	rdb := NewTestRedis(t)
	ctx := context.Background()

	verificationCache := cache.NewRedisVerificationCacheWithClient(rdb.Client, "ays:test:", time.Minute)
	txScope := persistence.NewGormTransactionScope(db.DB)
	letters := persistence.NewGormLetterRepository(db.DB)
	catalog := persistence.NewGormCatalogRepository(db.DB)

	numbering := newPostgresNumbering(db, corrapp.DefaultNumberingConfig())
	archive := corrapp.NewArchiveService(txScope, letters, catalog, verificationCache, time.UTC, nil)
	verification := corrapp.NewVerificationService(letters, catalog, verificationCache, nil, nil)

	issued, err := numbering.IssueNumber(ctx, testutil.IssueRequest("02", "RIN"))
	require.NoError(t, err)
	key := correspondence.NormalizeNumber(issued.Number)

	t.Run("unknown number is not cached", func(t *testing.T) {
		resp := verification.Verify(ctx, "99.999/DIV-RIN/IV/2026")
		assert.False(t, resp.Found)

		n, err := rdb.Client.Exists(ctx, "ays:test:"+correspondence.NormalizeNumber("99.999/DIV-RIN/IV/2026")).Result()
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("found result is cached", func(t *testing.T) {
		resp := verification.Verify(ctx, issued.Number)
		require.True(t, resp.Found)
		assert.Equal(t, "Surat Undangan", resp.TypeName)

		n, err := rdb.Client.Exists(ctx, "ays:test:"+key).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("update invalidates", func(t *testing.T) {
		title := "Undangan Rapat Pleno"
		_, err := archive.Update(ctx, uuidOf(t, issued.ID), corrapp.UpdateLetterRequest{Title: &title})
		require.NoError(t, err)

		n, err := rdb.Client.Exists(ctx, "ays:test:"+key).Result()
		require.NoError(t, err)
		assert.Zero(t, n)

		resp := verification.Verify(ctx, issued.Number)
		require.True(t, resp.Found)
		assert.Equal(t, title, resp.Title)
	})
}
