package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mithrel/scalemate/internal/db"
)

type speed string

func newDefaults(t *testing.T) (*Defaults, db.Store) {
	t.Helper()
	store, err := db.Open(context.Background(), "mem://")
	require.NoError(t, err)
	return New(context.Background(), store, zaptest.NewLogger(t)), store
}

func TestAbsentValuesReadAsZero(t *testing.T) {
	d, _ := newDefaults(t)
	assert.Equal(t, "", d.ReadString(ActsTaken))
	assert.Equal(t, 0, d.ReadInt(NumSessions))
	assert.False(t, d.ReadBool(AskForReview))
	assert.True(t, d.ReadDate(PrevSession).IsZero())
	assert.Equal(t, speed("slow"), ReadEnum(d, AnimationSpeed, []speed{"slow", "fast"}))
}

func TestMalformedValuesFallBack(t *testing.T) {
	d, store := newDefaults(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, string(NumSessions), "many"))
	require.NoError(t, store.Set(ctx, string(AskForReview), "perhaps"))
	require.NoError(t, store.Set(ctx, string(PrevSession), "yesterday"))
	require.NoError(t, store.Set(ctx, string(AnimationSpeed), "warp"))
	require.NoError(t, store.Set(ctx, string(Tempo), "fast"))
	d.Register(map[Name]string{Tempo: "100", AnimationSpeed: "fast"})

	assert.Equal(t, 0, d.ReadInt(NumSessions))
	assert.Equal(t, 100, d.ReadInt(Tempo))
	assert.False(t, d.ReadBool(AskForReview))
	assert.True(t, d.ReadDate(PrevSession).IsZero())
	assert.Equal(t, speed("fast"), ReadEnum(d, AnimationSpeed, []speed{"slow", "fast"}))
}

func TestRegisteredDefaultsOnlyWhenAbsent(t *testing.T) {
	d, _ := newDefaults(t)
	d.Register(map[Name]string{Tempo: "100"})
	assert.Equal(t, 100, d.ReadInt(Tempo))
	d.SetInt(Tempo, 72)
	assert.Equal(t, 72, d.ReadInt(Tempo))
}

func TestWritesRoundTrip(t *testing.T) {
	d, _ := newDefaults(t)
	now := time.Date(2025, 3, 27, 9, 30, 0, 123, time.UTC)

	d.SetString(ActsTaken, "getHelp,playScale")
	d.SetInt(NumSessions, 12)
	d.SetBool(AskForReview, true)
	d.SetDate(LastReview, now)

	assert.Equal(t, "getHelp,playScale", d.ReadString(ActsTaken))
	assert.Equal(t, 12, d.ReadInt(NumSessions))
	assert.True(t, d.ReadBool(AskForReview))
	assert.True(t, now.Equal(d.ReadDate(LastReview)))

	d.SetDate(LastReview, time.Time{})
	assert.True(t, d.ReadDate(LastReview).IsZero())

	d.SetMany(map[Name]string{ActsTaken: "", HelpPagesViewed: ""})
	assert.Equal(t, "", d.ReadString(ActsTaken))
}

func TestDeleteRestoresRegisteredDefault(t *testing.T) {
	d, store := newDefaults(t)
	d.Register(map[Name]string{Tempo: "100"})
	d.SetInt(Tempo, 150)
	assert.Equal(t, 150, d.ReadInt(Tempo))

	d.Delete(Tempo)
	assert.Equal(t, 100, d.ReadInt(Tempo))
	_, err := store.Get(context.Background(), string(Tempo))
	assert.ErrorIs(t, err, db.ErrNotFound)
}

type failingStore struct{ db.Store }

func (failingStore) Set(context.Context, string, string) error { return errors.New("disk full") }
func (failingStore) Get(context.Context, string) (string, error) {
	return "", errors.New("disk gone")
}

func TestWriteFailuresAreSwallowed(t *testing.T) {
	mem, err := db.Open(context.Background(), "mem://")
	require.NoError(t, err)
	d := New(context.Background(), failingStore{Store: mem}, nil)
	assert.NotPanics(t, func() { d.SetInt(NumSessions, 3) })
	assert.Equal(t, 0, d.ReadInt(NumSessions))
}

func TestParseName(t *testing.T) {
	n, ok := ParseName("showDoubleAccidentals")
	require.True(t, ok)
	assert.Equal(t, ShowDoubleAccidentals, n)
	assert.True(t, IsPreference(n))
	assert.False(t, IsPreference(NumSessions))

	_, ok = ParseName("bogus")
	assert.False(t, ok)
}
