package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seminarbooking/internal/domain"
)

func TestTopicResolver_Resolve_SingleAndTopic(t *testing.T) {
	ctx := context.Background()
	single := &domain.Event{UID: 1, Kind: domain.RecordTypeSingle, Title: "Go basics"}
	topic := &domain.Event{UID: 2, Kind: domain.RecordTypeTopic, Title: "Advanced Go"}
	r := NewTopicResolver(newFakeEventRepo(single, topic))

	got, err := r.Resolve(ctx, single)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = r.Resolve(ctx, topic)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTopicResolver_Resolve_DateDelegatesToTopic(t *testing.T) {
	ctx := context.Background()
	topic := &domain.Event{UID: 2, Kind: domain.RecordTypeTopic, Title: "Advanced Go", PriceRegular: 5000}
	date := &domain.Event{UID: 3, Kind: domain.RecordTypeDate, TopicRef: 2, Title: "wrong own title"}
	r := NewTopicResolver(newFakeEventRepo(topic, date))

	got, err := r.Resolve(ctx, date)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.UID)

	eff, err := r.Effective(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, "Advanced Go", eff.Title)
	assert.Equal(t, domain.Amount(5000), eff.PriceRegular)
}

func TestTopicResolver_Resolve_DanglingReferenceFallsBackToSelf(t *testing.T) {
	ctx := context.Background()
	date := &domain.Event{UID: 3, Kind: domain.RecordTypeDate, TopicRef: 99, Title: "own title"}
	r := NewTopicResolver(newFakeEventRepo(date))

	got, err := r.Resolve(ctx, date)
	require.NoError(t, err)
	assert.Nil(t, got)

	eff, err := r.Effective(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, "own title", eff.Title)
}

func TestTopicResolver_Resolve_TopicPointingToDateBreaksCycle(t *testing.T) {
	ctx := context.Background()
	// Two date records referencing each other: a historically tolerated
	// inconsistency that must not recurse.
	a := &domain.Event{UID: 1, Kind: domain.RecordTypeDate, TopicRef: 2, Title: "a"}
	b := &domain.Event{UID: 2, Kind: domain.RecordTypeDate, TopicRef: 1, Title: "b"}
	r := NewTopicResolver(newFakeEventRepo(a, b))

	got, err := r.Resolve(ctx, a)
	require.NoError(t, err)
	assert.Nil(t, got)

	eff, err := r.Effective(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "a", eff.Title)
}

func TestTopicResolver_Resolve_CachesPerEventUID(t *testing.T) {
	ctx := context.Background()
	topic := &domain.Event{UID: 2, Kind: domain.RecordTypeTopic, Title: "Advanced Go"}
	date := &domain.Event{UID: 3, Kind: domain.RecordTypeDate, TopicRef: 2}
	repo := newFakeEventRepo(topic, date)
	r := NewTopicResolver(repo)

	first, err := r.Resolve(ctx, date)
	require.NoError(t, err)
	loadsAfterFirst := repo.loads

	second, err := r.Resolve(ctx, date)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, loadsAfterFirst, repo.loads, "second resolution must be served from cache")

	// Failed resolutions are cached too, so cyclic references are
	// short-circuited on repeat lookups.
	dangling := &domain.Event{UID: 4, Kind: domain.RecordTypeDate, TopicRef: 77}
	_, err = r.Resolve(ctx, dangling)
	require.NoError(t, err)
	loadsAfterDangling := repo.loads
	_, err = r.Resolve(ctx, dangling)
	require.NoError(t, err)
	assert.Equal(t, loadsAfterDangling, repo.loads)

	r.Invalidate(date.UID)
	_, err = r.Resolve(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, loadsAfterDangling+1, repo.loads, "invalidation must force a reload")
}

func TestTopicResolver_DelegatedPricesMatchTopic(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	topic := &domain.Event{
		UID:          2,
		Kind:         domain.RecordTypeTopic,
		Title:        "Advanced Go",
		PriceRegular: 5000,
		PriceSpecial: 3000,
	}
	date := &domain.Event{UID: 3, Kind: domain.RecordTypeDate, TopicRef: 2}
	repo := newFakeEventRepo(topic, date)
	resolver := NewTopicResolver(repo)
	engine := NewPricingEngine(resolver, fixedClock{now}, keyTranslator{})

	datePrices, err := engine.AvailablePrices(ctx, date)
	require.NoError(t, err)
	topicPrices, err := engine.AvailablePrices(ctx, topic)
	require.NoError(t, err)
	assert.Equal(t, topicPrices, datePrices)

	// Repeated calls return identical results.
	again, err := engine.AvailablePrices(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, datePrices, again)
}
