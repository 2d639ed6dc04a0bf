package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetJSONRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name  string  `json:"name"`
		Total float64 `json:"total"`
	}
	c.SetJSON(ctx, JarsKey("u@x.com"), payload{Name: "Trip", Total: 200})

	var got payload
	require.True(t, c.GetJSON(ctx, JarsKey("u@x.com"), &got))
	assert.Equal(t, payload{Name: "Trip", Total: 200}, got)

	// TTL follows the entity class of the key.
	assert.Equal(t, TTLLong, mr.TTL(JarsKey("u@x.com")))
}

func TestGetJSONMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var got map[string]any
	assert.False(t, c.GetJSON(context.Background(), ProfileKey("nobody@x.com"), &got))
}

func TestGetJSONMalformedEntryIsAMiss(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set(ProfileKey("u@x.com"), "{not json"))

	var got map[string]any
	assert.False(t, c.GetJSON(context.Background(), ProfileKey("u@x.com"), &got))
}

func TestShortTTLKeys(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.SetJSON(ctx, InsightsKey("u@x.com"), []string{"fact"})
	assert.Equal(t, TTLShort, mr.TTL(InsightsKey("u@x.com")))
}
