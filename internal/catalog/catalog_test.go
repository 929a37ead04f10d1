package catalog

import (
	"testing"

	"github.com/BerylCAtieno/fondue-strategy-agent/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogContents(t *testing.T) {
	c := Default()

	assert.Len(t, c.Channels(), 6)
	assert.Len(t, c.Audiences(), 6)

	ch, ok := c.Channel(models.ChannelEDM)
	require.True(t, ok)
	assert.Equal(t, "Email Marketing", ch.Label)

	_, ok = c.Channel("Radio")
	assert.False(t, ok)

	a, ok := c.Audience("foodies")
	require.True(t, ok)
	assert.Equal(t, "Food and Event Enthusiasts", a.Title)

	_, ok = c.Audience("nobody")
	assert.False(t, ok)

	g := c.Guidelines()
	assert.Len(t, g.KeySentences, 10)
	assert.Contains(t, g.Keywords, "Fed Square")
}

func TestCatalogIsNotMutatedThroughAccessors(t *testing.T) {
	c := Default()

	a, _ := c.Audience("corporate")
	a.Interests[0] = "changed"
	a.Title = "changed"

	again, _ := c.Audience("corporate")
	assert.Equal(t, "Networking", again.Interests[0])
	assert.Equal(t, "Corporate Group", again.Title)

	list := c.Audiences()
	list[0].PeakOnlineTime[0] = "never"
	first, _ := c.Audience(list[0].ID)
	assert.NotEqual(t, "never", first.PeakOnlineTime[0])

	g := c.Guidelines()
	g.Keywords[0] = "changed"
	assert.Equal(t, "Alps", c.Guidelines().Keywords[0])
}

func TestNewIgnoresDuplicateIDs(t *testing.T) {
	c := New(
		[]models.ChannelInfo{{ID: models.ChannelAd, Label: "first"}, {ID: models.ChannelAd, Label: "second"}},
		[]models.AudienceProfile{{ID: "x", Title: "first"}, {ID: "x", Title: "second"}},
		models.BrandGuidelines{},
	)

	assert.Len(t, c.Channels(), 1)
	ch, _ := c.Channel(models.ChannelAd)
	assert.Equal(t, "first", ch.Label)

	a, _ := c.Audience("x")
	assert.Equal(t, "first", a.Title)
}
