package discord

import (
	"fmt"
	"sync"
)

// channelCache maps guild+user to the voice channel the user currently sits in.
type channelCache struct {
	mu    sync.RWMutex
	items map[string]string
}

func newChannelCache() *channelCache {
	return &channelCache{
		items: make(map[string]string),
	}
}

func (c *channelCache) Get(guildID, userID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.items[c.key(guildID, userID)]
	return id, ok
}

func (c *channelCache) Set(guildID, userID, channelID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[c.key(guildID, userID)] = channelID
}

func (c *channelCache) Invalidate(guildID, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, c.key(guildID, userID))
}

func (c *channelCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *channelCache) key(guildID, userID string) string {
	return fmt.Sprintf("%s:%s", guildID, userID)
}
