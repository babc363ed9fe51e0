// Package muxtest provides an in-memory mux.Client for tests.
package muxtest

import (
	"context"
	"course-studio/pkg/mux"
	"fmt"
	"sync"
)

type Client struct {
	mu sync.Mutex

	// CreateErr and DeleteErr are returned by every call while set.
	CreateErr error
	DeleteErr error
	// NoPlayback makes CreateAsset return an asset without playback ids.
	NoPlayback bool

	next    int
	Live    map[string]string
	Created []string
	Deleted []string
	// DeleteCalls counts every DeleteAsset attempt, failed ones included.
	DeleteCalls int
}

func New() *Client {
	return &Client{Live: map[string]string{}}
}

func (c *Client) CreateAsset(_ context.Context, sourceURL string) (*mux.Asset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.CreateErr != nil {
		return nil, c.CreateErr
	}
	c.next++
	id := fmt.Sprintf("asset-%d", c.next)
	c.Live[id] = sourceURL
	c.Created = append(c.Created, id)

	asset := &mux.Asset{Id: id, Status: "preparing"}
	if c.NoPlayback {
		return asset, mux.ErrNoPlaybackId
	}
	asset.PlaybackIds = []mux.PlaybackId{{Id: "playback-" + id, Policy: mux.PlaybackPolicyPublic}}
	return asset, nil
}

func (c *Client) DeleteAsset(_ context.Context, assetId string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DeleteCalls++
	if c.DeleteErr != nil {
		return c.DeleteErr
	}
	if _, ok := c.Live[assetId]; !ok {
		return mux.ErrAssetNotFound
	}
	delete(c.Live, assetId)
	c.Deleted = append(c.Deleted, assetId)
	return nil
}

// Seed registers an asset as existing remotely.
func (c *Client) Seed(assetId string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Live[assetId] = ""
}

func (c *Client) IsLive(assetId string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.Live[assetId]
	return ok
}
