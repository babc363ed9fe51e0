// Package mux is a small client for the Mux Video assets API.
package mux

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	PlaybackPolicyPublic = "public"
	defaultBaseURL       = "https://api.mux.com"
)

var (
	ErrAssetNotFound  = errors.New("mux asset not found")
	ErrNoPlaybackId   = errors.New("mux asset has no playback id")
	ErrUnexpectedCode = errors.New("unexpected mux response")
)

type Asset struct {
	Id          string       `json:"id"`
	Status      string       `json:"status"`
	PlaybackIds []PlaybackId `json:"playback_ids"`
}

type PlaybackId struct {
	Id     string `json:"id"`
	Policy string `json:"policy"`
}

// PublicPlaybackId returns the first public playback id, falling back to any
// playback id the asset has.
func (a *Asset) PublicPlaybackId() (string, bool) {
	for _, p := range a.PlaybackIds {
		if p.Policy == PlaybackPolicyPublic && p.Id != "" {
			return p.Id, true
		}
	}
	for _, p := range a.PlaybackIds {
		if p.Id != "" {
			return p.Id, true
		}
	}
	return "", false
}

type Client interface {
	CreateAsset(ctx context.Context, sourceURL string) (*Asset, error)
	DeleteAsset(ctx context.Context, assetId string) error
}

type Options struct {
	TokenId     string
	TokenSecret string
	BaseURL     string
	Timeout     time.Duration
	HTTPClient  *http.Client
}

type client struct {
	tokenId     string
	tokenSecret string
	baseURL     string
	http        *http.Client
}

func NewClient(opts Options) Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &client{
		tokenId:     opts.TokenId,
		tokenSecret: opts.TokenSecret,
		baseURL:     baseURL,
		http:        httpClient,
	}
}

type assetInput struct {
	Url string `json:"url"`
}

type createAssetRequest struct {
	Input          []assetInput `json:"input"`
	PlaybackPolicy []string     `json:"playback_policy"`
}

type assetResponse struct {
	Data Asset `json:"data"`
}

// CreateAsset asks Mux to ingest sourceURL with public playback. An asset that
// comes back without a playback id is returned together with ErrNoPlaybackId.
func (c *client) CreateAsset(ctx context.Context, sourceURL string) (*Asset, error) {
	body, err := json.Marshal(createAssetRequest{
		Input:          []assetInput{{Url: sourceURL}},
		PlaybackPolicy: []string{PlaybackPolicyPublic},
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/video/v1/assets", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, unexpected(resp)
	}

	var decoded assetResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode mux asset: %w", err)
	}
	asset := &decoded.Data
	if _, ok := asset.PublicPlaybackId(); !ok {
		return asset, ErrNoPlaybackId
	}
	return asset, nil
}

func (c *client) DeleteAsset(ctx context.Context, assetId string) error {
	if assetId == "" {
		return ErrAssetNotFound
	}
	resp, err := c.do(ctx, http.MethodDelete, "/video/v1/assets/"+assetId, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrAssetNotFound
	default:
		return unexpected(resp)
	}
}

func (c *client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.tokenId, c.tokenSecret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

// StatusError is a Mux response with an unexpected status code.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", ErrUnexpectedCode, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedCode
}

// Permanent reports whether repeating the request cannot succeed: a 4xx other
// than timeouts and rate limiting.
func (e *StatusError) Permanent() bool {
	switch e.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return e.StatusCode >= 400 && e.StatusCode < 500
}

func unexpected(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
}
