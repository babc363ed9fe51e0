package mux

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateAsset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/video/v1/assets" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "token" || pass != "secret" {
			t.Errorf("basic auth = %q/%q/%v", user, pass, ok)
		}
		var body createAssetRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if len(body.Input) != 1 || body.Input[0].Url != "https://videos.example.com/a.mp4" {
			t.Errorf("input = %+v", body.Input)
		}
		if len(body.PlaybackPolicy) != 1 || body.PlaybackPolicy[0] != PlaybackPolicyPublic {
			t.Errorf("playback policy = %v", body.PlaybackPolicy)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"asset-1","status":"preparing","playback_ids":[{"id":"play-1","policy":"public"}]}}`))
	}))
	defer srv.Close()

	c := NewClient(Options{TokenId: "token", TokenSecret: "secret", BaseURL: srv.URL})
	asset, err := c.CreateAsset(context.Background(), "https://videos.example.com/a.mp4")
	if err != nil {
		t.Fatalf("create asset: %v", err)
	}
	playbackId, ok := asset.PublicPlaybackId()
	if asset.Id != "asset-1" || !ok || playbackId != "play-1" {
		t.Fatalf("asset = %+v", asset)
	}
}

func TestCreateAssetWithoutPlaybackId(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"asset-2","status":"preparing","playback_ids":[]}}`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	asset, err := c.CreateAsset(context.Background(), "https://videos.example.com/b.mp4")
	if !errors.Is(err, ErrNoPlaybackId) {
		t.Fatalf("err = %v, want ErrNoPlaybackId", err)
	}
	if asset == nil || asset.Id != "asset-2" {
		t.Fatalf("asset should be returned for cleanup, got %+v", asset)
	}
}

func TestCreateAssetServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"type":"invalid_parameters"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	if _, err := c.CreateAsset(context.Background(), "not a url"); !errors.Is(err, ErrUnexpectedCode) {
		t.Fatalf("err = %v, want ErrUnexpectedCode", err)
	}
}

func TestDeleteAsset(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "deleted", status: http.StatusNoContent},
		{name: "missing", status: http.StatusNotFound, wantErr: ErrAssetNotFound},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrUnexpectedCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete || r.URL.Path != "/video/v1/assets/asset-1" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := NewClient(Options{BaseURL: srv.URL}).DeleteAsset(context.Background(), "asset-1")
			if tt.wantErr == nil && err != nil {
				t.Fatalf("err = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStatusErrorPermanent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := NewClient(Options{BaseURL: srv.URL}).DeleteAsset(context.Background(), "asset-1")
	var status *StatusError
	if !errors.As(err, &status) || status.StatusCode != http.StatusUnauthorized || status.Body != "unauthorized" {
		t.Fatalf("err = %#v", err)
	}

	permanent := map[int]bool{
		http.StatusBadRequest:          true,
		http.StatusUnauthorized:        true,
		http.StatusForbidden:           true,
		http.StatusRequestTimeout:      false,
		http.StatusTooManyRequests:     false,
		http.StatusInternalServerError: false,
		http.StatusBadGateway:          false,
	}
	for code, want := range permanent {
		if got := (&StatusError{StatusCode: code}).Permanent(); got != want {
			t.Errorf("Permanent(%d) = %v, want %v", code, got, want)
		}
	}
}
