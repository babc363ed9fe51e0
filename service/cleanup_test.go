package service_test

import (
	"context"
	"course-studio/constant"
	"course-studio/dto"
	"course-studio/pkg/mux"
	"course-studio/pkg/mux/muxtest"
	"course-studio/service"
	"errors"
	"github.com/google/uuid"
	"testing"
	"time"
)

func TestAssetCleanup(t *testing.T) {
	videos := muxtest.New()
	videos.Seed("asset-1")
	svc := service.NewAssetCleanupService(videos, 3, time.Millisecond)
	msg := dto.AssetCleanupMessage{AssetId: "asset-1", ChapterId: uuid.New(), Reason: constant.CleanupReasonVideoReplaced}

	if err := svc.Process(context.Background(), msg); err != nil {
		t.Fatalf("process: %v", err)
	}
	if videos.IsLive("asset-1") {
		t.Fatal("asset should be deleted")
	}

	// already gone
	if err := svc.Process(context.Background(), msg); err != nil {
		t.Fatalf("process missing asset: %v", err)
	}
}

func TestAssetCleanupGivesUp(t *testing.T) {
	videos := muxtest.New()
	videos.Seed("asset-1")
	videos.DeleteErr = errors.New("mux unavailable")
	svc := service.NewAssetCleanupService(videos, 3, time.Millisecond)

	err := svc.Process(context.Background(), dto.AssetCleanupMessage{AssetId: "asset-1"})
	assertIs(t, err, service.ErrNonRetryable)
	if videos.DeleteCalls != 3 {
		t.Fatalf("delete calls = %d, want 3", videos.DeleteCalls)
	}

	err = svc.Process(context.Background(), dto.AssetCleanupMessage{})
	assertIs(t, err, service.ErrNonRetryable)
}

func TestAssetCleanupStopsOnRejectedRequest(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantCalls int
	}{
		{name: "unauthorized", status: 401, wantCalls: 1},
		{name: "bad request", status: 400, wantCalls: 1},
		{name: "rate limited", status: 429, wantCalls: 3},
		{name: "server error", status: 502, wantCalls: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videos := muxtest.New()
			videos.Seed("asset-1")
			videos.DeleteErr = &mux.StatusError{StatusCode: tt.status}
			svc := service.NewAssetCleanupService(videos, 3, time.Millisecond)

			err := svc.Process(context.Background(), dto.AssetCleanupMessage{AssetId: "asset-1"})
			assertIs(t, err, service.ErrNonRetryable)
			assertIs(t, err, mux.ErrUnexpectedCode)
			if videos.DeleteCalls != tt.wantCalls {
				t.Fatalf("delete calls = %d, want %d", videos.DeleteCalls, tt.wantCalls)
			}
		})
	}
}
