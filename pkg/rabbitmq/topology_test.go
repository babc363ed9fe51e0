package rabbitmq

import (
	"course-studio/constant"
	"testing"
)

func TestAssetCleanupTopology(t *testing.T) {
	tests := []struct {
		name     string
		exchange string
		want     string
	}{
		{name: "default", exchange: "", want: constant.AssetCleanupExchange},
		{name: "configured", exchange: "studio.cleanup", want: "studio.cleanup"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topology := AssetCleanupTopology(tt.exchange)
			if topology.Exchange != tt.want {
				t.Fatalf("exchange = %q, want %q", topology.Exchange, tt.want)
			}
			if topology.DeadLetterExchange != tt.want+"_dlx" {
				t.Fatalf("dlx = %q", topology.DeadLetterExchange)
			}
			if topology.Queue != constant.AssetCleanupQueue || topology.DeadLetterQueue != constant.AssetCleanupDLQ {
				t.Fatalf("queues = %q, %q", topology.Queue, topology.DeadLetterQueue)
			}
		})
	}
}
