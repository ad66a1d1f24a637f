package providers

import (
	"testing"

	"github.com/kitadi/kitadi/internal/config"
)

func TestNewRedisUnconfigured(t *testing.T) {
	if rdb := NewRedis(config.Server{}); rdb != nil {
		t.Fatalf("expected nil client with no redis address configured")
	}
}
