package natsutil

import (
	"testing"

	"github.com/nats-io/nats.go"
)

func TestCarrierSetGet(t *testing.T) {
	msg := &nats.Msg{Subject: "test"}
	c := (*natsHeaderCarrier)(msg)

	if c.Get("traceparent") != "" {
		t.Fatal("empty carrier should return empty value")
	}

	c.Set("traceparent", "00-abc-def-01")
	if got := c.Get("traceparent"); got != "00-abc-def-01" {
		t.Fatalf("expected injected value, got %q", got)
	}

	keys := c.Keys()
	if len(keys) != 1 {
		t.Fatalf("expected 1 key, got %v", keys)
	}
}

func TestCarrierKeysNilHeader(t *testing.T) {
	c := (*natsHeaderCarrier)(&nats.Msg{})
	if c.Keys() != nil {
		t.Fatal("nil header should yield nil keys")
	}
}
