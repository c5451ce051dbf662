package main

import "testing"

func TestPublishStatusSkipsWithoutClients(t *testing.T) {
	hub := NewHub()
	hub.PublishStatus(StatusResponse{Status: "running"})
	if len(hub.broadcast) != 0 {
		t.Fatalf("expected nothing queued without clients, got %d", len(hub.broadcast))
	}

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(client)
	if !hub.HasClients() {
		t.Fatalf("expected a registered client")
	}
	hub.PublishStatus(StatusResponse{Status: "running"})
	if len(hub.broadcast) != 1 {
		t.Fatalf("expected one queued status, got %d", len(hub.broadcast))
	}

	hub.Unregister(client)
	if hub.HasClients() {
		t.Fatalf("expected no clients after unregister")
	}
	if _, ok := <-client.send; ok {
		t.Fatalf("expected the client channel to be closed")
	}
}
