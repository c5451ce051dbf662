package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type backendClient struct {
	http    *http.Client
	baseURL string
}

type statusResponse struct {
	Started    bool              `json:"started"`
	Status     string            `json:"status"`
	Winner     int               `json:"winner"`
	NextPlayer int               `json:"next_player"`
	AiThinking bool              `json:"ai_thinking"`
	History    []historyEntryDTO `json:"history"`
}

type historyEntryDTO struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Player int  `json:"player"`
	IsAi   bool `json:"is_ai"`
}

func newBackendClient(baseURL string) *backendClient {
	return &backendClient{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

func (c *backendClient) waitReady(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if err := c.ping(); err == nil {
			return nil
		}
		if !sleepWithContext(ctx, time.Second) {
			return ctx.Err()
		}
	}
	return fmt.Errorf("backend not ready after %s", timeout)
}

func (c *backendClient) ping() error {
	var out map[string]bool
	if err := c.getJSON("/api/ping", &out); err != nil {
		return err
	}
	if !out["ok"] {
		return fmt.Errorf("ping not ok")
	}
	return nil
}

func (c *backendClient) startGame(whiteTier string) error {
	return c.postJSON("/api/start", map[string]string{"mode": "pve", "difficulty": whiteTier}, nil)
}

func (c *backendClient) stopGame() error {
	return c.postJSON("/api/stop", map[string]any{}, nil)
}

func (c *backendClient) status() (statusResponse, error) {
	var status statusResponse
	err := c.getJSON("/api/status", &status)
	return status, err
}

func (c *backendClient) move(x, y int) error {
	return c.postJSON("/api/move", map[string]int{"x": x, "y": y}, nil)
}

func (c *backendClient) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("GET %s -> %d: %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *backendClient) postJSON(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("POST %s -> %d: %s", path, resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
