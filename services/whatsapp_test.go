package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sparkmeals/config"
)

func TestWhatsAppClientSend(t *testing.T) {
	var got WhatsAppMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/send" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer wa-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"wamid.1"}`))
	}))
	defer srv.Close()

	c := NewWhatsAppClient(config.WhatsAppConfig{BaseURL: srv.URL + "/", APIKey: "wa-key", Timeout: time.Second}, nil)
	resp, err := c.Send(context.Background(), WhatsAppMessage{Phone: "+15551234567", Message: "hi"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !resp.OK() || string(resp.Body) != `{"id":"wamid.1"}` {
		t.Errorf("resp = %d %s", resp.Status, resp.Body)
	}
	if got.Phone != "+15551234567" || got.Message != "hi" {
		t.Errorf("upstream received %+v", got)
	}
}

func TestWhatsAppClientNonOK(t *testing.T) {
	tests := []struct {
		name, body, want string
		status           int
	}{
		{"json body", `{"error":"invalid phone"}`, `{"error":"invalid phone"}`, http.StatusBadRequest},
		{"text body", "rate limited", `"rate limited"`, http.StatusTooManyRequests},
		{"empty body", "", "null", http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewWhatsAppClient(config.WhatsAppConfig{BaseURL: srv.URL, Timeout: time.Second}, nil)
			resp, err := c.Send(context.Background(), WhatsAppMessage{})
			if err != nil {
				t.Fatalf("Send: %v", err)
			}
			if resp.OK() || resp.Status != tt.status {
				t.Errorf("status = %d, want %d", resp.Status, tt.status)
			}
			if string(resp.Body) != tt.want {
				t.Errorf("body = %s, want %s", resp.Body, tt.want)
			}
		})
	}
}

func TestWhatsAppClientNonJSONSuccess(t *testing.T) {
	for _, body := range []string{"<html>gateway ok</html>", "", "   "} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		c := NewWhatsAppClient(config.WhatsAppConfig{BaseURL: srv.URL, Timeout: time.Second}, nil)
		resp, err := c.Send(context.Background(), WhatsAppMessage{})
		srv.Close()
		if !errors.Is(err, ErrInvalidUpstreamBody) {
			t.Errorf("body %q: err = %v, want ErrInvalidUpstreamBody", body, err)
		}
		if resp != nil {
			t.Errorf("body %q: resp = %+v, want nil", body, resp)
		}
	}
}

func TestWhatsAppClientNotConfigured(t *testing.T) {
	c := NewWhatsAppClient(config.WhatsAppConfig{}, nil)
	if _, err := c.Send(context.Background(), WhatsAppMessage{}); err == nil {
		t.Error("expected error without base url")
	}
}

func TestWhatsAppClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewWhatsAppClient(config.WhatsAppConfig{BaseURL: url, Timeout: time.Second}, nil)
	if _, err := c.Send(context.Background(), WhatsAppMessage{}); err == nil {
		t.Error("expected transport error")
	}
}
