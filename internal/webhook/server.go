// Package webhook ingests GitHub, Slack, and Notion event notifications and
// records them through the reporter. Payloads are trusted as-is; signature
// verification is deliberately not performed here.
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/oncallops/groupwatch/internal/report"
	"github.com/oncallops/groupwatch/tools"
)

type Server struct {
	reporter report.Reporter
	http     *http.Server
}

func NewServer(addr string, reporter report.Reporter) *Server {
	s := &Server{reporter: reporter}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /hooks/github", s.handleGitHub)
	mux.HandleFunc("POST /hooks/slack", s.handleSlack)
	mux.HandleFunc("POST /hooks/notion", s.handleNotion)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	s.http = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe blocks until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		tools.Log.Infof("Webhook server listening on %s", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("webhook server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) record(w http.ResponseWriter, r *http.Request, event report.Event) {
	event.ID = uuid.NewString()
	event.ReceivedAt = time.Now()

	if err := s.reporter.ReportEvent(r.Context(), event); err != nil {
		tools.Log.WithError(err).Errorf("Failed to record %s event", event.Source)
		http.Error(w, "failed to record event", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleGitHub(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Action string `json:"action"`
		Sender struct {
			Login string `json:"login"`
		} `json:"sender"`
		Repository struct {
			FullName string `json:"full_name"`
		} `json:"repository"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	eventType := r.Header.Get("X-GitHub-Event")
	if eventType == "" {
		eventType = "unknown"
	}
	summary := payload.Repository.FullName
	if payload.Action != "" {
		summary = fmt.Sprintf("%s %s", payload.Repository.FullName, payload.Action)
	}

	s.record(w, r, report.Event{
		Source:  "github",
		Type:    eventType,
		Actor:   payload.Sender.Login,
		Summary: summary,
	})
}

func (s *Server) handleSlack(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Type      string `json:"type"`
		Challenge string `json:"challenge"`
		Event     struct {
			Type string `json:"type"`
			User string `json:"user"`
			Text string `json:"text"`
		} `json:"event"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	// Slack's subscription handshake expects the challenge echoed back.
	if payload.Type == "url_verification" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"challenge": payload.Challenge})
		return
	}

	s.record(w, r, report.Event{
		Source:  "slack",
		Type:    payload.Event.Type,
		Actor:   payload.Event.User,
		Summary: payload.Event.Text,
	})
}

func (s *Server) handleNotion(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Type   string `json:"type"`
		Entity struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"entity"`
		Authors []struct {
			ID string `json:"id"`
		} `json:"authors"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	actor := ""
	if len(payload.Authors) > 0 {
		actor = payload.Authors[0].ID
	}

	s.record(w, r, report.Event{
		Source:  "notion",
		Type:    payload.Type,
		Actor:   actor,
		Summary: fmt.Sprintf("%s %s", payload.Entity.Type, payload.Entity.ID),
	})
}
