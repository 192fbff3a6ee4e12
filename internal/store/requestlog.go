package store

import (
	"context"
	"fmt"
	"time"
)

// LLMRequestData captures one LLM API call for the audit log.
type LLMRequestData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequest is a persisted request-log row.
type LLMRequest struct {
	ID        int64
	Timestamp time.Time
	LLMRequestData
}

// RequestLog provides append and query access to the LLM request log.
type RequestLog interface {
	// AppendLLMRequest records an LLM API call.
	AppendLLMRequest(ctx context.Context, data LLMRequestData) error
}

// AppendLLMRequest records an LLM API call in the llm_requests table.
func (s *Store) AppendLLMRequest(ctx context.Context, data LLMRequestData) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO llm_requests
		 (timestamp, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano),
		data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		boolToInt(data.Success), data.ErrorMessage)
	if err != nil {
		return fmt.Errorf("append llm request: %w", err)
	}
	return nil
}

// RecentLLMRequests returns the most recent request-log rows, newest first.
func (s *Store) RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message
		 FROM llm_requests ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query llm requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequest
	for rows.Next() {
		var r LLMRequest
		var ts string
		var success int
		if err := rows.Scan(&r.ID, &ts, &r.Provider, &r.Model, &r.Purpose,
			&r.InputTokens, &r.OutputTokens, &r.LatencyMs, &success, &r.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan llm request: %w", err)
		}
		r.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		r.Success = success != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
