package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type historyResponse struct {
	Conversations []Conversation `json:"conversations"`
}

// History lists past conversations
func (c *Client) History(ctx context.Context) ([]Conversation, error) {
	var resp historyResponse
	if err := c.getJSON(ctx, "/api/v1/conversation/history", &resp); err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return resp.Conversations, nil
}

// Conversation fetches a conversation and its transcript
func (c *Client) Conversation(ctx context.Context, id string) (*ConversationDetail, error) {
	var detail ConversationDetail
	if err := c.getJSON(ctx, "/api/v1/conversation/"+url.PathEscape(id), &detail); err != nil {
		return nil, fmt.Errorf("load conversation %s: %w", id, err)
	}
	for i := range detail.Messages {
		clampCitations(detail.Messages[i].Citations)
	}
	return &detail, nil
}

// Query sends a question and returns the assistant answer
func (c *Client) Query(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	var resp QueryResponse
	if err := c.postJSON(ctx, "/api/v1/conversation/query", req, &resp); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	clampCitations(resp.Citations)
	return &resp, nil
}

// Export requests a rendered file for a conversation and returns its bytes
func (c *Client) Export(ctx context.Context, req ExportRequest) ([]byte, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/v1/conversation/export", req)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", req.ConversationUUID, err)
	}
	return data, nil
}
