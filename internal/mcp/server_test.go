package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukisoda/project-manager/internal/app"
	"github.com/harukisoda/project-manager/internal/domain"
	"github.com/harukisoda/project-manager/internal/testutil"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestServer() (*Server, *testutil.MockTicketRepository) {
	repo := testutil.NewMockTicketRepository()
	container := app.NewWithDeps(
		app.Config{StorePath: "/tmp/tickets.json"},
		repo,
		&testutil.MockClock{NowTime: testNow},
		&testutil.MockIDGenerator{},
		nil,
	)
	return NewServer(container, "test"), repo
}

// runScript feeds newline-delimited JSON-RPC messages to the server and
// returns the decoded responses.
func runScript(t *testing.T, server *Server, messages ...string) []Response {
	t.Helper()

	input := strings.Join(messages, "\n") + "\n"
	var out bytes.Buffer
	err := server.Run(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)

	var responses []Response
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var resp Response
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		responses = append(responses, resp)
	}
	return responses
}

// callToolResult re-decodes a raw response result into CallToolResult.
func callToolResult(t *testing.T, resp Response) CallToolResult {
	t.Helper()
	raw, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var result CallToolResult
	require.NoError(t, json.Unmarshal(raw, &result))
	return result
}

func TestServer_Initialize(t *testing.T) {
	server, _ := newTestServer()

	responses := runScript(t, server,
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
	)
	require.Len(t, responses, 1, "notification must not get a response")

	raw, _ := json.Marshal(responses[0].Result)
	var result InitializeResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, protocolVersion, result.ProtocolVersion)
	assert.Equal(t, "project-manager", result.ServerInfo.Name)
	assert.NotNil(t, result.Capabilities.Tools)
}

func TestServer_ListTools(t *testing.T) {
	server, _ := newTestServer()

	responses := runScript(t, server, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	require.Len(t, responses, 1)

	raw, _ := json.Marshal(responses[0].Result)
	var result ListToolsResult
	require.NoError(t, json.Unmarshal(raw, &result))

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %s needs a description", tool.Name)
		assert.NotNil(t, tool.InputSchema)
	}
	assert.ElementsMatch(t, []string{
		"ticket_create", "ticket_get", "ticket_list", "ticket_update",
		"ticket_change_status", "ticket_delete", "ticket_search", "ticket_stats",
	}, names)
}

func TestServer_MethodNotFound(t *testing.T) {
	server, _ := newTestServer()

	responses := runScript(t, server, `{"jsonrpc":"2.0","id":3,"method":"resources/list"}`)
	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, codeMethodNotFound, responses[0].Error.Code)
}

func TestServer_ParseError(t *testing.T) {
	server, _ := newTestServer()

	responses := runScript(t, server,
		`{broken`,
		`{"jsonrpc":"2.0","id":4,"method":"ping"}`,
	)
	require.Len(t, responses, 2, "parse error must not stop the loop")
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, codeParseError, responses[0].Error.Code)
	assert.Nil(t, responses[1].Error)
}

func TestServer_CreateAndGet(t *testing.T) {
	server, repo := newTestServer()

	responses := runScript(t, server,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"ticket_create","arguments":{"title":"Fix login bug","description":"Users cannot login with email","priority":"high"}}}`,
	)
	require.Len(t, responses, 1)

	result := callToolResult(t, responses[0])
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Contains(t, result.Content[0].Text, `"status":"pending"`)
	assert.Contains(t, result.Content[0].Text, `"priority":"high"`)
	assert.Contains(t, result.Content[0].Text, `"type":"task"`)
	assert.Contains(t, result.Content[0].Text, `"privacy":"local-only"`)

	require.Len(t, repo.Tickets, 1)

	getResponses := runScript(t, server,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"ticket_get","arguments":{"id":"`+repo.Tickets[0].ID+`"}}}`,
	)
	getResult := callToolResult(t, getResponses[0])
	require.False(t, getResult.IsError)
	assert.Contains(t, getResult.Content[0].Text, "Fix login bug")
}

func TestServer_ToolErrorIsResultNotProtocolError(t *testing.T) {
	server, _ := newTestServer()

	responses := runScript(t, server,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"ticket_create","arguments":{"title":"","description":"d"}}}`,
	)
	require.Len(t, responses, 1)
	require.Nil(t, responses[0].Error, "validation failure is a tool result")

	result := callToolResult(t, responses[0])
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "title is required")
}

func TestServer_UnknownTool(t *testing.T) {
	server, _ := newTestServer()

	responses := runScript(t, server,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"ticket_explode","arguments":{}}}`,
	)
	result := callToolResult(t, responses[0])
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "unknown tool")
}

func TestToolHandler_ChangeStatusAndStats(t *testing.T) {
	server, repo := newTestServer()
	ctx := context.Background()

	ticket, err := domain.New(domain.NewTicketInput{Title: "T", Description: "D"}, testNow)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ticket))

	out, err := server.handler.Handle(ctx, "ticket_change_status", map[string]any{
		"id": ticket.ID, "status": "in_progress",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	// Invalid transition surfaces as error
	_, err = server.handler.Handle(ctx, "ticket_change_status", map[string]any{
		"id": ticket.ID, "status": "pending",
	})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	stats, err := server.handler.Handle(ctx, "ticket_stats", nil)
	require.NoError(t, err)
	m, ok := stats.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1, m["total"])
}

func TestToolHandler_SearchFilters(t *testing.T) {
	server, repo := newTestServer()
	ctx := context.Background()

	for _, spec := range []struct {
		title    string
		priority domain.Priority
	}{
		{"Fix login bug", domain.PriorityHigh},
		{"Write docs", domain.PriorityLow},
	} {
		ticket, err := domain.New(domain.NewTicketInput{
			Title: spec.title, Description: "d", Priority: spec.priority,
		}, testNow)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ticket))
	}

	out, err := server.handler.Handle(ctx, "ticket_search", map[string]any{"priority": "high"})
	require.NoError(t, err)
	m := out.(map[string]any)
	assert.Equal(t, 1, m["count"])
}
