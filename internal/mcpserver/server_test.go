package mcpserver

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"lizard-economy/internal/app"
	"lizard-economy/internal/rng"
	"lizard-economy/internal/store"
	"lizard-economy/internal/testutil"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
)

func newTestServer(t *testing.T) (*client.Client, *store.Store, *app.Services, func()) {
	t.Helper()
	st, cleanupStore := testutil.OpenTestStore(t)
	clock := testutil.NewClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	svcs := app.NewServices(st, testutil.Economy(), app.Options{Rand: rng.New(3), Now: clock.Now})
	httpSrv := httptest.NewServer(New(svcs).Handler())
	mcpClient, closeClient := newMCPClient(t, httpSrv.URL+"/mcp")
	return mcpClient, st, svcs, func() {
		closeClient()
		httpSrv.Close()
		svcs.Shutdown()
		cleanupStore()
	}
}

func TestMCPServerTools(t *testing.T) {
	mcpClient, st, svcs, cleanup := newTestServer(t)
	defer cleanup()
	ctx := context.Background()

	assertToolNames(t, mustListTools(t, mcpClient),
		"get_profile",
		"get_leaderboard",
		"get_shop",
		"get_casino_stats",
		"list_pets",
		"get_duel",
	)

	testutil.MustAccount(t, st, 10, 500)
	testutil.MustAccount(t, st, 11, 50)
	if err := svcs.Accounts.SetPrivacy(ctx, 10, true, false); err != nil {
		t.Fatalf("set privacy: %v", err)
	}

	self := mapFromStructured(t, mustCallTool(t, mcpClient, "get_profile", map[string]any{"user_id": 10, "viewer_id": 10}))
	if asFloat64(self["balance"]) != 500 {
		t.Fatalf("owner should see balance, got %v", self)
	}
	other := mapFromStructured(t, mustCallTool(t, mcpClient, "get_profile", map[string]any{"user_id": 10, "viewer_id": 11}))
	if _, ok := other["balance"]; ok {
		t.Fatalf("hidden balance leaked to viewer: %v", other)
	}

	board := mapFromStructured(t, mustCallTool(t, mcpClient, "get_leaderboard", map[string]any{"kind": "richest"}))
	items, _ := board["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 leaderboard rows, got %v", board)
	}
	first, _ := items[0].(map[string]any)
	if asFloat64(first["user_id"]) != 10 {
		t.Fatalf("richest should lead, got %v", first)
	}

	for _, name := range []string{"get_shop", "get_casino_stats"} {
		res := mustCallTool(t, mcpClient, name, map[string]any{})
		if res.IsError {
			t.Fatalf("%s expected success, got: %v", name, res.StructuredContent)
		}
	}
	pets := mustCallTool(t, mcpClient, "list_pets", map[string]any{"user_id": 10})
	if pets.IsError {
		t.Fatalf("list_pets expected success, got: %v", pets.StructuredContent)
	}

	d, err := svcs.Duels.Start(ctx, 10, 100)
	if err != nil {
		t.Fatalf("start duel: %v", err)
	}
	got := mapFromStructured(t, mustCallTool(t, mcpClient, "get_duel", map[string]any{"duel_id": d.ID}))
	if asString(got["id"]) != d.ID || asFloat64(got["bet"]) != 100 {
		t.Fatalf("unexpected duel payload: %v", got)
	}
}

func TestMCPServerToolErrors(t *testing.T) {
	mcpClient, _, _, cleanup := newTestServer(t)
	defer cleanup()

	assertToolErrorCode(t, mustCallTool(t, mcpClient, "get_profile", map[string]any{}), "invalid_request")
	assertToolErrorCode(t, mustCallTool(t, mcpClient, "get_profile", map[string]any{"user_id": 404}), "account_not_found")
	assertToolErrorCode(t, mustCallTool(t, mcpClient, "get_leaderboard", map[string]any{"kind": "oldest"}), "invalid_request")
	assertToolErrorCode(t, mustCallTool(t, mcpClient, "get_duel", map[string]any{"duel_id": "nope"}), "duel_not_found")
}

func newMCPClient(t *testing.T, endpoint string) (*client.Client, func()) {
	t.Helper()
	ctx := context.Background()
	trans, err := transport.NewStreamableHTTP(endpoint)
	if err != nil {
		t.Fatalf("new transport: %v", err)
	}
	if err := trans.Start(ctx); err != nil {
		t.Fatalf("transport start: %v", err)
	}
	c := client.NewClient(trans)
	_, err = c.Initialize(ctx, mcp.InitializeRequest{Params: mcp.InitializeParams{ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION}})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return c, func() { _ = trans.Close() }
}

func mustListTools(t *testing.T, c *client.Client) []mcp.Tool {
	t.Helper()
	res, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	return res.Tools
}

func assertToolNames(t *testing.T, tools []mcp.Tool, expected ...string) {
	t.Helper()
	got := make([]string, 0, len(tools))
	for _, tool := range tools {
		got = append(got, tool.Name)
	}
	sort.Strings(got)
	sort.Strings(expected)
	if len(got) != len(expected) {
		t.Fatalf("tool count mismatch got=%v expected=%v", got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Fatalf("tool list mismatch got=%v expected=%v", got, expected)
		}
	}
}

func mustCallTool(t *testing.T, c *client.Client, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := c.CallTool(context.Background(), mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}})
	if err != nil {
		t.Fatalf("call tool %s: %v", name, err)
	}
	return res
}

func assertToolErrorCode(t *testing.T, res *mcp.CallToolResult, want string) {
	t.Helper()
	if !res.IsError {
		t.Fatalf("expected tool error %q, got success: %v", want, res.StructuredContent)
	}
	payload := mapFromStructured(t, res)
	errObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Fatalf("error payload missing 'error': %v", payload)
	}
	got := asString(errObj["code"])
	if got != want {
		t.Fatalf("error code=%q want=%q payload=%v", got, want, payload)
	}
}

func mapFromStructured(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	b, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat64(v any) float64 {
	f, _ := v.(float64)
	return f
}
