// SPDX-License-Identifier: Apache-2.0

package tool_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirscan/cirscan/internal/logging"
	"github.com/cirscan/cirscan/internal/rules"
	"github.com/cirscan/cirscan/internal/tool"
)

func connectInMemory(t *testing.T, ctx context.Context) *mcp.ClientSession {
	t.Helper()
	srv := tool.NewServer(rules.MustDefault(), "test", logging.Discard())

	t1, t2 := mcp.NewInMemoryTransports()
	_, err := srv.Connect(ctx, t1, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, t2, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callTool(t *testing.T, ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) (map[string]any, bool) {
	t.Helper()
	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)

	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			if res.IsError {
				return map[string]any{"error": tc.Text}, true
			}
			out := make(map[string]any)
			require.NoError(t, json.Unmarshal([]byte(tc.Text), &out), "tool result: %s", tc.Text)
			return out, false
		}
	}
	t.Fatalf("no text content in %s result", name)
	return nil, false
}

func TestServer_ListTools(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx)

	res, err := session.ListTools(ctx, nil)
	require.NoError(t, err)

	var names []string
	for _, tl := range res.Tools {
		names = append(names, tl.Name)
	}
	assert.ElementsMatch(t, []string{"analyze_compliance", "extract_requirements", "extract_metadata"}, names)
}

func TestServer_AnalyzeCompliance(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx)

	out, isErr := callTool(t, ctx, session, "analyze_compliance", map[string]any{
		"requirements": "Visual inspection: take photos of the repaired area",
		"evidence":     "Photos attached: IMG_1.jpg",
		"evidence_id":  "cir-1",
	})
	require.False(t, isErr, "unexpected tool error: %v", out)

	assert.Equal(t, "cir-1", out["evidence_id"])
	assert.Equal(t, "NO-GO", out["decision"])
	summary, ok := out["match_summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "GO", summary["go_nogo"])
	assert.Equal(t, 100.0, summary["compliance_score"])
}

func TestServer_ExtractMetadata(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx)

	out, isErr := callTool(t, ctx, session, "extract_metadata", map[string]any{
		"content": "CIR ID: CIR-2024-7\nTechnician: A. Jones\n",
		"format":  "text",
	})
	require.False(t, isErr, "unexpected tool error: %v", out)
	assert.Equal(t, []any{"CIR ID", "Technician"}, out["headers"])
}

func TestServer_ToolErrorIsReported(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx)

	out, isErr := callTool(t, ctx, session, "extract_requirements", map[string]any{
		"content": "   ",
		"format":  "text",
	})
	require.True(t, isErr)
	assert.Contains(t, out["error"], "requirements text is empty")
}
