package mcptool

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/weburl/weburl"
)

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func decodeResult(t *testing.T, result *mcp.CallToolResult) Result {
	t.Helper()
	require.False(t, result.IsError, resultText(t, result))
	var r Result
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &r))
	return r
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, 1.0)

	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow(), "burst should be exhausted")
}

func TestRateLimiter_CheckRateLimit(t *testing.T) {
	rl := NewRateLimiter(1, 0.001)

	assert.NoError(t, rl.CheckRateLimit(ToolParse))
	err := rl.CheckRateLimit(ToolParse)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"parse_url"`)
}

func TestArgs(t *testing.T) {
	assert.Empty(t, argsOf(mcp.CallToolRequest{}))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = "not-a-map"
	assert.Empty(t, argsOf(req))

	req.Params.Arguments = map[string]interface{}{"url": "http://a", "num": 42}
	args := argsOf(req)

	v, err := args.required("url")
	require.NoError(t, err)
	assert.Equal(t, "http://a", v)

	_, err = args.required("num")
	assert.EqualError(t, err, "num parameter is required")
	_, err = args.required("missing")
	assert.Error(t, err)

	assert.Equal(t, "http://a", args.optional("url"))
	assert.Empty(t, args.optional("num"))
}

func TestJSONResult(t *testing.T) {
	result, err := jsonResult(map[string]string{"status": "ok"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, resultText(t, result))

	result, err = jsonResult(make(chan int))
	assert.Error(t, err)
	assert.True(t, result.IsError)
}

func TestParseTool(t *testing.T) {
	s := NewServer(Options{})

	r := decodeResult(t, callTool(t, s.handleParse, map[string]interface{}{"url": "HTTP://Example.COM:80/a/../b"}))
	assert.Equal(t, "http://example.com/b", r.Href)
	assert.Equal(t, "example.com", r.Host)
	assert.Nil(t, r.Port)
	assert.Empty(t, r.Issues)
}

func TestParseToolWithBase(t *testing.T) {
	s := NewServer(Options{})

	r := decodeResult(t, callTool(t, s.handleParse, map[string]interface{}{
		"url":  "../d",
		"base": "http://a/b/c/",
	}))
	assert.Equal(t, "http://a/b/d", r.Href)
}

func TestParseToolReportsIssues(t *testing.T) {
	s := NewServer(Options{})

	r := decodeResult(t, callTool(t, s.handleParse, map[string]interface{}{"url": " http://a/\tb"}))
	assert.Equal(t, "http://a/b", r.Href)
	require.Len(t, r.Issues, 2)
	assert.Equal(t, "illegal whitespace", r.Issues[0].Kind)
}

func TestParseToolErrors(t *testing.T) {
	tests := []struct {
		name     string
		settings *weburl.Settings
		args     map[string]interface{}
		contains string
	}{
		{name: "missing url", args: map[string]interface{}{}, contains: "url parameter is required"},
		{name: "non-string url", args: map[string]interface{}{"url": 5}, contains: "url parameter is required"},
		{name: "relative without base", args: map[string]interface{}{"url": "/a"}, contains: "invalid scheme"},
		{name: "bad port", args: map[string]interface{}{"url": "http://a:99999/"}, contains: "invalid port"},
		{name: "bad base", args: map[string]interface{}{"url": "a", "base": "nope"}, contains: "invalid base URL"},
		{name: "strict", settings: &weburl.Settings{Strict: true}, args: map[string]interface{}{"url": "http://a/\tb"}, contains: "illegal whitespace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(Options{Settings: tt.settings})
			result := callTool(t, s.handleParse, tt.args)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.contains)
		})
	}
}

func TestResolveTool(t *testing.T) {
	s := NewServer(Options{})

	r := decodeResult(t, callTool(t, s.handleResolve, map[string]interface{}{
		"base": "http://a/b/c/d;p?q",
		"ref":  "?y#s",
	}))
	assert.Equal(t, "http://a/b/c/d;p?y#s", r.Href)
	require.NotNil(t, r.Query)
	assert.Equal(t, "y", *r.Query)
	require.NotNil(t, r.Fragment)
	assert.Equal(t, "s", *r.Fragment)

	result := callTool(t, s.handleResolve, map[string]interface{}{"base": "http://a/"})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "ref parameter is required")

	result = callTool(t, s.handleResolve, map[string]interface{}{"ref": "x"})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "base parameter is required")
}

func TestWithSchemeTool(t *testing.T) {
	s := NewServer(Options{})

	r := decodeResult(t, callTool(t, s.handleWithScheme, map[string]interface{}{
		"url":    "http://example.com:443/x",
		"scheme": "https",
	}))
	assert.Equal(t, "https://example.com/x", r.Href)

	result := callTool(t, s.handleWithScheme, map[string]interface{}{
		"url":    "http://example.com/",
		"scheme": "1bad",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid scheme")

	result = callTool(t, s.handleWithScheme, map[string]interface{}{"url": "http://example.com/"})
	assert.True(t, result.IsError)
}

func TestToolsShareRateLimit(t *testing.T) {
	s := NewServer(Options{Burst: 1, RefillRate: 0.001})

	first := callTool(t, s.handleParse, map[string]interface{}{"url": "http://a/"})
	assert.False(t, first.IsError)

	second := callTool(t, s.handleResolve, map[string]interface{}{"base": "http://a/", "ref": "b"})
	assert.True(t, second.IsError)
	assert.Contains(t, resultText(t, second), "rate limit exceeded")
}

func TestToolsList(t *testing.T) {
	s := NewServer(Options{Version: "1.0.0"})

	resp := s.MCPServer().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	for _, name := range []string{ToolParse, ToolResolve, ToolWithScheme} {
		assert.Contains(t, string(data), `"`+name+`"`)
	}
}
