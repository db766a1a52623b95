package mcptool

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// arguments is the argument object of a tool call.
type arguments map[string]any

// argsOf extracts the arguments of a tool call. Missing or non-object
// arguments yield an empty map.
func argsOf(request mcp.CallToolRequest) arguments {
	if m, ok := request.Params.Arguments.(map[string]any); ok {
		return m
	}
	return arguments{}
}

// required returns a string argument that must be present.
func (a arguments) required(key string) (string, error) {
	v, ok := a[key].(string)
	if !ok {
		return "", fmt.Errorf("%s parameter is required", key)
	}
	return v, nil
}

// optional returns a string argument, or "" when absent or not a string.
func (a arguments) optional(key string) string {
	v, _ := a[key].(string)
	return v
}

// jsonResult marshals data as the text content of a tool result.
func jsonResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to marshal result: " + err.Error()), err
	}
	return mcp.NewToolResultText(string(b)), nil
}
