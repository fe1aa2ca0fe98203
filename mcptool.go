package toolbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// McpTool is a tool definition from the official MCP SDK.
type McpTool = mcp.Tool

// McpToolHandler is the official MCP SDK handler signature.
type McpToolHandler = mcp.ToolHandler

// FromMCPTool bridges a tool written against the official MCP SDK into a
// ToolDefinition, so MCP tools can be exposed through a toolbridge client
// without rewriting them.
//
// Name, description, and input schema carry over from the MCP tool.
// Required capabilities are not part of the MCP tool model and are supplied
// here. The handler's CallToolResult is flattened for the session protocol:
// a single text content becomes its string, anything else the content list;
// a result with IsError set becomes an error return.
func FromMCPTool(t *mcp.Tool, handler mcp.ToolHandler, caps ...Capability) (*ToolDefinition, error) {
	if t == nil {
		return nil, &ValidationError{Field: "tool", Reason: "must not be nil"}
	}

	if handler == nil {
		return nil, &ValidationError{Field: "handler", Reason: "must be a callable function"}
	}

	name := t.Name

	return &ToolDefinition{
		Name:         name,
		Description:  t.Description,
		InputSchema:  t.InputSchema,
		Capabilities: caps,
		Handler: func(ctx context.Context, params map[string]any) (any, error) {
			args, err := json.Marshal(params)
			if err != nil {
				return nil, fmt.Errorf("marshal params: %w", err)
			}

			req := &mcp.CallToolRequest{
				Params: &mcp.CallToolParamsRaw{
					Name:      name,
					Arguments: args,
				},
			}

			result, err := handler(ctx, req)
			if err != nil {
				return nil, err
			}

			return flattenCallToolResult(result)
		},
	}, nil
}

// TextResult builds a CallToolResult carrying a single text content, for
// handlers written against the MCP SDK.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// ErrorResult builds a CallToolResult flagged as an error. Flattening turns
// it into an error return carrying message.
func ErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
		IsError: true,
	}
}

// ImageResult builds a CallToolResult carrying a single image content.
func ImageResult(data []byte, mimeType string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.ImageContent{Data: data, MIMEType: mimeType}},
	}
}

// flattenCallToolResult converts an MCP CallToolResult into the plain value
// transmitted as a session-protocol tool result.
func flattenCallToolResult(result *mcp.CallToolResult) (any, error) {
	if result == nil {
		return nil, nil
	}

	if result.IsError {
		return nil, fmt.Errorf("%s", textOfContent(result.Content))
	}

	if len(result.Content) == 1 {
		if text, ok := result.Content[0].(*mcp.TextContent); ok {
			return text.Text, nil
		}
	}

	content := make([]map[string]any, 0, len(result.Content))
	for _, c := range result.Content {
		switch v := c.(type) {
		case *mcp.TextContent:
			content = append(content, map[string]any{"type": "text", "text": v.Text})
		case *mcp.ImageContent:
			content = append(content, map[string]any{"type": "image", "data": v.Data, "mimeType": v.MIMEType})
		case *mcp.AudioContent:
			content = append(content, map[string]any{"type": "audio", "data": v.Data, "mimeType": v.MIMEType})
		default:
			data, err := json.Marshal(c)
			if err != nil {
				continue
			}

			var m map[string]any
			if json.Unmarshal(data, &m) == nil {
				content = append(content, m)
			}
		}
	}

	return content, nil
}

// textOfContent joins the text contents of an error result into one message.
func textOfContent(content []mcp.Content) string {
	msg := ""
	for _, c := range content {
		if text, ok := c.(*mcp.TextContent); ok {
			if msg != "" {
				msg += "; "
			}

			msg += text.Text
		}
	}

	if msg == "" {
		msg = "tool returned an error result"
	}

	return msg
}
