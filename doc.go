// Package toolbridge lets an application expose callable tools to a remote
// agent over a session-oriented protocol, gated by a capability grant set.
//
// A client owns a local tool registry and keeps the remote session's view of
// it converged across connect, reconnect, register, and unregister. Tool
// registrations are validated against the client's capability grants before
// admission; a rejected registration fails loudly and leaves the registry
// untouched.
//
// # Basic Usage
//
//	client, err := toolbridge.New("wss://agent.example.com/session",
//	    toolbridge.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Destroy()
//
//	err = client.RegisterTool(&toolbridge.ToolDefinition{
//	    Name:        "get_title",
//	    Description: "Read the current page title",
//	    Capabilities: []toolbridge.Capability{toolbridge.CapDOMRead},
//	    Handler: func(ctx context.Context, params map[string]any) (any, error) {
//	        return pageTitle(), nil
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := client.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Tools may be registered before or after connecting. Registrations made
// while disconnected are transmitted by the initial sync of the next
// successful connect; registrations made while connected trigger a
// background sync whose failures surface through the error event.
//
// # Capabilities
//
// Each client holds a set of capability tokens (see Capability). A tool
// listing required capabilities is only admitted when every token is
// granted:
//
//	client, _ := toolbridge.New(url,
//	    toolbridge.WithCapabilities(toolbridge.CapDOMRead, toolbridge.CapNetworkFetch),
//	)
//
// Omitting WithCapabilities grants the full known vocabulary.
//
// # Events
//
//	off := client.On(toolbridge.EventToolCall, func(payload any) {
//	    p := payload.(toolbridge.ToolCallPayload)
//	    log.Printf("agent invoked %s", p.Name)
//	})
//	defer off()
//
// # Errors
//
// The SDK provides typed errors for the different failure scenarios:
//
//	err := client.RegisterTool(def)
//	var capErr *toolbridge.CapabilityError
//	if errors.As(err, &capErr) {
//	    log.Printf("missing capabilities: %v", capErr.Missing)
//	}
package toolbridge
