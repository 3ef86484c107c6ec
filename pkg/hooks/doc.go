// Package hooks connects server components to client-side behaviour.
//
// A hook attribute names a client hook and carries its JSON configuration.
// The client hook reports back with events that the server decodes into
// HookEvent values:
//
//	Div(
//	    hooks.Hook("StickyTrigger", map[string]any{"edge": "top"}),
//	)
//
// The thin client observes the element and sends {"name": "exit",
// "data": {...}} frames, decoded with Decode.
package hooks
