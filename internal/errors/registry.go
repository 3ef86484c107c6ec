package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No sticky.json, sticky.yaml or sticky.yml was found in the directory.",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid sticky offset",
		Detail:   "Offsets must be finite numbers.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid server address",
		Detail:   "The port must be between 1 and 65535.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid duration",
		Detail:   "Durations use Go syntax, e.g. \"30s\" or \"1m\".",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Config parse failed",
		Detail:   "The config file is not valid JSON or YAML.",
	},
	"E105": {
		Category: CategoryConfig,
		Message:  "Invalid log setting",
		Detail:   "Log level must be debug, info, warn or error and format text or json.",
	},
	"E106": {
		Category: CategoryConfig,
		Message:  "Config watch failed",
		Detail:   "The config file could not be watched for changes.",
	},

	// ============================================
	// Protocol Errors (E200-E299)
	// ============================================

	"E200": {
		Category: CategoryProtocol,
		Message:  "Invalid message",
		Detail:   "The client sent a frame that is not a JSON hook event.",
	},
	"E201": {
		Category: CategoryProtocol,
		Message:  "Unknown event",
		Detail:   "Known events are hello, register, unregister, enter, exit and resize.",
	},
	"E202": {
		Category: CategoryProtocol,
		Message:  "Unknown trigger edge",
		Detail:   "Trigger events must name the top or bottom edge.",
	},
	"E203": {
		Category: CategoryProtocol,
		Message:  "Missing geometry",
		Detail:   "Register and exit events must carry the trigger rectangle.",
	},
	"E204": {
		Category: CategoryProtocol,
		Message:  "Event queue full",
		Detail:   "The client sent events faster than the session could apply them.",
	},

	// ============================================
	// CLI Errors (E300-E399)
	// ============================================

	"E300": {
		Category: CategoryCLI,
		Message:  "Invalid argument",
		Detail:   "A command-line value could not be parsed.",
	},
	"E301": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped with an error.",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
