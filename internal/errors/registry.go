package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Lookup Errors (F001-F019)
	// ============================================

	"F001": {
		Category: CategoryLookup,
		Message:  "Unknown message type",
		Detail:   "The message type has not been registered and does not resolve to a presentation element. Register it first or pass the element itself.",
		DocURL:   "https://flashbar.dev/docs/errors/F001",
	},
	"F002": {
		Category: CategoryLookup,
		Message:  "Element is not a message box",
		Detail:   "The element does not carry the message-box marker class. Only elements built from the message template can be shown through the registry.",
		DocURL:   "https://flashbar.dev/docs/errors/F002",
	},
	"F003": {
		Category: CategoryLookup,
		Message:  "Message element has no text slot",
		Detail:   "The element is missing the child that holds the message text. Custom message elements must contain a text slot.",
		DocURL:   "https://flashbar.dev/docs/errors/F003",
	},
	"F004": {
		Category: CategoryLookup,
		Message:  "Message element has no id",
		Detail:   "Custom message elements must carry a stable id; the id doubles as the message type key.",
		DocURL:   "https://flashbar.dev/docs/errors/F004",
	},
	"F005": {
		Category: CategoryLookup,
		Message:  "Message element not attached to a document",
		Detail:   "The element must be part of a live document before it can be registered or shown.",
		DocURL:   "https://flashbar.dev/docs/errors/F005",
	},

	// ============================================
	// Usage Errors (F020-F039)
	// ============================================

	"F020": {
		Category: CategoryUsage,
		Message:  "No usable arguments",
		Detail:   "The call supplied nothing to act on. Pass a message type or a message element.",
		DocURL:   "https://flashbar.dev/docs/errors/F020",
	},
	"F021": {
		Category: CategoryUsage,
		Message:  "Message type already registered",
		Detail:   "Each message type binds to exactly one element for the lifetime of the registry. Re-registration is an error.",
		DocURL:   "https://flashbar.dev/docs/errors/F021",
	},
	"F022": {
		Category: CategoryUsage,
		Message:  "Invalid hook kind",
		Detail:   "The hook kind is not one of Show, Hide, DismissStart, DismissEnd, or ActionButton.",
		DocURL:   "https://flashbar.dev/docs/errors/F022",
	},
	"F023": {
		Category: CategoryUsage,
		Message:  "Clone id already in use",
		Detail:   "Another element in the document already carries the requested id.",
		DocURL:   "https://flashbar.dev/docs/errors/F023",
	},

	// ============================================
	// Localization Errors (F040-F049)
	// ============================================

	"F040": {
		Category: CategoryLocalization,
		Message:  "Localization catalog unreadable",
		Detail:   "The catalog file could not be opened or parsed.",
		DocURL:   "https://flashbar.dev/docs/errors/F040",
	},

	// ============================================
	// Protocol Errors (F060-F079)
	// ============================================

	"F060": {
		Category: CategoryProtocol,
		Message:  "Invalid frame",
		Detail:   "The received frame could not be decoded. The protocol version may be mismatched.",
		DocURL:   "https://flashbar.dev/docs/errors/F060",
	},
	"F061": {
		Category: CategoryProtocol,
		Message:  "Unknown event type",
		Detail:   "The event type is not recognized by the server.",
		DocURL:   "https://flashbar.dev/docs/errors/F061",
	},
	"F062": {
		Category: CategoryProtocol,
		Message:  "Event target not found",
		Detail:   "The node id referenced by a client event does not exist in the document.",
		DocURL:   "https://flashbar.dev/docs/errors/F062",
	},
	"F063": {
		Category: CategoryProtocol,
		Message:  "Event queue full",
		Detail:   "The session event queue is full. The client is sending events faster than they can be processed.",
		DocURL:   "https://flashbar.dev/docs/errors/F063",
	},

	// ============================================
	// Configuration Errors (F080-F099)
	// ============================================

	"F080": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file is malformed.",
		DocURL:   "https://flashbar.dev/docs/errors/F080",
	},
	"F081": {
		Category: CategoryConfig,
		Message:  "Configuration validation failed",
		Detail:   "One or more configuration values failed validation.",
		DocURL:   "https://flashbar.dev/docs/errors/F081",
	},
	"F082": {
		Category: CategoryConfig,
		Message:  "Invalid port number",
		Detail:   "The configured port number is out of range.",
		DocURL:   "https://flashbar.dev/docs/errors/F082",
	},

	// ============================================
	// CLI Errors (F100-F119)
	// ============================================

	"F100": {
		Category: CategoryCLI,
		Message:  "Asset publishing failed",
		Detail:   "One or more client assets could not be uploaded to the store.",
		DocURL:   "https://flashbar.dev/docs/errors/F100",
	},
	"F101": {
		Category: CategoryCLI,
		Message:  "Missing bucket",
		Detail:   "Publishing requires a destination bucket. Set assets.bucket in the configuration or pass --bucket.",
		DocURL:   "https://flashbar.dev/docs/errors/F101",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
