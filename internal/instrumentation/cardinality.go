package instrumentation

// Operation label values for Google API metrics and spans.
const (
	OperationInsert   = "insert"
	OperationGet      = "get"
	OperationSend     = "send"
	OperationExchange = "exchange"
)

// PathOther replaces any request path not served by a known route.
const PathOther = "other"

var knownPaths = map[string]struct{}{
	"/google":           {},
	"/google/redirect":  {},
	"/create":           {},
	"/healthz":          {},
	"/readyz":           {},
	"/healthz/detailed": {},
	"/mcp":              {},
}

// PathLabel bounds the cardinality of the path label. Unknown paths, which
// scanners generate without limit, collapse into PathOther.
func PathLabel(path string) string {
	if _, ok := knownPaths[path]; ok {
		return path
	}
	return PathOther
}
