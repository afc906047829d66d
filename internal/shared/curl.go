// Utilities for rendering outbound requests as cURL commands.
package shared

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// redactedHeaders are never echoed verbatim in debug output.
var redactedHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
}

// CurlCommand renders an outbound request as an equivalent cURL command for
// debug logging. Credential headers are redacted.
func CurlCommand(method, url string, headers http.Header, body []byte) string {
	var b strings.Builder

	b.WriteString("curl")
	if method != http.MethodGet {
		fmt.Fprintf(&b, " -X %s", method)
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := headers.Get(k)
		if redactedHeaders[strings.ToLower(k)] {
			v = "<redacted>"
		}
		fmt.Fprintf(&b, " -H '%s: %s'", k, v)
	}

	if len(body) > 0 {
		fmt.Fprintf(&b, " -d '%s'", strings.ReplaceAll(string(body), "'", `'\''`))
	}

	fmt.Fprintf(&b, " '%s'", url)

	return b.String()
}
