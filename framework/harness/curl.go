package harness

import (
	"net/http"
	"sort"
	"strings"

	"github.com/alessio/shellescape"
)

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// CurlCommand renders a request as a curl command line that can be pasted into a shell to
// reproduce it by hand.
func CurlCommand(method, url string, headers http.Header, body []byte) string {
	var b commandBuilder
	b.add("curl", "-s", "-X", method)
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, value := range headers[name] {
			b.add("-H", name+": "+value)
		}
	}
	if len(body) > 0 {
		b.add("-d", string(body))
	}
	b.add(url)
	return b.String()
}
