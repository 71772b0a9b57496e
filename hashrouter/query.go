package hashrouter

import (
	"net/url"
	"sort"
	"strings"
)

// ParseQuery parses "k=v&k2=v2". Keys and values are URL-decoded (a '+'
// stays a '+'); a key without '=' maps to "". Undecodable parts are kept raw.
func ParseQuery(qs string) Params {
	params := Params{}
	for _, part := range strings.Split(qs, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		params[unescape(key)] = unescape(value)
	}
	return params
}

// EncodeQuery is the inverse of ParseQuery, with keys sorted.
func EncodeQuery(params Params) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escape(k))
		b.WriteByte('=')
		b.WriteString(escape(params[k]))
	}
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func unescape(s string) string {
	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}
	return s
}

// SplitFragment separates "#/path?query" into its path and raw query.
func SplitFragment(fragment string) (path, rawQuery string) {
	fragment = strings.TrimPrefix(fragment, "#")
	path, rawQuery, _ = strings.Cut(fragment, "?")
	return path, rawQuery
}
