package core

import "net"

// NormalizeBind fills in missing parts of a listen address: an empty value
// becomes the default, a bare host gets port 6379. Anything that already
// splits into host and port, including a bare ":port", is left as it is.
func NormalizeBind(v string) string {
	if v == "" {
		return DefaultBind
	}
	if _, _, err := net.SplitHostPort(v); err != nil {
		v += ":6379" // best-effort try
	}
	return v
}
