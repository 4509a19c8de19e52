package model

import "strings"

// jsonReader is a small test convenience around cfg.Load's io.Reader input.
func jsonReader(s string) *strings.Reader {
	return strings.NewReader(s)
}
