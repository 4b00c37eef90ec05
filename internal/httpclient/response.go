package httpclient

import "strings"

// maxSummary bounds SummarizeBody output so it fits on one log line.
const maxSummary = 120

// SummarizeBody condenses a response body for error messages and logs.
// Runs of whitespace collapse to single spaces, so multi-line HTML error
// pages from proxies stay on one line.
func SummarizeBody(body []byte) string {
	s := strings.Join(strings.Fields(string(body)), " ")
	if s == "" {
		return "empty body"
	}
	if r := []rune(s); len(r) > maxSummary {
		return string(r[:maxSummary]) + "..."
	}
	return s
}
