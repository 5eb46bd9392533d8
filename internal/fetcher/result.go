package fetcher

import (
	"fmt"
	"net/http"
)

// Outcome is the terminal state of a single download.
type Outcome int

const (
	// OutcomeSaved means the body was written to Result.Path.
	OutcomeSaved Outcome = iota
	// OutcomeForbidden means the server answered 403 and the URL was handed
	// to the browser instead.
	OutcomeForbidden
	// OutcomeHTTPError means any other non-2xx status.
	OutcomeHTTPError
	// OutcomeTransportError covers request, read and write failures.
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeForbidden:
		return "forbidden"
	case OutcomeHTTPError:
		return "http_error"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result describes what Download did. Exactly one Outcome applies.
type Result struct {
	Outcome       Outcome
	URL           string
	Path          string // set only for OutcomeSaved
	StatusCode    int    // zero for transport errors
	Bytes         int64
	Digest        string // hex BLAKE3 of the saved body
	BrowserOpened bool
	Err           error
	CorrelationID string
}

// OK reports whether the file was saved.
func (r Result) OK() bool {
	return r.Outcome == OutcomeSaved
}

// PathOrEmpty returns the saved path, or "" for every other outcome.
func (r Result) PathOrEmpty() string {
	if r.Outcome != OutcomeSaved {
		return ""
	}
	return r.Path
}

// StatusError is returned in Result.Err for non-2xx responses.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	kind := "Client Error"
	if e.Code >= 500 {
		kind = "Server Error"
	}
	return fmt.Sprintf("%d %s: %s for url: %s", e.Code, kind, http.StatusText(e.Code), e.URL)
}
