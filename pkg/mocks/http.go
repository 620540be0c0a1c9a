package mocks

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// RecordedRequest is a request seen by a MockRoundTripper, with its body
// already read.
type RecordedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// MockRoundTripper is a mock implementation of http.RoundTripper. Responses
// are looked up by "METHOD URL" first and then by URL alone; anything else
// gets a 404. Every request is recorded.
type MockRoundTripper struct {
	Responses map[string]*http.Response

	mu       sync.Mutex
	requests []RecordedRequest
	bodies   map[*http.Response][]byte
}

// RoundTrip implements the http.RoundTripper interface.
func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	url := req.URL.String()
	rec := RecordedRequest{Method: req.Method, URL: url, Header: req.Header.Clone()}
	if req.Body != nil {
		rec.Body, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, rec)

	resp, ok := m.Responses[req.Method+" "+url]
	if !ok {
		resp, ok = m.Responses[url]
	}
	if ok {
		// The canned body is read once and replayed, as a body can be read only once.
		if m.bodies == nil {
			m.bodies = make(map[*http.Response][]byte)
		}
		bodyBytes, seen := m.bodies[resp]
		if !seen {
			bodyBytes, _ = io.ReadAll(resp.Body)
			resp.Body.Close()
			m.bodies[resp] = bodyBytes
		}
		header := resp.Header.Clone()
		if header == nil {
			header = make(http.Header)
		}
		return &http.Response{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Header:     header,
			Body:       io.NopCloser(bytes.NewReader(bodyBytes)),
			Request:    req,
		}, nil
	}
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Status:     "404 Not Found",
		Body:       io.NopCloser(bytes.NewBufferString(`{"message": "Not Found"}`)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Request:    req,
	}, nil
}

// Requests returns the requests seen so far, in order.
func (m *MockRoundTripper) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedRequest(nil), m.requests...)
}

// NewMockClient creates a new http.Client with a MockRoundTripper.
func NewMockClient(responses map[string]*http.Response) *http.Client {
	return &http.Client{
		Transport: NewMockRoundTripper(responses),
	}
}

// NewMockRoundTripper returns a MockRoundTripper serving responses.
func NewMockRoundTripper(responses map[string]*http.Response) *MockRoundTripper {
	return &MockRoundTripper{Responses: responses}
}

// JSONResponse builds a response with the given status and JSON body.
func JSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}
