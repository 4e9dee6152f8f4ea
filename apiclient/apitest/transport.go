// Package apitest provides a scripted in-memory transport for exercising
// code built on apiclient without a network.
//
//	tr := apitest.New().
//	    On(http.MethodPost, "/auth/login", apitest.JSON(200, map[string]string{"access_token": "t1"}))
//	client, _ := apiclient.New(apiclient.Config{BaseURL: apitest.BaseURL}, apiclient.WithDoer(tr))
package apitest

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	json "github.com/goccy/go-json"

	apierrors "github.com/kbukum/tripclient/errors"
)

// BaseURL is a placeholder base URL for clients backed by a Transport.
const BaseURL = "http://apitest.invalid"

// Response is a canned HTTP response.
type Response struct {
	Status  int
	Headers map[string]string
	Body    string
}

// JSON creates a response with an application/json body encoding v.
func JSON(status int, v any) Response {
	body, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("apitest: encode response: %v", err))
	}
	return Response{
		Status:  status,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    string(body),
	}
}

// RawJSON creates an application/json response with a literal body.
func RawJSON(status int, body string) Response {
	return Response{
		Status:  status,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    body,
	}
}

// Text creates a text/plain response.
func Text(status int, body string) Response {
	return Response{
		Status:  status,
		Headers: map[string]string{"Content-Type": "text/plain; charset=utf-8"},
		Body:    body,
	}
}

// Call records one request seen by the transport.
type Call struct {
	Method string
	Path   string
	URL    string
	Header http.Header
	Body   []byte
}

type step struct {
	resp *Response
	err  error
}

// Transport replays scripted responses per method and path. Each route
// holds a queue; the last entry repeats once the queue is drained. Requests
// to unscripted routes fail with a MOCK_ERROR APIError.
type Transport struct {
	mu     sync.Mutex
	routes map[string][]step
	calls  []Call
}

// New creates an empty Transport.
func New() *Transport {
	return &Transport{routes: make(map[string][]step)}
}

// On queues a response for method and path.
func (t *Transport) On(method, path string, resp Response) *Transport {
	return t.push(method, path, step{resp: &resp})
}

// Fail queues a transport error for method and path.
func (t *Transport) Fail(method, path string, err error) *Transport {
	return t.push(method, path, step{err: err})
}

// FailNetwork queues a connection failure carrying a typical fetch failure
// message.
func (t *Transport) FailNetwork(method, path string) *Transport {
	return t.Fail(method, path, stderrors.New("TypeError: Failed to fetch"))
}

func (t *Transport) push(method, path string, s step) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := routeKey(method, path)
	t.routes[key] = append(t.routes[key], s)
	return t
}

// Do implements apiclient.Doer.
func (t *Transport) Do(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		body = b
	}

	t.mu.Lock()
	t.calls = append(t.calls, Call{
		Method: req.Method,
		Path:   req.URL.Path,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
		Body:   body,
	})
	key := routeKey(req.Method, req.URL.Path)
	queue := t.routes[key]
	var next step
	found := len(queue) > 0
	if found {
		next = queue[0]
		if len(queue) > 1 {
			t.routes[key] = queue[1:]
		}
	}
	t.mu.Unlock()

	if !found {
		return nil, apierrors.Mock(fmt.Sprintf("no scripted response for %s", key))
	}
	if next.err != nil {
		return nil, next.err
	}
	return next.resp.toHTTP(req), nil
}

// Calls returns a copy of the recorded requests.
func (t *Transport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Call, len(t.calls))
	copy(out, t.calls)
	return out
}

// LastCall returns the most recent request.
func (t *Transport) LastCall() (Call, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.calls) == 0 {
		return Call{}, false
	}
	return t.calls[len(t.calls)-1], true
}

func (r *Response) toHTTP(req *http.Request) *http.Response {
	header := make(http.Header, len(r.Headers))
	for k, v := range r.Headers {
		header.Set(k, v)
	}
	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode:    status,
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader([]byte(r.Body))),
		ContentLength: int64(len(r.Body)),
		Request:       req,
	}
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}
