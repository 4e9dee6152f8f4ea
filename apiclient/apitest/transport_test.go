package apitest

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	apierrors "github.com/kbukum/tripclient/errors"
)

func newRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, BaseURL+path, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	return req
}

func TestTransport_QueueThenRepeat(t *testing.T) {
	tr := New().
		On(http.MethodGet, "/a", Text(200, "first")).
		On(http.MethodGet, "/a", Text(201, "second"))

	for i, want := range []int{200, 201, 201} {
		resp, err := tr.Do(newRequest(t, http.MethodGet, "/a", ""))
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if resp.StatusCode != want {
			t.Errorf("call %d: status = %d, want %d", i, resp.StatusCode, want)
		}
	}
}

func TestTransport_RecordsCalls(t *testing.T) {
	tr := New().On(http.MethodPost, "/b", JSON(200, map[string]int{"n": 1}))
	req := newRequest(t, http.MethodPost, "/b", `{"x":1}`)
	req.Header.Set("X-Test", "yes")

	resp, err := tr.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	call, ok := tr.LastCall()
	if !ok {
		t.Fatal("expected a recorded call")
	}
	if string(call.Body) != `{"x":1}` || call.Header.Get("X-Test") != "yes" || call.Path != "/b" {
		t.Errorf("unexpected call %+v", call)
	}
	if len(tr.Calls()) != 1 {
		t.Errorf("expected 1 call, got %d", len(tr.Calls()))
	}
}

func TestTransport_Unscripted(t *testing.T) {
	_, err := New().Do(newRequest(t, http.MethodDelete, "/nope", ""))
	if !apierrors.IsCode(err, apierrors.ErrCodeMock) {
		t.Errorf("expected MOCK_ERROR, got %v", err)
	}
}

func TestTransport_Fail(t *testing.T) {
	boom := errors.New("boom")
	tr := New().Fail(http.MethodGet, "/x", boom).FailNetwork(http.MethodGet, "/y")

	if _, err := tr.Do(newRequest(t, http.MethodGet, "/x", "")); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	_, err := tr.Do(newRequest(t, http.MethodGet, "/y", ""))
	if err == nil || !strings.Contains(err.Error(), "Failed to fetch") {
		t.Errorf("expected fetch failure, got %v", err)
	}
}
