package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestUserMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"server message", Business(400, "Out of stock"), "Out of stock"},
		{"business without message", Business(500, ""), genericMessage},
		{"timeout", Timeout(context.DeadlineExceeded), timeoutMessage},
		{"network", Network(errors.New("dial tcp: refused")), networkMessage},
		{"not found", NotFound(""), notFoundMessage},
		{"plain error", errors.New("boom"), genericMessage},
		{"wrapped", fmt.Errorf("checkout: %w", Validation("Cart is empty")), "Cart is empty"},
	}
	for _, tc := range cases {
		if got := UserMessage(tc.err); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestTransient(t *testing.T) {
	if !Transient(Unreachable(errors.New("dial tcp: connection refused"))) {
		t.Fatalf("a request that never left is safe to resend")
	}
	if !Is(Unreachable(nil), KindNetwork) {
		t.Fatalf("unreachable is a network failure")
	}
	// the server may have processed these
	for _, err := range []error{Timeout(nil), Network(nil), Business(503, "")} {
		if Transient(err) {
			t.Fatalf("%v must not be resent", err)
		}
	}
	if Transient(Business(400, "bad")) || Transient(Unauthenticated()) || Transient(errors.New("x")) {
		t.Fatalf("client-side failures are not transient")
	}
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Unauthenticated())
	if !Is(err, KindUnauthenticated) {
		t.Fatalf("expected unauthenticated kind, got %v", KindOf(err))
	}
	if KindOf(nil) != KindUnknown {
		t.Fatalf("nil should be unknown")
	}
}

func TestHTTPStatus(t *testing.T) {
	if HTTPStatus(Unauthenticated()) != 401 || HTTPStatus(Validation("x")) != 400 {
		t.Fatalf("unexpected client error statuses")
	}
	if HTTPStatus(Timeout(nil)) != 504 || HTTPStatus(Business(400, "x")) != 422 {
		t.Fatalf("unexpected upstream statuses")
	}
	if HTTPStatus(errors.New("x")) != 500 {
		t.Fatalf("unclassified errors are internal")
	}
}
