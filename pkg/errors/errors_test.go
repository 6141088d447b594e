package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestMetadataTable(t *testing.T) {
	cases := map[Code]Metadata{
		CodeValidation:    {http.StatusBadRequest, false, "validation failed", true},
		CodeUnauthorized:  {http.StatusUnauthorized, false, "authentication required", false},
		CodeForbidden:     {http.StatusForbidden, false, "access denied", false},
		CodeNotFound:      {http.StatusNotFound, false, "resource not found", false},
		CodeConflict:      {http.StatusConflict, true, "conflict detected", true},
		CodeStateConflict: {http.StatusUnprocessableEntity, false, "state transition disallowed", true},
		CodeInternal:      {http.StatusInternalServerError, true, "internal server error", false},
		CodeDependency:    {http.StatusServiceUnavailable, true, "dependency unavailable", true},
	}
	for code, want := range cases {
		if got := MetadataFor(code); got != want {
			t.Fatalf("%s: got %+v want %+v", code, got, want)
		}
	}

	if got := MetadataFor("NO_SUCH_CODE"); got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown code should map to 500, got %d", got.HTTPStatus)
	}
}

func TestNewCarriesCodeAndMessage(t *testing.T) {
	err := New(CodeValidation, "missing foo")
	if err.Code() != CodeValidation || err.Message() != "missing foo" {
		t.Fatalf("unexpected error %v", err)
	}
	if err.Details() != nil {
		t.Fatal("details must start nil")
	}
	if err.Unwrap() != nil {
		t.Fatal("New must not carry a cause")
	}

	err.WithDetails(map[string]any{"field": "foo"})
	if err.Details() == nil {
		t.Fatal("details were dropped")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "claim failed")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatal("cause lost from the chain")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
	if wrapped.Error() != "CONFLICT: claim failed" {
		t.Fatalf("unexpected rendering %q", wrapped.Error())
	}
}

func TestAsWalksTheChain(t *testing.T) {
	inner := New(CodeForbidden, "no entry")
	outer := Wrap(CodeInternal, inner, "outer")

	if got := As(outer); got == nil || got.Code() != CodeInternal {
		t.Fatal("As should return the outermost coded error")
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatal("plain errors carry no code")
	}
	if As(nil) != nil {
		t.Fatal("As(nil) should be nil")
	}
}
