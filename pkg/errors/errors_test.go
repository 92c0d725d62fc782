package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{CodeRateLimit, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("code %s: expected status %d got %d", tc.code, tc.status, got)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("db exploded")
	err := Wrap(CodeDependency, cause, "load media")

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be discoverable via errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("expected dependency code got %s", err.Code())
	}
}

func TestAsUnwrapsNestedError(t *testing.T) {
	inner := New(CodeNotFound, "article not found")
	wrapped := Wrap(CodeInternal, inner, "outer")

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	// As returns the outermost typed error in the chain.
	if typed.Code() != CodeInternal {
		t.Fatalf("expected outer code, got %s", typed.Code())
	}
}

func TestDumpCollectsChainAndCode(t *testing.T) {
	err := Wrap(CodeValidation, errors.New("boom"), "bad input")
	dump := Dump(err)
	if dump.Code != CodeValidation {
		t.Fatalf("expected validation code got %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected chain with cause, got %v", dump.Chain)
	}
}
