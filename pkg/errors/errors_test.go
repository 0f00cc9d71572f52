package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
		echo      bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true, echo: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true, echo: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
		if meta.EchoCause != tt.echo {
			t.Fatalf("code %s expected echo cause %v got %v", tt.code, tt.echo, meta.EchoCause)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing title")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing title" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "title"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsAndIs(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeNotFound, "Item not found"))
	if got := As(err); got == nil || got.Code() != CodeNotFound {
		t.Fatalf("As failed to return typed error")
	}
	if !Is(err, CodeNotFound) {
		t.Fatalf("expected Is to match not found")
	}
	if Is(err, CodeConflict) {
		t.Fatalf("expected Is to reject conflict")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestRootCause(t *testing.T) {
	root := stdErrors.New("connection refused")
	err := Wrap(CodeInternal, fmt.Errorf("query: %w", root), "listing items")
	if got := RootCause(err); got != root {
		t.Fatalf("expected root cause, got %v", got)
	}
	if RootCause(nil) != nil {
		t.Fatalf("expected nil root cause for nil")
	}
}

func TestDumpPostgresError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "items_custom_id_key", TableName: "items"}
	dump := Dump(Wrap(CodeInternal, fmt.Errorf("insert: %w", pgErr), "Error creating item"))

	if dump.Code != CodeInternal || dump.DBDriver != "pgx" || dump.DBConstraint != "items_custom_id_key" {
		t.Fatalf("unexpected dump %+v", dump)
	}
	if len(dump.Chain) != 3 {
		t.Fatalf("expected three chain entries, got %v", dump.Chain)
	}
	fields := dump.Fields()
	if fields["db_code"] != "23505" || fields["db_table"] != "items" {
		t.Fatalf("unexpected fields %v", fields)
	}
	if _, ok := fields["db_column"]; ok {
		t.Fatalf("empty values should be omitted")
	}
}

func TestDumpSQLiteConstraint(t *testing.T) {
	dump := Dump(fmt.Errorf("create: %w", stdErrors.New("UNIQUE constraint failed: items.custom_id")))
	if dump.DBDriver != "sqlite" || dump.DBConstraint != "items.custom_id" {
		t.Fatalf("unexpected dump %+v", dump)
	}
}

func TestDumpKeepsDetails(t *testing.T) {
	err := New(CodeValidation, "All fields are required").WithDetails(map[string]string{"title": "is required"})
	fields := Dump(err).Fields()
	if _, ok := fields["error_details"]; !ok {
		t.Fatalf("expected details in fields %v", fields)
	}
	if Dump(nil).TopMessage != "" {
		t.Fatalf("expected empty dump for nil")
	}
}
