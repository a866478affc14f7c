package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), "DB001"},
		{"unknown host", errors.New("dial tcp: lookup db: no such host"), "DB001"},
		{"connection reset", errors.New("read: connection reset by peer"), "DB002"},
		{"too many clients", errors.New("FATAL: sorry, too many clients already"), "DB003"},
		{"missing table", errors.New(`ERROR: relation "signatures" does not exist (SQLSTATE 42P01)`), "DB004"},
		{"request deadline", fmt.Errorf("insert: %w", context.DeadlineExceeded), "REQ002"},
		{"request cancelled", fmt.Errorf("list: %w", context.Canceled), "REQ001"},
		{"i/o timeout", errors.New("read tcp: i/o timeout"), "DB005"},
		{"unknown error", errors.New("some random internal error"), "ERR000"},
		{"case insensitive", errors.New("CONNECTION REFUSED"), "DB001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
			if tt.err != nil && got.Message == "" {
				t.Errorf("MapError(%v).Message is empty", tt.err)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}

	got := FormatUserError(errors.New("connection refused"))
	want := "Unable to connect to the database (Code: DB001). Please try again in a few moments"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
}
