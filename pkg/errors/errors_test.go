// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/selfunzip/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "archive_open_error",
			code:    errors.ErrArchiveOpen,
			message: "cannot open archive",
			wantStr: "[ARCHIVE_OPEN] cannot open archive",
		},
		{
			name:    "unknown_directory_kind",
			code:    errors.ErrUnknownDirectoryKind,
			message: "unknown directory kind: attic",
			wantStr: "[UNKNOWN_DIRECTORY_KIND] unknown directory kind: attic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrEntryUnsafePath, "entry %q escapes %s", "../x", "root")
	if err.Message != `entry "../x" escapes root` {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrEntryRead, "cannot read entry")

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[ENTRY_READ] cannot read entry: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})

	t.Run("wrapf_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error")
		if err != nil {
			t.Error("Wrapf(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrDirCreate, "cannot create").
		WithDetail("path", "/opt/app").
		WithDetail("attempt", 2)

	if err.Details["path"] != "/opt/app" {
		t.Errorf("WithDetail() path = %v", err.Details["path"])
	}
	if err.Details["attempt"] != 2 {
		t.Errorf("WithDetail() attempt = %v", err.Details["attempt"])
	}
	if got := errors.GetErrorDetails(err); got["path"] != "/opt/app" {
		t.Errorf("GetErrorDetails() path = %v", got["path"])
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrNativeUnavailable, "error 1")
	err2 := errors.New(errors.ErrNativeUnavailable, "error 2")
	err3 := errors.New(errors.ErrBootstrap, "error 3")

	t.Run("same_code_is_equal", func(t *testing.T) {
		if !err1.Is(err2) {
			t.Error("Is() should return true for same code")
		}
	})

	t.Run("different_code_not_equal", func(t *testing.T) {
		if err1.Is(err3) {
			t.Error("Is() should return false for different codes")
		}
	})

	t.Run("works_with_errors_Is", func(t *testing.T) {
		if !stderrors.Is(err1, err2) {
			t.Error("errors.Is() should work with InstallError")
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrFileWrite, "write failed"),
			code:     errors.ErrFileWrite,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrFileWrite, "write failed"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrDirCreate, "denied"),
			code:     errors.ErrDirCreate,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrFileWrite,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrFileWrite,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrPrompt, "x")); got != errors.ErrPrompt {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := errors.GetErrorCode(nil); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v", got)
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	readErr := errors.Wrap(rootCause, errors.ErrEntryRead, "cannot read entry")
	topErr := errors.Wrap(readErr, errors.ErrFileWrite, "copy failed")

	if !errors.IsErrorCode(topErr, errors.ErrFileWrite) {
		t.Error("top level should have ErrFileWrite code")
	}
	if !stderrors.Is(topErr, rootCause) {
		t.Error("should find root cause with errors.Is")
	}
}
