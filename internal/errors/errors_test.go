package errors

import (
	"errors"
	"testing"
)

func TestFormatError(t *testing.T) {
	err := NewLineFormatError("missing '=' separator", 2)

	if err.Type != ErrorTypeFormat {
		t.Errorf("Expected Type to be ErrorTypeFormat, got %v", err.Type)
	}

	if err.Line != 2 {
		t.Errorf("Expected Line to be 2, got %d", err.Line)
	}

	expectedMsg := "invalid tag format at line 2: missing '=' separator"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestFormatErrorWithoutLine(t *testing.T) {
	underlying := errors.New("unexpected end of input")
	err := NewFormatError("malformed JSON").WithUnderlying(underlying)

	if !errors.Is(err, underlying) {
		t.Errorf("Expected error to unwrap to underlying error")
	}

	expectedMsg := "invalid tag format: malformed JSON: unexpected end of input"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestTypeError(t *testing.T) {
	err := NewTypeError("All values must be strings", "lanes")

	if err.Key != "lanes" {
		t.Errorf("Expected Key to be 'lanes', got %s", err.Key)
	}

	expectedMsg := `All values must be strings (key "lanes")`
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}

	var target *TypeError
	wrapped := error(err)
	if !errors.As(wrapped, &target) {
		t.Errorf("Expected errors.As to find *TypeError")
	}
}

func TestMissingParameterError(t *testing.T) {
	err := NewMissingParameterError("get_tag_values", "key")

	expectedMsg := `get_tag_values: missing required parameter "key"`
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}

	bare := NewMissingParameterError("", "tags")
	if bare.Error() != `missing required parameter "tags"` {
		t.Errorf("Unexpected message without tool: %q", bare.Error())
	}
}

func TestDatasetError(t *testing.T) {
	underlying := errors.New("value must be a string")
	err := NewDatasetError("presets.json", underlying).WithEntry("amenity/cafe")

	if !errors.Is(err, underlying) {
		t.Errorf("Expected error to unwrap to underlying error")
	}

	expectedMsg := `dataset presets.json: entry "amenity/cafe": value must be a string`
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestConfigError(t *testing.T) {
	underlying := errors.New("must be positive")
	err := NewConfigError("search.default_limit", "-1", underlying)

	if !errors.Is(err, underlying) {
		t.Errorf("Expected error to unwrap to underlying error")
	}

	expectedMsg := "config error for field search.default_limit (value -1): must be positive"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestMultiError(t *testing.T) {
	err1 := errors.New("error 1")
	err2 := errors.New("error 2")

	multi := NewMultiError([]error{err1, nil, err2})
	if len(multi.Errors) != 2 {
		t.Errorf("Expected 2 errors after filtering nil, got %d", len(multi.Errors))
	}

	if !errors.Is(multi, err1) || !errors.Is(multi, err2) {
		t.Errorf("Expected multi error to match both underlying errors")
	}

	if NewMultiError(nil).ErrOrNil() != nil {
		t.Errorf("Expected ErrOrNil to return nil for an empty MultiError")
	}

	single := NewMultiError([]error{err1})
	if single.Error() != "error 1" {
		t.Errorf("Expected single error message, got %q", single.Error())
	}
}
