package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := WithMetadata(CodeLocationNotFound, "location not found", map[string]string{"ID": "7"})
	if !stderrors.Is(err, New(CodeLocationNotFound, "")) {
		t.Fatal("expected errors.Is to match by code")
	}
	if stderrors.Is(err, New(CodeNotFound, "")) {
		t.Fatal("expected different codes not to match")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(CodePersistenceFailed, "save world", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("error = %q, want cause text", err.Error())
	}
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", New(CodeWorldMissing, "no world"))
	if got := GetCode(wrapped); got != CodeWorldMissing {
		t.Fatalf("code = %q, want %q", got, CodeWorldMissing)
	}
	if got := GetCode(fmt.Errorf("plain")); got != CodeUnknown {
		t.Fatalf("code = %q, want %q", got, CodeUnknown)
	}
}

func TestLocalizedMessage(t *testing.T) {
	err := WithMetadata(CodeLocationHasChildren, "has children", map[string]string{"ID": "1"})
	got := err.LocalizedMessage("en-US")
	if !strings.Contains(got, "1") || !strings.Contains(got, "force") {
		t.Fatalf("message = %q", got)
	}
	if zh := err.LocalizedMessage("zh-CN"); zh == got {
		t.Fatalf("expected zh-CN message to differ, got %q", zh)
	}
}

func TestCodeKind(t *testing.T) {
	tests := map[Code]string{
		CodeWorldAlreadyExists:             "AlreadyExists",
		CodeLocationHasChildren:            "HasChildren",
		CodePlotInvalidCharacterReferences: "InvalidCharacterReferences",
		Code("OTHER"):                      "Unknown",
	}
	for code, want := range tests {
		if got := code.Kind(); got != want {
			t.Errorf("%s.Kind() = %q, want %q", code, got, want)
		}
	}
}
