package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      stderrors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "not found error",
			err:      NotFound("task", "abc"),
			expected: "Error: task with id abc not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	result := Formatf("failed to load %s", "database")
	if result != "Error: failed to load database" {
		t.Errorf("Formatf() = %q", result)
	}
}

func TestTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"storage", Storage("get tasks", stderrors.New("disk full")), ErrStorage},
		{"invalid argument", InvalidArgument("completedTasks", "exceeds totalTasks"), ErrInvalidArgument},
		{"not found", NotFound("task", "x"), ErrNotFound},
		{"wrapped not found", fmt.Errorf("update: %w", NotFound("task", "x")), ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !Is(tt.err, tt.target) {
				t.Errorf("Is(%v, %v) = false, want true", tt.err, tt.target)
			}
		})
	}
}

func TestStoragePassesThroughTaxonomy(t *testing.T) {
	if Storage("op", nil) != nil {
		t.Error("Storage(op, nil) should be nil")
	}

	nf := NotFound("task", "x")
	if got := Storage("get task", nf); got != nf {
		t.Errorf("Storage() rewrapped a NotFoundError: %v", got)
	}

	cause := stderrors.New("locked")
	err := Storage("save", cause)
	var se *StorageError
	if !As(err, &se) {
		t.Fatalf("As(%v, *StorageError) = false", err)
	}
	if se.Op != "save" || !stderrors.Is(err, cause) {
		t.Errorf("StorageError = %+v, want op save wrapping cause", se)
	}
	if Is(err, ErrNotFound) {
		t.Error("storage error should not match ErrNotFound")
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(stderrors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

// TestFatal_NilError tests that Fatal does nothing when passed a nil error
func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal_NilError$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
