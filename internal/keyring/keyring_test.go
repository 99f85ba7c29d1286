package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestStoreLoadForget(t *testing.T) {
	tests := []struct {
		name    string
		connStr string
	}{
		{"postgres", "postgres://student@localhost:5432/studydojo?sslmode=disable"},
		{"redis", "redis://localhost:6379/2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gokeyring.MockInit()

			if err := Store("  " + tt.connStr + "\n"); err != nil {
				t.Fatalf("Store() failed: %v", err)
			}
			got, err := Load()
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if got != tt.connStr {
				t.Errorf("Load() = %q, want %q", got, tt.connStr)
			}
			if available, stored := Status(); !available || !stored {
				t.Errorf("Status() = %v, %v; want true, true", available, stored)
			}

			if err := Forget(); err != nil {
				t.Fatalf("Forget() failed: %v", err)
			}
			if _, err := Load(); !errors.Is(err, ErrNotFound) {
				t.Errorf("Load() after Forget error = %v, want %v", err, ErrNotFound)
			}
			if err := Forget(); !errors.Is(err, ErrNotFound) {
				t.Errorf("second Forget() error = %v, want %v", err, ErrNotFound)
			}
		})
	}
}

func TestStoreRejectsBlank(t *testing.T) {
	gokeyring.MockInit()

	if err := Store("   "); err == nil {
		t.Error("Store of a blank string should fail")
	}
	if _, stored := Status(); stored {
		t.Error("nothing should have been stored")
	}
}

func TestUnavailable(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("dbus not running"))
	t.Cleanup(gokeyring.MockInit)

	if _, err := Load(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Load() error = %v, want %v", err, ErrUnavailable)
	}
	if err := Store("redis://localhost:6379"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Store() error = %v, want %v", err, ErrUnavailable)
	}
	if available, _ := Status(); available {
		t.Error("Status() reported a failing keyring as available")
	}
}
