package browser

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// mockCommander records command executions for testing
type mockCommander struct {
	calls      int
	name       string
	args       []string
	startError error
}

func (m *mockCommander) Start(name string, args ...string) error {
	m.calls++
	m.name = name
	m.args = args
	return m.startError
}

const dashboardURL = "http://localhost:8081/dashboard?election=france-pres-2027"

func TestOpenWithCommander_Platforms(t *testing.T) {
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"linux", "xdg-open", []string{dashboardURL}},
		{"freebsd", "xdg-open", []string{dashboardURL}},
		{"darwin", "open", []string{dashboardURL}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", dashboardURL}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			mock := &mockCommander{}
			if err := OpenWithCommander(dashboardURL, mock, tt.goos); err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if mock.name != tt.name {
				t.Errorf("expected command %q, got %q", tt.name, mock.name)
			}
			if !reflect.DeepEqual(mock.args, tt.args) {
				t.Errorf("expected args %v, got %v", tt.args, mock.args)
			}
		})
	}
}

func TestOpenWithCommander_UnsupportedPlatform(t *testing.T) {
	mock := &mockCommander{}

	err := OpenWithCommander(dashboardURL, mock, "plan9")
	if err == nil {
		t.Fatal("expected error for unsupported platform")
	}
	if !strings.Contains(err.Error(), "unsupported platform: plan9") {
		t.Errorf("unexpected error message: %v", err)
	}
	if mock.calls != 0 {
		t.Error("expected no command to be started")
	}
}

func TestOpenWithCommander_InvalidURL(t *testing.T) {
	tests := []string{
		"",
		"localhost:8081",
		"file:///etc/passwd",
		"javascript:alert(1)",
		"http://",
		"://bad",
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			mock := &mockCommander{}
			err := OpenWithCommander(raw, mock, "linux")
			if !errors.Is(err, ErrInvalidURL) {
				t.Errorf("expected ErrInvalidURL, got: %v", err)
			}
			if mock.calls != 0 {
				t.Error("expected no command to be started")
			}
		})
	}
}

func TestOpenWithCommander_StartError(t *testing.T) {
	startErr := errors.New("command not found")
	mock := &mockCommander{startError: startErr}

	if err := OpenWithCommander(dashboardURL, mock, "linux"); !errors.Is(err, startErr) {
		t.Errorf("expected start error to be returned, got: %v", err)
	}
}

func TestOpen_UsesDefaultCommander(t *testing.T) {
	saved := defaultCommander
	defer func() { defaultCommander = saved }()

	mock := &mockCommander{}
	defaultCommander = mock

	err := Open(dashboardURL)
	if err != nil && !strings.Contains(err.Error(), "unsupported platform") {
		t.Fatalf("unexpected error: %v", err)
	}
	if err == nil && mock.calls != 1 {
		t.Errorf("expected one command, got %d", mock.calls)
	}
}
