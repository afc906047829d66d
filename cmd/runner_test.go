package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/chorus/internal/api"
	"github.com/desertthunder/chorus/internal/session"
	"github.com/desertthunder/chorus/internal/shared"
	tu "github.com/desertthunder/chorus/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			store := session.NewMemoryStore()
			client := api.NewClient(api.ClientOpts{Creds: store})

			runner := NewRunner(RunnerOpts{
				Config: config,
				Client: client,
				Store:  store,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.client != client {
				t.Error("expected client to be set")
			}
			if runner.store != store {
				t.Error("expected store to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil input uses stdin", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Input: nil})

			if runner.input != os.Stdin {
				t.Error("expected input to default to os.Stdin")
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{ConfigPath: "/test/path/config.toml"})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Fatal("expected register to return commands")
		}
		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command %d is nil", i)
			}
		}

		names := map[string]bool{}
		for _, cmd := range commands {
			names[cmd.Name] = true
		}
		for _, want := range []string{"auth", "catalog", "collection", "users", "admin", "sync", "tui", "setup"} {
			if !names[want] {
				t.Errorf("expected a %q command", want)
			}
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("pretty output", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}
			if !strings.Contains(output.String(), "  \"key\": \"value\"") {
				t.Errorf("expected indented JSON, got %s", output.String())
			}
		})

		t.Run("compact output", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}
			if strings.TrimSpace(output.String()) != `{"key":"value"}` {
				t.Errorf("expected compact JSON, got %s", output.String())
			}
		})

		t.Run("marshal error", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			if err := runner.writeJSON(make(chan int), true); err == nil {
				t.Error("expected an error for an unmarshalable value")
			}
		})

		t.Run("write error", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err == nil {
				t.Error("expected an error when the writer fails")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("hello %s\n", "world"); err != nil {
			t.Fatalf("writePlain failed: %v", err)
		}
		if output.String() != "hello world\n" {
			t.Errorf("unexpected output: %q", output.String())
		}
	})

	t.Run("confirm", func(t *testing.T) {
		cases := []struct {
			name  string
			input string
			want  bool
		}{
			{"yes", "y\n", true},
			{"yes word", "yes\n", true},
			{"uppercase yes", "Y\n", true},
			{"no", "n\n", false},
			{"empty defaults to no", "\n", false},
			{"eof defaults to no", "", false},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				runner := NewRunner(RunnerOpts{
					Output: &bytes.Buffer{},
					Input:  strings.NewReader(tc.input),
				})

				if got := runner.confirm("Proceed?"); got != tc.want {
					t.Errorf("confirm(%q) = %v, want %v", tc.input, got, tc.want)
				}
			})
		}
	})
}
