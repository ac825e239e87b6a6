package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommandRegistration(t *testing.T) {
	want := []string{"run", "preview", "history", "version"}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered", name)
		}
	}

	if flag := rootCmd.PersistentFlags().Lookup("config"); flag == nil {
		t.Error("persistent --config flag not registered")
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("executing version command: %v", err)
	}
	if !strings.Contains(out.String(), "asayomi") {
		t.Errorf("version output = %q, want it to name the binary", out.String())
	}
}
