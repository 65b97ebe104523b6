package main

import (
	"testing"

	docopt "github.com/docopt/docopt-go"
)

func parseArguments(t *testing.T, argv ...string) map[string]interface{} {
	t.Helper()
	if argv == nil {
		argv = []string{}
	}
	arguments, err := docopt.Parse(usage, argv, false, "", false, false)
	if err != nil {
		t.Fatalf("docopt rejected %v: %v", argv, err)
	}
	return arguments
}

func TestOverridesFromArgumentsEmpty(t *testing.T) {
	o, err := overridesFromArguments(parseArguments(t))
	if err != nil {
		t.Fatal(err)
	}
	if o.Address != nil || o.Port != nil || o.TLS != nil || o.NoTUI != nil || o.LogLevel != nil {
		t.Errorf("expected no overrides, got %+v", o)
	}
}

func TestOverridesFromArgumentsHostPort(t *testing.T) {
	o, err := overridesFromArguments(parseArguments(t,
		"mud.example.org", "4000", "--tls", "--no-tui", "--name=Example", "--max-transcript=1024", "--log-level=debug"))
	if err != nil {
		t.Fatal(err)
	}
	if o.Address == nil || *o.Address != "mud.example.org" {
		t.Errorf("address: %v", o.Address)
	}
	if o.Port == nil || *o.Port != 4000 {
		t.Errorf("port: %v", o.Port)
	}
	if o.TLS == nil || !*o.TLS {
		t.Errorf("tls: %v", o.TLS)
	}
	if o.NoTUI == nil || !*o.NoTUI {
		t.Errorf("no-tui: %v", o.NoTUI)
	}
	if o.NoColor != nil {
		t.Errorf("no-color should be unset, got %v", *o.NoColor)
	}
	if o.MudName == nil || *o.MudName != "Example" {
		t.Errorf("name: %v", o.MudName)
	}
	if o.MaxTranscript == nil || *o.MaxTranscript != 1024 {
		t.Errorf("max transcript: %v", o.MaxTranscript)
	}
	if o.LogLevel == nil || *o.LogLevel != "debug" {
		t.Errorf("log level: %v", o.LogLevel)
	}
}

func TestOverridesFromArgumentsBadPort(t *testing.T) {
	for _, port := range []string{"0", "65536", "telnet"} {
		if _, err := overridesFromArguments(parseArguments(t, "mud.example.org", port)); err == nil {
			t.Errorf("port %q should be rejected", port)
		}
	}
}

func TestOverridesFromArgumentsBadMaxTranscript(t *testing.T) {
	if _, err := overridesFromArguments(parseArguments(t, "--max-transcript=lots")); err == nil {
		t.Error("non-numeric --max-transcript should be rejected")
	}
}
