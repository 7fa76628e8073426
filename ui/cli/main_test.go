// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/quietwire/securetalk/internal/i18n"
)

func TestVersionCmd_Output(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)

	out := buf.String()
	if !strings.Contains(out, "securetalk") {
		t.Fatalf("expected binary name in version output, got %q", out)
	}
	if !strings.Contains(out, version) {
		t.Fatalf("expected version %q in output, got %q", version, out)
	}
}

func TestOnOff(t *testing.T) {
	i18n.Init("en")
	if got := onOff(true); got != "on" {
		t.Fatalf("expected 'on', got %q", got)
	}
	if got := onOff(false); got != "off" {
		t.Fatalf("expected 'off', got %q", got)
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	want := map[string]bool{"status": false, "version": false, "export": false, "import": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("expected subcommand %q to be registered", name)
		}
	}
}
