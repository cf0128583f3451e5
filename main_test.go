package main

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CrestNiraj12/terminalwall/domain"
	"github.com/CrestNiraj12/terminalwall/infra/config"
	"github.com/CrestNiraj12/terminalwall/infra/localstore"
)

func TestParseCLIArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		mode cliMode
		msg  string
	}{
		{name: "run default", args: nil, mode: cliRun},
		{name: "version long", args: []string{"--version"}, mode: cliVersion},
		{name: "version short", args: []string{"-v"}, mode: cliVersion},
		{name: "version single-dash", args: []string{"-version"}, mode: cliVersion},
		{name: "help long", args: []string{"--help"}, mode: cliHelp},
		{name: "help short", args: []string{"-h"}, mode: cliHelp},
		{name: "help word", args: []string{"help"}, mode: cliHelp},
		{name: "migrate", args: []string{"--migrate"}, mode: cliMigrate},
		{name: "invalid flag", args: []string{"--bogus"}, mode: cliInvalid, msg: "unexpected argument: --bogus"},
		{name: "invalid flags", args: []string{"--bogus", "--pogus"}, mode: cliInvalid, msg: "unexpected argument: --bogus --pogus"},
		{name: "too many args", args: []string{"--version", "extra"}, mode: cliVersion},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mode, msg := parseCLIArgs(tc.args)
			if mode != tc.mode {
				t.Fatalf("mode mismatch: got %v want %v", mode, tc.mode)
			}
			if tc.msg != "" && msg != tc.msg {
				t.Fatalf("msg mismatch: got %q want %q", msg, tc.msg)
			}
		})
	}
}

func TestResolveVersionInfo(t *testing.T) {
	v, c, d := resolveVersionInfo("dev", "none", "unknown", "v1.2.3", map[string]string{
		"vcs.revision": "0123456789abcdef",
		"vcs.time":     "2026-10-18T12:00:00Z",
	})
	if v != "v1.2.3" || c != "0123456789ab" || d != "2026-10-18T12:00:00Z" {
		t.Fatalf("unexpected version info: %s %s %s", v, c, d)
	}

	v, c, d = resolveVersionInfo("v9", "abc", "today", "(devel)", nil)
	if v != "v9" || c != "abc" || d != "today" {
		t.Fatalf("explicit values must win: %s %s %s", v, c, d)
	}
}

func TestSetupLogging_WritesToFile(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	path := filepath.Join(t.TempDir(), "wall.log")
	closer, err := setupLogging(path)
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	log.Printf("hello from the wall")
	_ = closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello from the wall") {
		t.Fatalf("expected log line, got %q", data)
	}
}

func TestLocalStore_DefaultsToQuotaFile(t *testing.T) {
	cfg := config.Config{
		StorePath:  filepath.Join(t.TempDir(), "local.json"),
		StoreQuota: 64,
		User:       domain.DefaultUser,
	}
	store := localStore(cfg)
	if _, ok := store.(*localstore.FileStore); !ok {
		t.Fatalf("expected file store, got %T", store)
	}
	err := store.Set(context.Background(), "profileImg", strings.Repeat("x", 128))
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected quota error, got %v", err)
	}

	cfg.MemcachedAddr = "127.0.0.1:11211"
	if _, ok := localStore(cfg).(*localstore.MemcacheStore); !ok {
		t.Fatalf("expected memcache store when WALL_MEMCACHED is set")
	}
}
