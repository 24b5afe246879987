package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// setServeFlags points the serve command at a scratch home and database and
// restores the globals afterwards.
func setServeFlags(t *testing.T, sshAddr, httpAddr string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	oldSSH, oldHTTP, oldDB, oldConfig, oldOpen := flagSSHAddr, flagHTTPAddr, flagDBPath, flagConfig, openServeEnv
	t.Cleanup(func() {
		flagSSHAddr, flagHTTPAddr, flagDBPath, flagConfig, openServeEnv = oldSSH, oldHTTP, oldDB, oldConfig, oldOpen
	})

	flagSSHAddr = sshAddr
	flagHTTPAddr = httpAddr
	flagDBPath = filepath.Join(home, "snake.db")
	flagConfig = ""
}

func TestServeNothingToServe(t *testing.T) {
	setServeFlags(t, "", "")
	opened := false
	openServeEnv = func(logger *log.Logger) (*env, error) {
		opened = true
		return openEnv(logger)
	}

	err := serve()
	if err == nil || !strings.Contains(err.Error(), "nothing to serve") {
		t.Fatalf("Expected nothing-to-serve error, got %v", err)
	}
	if opened {
		t.Error("Database opened with no listener configured")
	}
}

func TestServeListenErrorClosesStore(t *testing.T) {
	setServeFlags(t, "", "127.0.0.1:-1")
	var e *env
	openServeEnv = func(logger *log.Logger) (*env, error) {
		var err error
		e, err = openEnv(logger)
		return e, err
	}

	err := serve()
	if err == nil || !strings.HasPrefix(err.Error(), "server:") {
		t.Fatalf("Expected listener error, got %v", err)
	}
	if e == nil {
		t.Fatal("Environment was never opened")
	}
	if _, err := e.store.HighScore(""); err == nil {
		t.Error("Store still open after serve returned an error")
	}
}
