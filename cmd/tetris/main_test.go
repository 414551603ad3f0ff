package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tetris-core/internal/config"
	"github.com/vovakirdan/tetris-core/internal/storage"
)

// isolate points config lookup and the trace database at a temp dir and
// restores the global flags afterwards.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	chdir(t, dir)

	saved := []any{flagConfig, flagDBPath, flagSeed, flagDemoPieces, flagDemoFast, flagDemoNoRecord, flagRecord, flagNoBoard}
	t.Cleanup(func() {
		flagConfig = saved[0].(string)
		flagDBPath = saved[1].(string)
		flagSeed = saved[2].(int64)
		flagDemoPieces = saved[3].(int)
		flagDemoFast = saved[4].(bool)
		flagDemoNoRecord = saved[5].(bool)
		flagRecord = saved[6].(bool)
		flagNoBoard = saved[7].(bool)
	})
	flagConfig = ""
	flagDBPath = filepath.Join(dir, "traces.db")
	flagSeed = 1
	logger.SetOutput(io.Discard)
	return dir
}

func TestKicksRejectsUnknownPiece(t *testing.T) {
	isolate(t)
	if err := runKicks(kicksCmd, []string{"X"}); err == nil {
		t.Fatal("expected error for unknown piece")
	}
}

func TestConfigPrintsLoadableYAML(t *testing.T) {
	isolate(t)
	var buf bytes.Buffer
	configCmd.SetOut(&buf)
	t.Cleanup(func() { configCmd.SetOut(nil) })

	if err := runConfig(configCmd, nil); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("printed config does not parse: %v", err)
	}
	if cfg.Seed != 1 {
		t.Errorf("seed = %d, expected the --seed value 1", cfg.Seed)
	}
}

func TestRotateReturnsErrorOnFailedFixture(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "wrong.yaml")
	data := []byte(`id: wrong
piece: {id: T, orientation: 0, col: 4, row: 0}
direction: cw
expect: {success: false}
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	flagNoBoard = true
	flagRecord = true

	err := runRotate(rotateCmd, []string{path})
	if !errors.Is(err, errFixturesFailed) {
		t.Fatalf("err = %v, expected errFixturesFailed", err)
	}

	// The trace was still recorded and the store closed cleanly.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	traces, err := store.SessionTraces("fixture:wrong")
	if err != nil {
		t.Fatal(err)
	}
	if len(traces) != 1 || !traces[0].Success {
		t.Errorf("expected one successful trace, got %+v", traces)
	}
}

func TestRotateMissingPath(t *testing.T) {
	isolate(t)
	if err := runRotate(rotateCmd, []string{"does-not-exist.yaml"}); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestDemoRecordsRotations(t *testing.T) {
	isolate(t)
	flagDemoPieces = 30
	flagDemoFast = true
	flagDemoNoRecord = false
	demoCmd.SetContext(context.Background())

	if err := runDemo(demoCmd, nil); err != nil {
		t.Fatal(err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	traces, err := store.RecentTraces(100)
	if err != nil {
		t.Fatal(err)
	}
	if len(traces) == 0 {
		t.Error("demo should record the planner's rotations")
	}
}

func TestDemoReturnsConfigError(t *testing.T) {
	dir := isolate(t)
	flagConfig = filepath.Join(dir, "missing.yaml")
	demoCmd.SetContext(context.Background())

	if err := runDemo(demoCmd, nil); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
