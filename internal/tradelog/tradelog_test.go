package tradelog

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAppendDecisionWritesJSONLine(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FX_LOG_DIR", dir)

	entries := []DecisionEntry{
		{Currency: "EURUSD", Action: "buy", NewsTitle: "ECB Press Conference", Impact: "high", ProfitLoss: 12.5, TradeID: 1},
		{Currency: "GBPUSD", Action: "hold", NewsTitle: "BOE Gov Speaks", Impact: "medium", Corrected: true, TradeID: 2},
	}
	for _, e := range entries {
		if err := AppendDecision(e); err != nil {
			t.Fatalf("AppendDecision: %v", err)
		}
	}

	p := filepath.Join(dir, "decisions", time.Now().UTC().Format("2006-01-02")+".txt")
	f, err := os.Open(p)
	if err != nil {
		t.Fatalf("decision file not written: %v", err)
	}
	defer f.Close()

	var got []DecisionEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e DecisionEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("line not valid JSON: %v", err)
		}
		got = append(got, e)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}
	if got[0].Currency != "EURUSD" || got[0].Action != "buy" || got[0].ProfitLoss != 12.5 {
		t.Errorf("first line = %+v", got[0])
	}
	if got[1].Action != "hold" || !got[1].Corrected {
		t.Errorf("second line = %+v", got[1])
	}
	if got[0].Time == "" {
		t.Error("timestamp not stamped on append")
	}
}

func TestCompressOlderGzipsAndRemoves(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FX_LOG_DIR", dir)

	old := filepath.Join(dir, "decisions", "2025-01-01.txt")
	if err := os.MkdirAll(filepath.Dir(old), 0o755); err != nil {
		t.Fatal(err)
	}
	content := `{"Currency":"EURUSD","Action":"buy"}` + "\n"
	if err := os.WriteFile(old, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().AddDate(0, 0, -30)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	fresh := filepath.Join(dir, "decisions", time.Now().UTC().Format("2006-01-02")+".txt")
	if err := os.WriteFile(fresh, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CompressOlder(7); err != nil {
		t.Fatalf("CompressOlder: %v", err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old file should be removed after compression")
	}
	gz, err := os.Open(old + ".gz")
	if err != nil {
		t.Fatalf("compressed file missing: %v", err)
	}
	defer gz.Close()
	gr, err := gzip.NewReader(gz)
	if err != nil {
		t.Fatalf("gzip header: %v", err)
	}
	b, err := io.ReadAll(gr)
	if err != nil {
		t.Fatalf("gzip read: %v", err)
	}
	if string(b) != content {
		t.Errorf("compressed content = %q, want %q", b, content)
	}

	// A file inside the retention window is untouched.
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("fresh file should survive: %v", err)
	}
	if _, err := os.Stat(fresh + ".gz"); !os.IsNotExist(err) {
		t.Error("fresh file should not be compressed")
	}
}

func TestCompressOlderZeroRetentionIsNoop(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FX_LOG_DIR", dir)
	if err := CompressOlder(0); err != nil {
		t.Errorf("CompressOlder(0): %v", err)
	}
}
