package system

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"cudaprep/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.LevelError)
}

func TestPackageStatusInstalled(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		expected bool
	}{
		{"installed", "install ok installed", true},
		{"deinstalled", "deinstall ok config-files", false},
		{"half installed", "install ok half-installed", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := packageStatusInstalled(tt.status); got != tt.expected {
				t.Errorf("packageStatusInstalled(%q) = %v, want %v", tt.status, got, tt.expected)
			}
		})
	}
}

func TestFetch_WritesDestination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pin file content"))
	}))
	defer server.Close()

	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "nested", "cuda.pin")

	gw := NewHostGateway(testLogger())
	if err := gw.Fetch(server.URL, dest); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Failed to read downloaded file: %v", err)
	}
	if string(data) != "pin file content" {
		t.Errorf("Downloaded content = %q, want %q", string(data), "pin file content")
	}
}

func TestFetch_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "missing.deb")

	gw := NewHostGateway(testLogger())
	if err := gw.Fetch(server.URL, dest); err == nil {
		t.Error("Fetch() should return error for 404 response")
	}

	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("Fetch() should not leave a file behind on failure")
	}
}

func TestFetch_NoPartialLeftover(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("data"))
	}))
	defer server.Close()

	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "file.deb")

	gw := NewHostGateway(testLogger())
	if err := gw.Fetch(server.URL, dest); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if _, err := os.Stat(dest + ".partial"); !os.IsNotExist(err) {
		t.Error("Fetch() left a .partial file behind")
	}
}

func TestWriteFile_ReplacesContent(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "profile.d", "cudaprep.sh")

	gw := NewHostGateway(testLogger())

	if err := gw.WriteFile(path, []byte("export PATH=old\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := gw.WriteFile(path, []byte("export PATH=new\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() second call error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "export PATH=new\n" {
		t.Errorf("Content = %q, want replaced content", string(data))
	}
}

func TestCopyGlob_CopiesMatches(t *testing.T) {
	srcDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "keyrings")

	for _, name := range []string{"cuda-archive-keyring.gpg", "cuda-extra-keyring.gpg", "unrelated.txt"} {
		if err := os.WriteFile(filepath.Join(srcDir, name), []byte(name), 0o644); err != nil {
			t.Fatalf("Failed to write source file: %v", err)
		}
	}

	gw := NewHostGateway(testLogger())
	pattern := filepath.Join(srcDir, "cuda-*-keyring.gpg")
	if err := gw.CopyGlob(pattern, destDir); err != nil {
		t.Fatalf("CopyGlob() error = %v", err)
	}

	entries, err := os.ReadDir(destDir)
	if err != nil {
		t.Fatalf("Failed to read dest dir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("CopyGlob() copied %d files, want 2", len(entries))
	}

	data, err := os.ReadFile(filepath.Join(destDir, "cuda-archive-keyring.gpg"))
	if err != nil {
		t.Fatalf("Failed to read copied file: %v", err)
	}
	if string(data) != "cuda-archive-keyring.gpg" {
		t.Errorf("Copied content mismatch: %q", string(data))
	}
}

func TestCopyGlob_NoMatches(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()

	gw := NewHostGateway(testLogger())
	err := gw.CopyGlob(filepath.Join(srcDir, "cuda-*-keyring.gpg"), destDir)
	if err == nil {
		t.Error("CopyGlob() should return error when the pattern matches nothing")
	}
}

func TestLookPath(t *testing.T) {
	gw := NewHostGateway(testLogger())

	if !gw.LookPath("sh") {
		t.Error("LookPath(sh) = false, want true")
	}
	if gw.LookPath("definitely-not-a-real-binary-xyz") {
		t.Error("LookPath() for nonexistent binary = true, want false")
	}
}

func TestRunProbe_CapturesStdout(t *testing.T) {
	gw := NewHostGateway(testLogger())

	out, err := gw.RunProbe("sh", "-c", "echo probe-output")
	if err != nil {
		t.Fatalf("RunProbe() error = %v", err)
	}
	if out != "probe-output\n" {
		t.Errorf("RunProbe() output = %q, want %q", out, "probe-output\n")
	}
}

func TestRunProbe_FailureIncludesStderr(t *testing.T) {
	gw := NewHostGateway(testLogger())

	_, err := gw.RunProbe("sh", "-c", "echo broken >&2; exit 1")
	if err == nil {
		t.Fatal("RunProbe() should return error for failing command")
	}
	if !bytes.Contains([]byte(err.Error()), []byte("broken")) {
		t.Errorf("RunProbe() error should include stderr, got: %v", err)
	}
}
