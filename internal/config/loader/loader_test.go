package loader

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestMemFSReadWrite(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/data/bindings.json", `{"a":1}`)

	data, err := memfs.ReadFile("/data/bindings.json")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("ReadFile = %q, want %q", data, `{"a":1}`)
	}

	data[0] = 'X'
	again, _ := memfs.ReadFile("/data/bindings.json")
	if again[0] != '{' {
		t.Error("ReadFile returned shared backing array")
	}

	if err := memfs.WriteFile("/data/../data/bindings.json", []byte("new")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, _ = memfs.ReadFile("/data/bindings.json")
	if string(data) != "new" {
		t.Errorf("after WriteFile = %q, want %q", data, "new")
	}

	info, err := memfs.Stat("/data/bindings.json")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != 3 {
		t.Errorf("Size = %d, want 3", info.Size())
	}
}

func TestMemFSMissing(t *testing.T) {
	memfs := NewMemFS()
	if _, err := memfs.ReadFile("/nope"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile err = %v, want ErrNotExist", err)
	}
	if _, err := memfs.Stat("/nope"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat err = %v, want ErrNotExist", err)
	}
	if _, err := memfs.Open("/nope"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open err = %v, want ErrNotExist", err)
	}
}

func TestMemFSOpen(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.txt", "hello")

	f, err := memfs.Open("/a.txt")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want %q", data, "hello")
	}
}

func TestOSFSWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bindings.json")

	var fsys OSFS
	if err := fsys.WriteFile(path, []byte("one")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := fsys.WriteFile(path, []byte("two")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "two" {
		t.Errorf("content = %q, want %q", data, "two")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1 (temp file left behind)", len(entries))
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		base, rel, want string
	}{
		{"data/groups/game.toml", "../menus/pause.yaml", filepath.Join("data", "menus", "pause.yaml")},
		{"game.toml", "menus/pause.yaml", filepath.Join("menus", "pause.yaml")},
		{"data/game.toml", "/abs/pause.yaml", "/abs/pause.yaml"},
	}

	for _, tt := range tests {
		if got := Resolve(tt.base, tt.rel); got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.base, tt.rel, got, tt.want)
		}
	}
}
