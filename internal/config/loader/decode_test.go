package loader

import (
	"errors"
	"strings"
	"testing"
)

type actionList struct {
	DefaultTree string            `toml:"defaultTree"`
	Actions     map[string]string `toml:"actions"`
}

func TestDecodeTOML(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/menu_actions.toml", `
defaultTree = "pause_tree"

[actions]
back = "Back"
select = "Select"
`)

	var list actionList
	if err := DecodeTOML(memfs, "/menu_actions.toml", &list); err != nil {
		t.Fatalf("DecodeTOML failed: %v", err)
	}
	if list.DefaultTree != "pause_tree" {
		t.Errorf("DefaultTree = %q, want %q", list.DefaultTree, "pause_tree")
	}
	if list.Actions["select"] != "Select" {
		t.Errorf("actions.select = %q, want %q", list.Actions["select"], "Select")
	}
}

func TestDecodeTOMLParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "defaultTree = \n[actions\n")

	var list actionList
	err := DecodeTOML(memfs, "/bad.toml", &list)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if pe.Path != "/bad.toml" {
		t.Errorf("Path = %q, want %q", pe.Path, "/bad.toml")
	}
	if pe.Line == 0 {
		t.Error("Line = 0, want position from decoder")
	}
	if !strings.Contains(pe.Error(), "/bad.toml") {
		t.Errorf("Error() = %q, missing path", pe.Error())
	}
}

func TestDecodeTOMLMissingFile(t *testing.T) {
	var list actionList
	if err := DecodeTOML(NewMemFS(), "/none.toml", &list); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadTOMLMapMissing(t *testing.T) {
	m, err := LoadTOMLMap(NewMemFS(), "/none.toml")
	if err != nil {
		t.Fatalf("LoadTOMLMap failed: %v", err)
	}
	if m != nil {
		t.Errorf("map = %v, want nil", m)
	}
}

func TestDecodeYAML(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/menu.yaml", `
name: pause_menu
controls:
  - name: resume
    text: Resume
  - name: quit
    text: Quit
`)

	var layout struct {
		Name     string `yaml:"name"`
		Controls []struct {
			Name string `yaml:"name"`
			Text string `yaml:"text"`
		} `yaml:"controls"`
	}
	if err := DecodeYAML(memfs, "/menu.yaml", &layout); err != nil {
		t.Fatalf("DecodeYAML failed: %v", err)
	}
	if layout.Name != "pause_menu" {
		t.Errorf("Name = %q, want pause_menu", layout.Name)
	}
	if len(layout.Controls) != 2 || layout.Controls[1].Text != "Quit" {
		t.Errorf("Controls = %+v", layout.Controls)
	}
}

func TestDecodeYAMLParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/menu.yaml", "name: [unterminated\n")

	var v map[string]any
	err := DecodeYAML(memfs, "/menu.yaml", &v)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"log":   map[string]any{"level": "info"},
		"input": map[string]any{"bindings": "a.json"},
	}
	src := map[string]any{
		"log":   map[string]any{"level": "debug"},
		"watch": map[string]any{"enabled": true},
	}

	got := DeepMerge(dst, src)
	if got["log"].(map[string]any)["level"] != "debug" {
		t.Errorf("log.level = %v, want debug", got["log"])
	}
	if got["input"].(map[string]any)["bindings"] != "a.json" {
		t.Errorf("input.bindings lost: %v", got["input"])
	}
	if got["watch"].(map[string]any)["enabled"] != true {
		t.Errorf("watch.enabled = %v, want true", got["watch"])
	}
}
