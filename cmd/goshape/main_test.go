package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	j "github.com/goccy/go-json"
)

const testManifest = `
variants:
  - tag: admin
    fields:
      - {name: name, type: string, required: true}
  - tag: user
    fields:
      - {name: id, type: integer, required: true, readonly: true}
      - {name: name, type: string, required: true}
      - {name: permission, type: list, elem: string, required: true}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate_PrintsEntity(t *testing.T) {
	dir := t.TempDir()
	m := writeFile(t, dir, "registry.yaml", testManifest)
	in := writeFile(t, dir, "user.json", `{"id": 1, "name": "A", "permission": ["read"]}`)

	out, err := run(t, "", "--manifest", m, "validate", "--tag", "user", in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	var got struct {
		Tag    string         `json:"tag"`
		Fields map[string]any `json:"fields"`
	}
	if err := j.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Tag != "user" || got.Fields["name"] != "A" {
		t.Fatalf("unexpected entity: %s", out)
	}
}

func TestValidate_ReportsAllIssues(t *testing.T) {
	dir := t.TempDir()
	m := writeFile(t, dir, "registry.yaml", testManifest)

	out, err := run(t, `{"id": "x"}`, "--manifest", m, "validate", "--tag", "user", "-")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	for _, want := range []string{`"/id"`, `"invalid_type"`, `"/name"`, `"/permission"`, `"required"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %s:\n%s", want, out)
		}
	}
}

func TestClassify_FirstMatchAndStrict(t *testing.T) {
	dir := t.TempDir()
	m := writeFile(t, dir, "registry.yaml", testManifest)
	in := writeFile(t, dir, "both.yaml", "id: 1\nname: A\npermission: []\n")

	out, err := run(t, "", "--manifest", m, "classify", in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if strings.TrimSpace(out) != "admin" {
		t.Fatalf("first match should pick admin, got %q", out)
	}

	if _, err := run(t, "", "--manifest", m, "--strict", "classify", in); err == nil || !strings.Contains(err.Error(), "matches 2 variants") {
		t.Fatalf("strict mode should report ambiguity, got %v", err)
	}
}

func TestSchema_Variant(t *testing.T) {
	dir := t.TempDir()
	m := writeFile(t, dir, "registry.yaml", testManifest)

	out, err := run(t, "", "--manifest", m, "schema", "--tag", "user")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(out, `"readOnly": true`) || !strings.Contains(out, `"required"`) {
		t.Fatalf("unexpected schema: %s", out)
	}
	if _, err := run(t, "", "--manifest", m, "schema", "--tag", "nope"); err == nil {
		t.Fatalf("expected unknown variant error")
	}
}

func TestConfigFile_SuppliesManifest(t *testing.T) {
	dir := t.TempDir()
	m := writeFile(t, dir, "registry.yaml", testManifest)
	cfg := writeFile(t, dir, "goshape.yaml", "manifest: "+m+"\nstrict: true\n")

	if _, err := run(t, "", "--config", cfg, "schema"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := run(t, "", "--config", filepath.Join(dir, "missing.yaml"), "schema"); err == nil {
		t.Fatalf("expected missing config error")
	}
}

func TestMissingManifest(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := run(t, "", "schema"); err == nil {
		t.Fatalf("expected error without manifest")
	}
}
