package lib

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRuntimeTargets(t *testing.T) {
	targets := DefaultRuntimeTargets()
	if len(targets) != 12 {
		t.Fatalf("got: %d targets, want: 12", len(targets))
	}
	err := ValidateTargets(targets)
	if err != nil {
		t.Fatal(err)
	}
	counts := make(map[string]int)
	for _, target := range targets {
		counts[target.RuntimeVersion]++
	}
	for runtime, count := range counts {
		if count != 2 {
			t.Errorf("runtime %s should appear with both architectures, got: %d", runtime, count)
		}
	}
}

func TestLoadLayerConfigDefaults(t *testing.T) {
	conf, err := LoadLayerConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if len(conf.Targets) != 12 {
		t.Errorf("got: %d targets, want: 12", len(conf.Targets))
	}
	if !Contains(conf.Regions, "eu-west-1") || !Contains(conf.Regions, "us-east-1") {
		t.Errorf("default regions missing: %v", conf.Regions)
	}
}

func TestLoadLayerConfigOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layer.yaml")
	data := `
targets:
- runtime: "3.13"
  arch: arm64
regions:
- eu-west-1
`
	err := os.WriteFile(path, []byte(data), 0644)
	if err != nil {
		t.Fatal(err)
	}
	conf, err := LoadLayerConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(conf.Targets) != 1 || conf.Targets[0] != (RuntimeTarget{"3.13", "arm64"}) {
		t.Errorf("got: %v", conf.Targets)
	}
	if len(conf.Regions) != 1 || conf.Regions[0] != "eu-west-1" {
		t.Errorf("got: %v", conf.Regions)
	}
}

func TestLoadLayerConfigRejectsBadTargets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layer.yaml")
	data := `
targets:
- runtime: "3.13"
  arch: amd64
`
	err := os.WriteFile(path, []byte(data), 0644)
	if err != nil {
		t.Fatal(err)
	}
	_, err = LoadLayerConfig(path)
	if err == nil {
		t.Fatal("want error")
	}
}
