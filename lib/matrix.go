package lib

import (
	"os"

	"gopkg.in/yaml.v3"
)

type LayerConfig struct {
	Targets []RuntimeTarget `yaml:"targets,omitempty"`
	Regions []string        `yaml:"regions,omitempty"`
}

func DefaultRuntimeTargets() []RuntimeTarget {
	var targets []RuntimeTarget
	for _, runtime := range []string{"3.8", "3.9", "3.10", "3.11", "3.12", "3.13"} {
		for _, arch := range []string{"arm64", "x86_64"} {
			targets = append(targets, RuntimeTarget{RuntimeVersion: runtime, Architecture: arch})
		}
	}
	return targets
}

func DefaultRegions() []string {
	return []string{
		"af-south-1",
		"ap-east-1",
		"ap-northeast-1",
		"ap-northeast-2",
		"ap-northeast-3",
		"ap-south-1",
		"ap-southeast-1",
		"ap-southeast-2",
		"ap-southeast-3",
		"ca-central-1",
		"eu-central-1",
		"eu-north-1",
		"eu-south-1",
		"eu-west-1",
		"eu-west-2",
		"eu-west-3",
		"me-south-1",
		"sa-east-1",
		"us-east-1",
		"us-east-2",
		"us-west-1",
		"us-west-2",
	}
}

// LoadLayerConfig reads an optional yaml override for the runtime matrix and
// region list. Empty path and empty fields fall back to the defaults.
func LoadLayerConfig(path string) (*LayerConfig, error) {
	conf := &LayerConfig{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			Logger.Println("error:", err)
			return nil, err
		}
		err = yaml.Unmarshal(data, conf)
		if err != nil {
			Logger.Println("error:", err)
			return nil, err
		}
	}
	if len(conf.Targets) == 0 {
		conf.Targets = DefaultRuntimeTargets()
	}
	if len(conf.Regions) == 0 {
		conf.Regions = DefaultRegions()
	}
	err := ValidateTargets(conf.Targets)
	if err != nil {
		Logger.Println("error:", err)
		return nil, err
	}
	return conf, nil
}
