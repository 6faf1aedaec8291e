package deploy

import (
	"fmt"
	"os"

	"github.com/clangtc/clangtc/pkg/api/clangtc"
	"sigs.k8s.io/yaml"
)

// Fallback is the last-resort baseline used only when the inspection tool
// cannot run against the root binary. The names below are the single place
// in the engine where library names are hardcoded; they still go through
// the regular resolver, so names missing from the toolchain tree are
// dropped like any other unresolvable import.
type Fallback struct {
	Version string
	Names   []string
}

// Baseline runtime libraries shipped by the supported toolchain flavors.
var baselines = map[string]Fallback{
	"mingw": {
		Version: "mingw-1",
		Names: []string{
			"libwinpthread-1.dll",
			"libgcc_s_seh-1.dll",
			"libstdc++-6.dll",
		},
	},
	"llvm": {
		Version: "llvm-1",
		Names: []string{
			"libc++.so.1",
			"libc++abi.so.1",
			"libunwind.so.1",
		},
	},
}

func BaselineFor(flavor string) (*Fallback, error) {
	baseline, exists := baselines[flavor]
	if !exists {
		return nil, fmt.Errorf("no deployment baseline for toolchain flavor %q", flavor)
	}
	return &baseline, nil
}

// LoadBaseline reads a profile from a baselines yaml file, overriding the
// built-in lists.
func LoadBaseline(file string, flavor string) (*Fallback, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	config := &clangtc.Baselines{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	names, exists := config.Profiles[flavor]
	if !exists {
		return nil, fmt.Errorf("baseline file %s has no profile %q", file, flavor)
	}
	return &Fallback{Version: config.Version, Names: names}, nil
}
