package clangtc

// RootManifest maps platform/architecture pairs to the platform manifest
// holding the actual archive information.
type RootManifest struct {
	Platforms []Platform `json:"platforms"`
}

type Platform struct {
	Name          string         `json:"name"`
	Architectures []Architecture `json:"architectures"`
}

type Architecture struct {
	Name     string `json:"name"`
	Manifest string `json:"manifest"`
}

// Manifest describes one downloadable toolchain component version.
type Manifest struct {
	Component string    `json:"component"`
	Version   string    `json:"version"`
	Flavor    string    `json:"flavor,omitempty"`
	Archives  []Archive `json:"archives"`
}

type Archive struct {
	URL       string `json:"url"`
	SHA256    string `json:"sha256"`
	Signature string `json:"signature,omitempty"`
}

func (r *RootManifest) ManifestPath(platform string, arch string) string {
	for _, p := range r.Platforms {
		if p.Name != platform {
			continue
		}
		for _, a := range p.Architectures {
			if a.Name == arch {
				return a.Manifest
			}
		}
	}
	return ""
}
