package clangtc

// Sources is the on-disk source file ("sources.yaml") pointing at one or
// more manifest distribution endpoints.
type Sources struct {
	Sources []Source `json:"sources"`
}

type Source struct {
	Name     string `json:"name"`
	Disabled bool   `json:"disabled,omitempty"`
	Baseurl  string `json:"baseurl"`
	GPGKey   string `json:"gpgkey,omitempty"`
}

// Lock records what the installer extracted, so that repeated installs can
// be skipped and installed archives can be re-verified later.
type Lock struct {
	Component  string   `json:"component"`
	Version    string   `json:"version"`
	Flavor     string   `json:"flavor,omitempty"`
	SHA256Sums []string `json:"sha256sums"`
	URL        string   `json:"url"`
}

// Baselines holds the last-resort library lists used by the deploy engine
// when binary inspection is unavailable, keyed by toolchain flavor.
type Baselines struct {
	Version  string              `json:"version"`
	Profiles map[string][]string `json:"profiles"`
}
