package entities

// Component is one tracked upstream piece of software pinned in the configuration.
type Component struct {
	Name string // Configuration key (e.g. "qemu", "linux")
	Ref  string // Currently pinned version or tag
	Repo string // Source repository URL, empty for feed-backed components
}

// UpdateRecord is one accepted bump produced during a run.
type UpdateRecord struct {
	Name string `json:"name"`
	Old  string `json:"old"`
	New  string `json:"new"`
}
