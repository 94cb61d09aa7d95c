package model

// How this binary was built, stamped in by the release tooling.
type BuildInfo struct {
	// A semantic version string.
	Version string

	// The git digest of the commit this binary was built at.
	CommitSHA string

	// When the binary was built, usually RFC 3339.
	Date string

	// Set for builds that didn't go through the release tooling.
	Dev bool
}

func (b BuildInfo) Empty() bool {
	return b == BuildInfo{}
}
