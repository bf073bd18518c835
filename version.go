package pgf

import "golang.org/x/mod/semver"

// PackageVersion is this package's own release version, distinct from the
// PGF wire-format version DecodePGF checks against supportedMajorVersion.
// It is validated against golang.org/x/mod/semver at init time so a typo
// here fails loudly instead of silently shipping a malformed tag.
const PackageVersion = "v0.1.0"

func init() {
	if !semver.IsValid(PackageVersion) {
		panic("pgf: PackageVersion is not a valid semantic version: " + PackageVersion)
	}
}
