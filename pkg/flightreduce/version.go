package flightreduce

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// Version is recorded alongside every persisted run.
const Version = "v1.1.0"

// IsCompatibleVersion reports whether data written by version other can be
// read by version current. Only the major versions have to match.
func IsCompatibleVersion(other, current string) (bool, error) {
	if !semver.IsValid(other) {
		return false, fmt.Errorf("invalid version: %q", other)
	}
	if !semver.IsValid(current) {
		return false, fmt.Errorf("invalid version: %q", current)
	}

	return semver.Major(other) == semver.Major(current), nil
}

// CheckVersion returns ErrIncompatibleVersion when data written by other
// cannot be read by this build.
func CheckVersion(other string) error {
	ok, err := IsCompatibleVersion(other, Version)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIncompatibleVersion, err)
	}
	if !ok {
		return fmt.Errorf("%w: written by %s, this build requires %s.x.x",
			ErrIncompatibleVersion, other, semver.Major(Version))
	}

	return nil
}
