package kit

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/thoreinstein/vibery/internal/errors"
)

// Change classifies a re-install relative to the installed version.
type Change string

const (
	ChangeInstall   Change = "install"
	ChangeUpgrade   Change = "upgrade"
	ChangeDowngrade Change = "downgrade"
	ChangeReinstall Change = "reinstall"
)

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b. A leading "v" is ignored.
func CompareVersions(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing version %q", a)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing version %q", b)
	}
	return av.Compare(bv), nil
}

// Classify describes installing version next over installed. An empty
// installed version is a fresh install. Versions that are not semver and
// differ only compare as a reinstall.
func Classify(installed, next string) Change {
	if installed == "" {
		return ChangeInstall
	}
	c, err := CompareVersions(installed, next)
	if err != nil {
		return ChangeReinstall
	}
	switch {
	case c < 0:
		return ChangeUpgrade
	case c > 0:
		return ChangeDowngrade
	default:
		return ChangeReinstall
	}
}

func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
