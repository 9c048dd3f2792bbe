package workload

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// ValidatePinnedImage checks that the default sink image reference is pinned
// to a digest or a semver tag. Unpinned images make pod recycles pull
// whatever the registry currently serves, so the operator warns about them
// at startup.
//
//nolint:wrapcheck // errors.Newf creates new errors
func ValidatePinnedImage(image string) error {
	if digestIdx := strings.Index(image, "@"); digestIdx != -1 {
		return nil
	}

	tag := imageTag(image)
	if tag == "" {
		return errors.Newf("image %q has no tag", image)
	}

	if tag == "latest" {
		return errors.Newf("image %q uses the latest tag", image)
	}

	if _, err := semver.NewVersion(strings.TrimPrefix(tag, "v")); err != nil {
		return errors.Wrapf(err, "image %q tag is not a semver version", image)
	}

	return nil
}

// imageTag extracts the tag from an image reference, tolerating registry
// host ports.
func imageTag(image string) string {
	lastColon := strings.LastIndex(image, ":")
	if lastColon == -1 {
		return ""
	}

	// A colon before the last slash belongs to a registry port, not a tag.
	if strings.Contains(image[lastColon:], "/") {
		return ""
	}

	return image[lastColon+1:]
}
