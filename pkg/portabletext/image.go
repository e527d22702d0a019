package portabletext

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
)

// ErrInvalidImageRef is returned for asset refs that are not image refs.
var ErrInvalidImageRef = errors.New("portabletext: invalid image ref")

const imageCDN = "https://cdn.sanity.io/images"

var imageRefPattern = regexp.MustCompile(`^image-([A-Za-z0-9]+)-(\d+)x(\d+)-([a-z0-9]+)$`)

// ImageURL converts an `image-<id>-<w>x<h>-<ext>` asset ref into a CDN URL.
// A positive width adds a resize parameter.
func ImageURL(ref, projectID, dataset string, width int) (string, error) {
	m := imageRefPattern.FindStringSubmatch(ref)
	if m == nil || projectID == "" || dataset == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidImageRef, ref)
	}
	u := fmt.Sprintf("%s/%s/%s/%s-%sx%s.%s", imageCDN, url.PathEscape(projectID), url.PathEscape(dataset), m[1], m[2], m[3], m[4])
	if width > 0 {
		u += "?w=" + strconv.Itoa(width)
	}
	return u, nil
}
