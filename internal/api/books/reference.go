package books

import (
	"errors"
	"net/url"
	"strings"
)

var errBadReference = errors.New("author reference must be an author URI or id")

// parseAuthorRef extracts the author id from a reference. Accepted forms:
//
//	http://host/authors/{id}
//	/authors/{id}
//	{id}
func parseAuthorRef(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errBadReference
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", errBadReference
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch {
	case len(segments) == 1 && u.Host == "" && !strings.HasPrefix(u.Path, "/"):
		return segments[0], nil
	case len(segments) >= 2 && segments[len(segments)-2] == "authors" && segments[len(segments)-1] != "":
		return segments[len(segments)-1], nil
	}
	return "", errBadReference
}
