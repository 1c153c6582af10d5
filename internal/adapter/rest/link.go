package rest

import (
	"net/url"
	"strconv"
	"strings"

	"healthpoints/internal/domain"
)

// parseLinks decodes a pagination Link header such as
//
//	</api/points?page=1&size=20>; rel="next",</api/points?page=0&size=20>; rel="first"
//
// into rel -> page index. Malformed parts are skipped.
func parseLinks(header string) domain.Links {
	links := domain.Links{}
	if strings.TrimSpace(header) == "" {
		return links
	}
	for _, part := range strings.Split(header, ",") {
		target, params, ok := strings.Cut(part, ";")
		if !ok {
			continue
		}
		target = strings.TrimSpace(target)
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		u, err := url.Parse(target[1 : len(target)-1])
		if err != nil {
			continue
		}
		page, err := strconv.Atoi(u.Query().Get("page"))
		if err != nil {
			continue
		}
		for _, p := range strings.Split(params, ";") {
			k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
			if !ok || k != "rel" {
				continue
			}
			links[strings.Trim(v, `"`)] = page
		}
	}
	return links
}
