package rest

import (
	"testing"

	"healthpoints/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseLinks(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   domain.Links
	}{
		{"empty", "", domain.Links{}},
		{
			"backend format",
			`</api/points?page=1&size=20>; rel="next",</api/points?page=3&size=20>; rel="last",</api/points?page=0&size=20>; rel="first"`,
			domain.Links{"next": 1, "last": 3, "first": 0},
		},
		{
			"absolute urls and spacing",
			`<http://localhost:8080/api/weights?page=2&size=5>;rel="prev" , <http://localhost:8080/api/weights?page=0&size=5>; rel=first`,
			domain.Links{"prev": 2, "first": 0},
		},
		{
			"malformed parts skipped",
			`garbage, <no-page>; rel="next", </api/points?page=4>; rel="last"`,
			domain.Links{"last": 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLinks(tt.header))
		})
	}
}
