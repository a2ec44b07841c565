package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerFromURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "https with .git", url: "https://github.com/courseorg/go-course.git", want: "courseorg"},
		{name: "https without .git", url: "https://github.com/courseorg/go-course", want: "courseorg"},
		{name: "http", url: "http://git.example.com/courseorg/go-course", want: "courseorg"},
		{name: "ssh with .git", url: "git@github.com:courseorg/go-course.git", want: "courseorg"},
		{name: "ssh without .git", url: "git@github.com:courseorg/go-course", want: "courseorg"},
		{name: "whitespace trimmed", url: "  https://github.com/courseorg/go-course.git  ", want: "courseorg"},
		{name: "local path", url: "/srv/git/course.git", wantErr: true},
		{name: "garbage", url: "not a url", wantErr: true},
		{name: "empty", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ownerFromURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
