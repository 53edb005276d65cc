package version

import (
	"net/http"
	"net/http/httptest"
	"runtime/debug"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNewer(t *testing.T) {
	tests := []struct {
		latest, current string
		want            bool
	}{
		{"1.10.0", "1.9.3", true},
		{"1.2.3", "1.2.3", false},
		{"1.2.3", "1.2.4", false},
		{"2.0.0", "1.99.99", true},
		{"1.3.0", "1.2.9-dirty", true},
		{"v1.0.1", "1.0.0", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isNewer(tt.latest, tt.current), "%s vs %s", tt.latest, tt.current)
	}
}

func TestLatestRelease(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name": "v1.4.0"}`))
	}))
	defer srv.Close()

	tag, err := latestRelease(&http.Client{Timeout: time.Second}, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", tag)
}

func TestLatestReleaseRejectsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := latestRelease(&http.Client{Timeout: time.Second}, srv.URL)
	assert.Error(t, err)
}

func TestFormatVersion(t *testing.T) {
	oldVersion, oldCommit, oldBuild := Version, Commit, BuildTime
	defer func() { Version, Commit, BuildTime = oldVersion, oldCommit, oldBuild }()

	Version, Commit, BuildTime = "1.2.3", "", ""
	assert.Equal(t, "1.2.3 (development)", FormatVersion())

	Commit, BuildTime = "abc1234", "2025-01-02T03:04:05Z"
	assert.Equal(t, "1.2.3 (commit: abc1234, built at: 2025-01-02T03:04:05Z)", FormatVersion())
}

func TestApplyBuildSettings(t *testing.T) {
	oldVersion, oldCommit, oldBuild := Version, Commit, BuildTime
	defer func() { Version, Commit, BuildTime = oldVersion, oldCommit, oldBuild }()

	Version, Commit, BuildTime = "0.0.0-dev", "", ""
	applyBuildSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2025-03-04T05:06:07+02:00"},
		{Key: "vcs.tag", Value: "v1.5.0"},
		{Key: "vcs.modified", Value: "true"},
	})

	assert.Equal(t, "1.5.0-dirty", Version)
	assert.Equal(t, "0123456", Commit)
	assert.Equal(t, "2025-03-04T03:06:07Z", BuildTime)
}
