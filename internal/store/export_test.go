package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanmeadows/issuecloser/internal/issues"
)

func sampleIssues() []issues.CloseableIssue {
	return []issues.CloseableIssue{
		{Owner: "octocat", Repo: "hello-world", Number: 1, Title: "First", URL: "https://github.com/octocat/hello-world/issues/1"},
		{Owner: "octocat", Repo: "hello-world", Number: 2, Title: "Second \"quoted\"", URL: "https://github.com/octocat/hello-world/issues/2"},
	}
}

const sampleJSON = `[
  {
    "owner": "octocat",
    "repo": "hello-world",
    "number": 1,
    "title": "First",
    "url": "https://github.com/octocat/hello-world/issues/1"
  },
  {
    "owner": "octocat",
    "repo": "hello-world",
    "number": 2,
    "title": "Second \"quoted\"",
    "url": "https://github.com/octocat/hello-world/issues/2"
  }
]
`

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"out.json", FormatJSON},
		{"out", FormatJSON},
		{"dir/out.txt", FormatJSON},
		{"out.yaml", FormatYAML},
		{"out.YML", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFor(tt.path))
		})
	}
}

func TestMarshalJSONSchema(t *testing.T) {
	data, err := Marshal(sampleIssues(), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, sampleJSON, string(data))
}

func TestMarshalNilIsEmptyArray(t *testing.T) {
	data, err := Marshal(nil, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestMarshalIsDeterministic(t *testing.T) {
	first, err := Marshal(sampleIssues(), FormatJSON)
	require.NoError(t, err)

	decoded, err := Unmarshal(first, FormatJSON)
	require.NoError(t, err)

	second, err := Marshal(decoded, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUnmarshalJSON(t *testing.T) {
	list, err := Unmarshal([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, sampleIssues(), list)
}

func TestUnmarshalCompactJSON(t *testing.T) {
	data := []byte(`[{"owner":"o","repo":"r","number":7,"title":"t","url":"u"}]`)
	list, err := Unmarshal(data, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []issues.CloseableIssue{{Owner: "o", Repo: "r", Number: 7, Title: "t", URL: "u"}}, list)
}

func TestUnmarshalEmptyArray(t *testing.T) {
	list, err := Unmarshal([]byte("[]"), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"null document", "null", "no issue list"},
		{"malformed", "[{", "parsing json"},
		{"object instead of array", `{"owner":"o"}`, "parsing json"},
		{"non-positive number", `[{"owner":"o","repo":"r","number":0}]`, "number must be positive"},
		{"missing owner", `[{"repo":"r","number":1}]`, "empty owner"},
		{"string number", `[{"owner":"o","repo":"r","number":"1"}]`, "parsing json"},
		{"trailing data after array", `[{"owner":"o","repo":"r","number":1}] {garbage`, "parsing json"},
		{"second array", `[] []`, "parsing json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data), FormatJSON)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	data, err := Marshal(sampleIssues(), FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "owner: octocat")
	assert.Contains(t, string(data), "number: 1")

	list, err := Unmarshal(data, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, sampleIssues(), list)
}

func TestWriteAndReadIssues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, WriteIssues(path, sampleIssues()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleJSON, string(raw))

	list, err := ReadIssues(path)
	require.NoError(t, err)
	assert.Equal(t, sampleIssues(), list)
}

func TestWriteIssuesOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the new one"), 0644))

	require.NoError(t, WriteIssues(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(raw))
}

func TestWriteIssuesCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.yaml")

	require.NoError(t, WriteIssues(path, sampleIssues()))

	list, err := ReadIssues(path)
	require.NoError(t, err)
	assert.Equal(t, sampleIssues(), list)
}

func TestReadIssuesNonExistent(t *testing.T) {
	_, err := ReadIssues(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestReadIssuesInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"owner":"o","repo":"r","number":-1}]`), 0644))

	_, err := ReadIssues(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, issues.ErrInvalidIssue)
	assert.Contains(t, err.Error(), "failed to deserialize issues from")
}
