package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "https://us-south.ml.cloud.ibm.com"

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		src     Source
		slot    string
		wantKey string
		wantErr bool
	}{
		{"present", MapSource{"API_KEY_MCQ": "k-123"}, "API_KEY_MCQ", "k-123", false},
		{"trimmed", MapSource{"API_KEY_MCQ": "  k-123\n"}, "API_KEY_MCQ", "k-123", false},
		{"absent", MapSource{}, "API_KEY_MCQ", "", true},
		{"blank", MapSource{"API_KEY_MCQ": "   "}, "API_KEY_MCQ", "", true},
		{"nil source", nil, "API_KEY_MCQ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := NewResolver(tt.src, testURL).Resolve(tt.slot)

			assert.Equal(t, testURL, creds.URL, "url is returned even when the key is missing")
			assert.Equal(t, tt.wantKey, creds.APIKey)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var missing *MissingKeyError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.slot, missing.Slot)
		})
	}
}

func TestEnvSource(t *testing.T) {
	t.Setenv("API_KEY_QA", "env-key")

	creds, err := NewResolver(EnvSource{}, testURL).Resolve("API_KEY_QA")

	require.NoError(t, err)
	assert.Equal(t, "env-key", creds.APIKey)
}

func TestValue(t *testing.T) {
	r := NewResolver(MapSource{"PROJECT_ID_MCQ": "proj", "EMPTY": ""}, testURL)

	v, ok := r.Value("PROJECT_ID_MCQ")
	assert.True(t, ok)
	assert.Equal(t, "proj", v)

	_, ok = r.Value("EMPTY")
	assert.False(t, ok)

	_, ok = r.Value("")
	assert.False(t, ok)
}
