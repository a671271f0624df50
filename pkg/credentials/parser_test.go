package credentials

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBlob(t *testing.T) {
	tests := []struct {
		name          string
		blob          string
		wantAPIKey    string
		wantProjectID string
		wantErr       bool
	}{
		{
			name:          "assignment wrapper with bare keys",
			blob:          `const firebaseConfig = { apiKey: "K", projectId: "P" };`,
			wantAPIKey:    "K",
			wantProjectID: "P",
		},
		{
			name:          "bare json object",
			blob:          `{"apiKey": "K", "projectId": "P"}`,
			wantAPIKey:    "K",
			wantProjectID: "P",
		},
		{
			name: "multiline paste with extra fields and trailing comma",
			blob: `const firebaseConfig = {
  apiKey: "AIzaXYZ",
  authDomain: "demo.example.app",
  projectId: "demo-project",
  storageBucket: "demo.appspot.com",
};`,
			wantAPIKey:    "AIzaXYZ",
			wantProjectID: "demo-project",
		},
		{
			name:          "single quoted values",
			blob:          `var cfg = { apiKey: 'K', projectId: 'P' };`,
			wantAPIKey:    "K",
			wantProjectID: "P",
		},
		{
			name:    "missing projectId is rejected",
			blob:    `const firebaseConfig = { apiKey: "K" };`,
			wantErr: true,
		},
		{
			name:    "empty apiKey is rejected",
			blob:    `{ apiKey: "", projectId: "P" }`,
			wantErr: true,
		},
		{
			name:    "garbage text is rejected",
			blob:    `hello world`,
			wantErr: true,
		},
		{
			name:    "empty input is rejected",
			blob:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := ParseBlob(tt.blob)
			if tt.wantErr {
				assert.Error(t, err)
				var verr *ValidationError
				assert.True(t, errors.As(err, &verr), "expected a ValidationError, got %T", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantAPIKey, creds.APIKey)
			assert.Equal(t, tt.wantProjectID, creds.ProjectID)
		})
	}
}

func TestUnwrapAssignment(t *testing.T) {
	assert.Equal(t, `{ "a": 1 }`, UnwrapAssignment(`const cfg = { "a": 1 };`))
	assert.Equal(t, `{ "a": 1 }`, UnwrapAssignment(`  { "a": 1 }  `))
}

func TestParseBlobLeavesStringContentsAlone(t *testing.T) {
	tests := []struct {
		name string
		blob string
		want func(t *testing.T, creds *Credentials)
	}{
		{
			name: "connection string with key-like sequence",
			blob: `const cfg = { apiKey: "K", projectId: "P", databaseUrl: "host=db,user:admin,sslmode:disable" };`,
			want: func(t *testing.T, creds *Credentials) {
				assert.Equal(t, "host=db,user:admin,sslmode:disable", creds.DatabaseURL)
			},
		},
		{
			name: "value containing comma-word-colon",
			blob: `{ apiKey: "K", projectId: "P", authDomain: "a, b: c" }`,
			want: func(t *testing.T, creds *Credentials) {
				assert.Equal(t, "a, b: c", creds.AuthDomain)
			},
		},
		{
			name: "single quoted value with colon and brace",
			blob: `var cfg = { apiKey: 'K', projectId: 'P', authDomain: 'x: {y, z: 1}' };`,
			want: func(t *testing.T, creds *Credentials) {
				assert.Equal(t, "x: {y, z: 1}", creds.AuthDomain)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := ParseBlob(tt.blob)
			assert.NoError(t, err)
			if creds != nil {
				tt.want(t, creds)
			}
		})
	}
}

func TestParseBlobKeepsOptionalFields(t *testing.T) {
	creds, err := ParseBlob(`const firebaseConfig = { apiKey: "K", projectId: "P", databaseUrl: "postgres://u:p@host/db" };`)
	assert.NoError(t, err)
	assert.Equal(t, "postgres://u:p@host/db", creds.DatabaseURL)
}
