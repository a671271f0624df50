package credentials

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Credentials is the structured form of a pasted remote-store declaration.
// ApiKey and ProjectId are the required shape; everything else is carried
// opaquely for the dialer.
type Credentials struct {
	APIKey            string `json:"apiKey"`
	AuthDomain        string `json:"authDomain,omitempty"`
	ProjectID         string `json:"projectId"`
	StorageBucket     string `json:"storageBucket,omitempty"`
	MessagingSenderID string `json:"messagingSenderId,omitempty"`
	AppID             string `json:"appId,omitempty"`

	// DatabaseURL, when present, is the connection string the remote
	// dialer uses directly.
	DatabaseURL string `json:"databaseUrl,omitempty"`
}

// ValidationError is the user-facing rejection of a pasted blob. It is a
// typed error so the HTTP layer can map it to a 422 instead of a 500.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

const invalidBlobMessage = "Invalid configuration format. Paste the config object copied from your provider console."

var (
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
)

// ParseBlob turns a pasted credential declaration into Credentials. The
// blob may still carry the `const xxx = { ... };` assignment wrapper users
// copy verbatim. Parsing is strict JSON after an explicit normalization
// step; user text is never evaluated as code.
func ParseBlob(text string) (*Credentials, error) {
	literal := UnwrapAssignment(text)
	if literal == "" {
		return nil, &ValidationError{Reason: invalidBlobMessage}
	}

	normalized := normalizeLiteral(literal)

	var creds Credentials
	if err := json.Unmarshal([]byte(normalized), &creds); err != nil {
		return nil, &ValidationError{Reason: invalidBlobMessage}
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return &creds, nil
}

// UnwrapAssignment strips an optional leading assignment statement,
// keeping the portion between `=` and the first following `;`. Text that
// already is a bare object literal passes through trimmed.
func UnwrapAssignment(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "="); idx >= 0 && !strings.HasPrefix(text, "{") {
		text = text[idx+1:]
		if end := strings.Index(text, ";"); end >= 0 {
			text = text[:end]
		}
	}
	return strings.TrimSpace(text)
}

// normalizeLiteral converts the common object-literal paste dialect into
// strict JSON: bare identifier keys get quoted, single quotes become
// double quotes, trailing commas are dropped. Quoted string contents pass
// through untouched, so a connection string holding ",user:" or a value
// with a colon never gets mangled by the key-quoting pass.
func normalizeLiteral(literal string) string {
	var b strings.Builder
	start := 0
	for i := 0; i < len(literal); {
		quote := literal[i]
		if quote != '"' && quote != '\'' {
			i++
			continue
		}

		b.WriteString(normalizeOutsideStrings(literal[start:i]))

		j := i + 1
		for j < len(literal) && literal[j] != quote {
			if literal[j] == '\\' && j+1 < len(literal) {
				j++
			}
			j++
		}
		content := literal[i+1 : j]
		if quote == '\'' {
			content = strings.ReplaceAll(content, `"`, `\"`)
		}
		b.WriteByte('"')
		b.WriteString(content)
		b.WriteByte('"')

		if j < len(literal) {
			j++
		}
		i = j
		start = i
	}
	b.WriteString(normalizeOutsideStrings(literal[start:]))
	return b.String()
}

func normalizeOutsideStrings(segment string) string {
	segment = bareKeyRe.ReplaceAllString(segment, `$1"$2":`)
	return trailingCommaRe.ReplaceAllString(segment, `$1`)
}

// Validate enforces the minimum shape: an API-key-like field and a
// project-identifier-like field, both non-empty. No lenient acceptance.
func (c *Credentials) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return &ValidationError{Reason: "Configuration is missing the apiKey field."}
	}
	if strings.TrimSpace(c.ProjectID) == "" {
		return &ValidationError{Reason: "Configuration is missing the projectId field."}
	}
	return nil
}
