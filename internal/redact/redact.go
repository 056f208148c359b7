// Package redact masks credential-looking values before they reach
// logs or terminal output. Detection is heuristic: key names and value
// prefixes that commonly denote secrets trigger masking, everything
// else passes through. It is a display convenience, not a security
// boundary.
package redact

import (
	"net/url"
	"strings"

	"github.com/thoreinstein/prism/internal/secrets"
)

// SecretKeyPatterns are key-name substrings (matched case-insensitively)
// that flag a value as sensitive.
var SecretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"API_KEY",
	"PRIVATE",
}

// TokenPrefixes flag a value as sensitive by shape, whatever its key.
var TokenPrefixes = []string{
	"ghp_",  // GitHub personal access token
	"gho_",  // GitHub OAuth token
	"ghu_",  // GitHub user-to-server token
	"ghs_",  // GitHub server-to-server token
	"ghr_",  // GitHub refresh token
	"sk-",   // OpenAI/Anthropic keys
	"pk-",   // provider public keys
	"AKIA",  // AWS access key id
	"xoxb-", // Slack bot token
	"xoxp-", // Slack user token
	"xoxa-", // Slack app token
	"xoxr-", // Slack refresh token
}

// ShouldMask reports whether the key name suggests a sensitive value.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix reports whether the value itself starts with a
// known token prefix, catching secrets hiding under innocent key names.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// MaskValue hides a sensitive string. Anything of 4 characters or
// fewer becomes "********"; longer values keep their last 4 characters
// for recognizability.
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// MaskSecrets returns a copy of m with sensitive values masked, by key
// pattern or token prefix. env:// references pass through untouched:
// the reference names a variable and carries no secret itself.
func MaskSecrets(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	masked := make(map[string]string, len(m))
	for k, v := range m {
		switch {
		case secrets.IsRef(v):
			masked[k] = v
		case ShouldMask(k) || ContainsTokenPrefix(v):
			masked[k] = MaskValue(v)
		default:
			masked[k] = v
		}
	}
	return masked
}

// MaskURL hides the password in a URL carrying userinfo
// (user:pass@host). Unparseable input and URLs without a password come
// back unchanged.
func MaskURL(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.User == nil {
		return rawURL
	}
	password, ok := parsed.User.Password()
	if !ok || password == "" {
		return rawURL
	}
	parsed.User = url.UserPassword(parsed.User.Username(), MaskValue(password))
	return parsed.String()
}
