package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"
)

const redacted = "[REDACTED]"

var (
	redactOnce       sync.Once
	redactionEnabled bool
	hashSalt         string
)

// Substrings of keys whose values are never written.
var redactKeyParts = []string{
	"token",
	"authorization",
	"password",
	"secret",
	"cookie",
	"api_key",
	"apikey",
	"email",
	"refresh",
}

// Substrings of keys whose values are replaced by a salted hash so they stay
// correlatable across log lines.
var hashKeyParts = []string{
	"user_id",
	"author_id",
	"viewer_id",
}

func sanitizeKVs(kv []interface{}) []interface{} {
	if len(kv) == 0 || !redactionOn() {
		return kv
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key := toString(kv[i])
		out = append(out, key, sanitizeValue(strings.ToLower(strings.TrimSpace(key)), kv[i+1]))
	}
	return out
}

func sanitizeValue(key string, val interface{}) interface{} {
	if key != "" {
		if containsAny(key, redactKeyParts) {
			return redacted
		}
		if containsAny(key, hashKeyParts) {
			return hashValue(val)
		}
	}
	switch v := val.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, inner := range v {
			out[k] = sanitizeValue(strings.ToLower(strings.TrimSpace(k)), inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(v))
		for _, inner := range v {
			out = append(out, sanitizeValue("", inner))
		}
		return out
	case string:
		if looksLikeJWT(v) {
			return redacted
		}
		return v
	default:
		return val
	}
}

func containsAny(key string, parts []string) bool {
	for _, p := range parts {
		if strings.Contains(key, p) {
			return true
		}
	}
	return false
}

func hashValue(val interface{}) string {
	raw := toString(val)
	if raw == "" {
		return ""
	}
	h := sha256.New()
	if hashSalt != "" {
		_, _ = h.Write([]byte(hashSalt))
	}
	_, _ = h.Write([]byte(raw))
	return "hash:" + hex.EncodeToString(h.Sum(nil))[:12]
}

func looksLikeJWT(s string) bool {
	parts := strings.Split(s, ".")
	return len(parts) == 3 && len(parts[0]) > 10 && len(parts[1]) > 10
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func redactionOn() bool {
	redactOnce.Do(func() {
		switch strings.TrimSpace(strings.ToLower(os.Getenv("LOG_REDACTION_ENABLED"))) {
		case "0", "false", "no", "off":
			redactionEnabled = false
		default:
			redactionEnabled = true
		}
		hashSalt = strings.TrimSpace(os.Getenv("LOG_HASH_SALT"))
	})
	return redactionEnabled
}
