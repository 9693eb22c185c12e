package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strings"
)

// unsignedParams are upload parameters the media host excludes from the
// request signature.
var unsignedParams = map[string]struct{}{
	"file":          {},
	"api_key":       {},
	"cloud_name":    {},
	"resource_type": {},
	"signature":     {},
}

// SignParams computes the signature expected by the media host for a signed
// upload: the non-empty parameters sorted by name, joined as
// "k1=v1&k2=v2", with the API secret appended, hashed with SHA-1 and
// hex-encoded.
//
// Example usage:
//
//	sig := utils.SignParams(map[string]string{"timestamp": "1700000000"}, secret)
func SignParams(params map[string]string, apiSecret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if _, skip := unsignedParams[k]; skip || v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	b.WriteString(apiSecret)

	sum := sha1.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
