package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// cleanRounds bounds how many layers of entity encoding cleanString peels.
const cleanRounds = 4

// cleanString decodes entities before sanitizing, so "&lt;script&gt;" is seen
// as markup, and decodes the policy's own escaping afterwards so that
// "Simon & Garfunkel" is stored as typed. It repeats until the value stops
// changing, which also unwraps entities encoded more than once.
func cleanString(policy *bluemonday.Policy, s string) string {
	for i := 0; i < cleanRounds; i++ {
		next := html.UnescapeString(policy.Sanitize(html.UnescapeString(s)))
		if next == s {
			break
		}
		s = next
	}
	return s
}

// SanitizeAndCleanInputMiddleware strips markup from every top-level string
// in a JSON object body.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}

		var body map[string]interface{}
		dec := json.NewDecoder(bytes.NewReader(buf))
		// keep prices exactly as sent
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		for k, v := range body {
			if str, ok := v.(string); ok {
				body[k] = cleanString(policy, str)
			}
		}

		var out bytes.Buffer
		enc := json.NewEncoder(&out)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}
		newBody := out.Bytes()
		c.Request.Body = io.NopCloser(bytes.NewReader(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}
