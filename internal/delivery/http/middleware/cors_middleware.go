package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware adds CORS headers for cross-origin requests.
//
// allowedOrigins may contain "*" (any origin, no credentials), exact origins
// like "https://quantumworks.services", or wildcard subdomains like
// "https://*.netlify.app". The contact relay is public, so "*" is the default.
//
// OPTIONS requests to postOnly paths are not answered as preflights; they
// continue to routing and get the router's 405.
func CORSMiddleware(allowedOrigins []string, postOnly ...string) gin.HandlerFunc {
	noPreflight := make(map[string]bool, len(postOnly))
	for _, p := range postOnly {
		noPreflight[p] = true
	}

	allowAny := false
	exact := make(map[string]bool)
	var wildcards []wildcardOrigin
	for _, o := range allowedOrigins {
		switch {
		case o == "*":
			allowAny = true
		case strings.Contains(o, "://*."):
			// "https://*.netlify.app" -> prefix "https://", suffix ".netlify.app"
			prefix, suffix, _ := strings.Cut(o, "*")
			wildcards = append(wildcards, wildcardOrigin{prefix: prefix, suffix: suffix})
		default:
			exact[o] = true
		}
	}

	matches := func(origin string) bool {
		if exact[origin] {
			return true
		}
		for _, w := range wildcards {
			if w.match(origin) {
				return true
			}
		}
		return false
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := true
		switch {
		case allowAny:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin == "":
			// Same-origin requests carry no Origin header
		case matches(origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		default:
			allowed = false
			c.Header("Vary", "Origin")
		}

		if allowed {
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Origin, X-Requested-With, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Expose-Headers", "X-Request-ID")
			c.Header("Access-Control-Max-Age", "86400") // 24 hours
		}

		// Handle preflight requests
		if c.Request.Method == http.MethodOptions && !noPreflight[c.Request.URL.Path] {
			if allowed {
				c.AbortWithStatus(http.StatusNoContent)
			} else {
				c.AbortWithStatus(http.StatusForbidden)
			}
			return
		}

		c.Next()
	}
}

type wildcardOrigin struct {
	prefix string
	suffix string
}

func (w wildcardOrigin) match(origin string) bool {
	if len(origin) <= len(w.prefix)+len(w.suffix) ||
		!strings.HasPrefix(origin, w.prefix) || !strings.HasSuffix(origin, w.suffix) {
		return false
	}
	sub := origin[len(w.prefix) : len(origin)-len(w.suffix)]
	return sub != "" && !strings.ContainsAny(sub, "/:")
}
