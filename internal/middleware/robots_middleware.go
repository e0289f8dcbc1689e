package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultRobotsDirectives = "noindex, nofollow"

// NoIndexMiddleware sets X-Robots-Tag on every response of the group it is
// attached to. Blank directives are ignored; with none left the default
// "noindex, nofollow" applies.
func NoIndexMiddleware(directives ...string) gin.HandlerFunc {
	value := robotsDirectives(directives)
	return func(c *gin.Context) {
		c.Header("X-Robots-Tag", value)
		c.Next()
	}
}

func robotsDirectives(directives []string) string {
	cleaned := make([]string, 0, len(directives))
	for _, directive := range directives {
		if directive = strings.ToLower(strings.TrimSpace(directive)); directive != "" && !containsString(cleaned, directive) {
			cleaned = append(cleaned, directive)
		}
	}
	if len(cleaned) == 0 {
		return defaultRobotsDirectives
	}
	return strings.Join(cleaned, ", ")
}
