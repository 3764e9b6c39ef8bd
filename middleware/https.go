package middleware

import (
	"regexp"
	"strings"

	"stagestock/config"

	"github.com/gofiber/fiber/v2"
)

// lanRegex matches loopback and RFC1918 client addresses. Requests from
// these may stay on plain HTTP, everything else gets redirected.
var lanRegex = regexp.MustCompile(`^(127\.0\.0\.1|10\.\d+\.\d+\.\d+|192\.168\.\d+\.\d+|172\.(1[6-9]|2[0-9]|3[0-1])\.\d+\.\d+)$`)

func IsLANAddress(ip string) bool {
	return lanRegex.MatchString(ip)
}

// EnforceHTTPS redirects plaintext requests from non-LAN clients to the
// HTTPS equivalent. Before setup is complete everything is allowed, so
// the wizard can be reached over HTTP.
func EnforceHTTPS(ctx *fiber.Ctx) error {
	if !config.IsConfigured() {
		return ctx.Next()
	}

	forwardedProto := strings.ToLower(ctx.Get("X-Forwarded-Proto"))
	isSecure := ctx.Secure() || forwardedProto == "https"

	if !isSecure && !IsLANAddress(ctx.IP()) {
		url := "https://" + ctx.Hostname() + ctx.OriginalURL()
		return ctx.Redirect(url, fiber.StatusMovedPermanently)
	}

	return ctx.Next()
}
