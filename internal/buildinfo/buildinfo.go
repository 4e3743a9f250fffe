// Package buildinfo holds build-time metadata injected via -ldflags.
package buildinfo

// Version is the semantic version or tag for this build.
// Inject via: -X github.com/garyellow/whatsapp-course-bot/internal/buildinfo.Version=...
var Version = ""

// Commit is the git commit SHA for this build.
// Inject via: -X github.com/garyellow/whatsapp-course-bot/internal/buildinfo.Commit=...
var Commit = ""

// BuildDate is the RFC3339 build timestamp.
// Inject via: -X github.com/garyellow/whatsapp-course-bot/internal/buildinfo.BuildDate=...
var BuildDate = ""

const name = "whatsapp-course-bot"

// VersionOrDev returns Version, or "dev" for local builds.
func VersionOrDev() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

// Release is the identifier reported to Sentry, e.g. "whatsapp-course-bot@v1.2.0".
func Release() string {
	return name + "@" + VersionOrDev()
}

// UserAgent is sent on outbound Cloud API requests.
func UserAgent() string {
	return name + "/" + VersionOrDev()
}
