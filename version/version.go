// Package version holds the build version, overridden at link time.
package version

// Version is the current release.
var Version = "dev"
