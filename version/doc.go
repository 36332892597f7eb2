// Package version reports build information for the xesmeta binaries.
//
// Version, commit, branch and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/xesmeta/version.Version=1.0.0 \
//	    -X github.com/kbukum/xesmeta/version.BuildTime=2026-01-02T15:04:05Z"
//
// Anything left unset is filled from the module's embedded VCS settings
// when the binary was built from a git checkout.
package version
