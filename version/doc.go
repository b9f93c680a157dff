// Package version reports build version information for the subsl command.
//
// Version and commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/subsl/version.Version=1.0.0" ./cmd/subsl
//
// When they are not set, the commit is taken from the Go build info.
package version
