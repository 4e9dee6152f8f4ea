// Package version reports build information for tripclient binaries and
// derives the User-Agent sent to the backend.
//
// Values are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/tripclient/version.Version=1.2.0" ./cmd/tripctl
package version
