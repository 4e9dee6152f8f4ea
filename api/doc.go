// Package api holds helpers shared by the backend API modules in its
// subpackages (auth, preferences, routes). Each module wraps one backend
// contract on top of a shared *apiclient.Client.
package api
