package adapter

import "context"

// InstallerFetcher pulls the gated installer from its upstream URL.
// Nothing is cached between calls; every download is fetched fresh.
type InstallerFetcher interface {
	// Fetch returns the suggested file name and the payload bytes.
	Fetch(ctx context.Context, url string) (string, []byte, error)
}
