package notes

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
)

// Loader reads configurations through an afs storage service.
type Loader struct {
	fs afs.Service
}

// NewLoader returns a Loader backed by the default afs service
// (local paths, file://, mem:// and the other registered schemes).
func NewLoader() *Loader {
	return &Loader{fs: afs.New()}
}

// Load downloads location and parses it in the given format.
func (l *Loader) Load(ctx context.Context, location string, format Format) (*Input, error) {
	data, err := l.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", location, err)
	}
	in, err := Parse(location, data, format)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("loaded %d worker definition(s) from %s", len(in.Workers), location)
	return in, nil
}
