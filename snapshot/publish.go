package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/pointmerge/blobstore"
	"github.com/hupe1980/pointmerge/internal/resource"
	"github.com/hupe1980/pointmerge/locator"
)

// ErrNoCurrent is returned by LoadCurrent when nothing has been published.
var ErrNoCurrent = errors.New("snapshot: no current snapshot")

// Publish encodes l into the blob name and then points CURRENT at it.
func Publish(ctx context.Context, store blobstore.Store, name string, l *locator.Locator, opts ...Option) error {
	if name == "" || name == blobstore.CurrentName {
		return fmt.Errorf("snapshot: invalid blob name %q", name)
	}
	o := applyOptions(opts)

	var buf bytes.Buffer
	if err := Encode(resource.NewRateLimitedWriter(ctx, &buf, o.rc), l, opts...); err != nil {
		return err
	}
	if err := store.Put(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("snapshot: put %s: %w", name, err)
	}
	if err := store.Put(ctx, blobstore.CurrentName, []byte(name)); err != nil {
		return fmt.Errorf("snapshot: update %s: %w", blobstore.CurrentName, err)
	}
	return nil
}

// Current returns the name CURRENT points at.
func Current(ctx context.Context, store blobstore.Store) (string, error) {
	data, err := blobstore.ReadAll(ctx, store, blobstore.CurrentName)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return "", ErrNoCurrent
		}
		return "", err
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", ErrNoCurrent
	}
	return name, nil
}

// Load decodes the snapshot stored in the blob name.
func Load(ctx context.Context, store blobstore.Store, name string, opts ...Option) (*locator.Locator, error) {
	o := applyOptions(opts)
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", name, err)
	}
	return Decode(resource.NewRateLimitedReader(ctx, bytes.NewReader(data), o.rc))
}

// LoadCurrent decodes the snapshot CURRENT points at.
func LoadCurrent(ctx context.Context, store blobstore.Store, opts ...Option) (*locator.Locator, error) {
	name, err := Current(ctx, store)
	if err != nil {
		return nil, err
	}
	return Load(ctx, store, name, opts...)
}
