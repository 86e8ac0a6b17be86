package service

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/vinsync-io/vinsync/internal/importd/core/model"
	"github.com/vinsync-io/vinsync/internal/pkg/metrics"
	"github.com/vinsync-io/vinsync/pkg/log"
)

// importImages resolves a vehicle's image URLs into media assets. The image
// at position 0 of the original URL order is the only primary candidate:
// when it fails, the entry has no primary image and later images are not
// promoted. Failed images are dropped without aborting the rest.
func (s *Service) importImages(ctx context.Context, vehicleID int64) (*model.MediaAsset, []model.MediaAsset) {
	urls := s.inventory.FetchImageURLs(ctx, vehicleID)

	var primary *model.MediaAsset
	var gallery []model.MediaAsset

	for i, raw := range urls {
		asset := s.resolveImage(ctx, raw)
		if asset == nil {
			continue
		}
		if i == 0 {
			primary = asset
		} else {
			gallery = append(gallery, *asset)
		}
	}

	return primary, gallery
}

// resolveImage returns the media asset for one URL, reusing an already
// stored asset with the same title instead of downloading again.
func (s *Service) resolveImage(ctx context.Context, rawURL string) *model.MediaAsset {
	filename := filenameFromURL(rawURL)
	title := strings.TrimSuffix(filename, path.Ext(filename))
	if title == "" || title == "." || title == "/" {
		return nil
	}

	if asset, err := s.media.FindByTitle(ctx, title); err != nil {
		log.Warn("media lookup failed", "title", title, "err", err)
	} else if asset != nil {
		s.sink.Append(fmt.Sprintf("Duplicate image skipped: %s", filename))
		return asset
	}

	body, contentType, size, err := s.inventory.Download(ctx, rawURL)
	if err != nil {
		log.Warn("image download failed", "url", rawURL, "err", err)
		return nil
	}
	defer body.Close()

	asset, err := s.media.Put(ctx, title, filename, contentType, body, size)
	if err != nil {
		log.Warn("image store failed", "title", title, "err", err)
		return nil
	}

	metrics.ImagesStoredTotal.Inc()
	return asset
}

func filenameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return path.Base(raw)
	}
	return path.Base(u.Path)
}
