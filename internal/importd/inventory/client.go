// Package inventory implements the client for the third-party vehicle
// inventory API. The upstream is flaky and loosely typed, so the fetchers
// swallow transport and decode failures and return empty results; the
// engine decides what an empty page means.
package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vinsync-io/vinsync/internal/importd/core"
	"github.com/vinsync-io/vinsync/internal/importd/core/model"
	"github.com/vinsync-io/vinsync/pkg/log"
	"github.com/vinsync-io/vinsync/pkg/options"
)

// nominalPageSize is the page size the upstream serves regardless of any
// parameter sent. The search heuristic for last-page detection rests on it.
const nominalPageSize = 10

var _ core.InventoryAPI = (*Client)(nil)

// Client talks to the upstream inventory API with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates an inventory client from the upstream options.
func NewClient(opts *options.UpstreamOptions) *Client {
	return &Client{
		baseURL: opts.BaseURL,
		token:   opts.Token,
		http:    &http.Client{Timeout: opts.Timeout},
	}
}

type vehiclePage struct {
	Data []model.VehicleRecord `json:"data"`
}

type imageList struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

// FetchPage returns one page of vehicles, nil on any failure.
func (c *Client) FetchPage(ctx context.Context, page int) []model.VehicleRecord {
	var body vehiclePage
	url := fmt.Sprintf("%s/vehicles?page=%d", c.baseURL, page)
	if err := c.getJSON(ctx, url, &body); err != nil {
		log.Warn("inventory page fetch failed", "page", page, "err", err)
		return nil
	}
	return body.Data
}

// FetchImageURLs returns the ordered image URLs of a vehicle, nil on failure.
func (c *Client) FetchImageURLs(ctx context.Context, vehicleID int64) []string {
	var body imageList
	url := fmt.Sprintf("%s/vehicles/images/%d", c.baseURL, vehicleID)
	if err := c.getJSON(ctx, url, &body); err != nil {
		log.Warn("inventory image list fetch failed", "vehicle", vehicleID, "err", err)
		return nil
	}
	urls := make([]string, 0, len(body.Images))
	for _, img := range body.Images {
		if img.URL != "" {
			urls = append(urls, img.URL)
		}
	}
	return urls
}

// Download fetches a single image. Image URLs point at public object
// storage, not the API host, so no bearer token is attached.
func (c *Client) Download(ctx context.Context, url string) (io.ReadCloser, string, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", 0, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", 0, fmt.Errorf("download %s: unexpected status %d", url, resp.StatusCode)
	}

	return resp.Body, resp.Header.Get("Content-Type"), resp.ContentLength, nil
}

// NominalPageSize reports the upstream's fixed page size.
func (c *Client) NominalPageSize() int {
	return nominalPageSize
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
