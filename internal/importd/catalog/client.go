// Package catalog implements the storefront product catalog adapter over a
// WooCommerce-compatible REST API. Vehicles are products; the VIN is the SKU.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vinsync-io/vinsync/internal/importd/core"
	"github.com/vinsync-io/vinsync/internal/importd/core/model"
	"github.com/vinsync-io/vinsync/pkg/options"
)

const listPageSize = 100

var _ core.Catalog = (*Client)(nil)

// Client writes vehicle entries into the store catalog.
type Client struct {
	baseURL string
	key     string
	secret  string
	http    *http.Client
}

// NewClient creates a catalog client from the catalog options.
func NewClient(opts *options.CatalogOptions) *Client {
	return &Client{
		baseURL: opts.BaseURL,
		key:     opts.ConsumerKey,
		secret:  opts.ConsumerSecret,
		http:    &http.Client{Timeout: opts.Timeout},
	}
}

// product is the subset of the store's product document this importer
// reads and writes.
type product struct {
	ID           int64              `json:"id,omitempty"`
	Name         string             `json:"name,omitempty"`
	SKU          string             `json:"sku,omitempty"`
	Status       string             `json:"status,omitempty"`
	RegularPrice string             `json:"regular_price,omitempty"`
	Permalink    string             `json:"permalink,omitempty"`
	Attributes   []productAttribute `json:"attributes,omitempty"`
	Images       []productImage     `json:"images,omitempty"`
	MetaData     []productMeta      `json:"meta_data,omitempty"`
}

type productAttribute struct {
	Name      string   `json:"name"`
	Slug      string   `json:"slug,omitempty"`
	Position  int      `json:"position"`
	Visible   bool     `json:"visible"`
	Variation bool     `json:"variation"`
	Options   []string `json:"options"`
}

type productImage struct {
	ID   int64  `json:"id,omitempty"`
	Src  string `json:"src,omitempty"`
	Name string `json:"name,omitempty"`
}

type productMeta struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// FindByVIN looks up a product by SKU. The store matches SKUs exactly.
func (c *Client) FindByVIN(ctx context.Context, vin string) (string, bool, error) {
	var matches []product
	endpoint := fmt.Sprintf("%s/products?sku=%s", c.baseURL, url.QueryEscape(vin))
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &matches); err != nil {
		return "", false, err
	}
	if len(matches) == 0 {
		return "", false, nil
	}
	return strconv.FormatInt(matches[0].ID, 10), true, nil
}

// CreateEntry creates a published zero-priced product for the entry.
func (c *Client) CreateEntry(ctx context.Context, entry *model.CatalogEntry) (string, error) {
	p := product{
		Name:         entry.Title,
		SKU:          entry.SKU,
		Status:       "publish",
		RegularPrice: "0",
		Attributes:   toProductAttributes(entry.Attributes),
	}
	if entry.Tracking != nil {
		p.MetaData = []productMeta{
			{Key: "_tracking_link_url", Value: entry.Tracking.URL},
			{Key: "_tracking_link_label", Value: entry.Tracking.Label},
		}
	}

	var created product
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/products", &p, &created); err != nil {
		return "", err
	}
	if created.ID == 0 {
		return "", fmt.Errorf("catalog returned no id for sku %s", entry.SKU)
	}
	return strconv.FormatInt(created.ID, 10), nil
}

// galleryMetaKey holds the gallery when a product has no featured image;
// the store promotes images[0] to featured, so the images array cannot be
// used without a primary.
const galleryMetaKey = "_product_image_gallery"

// AttachImages sets the featured image and the gallery of an entry. The
// store treats images[0] as featured, so the primary goes first. Without a
// primary the gallery goes into meta only, leaving the featured slot empty.
func (c *Client) AttachImages(ctx context.Context, id string, primary *model.MediaAsset, gallery []model.MediaAsset) error {
	if primary == nil && len(gallery) == 0 {
		return nil
	}

	var body product
	if primary == nil {
		body.MetaData = []productMeta{{Key: galleryMetaKey, Value: joinAssetURLs(gallery)}}
	} else {
		images := make([]productImage, 0, len(gallery)+1)
		images = append(images, productImage{Src: primary.URL, Name: primary.Title})
		for _, asset := range gallery {
			images = append(images, productImage{Src: asset.URL, Name: asset.Title})
		}
		body.Images = images
	}

	endpoint := fmt.Sprintf("%s/products/%s", c.baseURL, url.PathEscape(id))
	return c.do(ctx, http.MethodPut, endpoint, &body, nil)
}

func joinAssetURLs(assets []model.MediaAsset) string {
	urls := make([]string, 0, len(assets))
	for _, asset := range assets {
		urls = append(urls, asset.URL)
	}
	return strings.Join(urls, ",")
}

// ListEntries pages through every product and maps it back to a vehicle.
func (c *Client) ListEntries(ctx context.Context) ([]model.CatalogVehicle, error) {
	var vehicles []model.CatalogVehicle

	for page := 1; ; page++ {
		var products []product
		endpoint := fmt.Sprintf("%s/products?per_page=%d&page=%d", c.baseURL, listPageSize, page)
		if err := c.do(ctx, http.MethodGet, endpoint, nil, &products); err != nil {
			return nil, err
		}
		if len(products) == 0 {
			break
		}

		for _, p := range products {
			vehicles = append(vehicles, toCatalogVehicle(p))
		}

		if len(products) < listPageSize {
			break
		}
	}

	return vehicles, nil
}

func toProductAttributes(attrs []model.Attribute) []productAttribute {
	out := make([]productAttribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, productAttribute{
			Name:      a.Name,
			Slug:      a.Slug,
			Position:  a.Position,
			Visible:   a.Visible,
			Variation: a.IsVariation,
			Options:   []string{a.Value},
		})
	}
	return out
}

func toCatalogVehicle(p product) model.CatalogVehicle {
	v := model.CatalogVehicle{
		VIN:       p.SKU,
		Permalink: p.Permalink,
	}
	for _, a := range p.Attributes {
		if len(a.Options) == 0 {
			continue
		}
		switch a.Slug {
		case "make":
			v.Make = a.Options[0]
		case "model":
			v.Model = a.Options[0]
		case "year":
			v.Year = a.Options[0]
		case "color":
			v.Color = a.Options[0]
		}
	}
	return v
}

func (c *Client) do(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.key, c.secret)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("catalog %s %s: status %d: %s", method, endpoint, resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
