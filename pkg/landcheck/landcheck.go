// Package landcheck asks a Nominatim-compatible reverse geocoder whether a
// coordinate is on land. The answer is advisory only.
package landcheck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"fruitfarm/entities"
)

const maxReplyBytes = 256 << 10

var ErrUnavailable = errors.New("land check unavailable")

type Result struct {
	OnLand  bool
	Place   string
	Country string
}

type Checker interface {
	Check(ctx context.Context, p entities.GeoPoint) (Result, error)
}

type Nominatim struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
}

func NewNominatim(baseURL string, timeout time.Duration) *Nominatim {
	return &Nominatim{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: "fruitfarm/1.0",
		Client:    &http.Client{Timeout: timeout},
	}
}

func (n *Nominatim) Check(ctx context.Context, p entities.GeoPoint) (Result, error) {
	q := url.Values{}
	q.Set("format", "xml")
	q.Set("lat", strconv.FormatFloat(p.Latitude, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(p.Longitude, 'f', 6, 64))
	q.Set("zoom", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.BaseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("User-Agent", n.UserAgent)

	resp, err := n.Client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return ParseReply(b)
}

// ParseReply reads a reverse-geocode XML reply. An <error> element means the
// point could not be placed on land (open sea).
func ParseReply(b []byte) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return Result{}, err
	}
	if doc.Find("reversegeocode").Length() == 0 {
		return Result{}, fmt.Errorf("%w: unexpected reply", ErrUnavailable)
	}
	if doc.Find("reversegeocode > error").Length() > 0 {
		return Result{OnLand: false}, nil
	}
	place := strings.TrimSpace(doc.Find("reversegeocode > result").First().Text())
	country := strings.TrimSpace(doc.Find("addressparts country").First().Text())
	if place == "" && country == "" {
		return Result{OnLand: false}, nil
	}
	return Result{OnLand: true, Place: place, Country: country}, nil
}
