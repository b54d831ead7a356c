package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-console-core/listing"
)

// FetchPage adapts a collection endpoint into a listing.FetchFunc. The
// endpoint takes page, page_size, search, and arbitrary filter pairs as
// query parameters and responds with the standard page envelope
// {items, total_count, page, page_size, total_pages}.
func FetchPage[T any](c *Client, path string) listing.FetchFunc[T] {
	return func(ctx context.Context, query listing.QueryState) (listing.Page[T], *listing.ErrorInfo) {
		values := url.Values{}
		values.Set("page", strconv.Itoa(query.Page))
		values.Set("page_size", strconv.Itoa(query.PageSize))
		if query.Search != "" {
			values.Set("search", query.Search)
		}
		for key, value := range query.Filters {
			values.Set(key, value)
		}

		resp, errInfo := c.do(ctx, http.MethodGet, path+"?"+values.Encode(), nil)
		if errInfo != nil {
			return listing.Page[T]{}, errInfo
		}
		defer resp.Body.Close()

		var page listing.Page[T]
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			return listing.Page[T]{}, &listing.ErrorInfo{
				Message: "decoding page envelope: " + err.Error(),
				Kind:    listing.KindTransport,
			}
		}
		return page, nil
	}
}
