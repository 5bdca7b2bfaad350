package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hearthstone-scraper/internal/constants"
	"hearthstone-scraper/internal/domain"

	"github.com/valyala/fasthttp"
)

// Client fetches leaderboard pages from the Hearthstone community API.
type Client struct {
	endpoint string
	client   *fasthttp.Client
}

func NewClient() *Client {
	return &Client{
		endpoint: constants.LeaderboardEndpoint,
		client: &fasthttp.Client{
			MaxConnsPerHost:     4,
			ReadTimeout:         constants.PageFetchTimeout,
			WriteTimeout:        constants.PageFetchTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// FetchPage retrieves one leaderboard page. Any transport, HTTP status or
// decode failure is returned as an error; callers treat it as a missing page.
func (c *Client) FetchPage(ctx context.Context, region domain.Region, mode domain.GameMode, page int) (*LeaderboardResponse, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	url := fmt.Sprintf("%s?region=%s&leaderboardId=%s&page=%d", c.endpoint, region, mode, page)
	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(constants.UserAgent)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := c.client.DoDeadline(req, resp, time.Now().Add(constants.PageFetchTimeout)); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var result LeaderboardResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("malformed response body: %w", err)
	}
	return &result, nil
}

type LeaderboardResponse struct {
	SeasonID    int          `json:"seasonId"`
	Leaderboard *Leaderboard `json:"leaderboard"`
}

type Leaderboard struct {
	Pagination *Pagination `json:"pagination"`
	Rows       []Row       `json:"rows"`
}

type Pagination struct {
	TotalPages int `json:"totalPages"`
	TotalSize  int `json:"totalSize"`
}

// Row is one raw leaderboard entry. Missing attributes decode to zero values,
// which is exactly what gets stored.
type Row struct {
	AccountID string `json:"accountid"`
	Rank      int    `json:"rank"`
	Rating    int    `json:"rating"`
}
