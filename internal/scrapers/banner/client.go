package banner

import (
	"context"
	"coursegraph/internal/components/assert"
	"coursegraph/internal/components/telemetry"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	report_client_fetch = "client.fetch"
)

// Request is a single page request against the registration system.
type Request struct {
	Method   Method
	Endpoint string
	Params   Params
}

// Fetcher retrieves the html of a page.
//
// note: fault injection point
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (string, error)
}

type ClientOptions struct {
	BaseUrl string
	// Timeout bounds each request, defaults to 30 seconds.
	Timeout time.Duration
	// RequestsPerSecond defaults to 2.
	RequestsPerSecond float64
	UserAgent         string
	// MessageOutput receives full dumps of http exchanges if non-nil.
	MessageOutput telemetry.MessageOutput
	// DisableCloudflareBypass leaves the default http transport in place.
	DisableCloudflareBypass bool
}

// Client is the Fetcher that talks to a banner instance over http.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	tel telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel, "telemetry")
	assert.NotEmptyStr(opts.BaseUrl, "base url")

	tel = telemetry.NewScopedAPI("banner_client", tel)

	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	}
	assert.Positive(opts.Timeout, "timeout")
	assert.Positive(opts.RequestsPerSecond, "requests per second")

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	if !opts.DisableCloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	httpClient.SetTimeout(opts.Timeout)

	// max burst >= 1 just means that no requests will be dropped
	rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel, opts.MessageOutput)

	return &Client{
		BaseUrl: baseUrl,
		Http:    httpClient,
		tel:     tel,
	}, nil
}

func (c *Client) Fetch(ctx context.Context, req Request) (string, error) {
	networkError := func(status int, err error) error {
		return &NetworkError{
			Method:   req.Method.String(),
			Endpoint: req.Endpoint,
			Status:   status,
			Err:      err,
		}
	}

	r := c.Http.R().SetContext(ctx)

	var res *resty.Response
	var err error
	switch req.Method {
	case METHOD_GET:
		if len(req.Params) > 0 {
			r.SetQueryString(req.Params.Encode())
		}
		res, err = r.Get(req.Endpoint)
	case METHOD_POST:
		res, err = r.
			SetHeader("content-type", "application/x-www-form-urlencoded").
			SetBody(req.Params.Encode()).
			Post(req.Endpoint)
	default:
		return "", fmt.Errorf("unsupported method %d", req.Method)
	}
	// transport failures are already reported by the resty instrumentation
	if err != nil {
		return "", networkError(0, err)
	}
	if !res.IsSuccess() {
		err = errors.New(res.Status())
		c.tel.ReportBroken(report_client_fetch, fmt.Errorf("response: %w", err), req.Endpoint)
		return "", networkError(res.StatusCode(), err)
	}

	return res.String(), nil
}
