package workflowtest

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/target/hr-console/internal/testutil"
)

// Browser drives the console like a user agent: it keeps cookies, echoes the
// CSRF cookie back as a form field and does not follow redirects.
type Browser struct {
	t       testutil.TestingTB
	baseURL string
	client  *http.Client
}

// Page is a fully read response.
type Page struct {
	Status   int
	Location string
	Header   http.Header
	Body     string
}

// NewBrowser returns a Browser with an empty cookie jar.
func NewBrowser(t testutil.TestingTB, baseURL string) *Browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &Browser{
		t:       t,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Get fetches path.
func (b *Browser) Get(path string) Page {
	b.t.Helper()
	return b.do(http.MethodGet, path, nil)
}

// PostForm submits form values to path, adding the CSRF token from the cookie jar.
func (b *Browser) PostForm(path string, form url.Values) Page {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if token := b.Cookie("csrf_token"); token != "" && form.Get("csrf_token") == "" {
		form.Set("csrf_token", token)
	}
	return b.do(http.MethodPost, path, form)
}

// Cookie returns the value of the named cookie for the console origin.
func (b *Browser) Cookie(name string) string {
	u, err := url.Parse(b.baseURL)
	if err != nil {
		return ""
	}
	for _, c := range b.client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func (b *Browser) do(method, path string, form url.Values) Page {
	b.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		b.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Accept", "text/html")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		b.t.Fatalf("do request: %v", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			b.t.Logf("warning: failed to close response body: %v", cerr)
		}
	}()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		b.t.Fatalf("read body: %v", err)
	}
	return Page{
		Status:   resp.StatusCode,
		Location: resp.Header.Get("Location"),
		Header:   resp.Header,
		Body:     string(raw),
	}
}
