package enrich

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultSearchURL = "https://live.icecat.biz/rest/search/v1/"
	defaultDetailURL = "https://data.icecat.biz/api/"
)

// Client talks to the Icecat catalog: a fuzzy title search followed by a
// product-detail fetch for the EAN.
type Client struct {
	Username string
	Password string
	Lang     string

	// SearchURL and DetailURL default to the live endpoints; tests point
	// them at a local server.
	SearchURL string
	DetailURL string

	HTTPClient *http.Client
}

func NewClient(username, password, lang string) *Client {
	if lang == "" {
		lang = "en"
	}
	return &Client{
		Username:   username,
		Password:   password,
		Lang:       lang,
		SearchURL:  defaultSearchURL,
		DetailURL:  defaultDetailURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchProductID runs a fuzzy search for the title and returns the id of
// the first ranked result, or "" when nothing matched.
func (c *Client) SearchProductID(title string) (string, error) {
	params := url.Values{}
	params.Set("shopname", c.Username)
	params.Set("lang", c.Lang)
	params.Set("q", title)

	var result struct {
		Data struct {
			Products []struct {
				ID json.Number `json:"id"`
			} `json:"products"`
		} `json:"data"`
	}
	if err := c.getJSON(c.SearchURL, params, &result); err != nil {
		return "", fmt.Errorf("icecat search %q: %w", title, err)
	}

	if len(result.Data.Products) == 0 {
		return "", nil
	}
	return result.Data.Products[0].ID.String(), nil
}

// FetchEAN fetches the product details and returns its EAN, or "" when
// the catalog has none.
func (c *Client) FetchEAN(productID string) (string, error) {
	params := url.Values{}
	params.Set("UserName", c.Username)
	params.Set("Language", c.Lang)
	params.Set("ProductId", productID)

	var result struct {
		GeneralInfo struct {
			EAN any `json:"EAN"`
		} `json:"GeneralInfo"`
	}
	if err := c.getJSON(c.DetailURL, params, &result); err != nil {
		return "", fmt.Errorf("icecat detail %q: %w", productID, err)
	}

	return eanString(result.GeneralInfo.EAN), nil
}

func (c *Client) getJSON(endpoint string, params url.Values, out any) error {
	req, err := http.NewRequest(http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.Username, c.Password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// eanString renders the EAN field, which the API serves as a string, a
// number or a list of codes.
func eanString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		if len(t) == 0 {
			return ""
		}
		return eanString(t[0])
	default:
		return ""
	}
}
