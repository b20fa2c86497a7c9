package blogfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"gorm.io/gorm"

	"github.com/viddeveloper111/invoiceadmin-sub000/internal/models"
)

// Source is one remote blog API the aggregator pulls from. Name becomes the
// tenant the fetched posts are stored under.
type Source struct {
	Name string
	URL  string
}

// externalID tolerates the id being a number or an arbitrary string
// depending on the origin API.
type externalID string

func (e *externalID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	*e = externalID(s)
	return nil
}

// remotePost covers the field spellings the origin APIs disagree on; the
// normalization is a single generic fallback chain, not per-source tables.
type remotePost struct {
	ID          externalID `json:"id"`
	Title       string     `json:"title"`
	BlogTitle   string     `json:"blogTitle"`
	Content     string     `json:"content"`
	Description string     `json:"description"`
	Body        string     `json:"body"`
	Author      string     `json:"author"`
	AuthorName  string     `json:"authorName"`
	Image       string     `json:"image"`
	ImageURL    string     `json:"imageUrl"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Fetcher pulls posts from remote sources and upserts them per tenant.
type Fetcher struct {
	DB     *gorm.DB
	client *retryablehttp.Client
}

func NewFetcher(db *gorm.DB) *Fetcher {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.HTTPClient.Timeout = 15 * time.Second
	rc.Logger = nil
	return &Fetcher{DB: db, client: rc}
}

// FetchSource downloads one source's posts and upserts them under its tenant
// name. Returns the number of posts stored.
func (f *Fetcher) FetchSource(ctx context.Context, src Source) (int, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return 0, fmt.Errorf("build request for %s: %w", src.Name, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", src.Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch %s: unexpected status %d", src.Name, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", src.Name, err)
	}
	var posts []remotePost
	if err := json.Unmarshal(body, &posts); err != nil {
		// some sources wrap the array in {"blogs": [...]}
		var wrapped struct {
			Blogs []remotePost `json:"blogs"`
		}
		if werr := json.Unmarshal(body, &wrapped); werr != nil {
			return 0, fmt.Errorf("decode %s: %w", src.Name, err)
		}
		posts = wrapped.Blogs
	}

	stored := 0
	for _, rp := range posts {
		title := firstNonEmpty(rp.Title, rp.BlogTitle)
		if title == "" {
			continue
		}
		blog := models.Blog{
			Source:     src.Name,
			ExternalID: string(rp.ID),
			Title:      title,
			Content:    firstNonEmpty(rp.Content, rp.Description, rp.Body),
			Author:     firstNonEmpty(rp.Author, rp.AuthorName),
			ImageURL:   firstNonEmpty(rp.ImageURL, rp.Image),
		}
		if err := f.upsert(&blog); err != nil {
			return stored, err
		}
		stored++
	}
	return stored, nil
}

// FetchAll pulls every source independently; one failing source does not
// abort the others.
func (f *Fetcher) FetchAll(ctx context.Context, sources []Source) (int, []error) {
	total := 0
	var errs []error
	for _, src := range sources {
		n, err := f.FetchSource(ctx, src)
		total += n
		if err != nil {
			errs = append(errs, err)
		}
	}
	return total, errs
}

func (f *Fetcher) upsert(blog *models.Blog) error {
	if blog.ExternalID == "" {
		return f.DB.Create(blog).Error
	}
	var existing models.Blog
	err := f.DB.Where("source = ? AND external_id = ?", blog.Source, blog.ExternalID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return f.DB.Create(blog).Error
	}
	if err != nil {
		return err
	}
	blog.ID = existing.ID
	blog.CreatedAt = existing.CreatedAt
	return f.DB.Save(blog).Error
}
