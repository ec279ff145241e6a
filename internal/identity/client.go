package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrServiceFailure = errors.New("identity service failure")
)

// API is the identity-resolution capability the rest of the service depends
// on; Client is the HTTP implementation against the auth service.
type API interface {
	MemberByID(ctx context.Context, id string) (Member, error)
	MemberByName(ctx context.Context, name string) (Member, error)
	MembersByRole(ctx context.Context, role, departmentSlug string, limit int) ([]Member, error)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type memberPayload struct {
	UserID   string `json:"userId"`
	Metadata struct {
		KpiRef []Ref `json:"kpiRef"`
	} `json:"metadata"`
	User struct {
		Name string `json:"name"`
	} `json:"user"`
}

func (p memberPayload) toMember() Member {
	return Member{UserID: p.UserID, Name: p.User.Name, Refs: p.Metadata.KpiRef}
}

func (c *Client) MemberByID(ctx context.Context, id string) (Member, error) {
	return c.fetchMember(ctx, c.baseURL+"/members/"+url.PathEscape(id))
}

func (c *Client) MemberByName(ctx context.Context, name string) (Member, error) {
	return c.fetchMember(ctx, c.baseURL+"/members/name/"+url.PathEscape(name))
}

func (c *Client) fetchMember(ctx context.Context, endpoint string) (Member, error) {
	var payload struct {
		Success bool          `json:"success"`
		Member  memberPayload `json:"member"`
	}
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return Member{}, err
	}
	if !payload.Success || payload.Member.UserID == "" {
		return Member{}, ErrMemberNotFound
	}
	return payload.Member.toMember(), nil
}

func (c *Client) MembersByRole(ctx context.Context, role, departmentSlug string, limit int) ([]Member, error) {
	query := url.Values{}
	query.Set("role", role)
	query.Set("departmentSlug", departmentSlug)
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var payload struct {
		Docs []memberPayload `json:"docs"`
	}
	if err := c.get(ctx, c.baseURL+"/members?"+query.Encode(), &payload); err != nil {
		return nil, err
	}

	members := make([]Member, 0, len(payload.Docs))
	for _, doc := range payload.Docs {
		members = append(members, doc.toMember())
	}
	return members, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceFailure, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrMemberNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrServiceFailure, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrServiceFailure, err)
	}
	return nil
}
