package brevo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type Contact struct {
	ID               int64          `json:"id,omitempty"`
	Email            string         `json:"email"`
	EmailBlacklisted bool           `json:"emailBlacklisted,omitempty"`
	ListIDs          []int64        `json:"listIds,omitempty"`
	Attributes       map[string]any `json:"attributes,omitempty"`
}

type createContactRequest struct {
	Email         string         `json:"email"`
	Attributes    map[string]any `json:"attributes,omitempty"`
	ListIDs       []int64        `json:"listIds,omitempty"`
	UpdateEnabled bool           `json:"updateEnabled"`
}

type updateContactRequest struct {
	Attributes    map[string]any `json:"attributes,omitempty"`
	ListIDs       []int64        `json:"listIds,omitempty"`
	UnlinkListIDs []int64        `json:"unlinkListIds,omitempty"`
}

type ContactList struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	TotalSubscribers  int64  `json:"totalSubscribers"`
	TotalBlacklisted  int64  `json:"totalBlacklisted"`
	UniqueSubscribers int64  `json:"uniqueSubscribers"`
}

type listsResponse struct {
	Lists []ContactList `json:"lists"`
	Count int64         `json:"count"`
}

type contactsResponse struct {
	Contacts []Contact `json:"contacts"`
	Count    int64     `json:"count"`
}

// Contacts manages list membership of newsletter subscribers.
type Contacts interface {
	UpsertContact(ctx context.Context, email string, attributes map[string]any, listID int64) error
	RemoveFromList(ctx context.Context, email string, listID int64) error
}

// UpsertContact creates the contact or, when it exists, links it to listID.
func (c *Client) UpsertContact(ctx context.Context, email string, attributes map[string]any, listID int64) error {
	req := createContactRequest{Email: email, Attributes: attributes, UpdateEnabled: true}
	if listID > 0 {
		req.ListIDs = []int64{listID}
	}
	return c.do(ctx, http.MethodPost, "/contacts", req, nil)
}

func (c *Client) UpdateContact(ctx context.Context, email string, attributes map[string]any, listIDs []int64) error {
	req := updateContactRequest{Attributes: attributes, ListIDs: listIDs}
	return c.do(ctx, http.MethodPut, "/contacts/"+url.PathEscape(email), req, nil)
}

// RemoveFromList unlinks email from listID; an unknown contact is not an error.
func (c *Client) RemoveFromList(ctx context.Context, email string, listID int64) error {
	if listID <= 0 {
		return nil
	}
	body := map[string][]string{"emails": {email}}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/contacts/lists/%d/contacts/remove", listID), body, nil)
	if IsStatus(err, http.StatusNotFound) {
		return nil
	}
	return err
}

func (c *Client) ListLists(ctx context.Context) ([]ContactList, error) {
	var res listsResponse
	if err := c.do(ctx, http.MethodGet, "/contacts/lists?limit=50&offset=0", nil, &res); err != nil {
		return nil, err
	}
	return res.Lists, nil
}

func (c *Client) ListContacts(ctx context.Context, listID int64, limit, offset int) ([]Contact, int64, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	q := url.Values{}
	q.Set("limit", fmt.Sprint(limit))
	q.Set("offset", fmt.Sprint(offset))
	path := "/contacts?" + q.Encode()
	if listID > 0 {
		path = fmt.Sprintf("/contacts/lists/%d/contacts?%s", listID, q.Encode())
	}
	var res contactsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, 0, err
	}
	return res.Contacts, res.Count, nil
}

// DisabledContacts drops list operations when no API key is configured.
type DisabledContacts struct{}

func (DisabledContacts) UpsertContact(context.Context, string, map[string]any, int64) error {
	return nil
}

func (DisabledContacts) RemoveFromList(context.Context, string, int64) error { return nil }
