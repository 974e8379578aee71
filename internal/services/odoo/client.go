package odoo

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kolo/xmlrpc"
)

// API is the subset of Odoo's external API used by the exporter
type API interface {
	Authenticate() (int, error)
	Search(model string, domain []interface{}, limit, offset int) ([]int64, error)
	Create(model string, values map[string]interface{}) (int64, error)
	Write(model string, ids []int64, values map[string]interface{}) error
}

// Client represents an Odoo XML-RPC client
type Client struct {
	URL       string
	Database  string
	Username  string
	Password  string
	Uid       int
	CommonURL string
	ObjectURL string
	transport http.RoundTripper
}

var _ API = (*Client)(nil)

// NewClient creates a new Odoo client
func NewClient(url, db, username, password string) *Client {
	return &Client{
		URL:       url,
		Database:  db,
		Username:  username,
		Password:  password,
		CommonURL: fmt.Sprintf("%s/xmlrpc/2/common", url),
		ObjectURL: fmt.Sprintf("%s/xmlrpc/2/object", url),
		transport: &http.Transport{ResponseHeaderTimeout: 30 * time.Second},
	}
}

// Authenticate authenticates with Odoo and returns the user ID
func (c *Client) Authenticate() (int, error) {
	client, err := xmlrpc.NewClient(c.CommonURL, c.transport)
	if err != nil {
		return 0, fmt.Errorf("failed to create XML-RPC client: %w", err)
	}
	defer client.Close()

	args := []interface{}{c.Database, c.Username, c.Password, make([]interface{}, 0)}
	var uid int
	if err := client.Call("authenticate", args, &uid); err != nil {
		return 0, fmt.Errorf("authentication failed: %w", err)
	}
	if uid == 0 {
		return 0, fmt.Errorf("authentication failed: invalid credentials for %s", c.Username)
	}

	c.Uid = uid
	return uid, nil
}

// executeKw runs model.method through the object endpoint
func (c *Client) executeKw(model, method string, params []interface{}, kwargs map[string]interface{}, result interface{}) error {
	client, err := xmlrpc.NewClient(c.ObjectURL, c.transport)
	if err != nil {
		return fmt.Errorf("failed to create XML-RPC client: %w", err)
	}
	defer client.Close()

	args := []interface{}{c.Database, c.Uid, c.Password, model, method, params}
	if kwargs != nil {
		args = append(args, kwargs)
	}
	if err := client.Call("execute_kw", args, result); err != nil {
		return fmt.Errorf("failed to execute %s.%s: %w", model, method, err)
	}
	return nil
}

// Search performs a generic search operation and returns IDs
func (c *Client) Search(model string, domain []interface{}, limit, offset int) ([]int64, error) {
	var ids []int64
	kwargs := map[string]interface{}{"limit": limit, "offset": offset}
	if err := c.executeKw(model, "search", []interface{}{domain}, kwargs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Create creates a new record
func (c *Client) Create(model string, values map[string]interface{}) (int64, error) {
	var id int64
	if err := c.executeKw(model, "create", []interface{}{values}, nil, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// Write updates existing record(s)
func (c *Client) Write(model string, ids []int64, values map[string]interface{}) error {
	var success bool
	if err := c.executeKw(model, "write", []interface{}{ids, values}, nil, &success); err != nil {
		return err
	}
	if !success {
		return fmt.Errorf("write on %s returned false", model)
	}
	return nil
}
