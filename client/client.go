// Package client connects to the game server's hub and converts its messages
// into events.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"codeberg.org/tslocum/pips/model"
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// DefaultReconnectDelay is the time waited before reconnecting.
const DefaultReconnectDelay = 3 * time.Second

// pingInterval is how often a keep-alive is sent to the server.
const pingInterval = 15 * time.Second

// readLimit is the largest frame accepted from the server.
const readLimit = 1 << 20

var (
	// ErrClosed is returned when sending after the client stopped.
	ErrClosed = errors.New("client closed")

	// ErrBusy is returned when the outgoing queue is full.
	ErrBusy = errors.New("outgoing queue full")
)

// Client is a hub client. Events received from the server are sent to
// Events. Framed hub messages written to Out are sent to the server.
type Client struct {
	Address        string
	Negotiate      bool
	ReconnectDelay time.Duration

	// Debug is the debug level. It may be changed while connected.
	Debug atomic.Int32

	ID     string
	Events chan interface{}
	Out    chan []byte

	HTTPClient *http.Client

	logger      *log.Logger
	invocations atomic.Int64
	done        chan struct{}
	doneOnce    sync.Once
}

// NewClient returns a client of the hub at address.
func NewClient(address string) *Client {
	const bufferSize = 10
	id := uuid.NewString()
	return &Client{
		Address:        address,
		ReconnectDelay: DefaultReconnectDelay,
		ID:             id,
		Events:         make(chan interface{}, bufferSize),
		Out:            make(chan []byte, bufferSize),
		logger:         log.New(os.Stderr, "["+id[:8]+"] ", log.LstdFlags),
		done:           make(chan struct{}),
	}
}

// Run connects to the server and reconnects whenever the connection is lost,
// until ctx is cancelled. Events is not closed.
func (c *Client) Run(ctx context.Context) error {
	defer c.doneOnce.Do(func() { close(c.done) })

	for {
		err := c.connect(ctx)
		if ctx.Err() != nil {
			c.event(context.Background(), &EventDisconnected{})
			return ctx.Err()
		}
		c.logger.Printf("*** Connection lost: %s", err)
		c.event(ctx, &EventReconnecting{Err: err})

		t := time.NewTimer(c.ReconnectDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			c.event(context.Background(), &EventDisconnected{})
			return ctx.Err()
		case <-t.C:
		}
	}
}

// Roll asks the server to roll the dice.
func (c *Client) Roll() error {
	return c.invoke("RollDice")
}

// Move sends a move to the server.
func (c *Client) Move(m model.MoveCommand) error {
	d, err := m.Wire()
	if err != nil {
		return err
	}
	return c.invoke("MakeMove", d)
}

func (c *Client) invoke(target string, args ...interface{}) error {
	id := strconv.FormatInt(c.invocations.Add(1), 10)
	buf, err := invocation(id, target, args...)
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.Out <- buf:
		return nil
	default:
		return fmt.Errorf("invoke %s: %w", target, ErrBusy)
	}
}

// event delivers ev unless ctx is cancelled first.
func (c *Client) event(ctx context.Context, ev interface{}) {
	if ctx.Err() != nil {
		// Deliver the final event without blocking.
		select {
		case c.Events <- ev:
		default:
		}
		return
	}
	select {
	case c.Events <- ev:
	case <-ctx.Done():
	}
}

func (c *Client) connect(ctx context.Context) error {
	address := c.Address
	if c.Negotiate {
		token, err := c.negotiate(ctx)
		if err != nil {
			return err
		}
		address, err = withQuery(address, "id", token)
		if err != nil {
			return err
		}
	}

	conn, _, err := websocket.Dial(ctx, address, &websocket.DialOptions{
		HTTPClient: c.HTTPClient,
		HTTPHeader: http.Header{"X-Client-Id": []string{c.ID}},
	})
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.Address, err)
	}
	defer conn.CloseNow()
	conn.SetReadLimit(readLimit)

	err = c.handshake(ctx, conn)
	if err != nil {
		return err
	}
	c.logger.Printf("*** Connected to %s", c.Address)
	c.event(ctx, &EventConnected{})

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	writeErr := make(chan error, 1)
	go func() {
		writeErr <- c.handleWrite(connCtx, conn)
		cancel()
	}()

	err = c.handleRead(connCtx, conn)
	cancel()
	if werr := <-writeErr; werr != nil && !errors.Is(werr, context.Canceled) {
		err = werr
	}
	if ctx.Err() != nil {
		conn.Close(websocket.StatusNormalClosure, "")
	}
	return err
}

func (c *Client) handshake(ctx context.Context, conn *websocket.Conn) error {
	err := conn.Write(ctx, websocket.MessageText, handshakeRequest)
	if err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	_, data, err := conn.Read(ctx)
	if err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	records := splitMessages(data)
	if len(records) == 0 {
		return fmt.Errorf("handshake: empty response")
	}
	var response handshakeResponse
	err = json.Unmarshal(records[0], &response)
	if err != nil {
		return fmt.Errorf("handshake: %w", err)
	} else if response.Error != "" {
		return fmt.Errorf("handshake: %s", response.Error)
	}
	for _, record := range records[1:] {
		c.handleMessage(ctx, record)
	}
	return nil
}

func (c *Client) negotiate(ctx context.Context) (string, error) {
	u, err := url.Parse(c.Address)
	if err != nil {
		return "", fmt.Errorf("negotiate: %w", err)
	}
	switch u.Scheme {
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/negotiate"
	q := u.Query()
	q.Set("negotiateVersion", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("negotiate: %w", err)
	}
	req.Header.Set("X-Client-Id", c.ID)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("negotiate: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("negotiate: unexpected status %s", resp.Status)
	}

	var response negotiateResponse
	err = json.NewDecoder(resp.Body).Decode(&response)
	if err != nil {
		return "", fmt.Errorf("negotiate: %w", err)
	} else if response.Error != "" {
		return "", fmt.Errorf("negotiate: %s", response.Error)
	}
	token := response.ConnectionToken
	if token == "" {
		token = response.ConnectionID
	}
	return token, nil
}

func (c *Client) handleWrite(ctx context.Context, conn *websocket.Conn) error {
	ping, err := encodeMessage(&message{Type: typePing})
	if err != nil {
		return err
	}
	t := time.NewTicker(pingInterval)
	defer t.Stop()

	for {
		var buf []byte
		var keepAlive bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			buf, keepAlive = ping, true
		case buf = <-c.Out:
		}

		err := conn.Write(ctx, websocket.MessageText, buf)
		if err != nil {
			return fmt.Errorf("write: %w", err)
		}
		if debug := c.Debug.Load(); debug > 0 && !keepAlive || debug > 1 {
			c.logger.Printf("-> %s", buf[:len(buf)-1])
		}
	}
}

func (c *Client) handleRead(ctx context.Context, conn *websocket.Conn) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		for _, record := range splitMessages(data) {
			err = c.handleMessage(ctx, record)
			if err != nil {
				return err
			}
		}
	}
}

// handleMessage handles a single hub message. Only a close message is
// returned as an error. Malformed messages are logged and skipped.
func (c *Client) handleMessage(ctx context.Context, record []byte) error {
	var m message
	err := json.Unmarshal(record, &m)
	if err != nil {
		c.logger.Printf("*** Warning: failed to decode message: %s", err)
		return nil
	}
	if debug := c.Debug.Load(); debug > 0 && m.Type != typePing || debug > 1 {
		c.logger.Printf("<- %s", record)
	}

	switch m.Type {
	case typeInvocation:
		ev, err := decodeEvent(m.Target, m.Arguments)
		if err != nil {
			c.logger.Printf("*** Warning: %s", err)
			return nil
		}
		c.event(ctx, ev)
	case typeCompletion:
		if m.Error != "" {
			c.event(ctx, &EventError{Message: m.Error})
		}
	case typePing:
	case typeClose:
		if m.Error != "" {
			return fmt.Errorf("closed by server: %s", m.Error)
		}
		return errors.New("closed by server")
	}
	return nil
}

func withQuery(address string, key string, value string) (string, error) {
	u, err := url.Parse(address)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
