package telephony

import (
	"context"
	"net"
	"strconv"
	"time"

	"click2dial/internal/dialerr"
	"click2dial/pkg/logger"
)

const (
	defaultConnectTimeout = 5 * time.Second
	defaultWriteTimeout   = 5 * time.Second
)

// Resolver resolves a switch host to candidate addresses (IPv4 and IPv6).
// *net.Resolver satisfies it.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// ContextDialer opens TCP connections. *net.Dialer satisfies it.
type ContextDialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

type ClientOptions struct {
	// ConnectTimeout bounds each connect attempt. Defaults to 5s.
	ConnectTimeout time.Duration
	// WriteTimeout bounds the whole command burst. Defaults to 5s.
	WriteTimeout time.Duration

	Resolver Resolver
	Dialer   ContextDialer
}

func (o ClientOptions) withDefaults() ClientOptions {
	out := o
	if out.ConnectTimeout <= 0 {
		out.ConnectTimeout = defaultConnectTimeout
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = defaultWriteTimeout
	}
	if out.Resolver == nil {
		out.Resolver = net.DefaultResolver
	}
	if out.Dialer == nil {
		out.Dialer = &net.Dialer{}
	}
	return out
}

// Client is a fire-and-forget Asterisk Manager Interface client: it logs in,
// sends one originate, logs off and closes. Responses are not read.
//
// Client holds no per-call state and is safe for concurrent use.
type Client struct {
	opts ClientOptions
	now  func() time.Time
}

func NewClient(opts ClientOptions) *Client {
	return &Client{opts: opts.withDefaults(), now: time.Now}
}

var _ Originator = (*Client)(nil)

// Dial resolves the switch, connects to the first reachable address and
// writes the login, originate and logoff groups. A field containing a line
// break is refused before any lookup or connection.
//
// Connect failures fall through to the next resolved address. A write
// failure aborts immediately: part of the burst may already be on the wire,
// so trying another address could originate twice.
func (c *Client) Dial(ctx context.Context, caller CallerContext, endpoint SwitchEndpoint, dialString, callerID string) error {
	log := logger.From(ctx).With("switch_host", endpoint.Host, "switch_port", endpoint.Port)

	groups := []Action{
		LoginAction(endpoint.Login, endpoint.Secret),
		OriginateAction(caller, endpoint, dialString, callerID),
		LogoffAction(),
	}
	for _, g := range groups {
		if err := g.CheckLines(); err != nil {
			log.Error("refusing to send manager action", "err", err)
			return dialerr.Wrap(dialerr.KindInternal, "", err)
		}
	}

	addrs, err := c.opts.Resolver.LookupIPAddr(ctx, endpoint.Host)
	if err != nil {
		log.Error("switch host resolution failed", "err", err)
		return dialerr.Wrap(dialerr.KindDNSResolutionFailed, endpoint.Host, err)
	}
	if len(addrs) == 0 {
		log.Error("switch host resolved to no address")
		return dialerr.New(dialerr.KindDNSResolutionFailed, endpoint.Host)
	}

	conn, err := c.connect(ctx, addrs, strconv.Itoa(endpoint.Port))
	if err != nil {
		log.Error("switch connection failed", "candidates", len(addrs), "err", err)
		return dialerr.Wrap(dialerr.KindConnectionFailed, endpoint.Host, err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(c.now().Add(c.opts.WriteTimeout)); err != nil {
		return dialerr.Wrap(dialerr.KindConnectionFailed, endpoint.Host, err)
	}

	for _, g := range groups {
		if _, err := conn.Write(g.Bytes()); err != nil {
			action, _ := g.Get("Action")
			log.Error("switch write failed", "action", action, "err", err)
			return dialerr.Wrap(dialerr.KindConnectionFailed, endpoint.Host, err)
		}
	}

	log.Info("originate sent",
		"remote_addr", conn.RemoteAddr().String(),
		"channel", caller.Channel(),
		"exten", dialString,
	)
	return nil
}

func (c *Client) connect(ctx context.Context, addrs []net.IPAddr, port string) (net.Conn, error) {
	var lastErr error
	for _, a := range addrs {
		addr := net.JoinHostPort(a.String(), port)

		dialCtx, cancel := context.WithTimeout(ctx, c.opts.ConnectTimeout)
		conn, err := c.opts.Dialer.DialContext(dialCtx, "tcp", addr)
		cancel()
		if err == nil {
			return conn, nil
		}
		logger.From(ctx).Debug("switch connect attempt failed", "addr", addr, "err", err)
		lastErr = err
	}
	return nil, lastErr
}
