package telephony

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"click2dial/internal/dialerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEndpoint = SwitchEndpoint{
	Host:                 "127.0.0.1",
	Login:                "click2dial",
	Secret:               "s3cret",
	DialContext:          "from-internal",
	ExtensionPriority:    1,
	AnswerTimeoutSeconds: 5,
}

var testCaller = CallerContext{ChannelType: "SIP", InternalNumber: "201"}

// listen starts a loopback listener that captures everything one client writes.
func listen(t *testing.T) (port int, received <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			out <- ""
			return
		}
		defer conn.Close()
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		b, _ := io.ReadAll(conn)
		out <- string(b)
	}()
	return ln.Addr().(*net.TCPAddr).Port, out
}

func TestClientDial_WritesThreeGroupsInOrder(t *testing.T) {
	port, received := listen(t)
	ep := testEndpoint
	ep.Port = port

	c := NewClient(ClientOptions{})
	err := c.Dial(context.Background(), testCaller, ep, "00141981242", "Société Générale")
	require.NoError(t, err)

	want := "Action: login\r\n" +
		"Events: off\r\n" +
		"Username: click2dial\r\n" +
		"Secret: s3cret\r\n" +
		"\r\n" +
		"Action: originate\r\n" +
		"Channel: SIP/201\r\n" +
		"Timeout: 5000\r\n" +
		"CallerId: Societe Generale\r\n" +
		"Exten: 00141981242\r\n" +
		"Context: from-internal\r\n" +
		"Priority: 1\r\n" +
		"\r\n" +
		"Action: Logoff\r\n" +
		"\r\n"

	select {
	case got := <-received:
		assert.Equal(t, want, got)
	case <-time.After(5 * time.Second):
		t.Fatal("listener received nothing")
	}
}

func TestClientDial_AlertInfoOnlyForSIP(t *testing.T) {
	ep := testEndpoint
	ep.AlertHeader = "<http://pbx/silent.wav>"

	sip := OriginateAction(CallerContext{ChannelType: "SIP", InternalNumber: "201"}, ep, "0123", "x")
	v, ok := sip.Get("Variable")
	require.True(t, ok)
	assert.Equal(t, "SIPAddHeader=Alert-Info: <http://pbx/silent.wav>", v)
	assert.Equal(t, "Priority", sip[len(sip)-1].Key, "Variable precedes Priority")

	pjsip := OriginateAction(CallerContext{ChannelType: "PJSIP", InternalNumber: "201"}, ep, "0123", "x")
	_, ok = pjsip.Get("Variable")
	assert.False(t, ok)

	ep.AlertHeader = ""
	noHeader := OriginateAction(CallerContext{ChannelType: "SIP", InternalNumber: "201"}, ep, "0123", "x")
	_, ok = noHeader.Get("Variable")
	assert.False(t, ok)
}

func TestOriginateAction_TimeoutInMilliseconds(t *testing.T) {
	ep := testEndpoint
	ep.AnswerTimeoutSeconds = 120
	a := OriginateAction(testCaller, ep, "0", "")
	v, _ := a.Get("Timeout")
	assert.Equal(t, "120000", v)
}

type stubResolver struct {
	addrs []net.IPAddr
	err   error
}

func (r stubResolver) LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error) {
	return r.addrs, r.err
}

type countingDialer struct {
	mu       sync.Mutex
	attempts []string
	dial     func(ctx context.Context, address string) (net.Conn, error)
}

func (d *countingDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	d.mu.Lock()
	d.attempts = append(d.attempts, address)
	d.mu.Unlock()
	if d.dial == nil {
		return nil, errors.New("no route")
	}
	return d.dial(ctx, address)
}

func TestClientDial_UnresolvableHostMakesNoConnection(t *testing.T) {
	d := &countingDialer{}
	c := NewClient(ClientOptions{
		Resolver: stubResolver{err: &net.DNSError{Err: "no such host", Name: "pbx.invalid", IsNotFound: true}},
		Dialer:   d,
	})

	ep := testEndpoint
	ep.Host = "pbx.invalid"
	err := c.Dial(context.Background(), testCaller, ep, "0", "")
	require.Error(t, err)
	assert.Equal(t, dialerr.KindDNSResolutionFailed, dialerr.KindOf(err))
	assert.Empty(t, d.attempts)
}

func TestClientDial_NoAddressesIsResolutionFailure(t *testing.T) {
	d := &countingDialer{}
	c := NewClient(ClientOptions{Resolver: stubResolver{}, Dialer: d})

	err := c.Dial(context.Background(), testCaller, testEndpoint, "0", "")
	assert.Equal(t, dialerr.KindDNSResolutionFailed, dialerr.KindOf(err))
	assert.Empty(t, d.attempts)
}

func TestClientDial_AllCandidatesRefused(t *testing.T) {
	d := &countingDialer{}
	c := NewClient(ClientOptions{
		Resolver: stubResolver{addrs: []net.IPAddr{{IP: net.ParseIP("2001:db8::1")}, {IP: net.ParseIP("192.0.2.1")}}},
		Dialer:   d,
	})

	ep := testEndpoint
	ep.Port = 5038
	err := c.Dial(context.Background(), testCaller, ep, "0", "")
	assert.Equal(t, dialerr.KindConnectionFailed, dialerr.KindOf(err))
	assert.Equal(t, []string{"[2001:db8::1]:5038", "192.0.2.1:5038"}, d.attempts)
}

func TestClientDial_FallsThroughToNextCandidate(t *testing.T) {
	port, received := listen(t)

	d := &countingDialer{dial: func(ctx context.Context, address string) (net.Conn, error) {
		if strings.HasPrefix(address, "192.0.2.1") {
			return nil, errors.New("connection refused")
		}
		var nd net.Dialer
		return nd.DialContext(ctx, "tcp", address)
	}}
	c := NewClient(ClientOptions{
		Resolver: stubResolver{addrs: []net.IPAddr{{IP: net.ParseIP("192.0.2.1")}, {IP: net.ParseIP("127.0.0.1")}}},
		Dialer:   d,
	})

	ep := testEndpoint
	ep.Port = port
	require.NoError(t, c.Dial(context.Background(), testCaller, ep, "00141981242", "Bob"))
	assert.Len(t, d.attempts, 2)

	got := <-received
	assert.True(t, strings.HasPrefix(got, "Action: login\r\n"))
	assert.True(t, strings.HasSuffix(got, "Action: Logoff\r\n\r\n"))
}

// scriptedConn accepts a fixed number of writes, then fails.
type scriptedConn struct {
	net.Conn
	okWrites int
	written  bytes.Buffer
	closed   bool
}

func (c *scriptedConn) Write(b []byte) (int, error) {
	if c.okWrites == 0 {
		return 0, errors.New("broken pipe")
	}
	c.okWrites--
	return c.written.Write(b)
}

func (c *scriptedConn) Close() error                       { c.closed = true; return nil }
func (c *scriptedConn) SetWriteDeadline(t time.Time) error { return nil }
func (c *scriptedConn) RemoteAddr() net.Addr               { return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 5038} }

func TestClientDial_WriteFailureAbortsWithoutLaterGroups(t *testing.T) {
	conn := &scriptedConn{okWrites: 1}
	d := &countingDialer{dial: func(ctx context.Context, address string) (net.Conn, error) { return conn, nil }}
	c := NewClient(ClientOptions{
		Resolver: stubResolver{addrs: []net.IPAddr{{IP: net.ParseIP("192.0.2.1")}, {IP: net.ParseIP("192.0.2.2")}}},
		Dialer:   d,
	})

	err := c.Dial(context.Background(), testCaller, testEndpoint, "0", "")
	assert.Equal(t, dialerr.KindConnectionFailed, dialerr.KindOf(err))
	assert.Len(t, d.attempts, 1, "no second candidate after a write failure")
	assert.True(t, conn.closed)
	assert.Equal(t, string(LoginAction("click2dial", "s3cret").Bytes()), conn.written.String())
}

func TestClientDial_ClosesOnSuccess(t *testing.T) {
	conn := &scriptedConn{okWrites: 3}
	d := &countingDialer{dial: func(ctx context.Context, address string) (net.Conn, error) { return conn, nil }}
	c := NewClient(ClientOptions{
		Resolver: stubResolver{addrs: []net.IPAddr{{IP: net.ParseIP("192.0.2.1")}}},
		Dialer:   d,
	})

	require.NoError(t, c.Dial(context.Background(), testCaller, testEndpoint, "0", ""))
	assert.True(t, conn.closed)
}

func TestClientDial_RefusesLineBreakInChannel(t *testing.T) {
	d := &countingDialer{}
	c := NewClient(ClientOptions{
		Resolver: stubResolver{addrs: []net.IPAddr{{IP: net.ParseIP("192.0.2.1")}}},
		Dialer:   d,
	})

	caller := CallerContext{ChannelType: "SIP", InternalNumber: "201\r\nAction: Command\r\nCommand: core stop now"}
	err := c.Dial(context.Background(), caller, testEndpoint, "00141981242", "")
	require.Error(t, err)
	assert.Equal(t, dialerr.KindInternal, dialerr.KindOf(err))
	assert.Contains(t, err.Error(), "Channel")
	assert.Empty(t, d.attempts, "nothing is sent to the switch")
}

func TestAction_CheckLines(t *testing.T) {
	require.NoError(t, OriginateAction(testCaller, testEndpoint, "0123", "Bob").CheckLines())

	ep := testEndpoint
	ep.DialContext = "from-internal\nAction: Logoff"
	assert.Error(t, OriginateAction(testCaller, ep, "0123", "Bob").CheckLines())
}
