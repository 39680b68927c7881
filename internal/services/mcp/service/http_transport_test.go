package service

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const testSecret = "test-secret"

func newTestHTTPTransport(t *testing.T, cfg Config) *HTTPTransport {
	t.Helper()
	server, err := New(newWorldService(t), cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return NewHTTPTransport(cfg.HTTPAddr, server.mcpServer, cfg)
}

func signToken(t *testing.T, secret string, method jwt.SigningMethod, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   "tester",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestNewHTTPTransportDefaultsAddr(t *testing.T) {
	transport := NewHTTPTransport("", nil, Config{})
	if transport.addr != "localhost:8081" {
		t.Fatalf("addr = %q, want localhost:8081", transport.addr)
	}
	if transport.authSecret != nil {
		t.Fatal("expected auth disabled without secret")
	}
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "localhost:8081", want: "localhost", ok: true},
		{in: "example.com", want: "example.com", ok: true},
		{in: "[::1]:8081", want: "::1", ok: true},
		{in: "[::1]", want: "::1", ok: true},
		{in: "::1", want: "::1", ok: true},
		{in: "", ok: false},
		{in: "[::1", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := normalizeHost(tc.in)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("normalizeHost(%q) = %q, %v, want %q, %v", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestValidateLocalRequest(t *testing.T) {
	transport := NewHTTPTransport("", nil, Config{AllowedHosts: []string{" World.Example.com ", ""}})

	tests := []struct {
		name    string
		host    string
		origin  string
		wantErr bool
	}{
		{name: "loopback", host: "localhost:8081"},
		{name: "ipv6 loopback", host: "[::1]:8081"},
		{name: "allowed host", host: "world.example.com"},
		{name: "foreign host", host: "evil.example.com", wantErr: true},
		{name: "local origin", host: "localhost:8081", origin: "http://127.0.0.1:3000"},
		{name: "foreign origin", host: "localhost:8081", origin: "http://evil.example.com", wantErr: true},
		{name: "opaque origin", host: "localhost:8081", origin: "null", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/mcp/health", nil)
			req.Host = tc.host
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			err := transport.validateLocalRequest(req)
			if (err != nil) != tc.wantErr {
				t.Fatalf("validateLocalRequest() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	transport := NewHTTPTransport("", nil, Config{})

	t.Run("ok", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "http://localhost/mcp/health", nil)
		transport.handleHealth(rec, req)
		if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
			t.Fatalf("health = %d %q, want 200 OK", rec.Code, rec.Body.String())
		}
	})

	t.Run("method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "http://localhost/mcp/health", nil)
		transport.handleHealth(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("status = %d, want 405", rec.Code)
		}
	})

	t.Run("foreign host", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "http://evil.example.com/mcp/health", nil)
		transport.handleHealth(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestMCPEndpointRejectsForeignHost(t *testing.T) {
	transport := newTestHTTPTransport(t, Config{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "http://evil.example.com/mcp", strings.NewReader("{}"))
	transport.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestVerifyBearer(t *testing.T) {
	transport := NewHTTPTransport("", nil, Config{AuthSecret: testSecret})

	tests := []struct {
		name    string
		header  string
		wantErr bool
	}{
		{name: "valid", header: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, time.Now().Add(time.Hour))},
		{name: "missing", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
		{name: "wrong secret", header: "Bearer " + signToken(t, "other", jwt.SigningMethodHS256, time.Now().Add(time.Hour)), wantErr: true},
		{name: "wrong method", header: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS512, time.Now().Add(time.Hour)), wantErr: true},
		{name: "expired", header: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, time.Now().Add(-time.Hour)), wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := transport.verifyBearer(tc.header)
			if (err != nil) != tc.wantErr {
				t.Fatalf("verifyBearer() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestMCPEndpointRequiresBearer(t *testing.T) {
	transport := newTestHTTPTransport(t, Config{AuthSecret: testSecret})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "http://localhost/mcp", strings.NewReader("{}"))
	transport.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := rec.Header().Get("WWW-Authenticate"); !strings.HasPrefix(got, "Bearer") {
		t.Fatalf("WWW-Authenticate = %q, want Bearer challenge", got)
	}
}

type bearerRoundTripper struct {
	token string
}

func (b bearerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+b.token)
	return http.DefaultTransport.RoundTrip(clone)
}

func TestStreamableHTTPSession(t *testing.T) {
	transport := newTestHTTPTransport(t, Config{AuthSecret: testSecret})
	httpServer := httptest.NewServer(transport.Handler())
	defer httpServer.Close()

	token := signToken(t, testSecret, jwt.SigningMethodHS256, time.Now().Add(time.Hour))
	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint:   httpServer.URL + "/mcp",
		HTTPClient: &http.Client{Transport: bearerRoundTripper{token: token}},
	}, nil)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer session.Close()

	text := callToolError(t, session, "get_world", map[string]any{})
	if !strings.Contains(text, "(WORLD_MISSING)") {
		t.Fatalf("expected WORLD_MISSING, got %q", text)
	}
}

func TestHTTPTransportServeStopsOnCancel(t *testing.T) {
	transport := newTestHTTPTransport(t, Config{MaxConns: 2})
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- transport.serve(ctx, listener)
	}()

	url := "http://" + listener.Addr().String() + "/mcp/health"
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("health status = %d, want 200", resp.StatusCode)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("health never answered: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestHTTPTransportStartReportsListenError(t *testing.T) {
	transport := newTestHTTPTransport(t, Config{HTTPAddr: "127.0.0.1:0"})
	original := listenTCP
	listenTCP = func(string, string) (net.Listener, error) {
		return nil, &net.OpError{Op: "listen", Err: net.UnknownNetworkError("boom")}
	}
	t.Cleanup(func() { listenTCP = original })

	if err := transport.Start(context.Background()); err == nil || !strings.Contains(err.Error(), "listen on 127.0.0.1:0") {
		t.Fatalf("expected listen error, got %v", err)
	}
}
