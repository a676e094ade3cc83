package papercut

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

// newTestClient builds a client pointed at the given test server
func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parsing test server URL: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("parsing test server port: %v", err)
	}

	return NewClient(Config{Host: u.Hostname(), Port: port, Timeout: 5 * time.Second})
}

// rpcHandler answers every XML-RPC request with the given response body
func rpcHandler(t *testing.T, wantFragments []string, response string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rpc/api/xmlrpc" {
			t.Errorf("Path = %v, want /rpc/api/xmlrpc", r.URL.Path)
		}
		if r.Method != "POST" {
			t.Errorf("Method = %v, want POST", r.Method)
		}

		body, _ := io.ReadAll(r.Body)
		for _, fragment := range wantFragments {
			if !strings.Contains(string(body), fragment) {
				t.Errorf("request %s missing fragment %s", body, fragment)
			}
		}

		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte(response))
	}
}

func stringResponse(s string) string {
	return `<?xml version="1.0"?><methodResponse><params><param><value><string>` +
		s + `</string></value></param></params></methodResponse>`
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Host != "localhost" {
		t.Errorf("Host = %v, want localhost", cfg.Host)
	}
	if cfg.Port != 9191 {
		t.Errorf("Port = %v, want 9191", cfg.Port)
	}
	if cfg.UseTLS {
		t.Error("UseTLS = true, want false")
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
}

func TestNewClientNoNetworkIO(t *testing.T) {
	// An unroutable host must not matter until the first call
	client := NewClient(Config{Host: "host.invalid", Port: 9191})

	if client.URL() != "http://host.invalid:9191/rpc/api/xmlrpc" {
		t.Errorf("URL = %v, want http endpoint", client.URL())
	}

	// Close before any call must be a no-op
	client.Close()
	client.Close()
}

func TestNewClientTLSDefaults(t *testing.T) {
	client := NewClient(Config{Host: "print01", UseTLS: true})

	if client.URL() != "https://print01:9192/rpc/api/xmlrpc" {
		t.Errorf("URL = %v, want https on 9192", client.URL())
	}
}

func TestCallReturnsValue(t *testing.T) {
	server := httptest.NewServer(rpcHandler(t,
		[]string{
			"<methodName>api.getUserProperty</methodName>",
			"<value><string>token-1</string></value>",
			"<value><string>alice</string></value>",
			"<value><string>email</string></value>",
		},
		stringResponse("alice@example.org")))
	defer server.Close()

	client := newTestClient(t, server)
	defer client.Close()

	got, err := client.GetUserProperty(context.Background(), "token-1", "alice", "email")
	if err != nil {
		t.Fatalf("GetUserProperty() error = %v", err)
	}
	if got != "alice@example.org" {
		t.Errorf("GetUserProperty() = %v, want alice@example.org", got)
	}
}

func TestCallSurfacesFault(t *testing.T) {
	fault := `<?xml version="1.0"?><methodResponse><fault><value><struct>` +
		`<member><name>faultCode</name><value><int>229</int></value></member>` +
		`<member><name>faultString</name><value><string>Invalid authentication token</string></value></member>` +
		`</struct></value></fault></methodResponse>`

	server := httptest.NewServer(rpcHandler(t, nil, fault))
	defer server.Close()

	client := newTestClient(t, server)
	defer client.Close()

	_, err := client.GetTotalUsers(context.Background(), "bad-token")
	if err == nil {
		t.Fatal("GetTotalUsers() should surface the fault")
	}

	var f *Fault
	if !errors.As(err, &f) {
		t.Fatalf("error = %T, want *Fault", err)
	}
	if f.Code != 229 {
		t.Errorf("Code = %d, want 229", f.Code)
	}
	if f.String != "Invalid authentication token" {
		t.Errorf("String = %q, want auth message", f.String)
	}
}

func TestCloseAfterFailedCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server)

	if _, err := client.GetTotalUsers(context.Background(), "tok"); err == nil {
		t.Fatal("GetTotalUsers() should fail on HTTP 500")
	}

	// Close must still release the transport
	client.Close()
}

func TestCallContextCancellation(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := newTestClient(t, server)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.GetTotalUsers(ctx, "tok")
	if err == nil {
		t.Fatal("GetTotalUsers() should fail when context expires")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want deadline exceeded", err)
	}
}

func TestTypedResults(t *testing.T) {
	tests := []struct {
		name     string
		response string
		call     func(*Client) (interface{}, error)
		want     interface{}
	}{
		{
			name: "bool result",
			response: `<?xml version="1.0"?><methodResponse><params><param>` +
				`<value><boolean>1</boolean></value></param></params></methodResponse>`,
			call: func(c *Client) (interface{}, error) {
				return c.IsUserExists(context.Background(), "tok", "alice")
			},
			want: true,
		},
		{
			name: "int result",
			response: `<?xml version="1.0"?><methodResponse><params><param>` +
				`<value><int>4211</int></value></param></params></methodResponse>`,
			call: func(c *Client) (interface{}, error) {
				return c.GetTotalUsers(context.Background(), "tok")
			},
			want: 4211,
		},
		{
			name: "double result",
			response: `<?xml version="1.0"?><methodResponse><params><param>` +
				`<value><double>12.75</double></value></param></params></methodResponse>`,
			call: func(c *Client) (interface{}, error) {
				return c.GetUserAccountBalance(context.Background(), "tok", "alice", "")
			},
			want: 12.75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(rpcHandler(t, nil, tt.response))
			defer server.Close()

			client := newTestClient(t, server)
			defer client.Close()

			got, err := tt.call(client)
			if err != nil {
				t.Fatalf("call error = %v", err)
			}
			if got != tt.want {
				t.Errorf("result = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListPrinters(t *testing.T) {
	response := `<?xml version="1.0"?><methodResponse><params><param><value><array><data>` +
		`<value><string>print01\Mobility on PRINT01</string></value>` +
		`<value><string>print01\Library Laser</string></value>` +
		`</data></array></value></param></params></methodResponse>`

	server := httptest.NewServer(rpcHandler(t,
		[]string{"<methodName>api.listPrinters</methodName>", "<value><int>0</int></value>", "<value><int>1000</int></value>"},
		response))
	defer server.Close()

	client := newTestClient(t, server)
	defer client.Close()

	printers, err := client.ListPrinters(context.Background(), "tok", 0, 1000)
	if err != nil {
		t.Fatalf("ListPrinters() error = %v", err)
	}
	if len(printers) != 2 {
		t.Fatalf("len(printers) = %d, want 2", len(printers))
	}
	if printers[0] != `print01\Mobility on PRINT01` {
		t.Errorf("printers[0] = %v, want Mobility queue", printers[0])
	}
}

func TestGetTaskStatus(t *testing.T) {
	response := `<?xml version="1.0"?><methodResponse><params><param><value><struct>` +
		`<member><name>completed</name><value><boolean>1</boolean></value></member>` +
		`<member><name>message</name><value><string>Sync complete</string></value></member>` +
		`</struct></value></param></params></methodResponse>`

	server := httptest.NewServer(rpcHandler(t, []string{"<methodName>api.getTaskStatus</methodName>"}, response))
	defer server.Close()

	client := newTestClient(t, server)
	defer client.Close()

	status, err := client.GetTaskStatus(context.Background(), "tok")
	if err != nil {
		t.Fatalf("GetTaskStatus() error = %v", err)
	}
	if !status.Completed {
		t.Error("Completed = false, want true")
	}
	if status.Message != "Sync complete" {
		t.Errorf("Message = %v, want Sync complete", status.Message)
	}
}

func TestOptionalArgumentsSentAsNil(t *testing.T) {
	server := httptest.NewServer(rpcHandler(t,
		[]string{
			"<methodName>api.adjustUserAccountBalance</methodName>",
			"<value><double>-1.5</double></value>",
			"<value><nil/></value>",
		},
		stringResponse("")))
	defer server.Close()

	client := newTestClient(t, server)
	defer client.Close()

	err := client.AdjustUserAccountBalance(context.Background(), "tok", "alice", -1.5, "", "")
	if err != nil {
		t.Fatalf("AdjustUserAccountBalance() error = %v", err)
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("Path = %v, want /api/health", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	defer client.Close()

	if err := client.Health(context.Background()); err != nil {
		t.Errorf("Health() error = %v", err)
	}
}

func TestHealthUnhealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	defer client.Close()

	if err := client.Health(context.Background()); err == nil {
		t.Error("Health() should fail on HTTP 503")
	}
}
