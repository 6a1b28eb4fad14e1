package wechat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient("wx1", "secret1", srv.Client(), nil, nil)
	c.SetAuthBase(srv.URL)
	return c, srv
}

func TestGetAccessToken(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cgi-bin/token" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("appid") != "wx1" || q.Get("secret") != "secret1" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"access_token":"TOKEN1","expires_in":7200}`))
	})
	defer srv.Close()

	if got := c.GetAccessToken(context.Background()); got != "TOKEN1" {
		t.Errorf("GetAccessToken = %q", got)
	}
}

func TestGetAccessTokenErrcode(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errcode":40013,"errmsg":"invalid appid"}`))
	})
	defer srv.Close()

	if got := c.GetAccessToken(context.Background()); got != "" {
		t.Errorf("GetAccessToken = %q, want empty on errcode", got)
	}
}

func TestCodeToSession(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sns/jscode2session" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("js_code") != "code123" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"session_key":"SK+/==","expires_in":7200,"openid":"OPENID1"}`))
	})
	defer srv.Close()

	sk, openID := c.CodeToSession("code123")
	if sk != "SK+/==" || openID != "OPENID1" {
		t.Errorf("CodeToSession = %q, %q", sk, openID)
	}
}

func TestCodeToSessionError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errcode":40029,"errmsg":"invalid code"}`))
	})
	defer srv.Close()

	sk, openID := c.CodeToSession("bad")
	if sk != "" || openID != "" {
		t.Errorf("CodeToSession = %q, %q, want empty pair", sk, openID)
	}
}
