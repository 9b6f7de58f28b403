package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/login.php", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "a@b.c", r.PostFormValue("email"))
		assert.Equal(t, "secret", r.PostFormValue("password"))

		// PHP backend quotes numbers
		io.WriteString(w, `{"status":"true","data":{"id":7,"email":"a@b.c","name":"Budi","saldo":"250000"}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api/")
	p, err := c.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "7", p.ID)
	assert.Equal(t, "Budi", p.Name)
	assert.Equal(t, int64(250000), p.Balance)
}

func TestLogin_RejectedOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"false"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "a@b.c", "nope")
	assert.ErrorIs(t, err, ErrRejected)
}

func TestLogin_RejectedOnMissingData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"true"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, ErrRejected)
}

func TestLogin_UnavailableOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := NewClient(srv.URL).Login(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLogin_UnavailableOnGarbageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html>fatal error</html>`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/view.php", r.URL.Path)
		io.WriteString(w, `{"status":"true","data":[
			{"id":"11","nama_paket":"Paket A","harga":10000,"quota_allocated":"5GB"},
			{"id":12,"nama_paket":"Paket B","harga":"15000","quota_allocated":"10GB"}
		]}`)
	}))
	defer srv.Close()

	products, err := NewClient(srv.URL).ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, Product{ID: "11", Name: "Paket A", Price: 10000, Quota: "5GB"}, products[0])
	assert.Equal(t, Product{ID: "12", Name: "Paket B", Price: 15000, Quota: "10GB"}, products[1])
}

func TestListProducts_EmptyCatalogIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"true","data":[]}`)
	}))
	defer srv.Close()

	products, err := NewClient(srv.URL).ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestBuy_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/buy.php", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "123456", body["id"])
		assert.Equal(t, "081234567890", body["customer-no"])
		assert.Equal(t, "7", body["user_id"])

		io.WriteString(w, `{"status":"success","saldo_terbaru":240000}`)
	}))
	defer srv.Close()

	saldo, err := NewClient(srv.URL).Buy(context.Background(), "123456", "081234567890", "7")
	require.NoError(t, err)
	assert.Equal(t, "240000", saldo)
}

func TestBuy_RejectionCarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"failed","message":"saldo tidak mencukupi"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Buy(context.Background(), "1", "0812", "7")
	assert.ErrorIs(t, err, ErrRejected)

	var rej *RejectionError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "saldo tidak mencukupi", rej.Message)
}
