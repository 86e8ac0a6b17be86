package inventory

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinsync-io/vinsync/pkg/options"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	opts := options.NewUpstreamOptions()
	opts.BaseURL = srv.URL
	opts.Token = "test-token"
	return NewClient(opts), srv
}

func TestFetchPage_DecodesDataEnvelope(t *testing.T) {
	var gotAuth, gotPath string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.RequestURI()
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data":[
			{"id":1,"vin":"VIN001","make":"Toyota","model":"Camry","year":2020,"lot_number":123},
			{"id":2,"vin":"VIN002","make":"Honda","model":"Civic","year":"2021","is_key_present":1}
		]}`)
	}))
	defer srv.Close()

	records := client.FetchPage(context.Background(), 3)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "/vehicles?page=3", gotPath)
	require.Len(t, records, 2)

	assert.Equal(t, "VIN001", records[0].VIN)
	assert.Equal(t, "2020", records[0].Year.String())
	assert.Equal(t, "123", records[0].LotNumber.String())

	require.NotNil(t, records[1].IsKeyPresent)
	assert.True(t, bool(*records[1].IsKeyPresent))
}

func TestFetchPage_FailuresReturnNil(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"unauthorized": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		},
		"malformed body": func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"data": not json`)
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			client, srv := newTestClient(handler)
			defer srv.Close()
			assert.Nil(t, client.FetchPage(context.Background(), 1))
		})
	}
}

func TestFetchImageURLs_SkipsEmptyEntries(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vehicles/images/42", r.URL.Path)
		io.WriteString(w, `{"images":[{"url":"https://img.test/a.jpg"},{"url":""},{"url":"https://img.test/b.jpg"}]}`)
	}))
	defer srv.Close()

	urls := client.FetchImageURLs(context.Background(), 42)
	assert.Equal(t, []string{"https://img.test/a.jpg", "https://img.test/b.jpg"}, urls)
}

func TestDownload_ReturnsBodyAndMetadata(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Image URLs are public object storage; no bearer token expected.
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "image/jpeg")
		io.WriteString(w, "jpegdata")
	}))
	defer srv.Close()

	body, contentType, size, err := client.Download(context.Background(), srv.URL+"/a.jpg")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "jpegdata", string(data))
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, int64(len("jpegdata")), size)
}

func TestDownload_NonOKStatusIsError(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, _, _, err := client.Download(context.Background(), srv.URL+"/missing.jpg")
	assert.Error(t, err)
}

func TestNominalPageSize(t *testing.T) {
	client := NewClient(options.NewUpstreamOptions())
	assert.Equal(t, 10, client.NominalPageSize())
}
