package openapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rserr "rainstash/internal/errors"
	"rainstash/internal/httpclient"
	"rainstash/internal/model"
)

func TestLoadFileAndExtract(t *testing.T) {
	doc, err := Load(context.Background(), httpclient.New(0), "testdata/petstore.yaml")
	require.NoError(t, err)

	eps := ExtractEndpoints(doc)
	require.Len(t, eps, 4)

	var names []string
	for _, ep := range eps {
		names = append(names, ep.DisplayName())
	}
	assert.Equal(t, []string{"GET /pets", "POST /pets", "GET /pets/{petId}", "DELETE /pets/{petId}"}, names)

	list := eps[0]
	assert.Equal(t, "List all pets", list.Label())
	assert.Equal(t, []string{"pets"}, list.Tags)
	require.Len(t, list.QueryParams, 1)
	assert.Equal(t, model.TypeInteger, list.QueryParams[0].Type)

	show := eps[2]
	require.Len(t, show.PathParams, 1)
	assert.Equal(t, "petId", show.PathParams[0].Name)
	assert.True(t, show.PathParams[0].Required)
	require.Len(t, show.QueryParams, 1)
	assert.Equal(t, model.TypeBoolean, show.QueryParams[0].Type)

	assert.Equal(t, "deletePet", eps[3].Label())
}

func TestLoadURL(t *testing.T) {
	body, err := os.ReadFile("testdata/petstore.yaml")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openapi.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	doc, err := Load(context.Background(), httpclient.New(0), srv.URL+"/openapi.yaml")
	require.NoError(t, err)
	assert.Len(t, ExtractEndpoints(doc), 4)

	_, err = Load(context.Background(), httpclient.New(0), srv.URL+"/nope.yaml")
	assert.ErrorIs(t, err, rserr.ErrSpecLoad)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openapi: 3.0.3\ninfo: {}\npaths: {}\n"), 0o644))

	_, err := Load(context.Background(), httpclient.New(0), path)
	assert.ErrorIs(t, err, rserr.ErrSpecLoad)

	_, err = Load(context.Background(), httpclient.New(0), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, rserr.ErrSpecLoad)
}

func TestExtractNil(t *testing.T) {
	assert.Empty(t, ExtractEndpoints(nil))
}
