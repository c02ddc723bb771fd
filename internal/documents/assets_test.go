package documents_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"caselaw/internal/documents"
	"caselaw/internal/documents/mocks"
	"caselaw/internal/marklogic"
	"caselaw/internal/platform/config"
	"caselaw/pkg/platform/sentinel"
)

func TestAssetClientFetchPDF(t *testing.T) {
	status := http.StatusOK
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(status)
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer server.Close()

	client := documents.NewAssetClient(config.Assets{BaseURL: server.URL + "/", Timeout: time.Second})
	ctx := context.Background()

	t.Run("published path", func(t *testing.T) {
		status = http.StatusOK
		data, err := client.FetchPDF(ctx, "ewca/civ/2004/632")
		require.NoError(t, err)
		assert.Equal(t, "/ewca/civ/2004/632/ewca_civ_2004_632.pdf", gotPath)
		assert.Equal(t, "%PDF-1.4", string(data))
	})

	for _, code := range []int{http.StatusNotFound, http.StatusForbidden} {
		t.Run(http.StatusText(code)+" is missing", func(t *testing.T) {
			status = code
			_, err := client.FetchPDF(ctx, "ewca/civ/2004/632")
			assert.ErrorIs(t, err, sentinel.ErrNotFound)
		})
	}

	t.Run("server error is unavailable", func(t *testing.T) {
		status = http.StatusBadGateway
		_, err := client.FetchPDF(ctx, "ewca/civ/2004/632")
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	})

	t.Run("no base url means no assets", func(t *testing.T) {
		_, err := documents.NewAssetClient(config.Assets{}).FetchPDF(ctx, "ewca/civ/2004/632")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestAssetClientGeneratePDF(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "text/html")
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "<html></html>", string(body))
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer server.Close()

	client := documents.NewAssetClient(config.Assets{PDFServiceURL: server.URL + "/render", Timeout: time.Second})

	data, err := client.GeneratePDF(context.Background(), []byte("<html></html>"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))

	_, err = documents.NewAssetClient(config.Assets{}).GeneratePDF(context.Background(), nil)
	assert.ErrorIs(t, err, documents.ErrPDFServiceNotConfigured)
}

func TestAssetClientGeneratePDFRejections(t *testing.T) {
	status := http.StatusForbidden
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	client := documents.NewAssetClient(config.Assets{PDFServiceURL: server.URL, Timeout: time.Second})

	for _, code := range []int{http.StatusForbidden, http.StatusNotFound, http.StatusUnauthorized, http.StatusInternalServerError} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			status = code
			_, err := client.GeneratePDF(context.Background(), []byte("<html></html>"))
			assert.ErrorIs(t, err, sentinel.ErrUnavailable)
			assert.NotErrorIs(t, err, sentinel.ErrNotFound)
		})
	}
}

// A stored document whose PDF service rejects the request is unavailable,
// not missing.
func TestResolvePDFWhenPDFServiceRejects(t *testing.T) {
	uri := marklogic.DocumentURI("ewhc/comm/2024/253")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/render" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	store := mocks.NewMockStore(gomock.NewController(t))
	store.EXPECT().DocumentExists(gomock.Any(), uri).Return(true, nil).AnyTimes()
	store.EXPECT().GetDocument(gomock.Any(), uri).Return([]byte(fmt.Sprintf(judgmentXML, "Re A Company")), nil).AnyTimes()
	store.EXPECT().RenderHTML(gomock.Any(), uri).Return([]byte("<article>judgment</article>"), nil).AnyTimes()

	client := documents.NewAssetClient(config.Assets{
		BaseURL:       server.URL + "/assets",
		PDFServiceURL: server.URL + "/render",
		Timeout:       time.Second,
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver, err := documents.NewResolver(store, documents.NewHandlers(store, client, client, logger, nil), logger, nil)
	require.NoError(t, err)

	for _, extension := range []string{"generated.pdf", "pdf"} {
		t.Run(extension, func(t *testing.T) {
			_, err := resolver.Resolve(context.Background(), uri.String(), extension)
			require.Error(t, err)
			var notFound *documents.DocumentNotFoundError
			assert.False(t, errors.As(err, &notFound))
			assert.ErrorIs(t, err, sentinel.ErrUnavailable)
		})
	}
}
