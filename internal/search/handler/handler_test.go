package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"caselaw/internal/courts"
	"caselaw/internal/marklogic"
	"caselaw/internal/search"
	"caselaw/internal/search/handler/mocks"
	"caselaw/internal/xmltools"
	"caselaw/pkg/platform/httputil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	service  *mocks.MockService
	router   chi.Router
	fallback int
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.fallback = 0

	h := New(s.service, courts.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	router := chi.NewRouter()
	h.Register(router)
	router.Get("/*", h.HandleBrowse(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.fallback++
		w.WriteHeader(http.StatusTeapot)
	})))
	s.router = router
}

func (s *HandlerSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func oneResult() *search.SearchResults {
	return &search.SearchResults{
		Total: 1,
		Results: []*search.SearchResult{{
			URI:     "ewhc/ch/2022/1",
			Name:    "A SearchResult name!",
			Matches: []string{},
		}},
	}
}

// =============================================================================
// Parameter mapping
// =============================================================================

func (s *HandlerSuite) TestResults() {
	s.Run("applies defaults and preprocesses the query", func() {
		s.service.EXPECT().Search(gomock.Any(), marklogic.SearchParameters{
			Query:   "waltham forest",
			Page:    1,
			PerPage: 10,
			Order:   "-relevance",
		}).Return(oneResult(), nil)

		rec := s.get("/judgments/results?query=waltham++forest")
		s.Require().Equal(http.StatusOK, rec.Code)

		var resp SearchResponse
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
		s.Equal(1, resp.Total)
		s.Equal("waltham forest", resp.Query)
		s.Require().Len(resp.Results, 1)
		s.Equal("A SearchResult name!", resp.Results[0].Name)
	})

	s.Run("explicit paging and order", func() {
		s.service.EXPECT().Search(gomock.Any(), marklogic.SearchParameters{
			Query:   "contract",
			Page:    3,
			PerPage: 25,
			Order:   "-date",
		}).Return(oneResult(), nil)

		rec := s.get("/judgments/results?query=contract&page=3&per_page=25&order=-date")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("invalid page is a bad request", func() {
		rec := s.get("/judgments/results?query=contract&page=zero")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestAdvancedSearch() {
	s.Run("defaults", func() {
		s.service.EXPECT().Search(gomock.Any(), marklogic.SearchParameters{
			Query:   "waltham forest",
			Page:    1,
			PerPage: 10,
			Order:   "relevance",
		}).Return(oneResult(), nil)

		rec := s.get("/judgments/advanced_search?query=waltham+forest")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("every filter", func() {
		s.service.EXPECT().Search(gomock.Any(), marklogic.SearchParameters{
			Query:           "lease",
			Court:           []string{"ewhc/ch", "ewca/civ"},
			Judge:           "Smith",
			Party:           "Hussain",
			NeutralCitation: "[2022] UKUT 241 (LC)",
			SpecificKeyword: "forfeiture",
			DateFrom:        "2020-01-01",
			DateTo:          "2022-12-31",
			Page:            2,
			PerPage:         10,
			Order:           "-date",
		}).Return(oneResult(), nil)

		rec := s.get("/judgments/advanced_search?query=lease&court=ewhc/ch&court=ewca/civ&judge=Smith&party=Hussain" +
			"&neutral_citation=%5B2022%5D+UKUT+241+%28LC%29&specific_keyword=forfeiture&from=2020-01-01&to=2022-12-31&page=2&order=-date")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("repeated courts collapse", func() {
		s.service.EXPECT().Search(gomock.Any(), marklogic.SearchParameters{
			Court:   []string{"uksc", "ukpc"},
			Page:    1,
			PerPage: 10,
			Order:   "relevance",
		}).Return(oneResult(), nil)

		rec := s.get("/judgments/advanced_search?court=UKSC&court=ukpc&court=uksc&court=")
		s.Equal(http.StatusOK, rec.Code)
	})
}

func (s *HandlerSuite) TestIndex() {
	s.Run("first page by default", func() {
		s.service.EXPECT().Index(gomock.Any(), 1).Return(oneResult(), nil)

		rec := s.get("/judgments")
		s.Require().Equal(http.StatusOK, rec.Code)

		var resp SearchResponse
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
		s.Equal(1, resp.Page)
		s.Equal(marklogic.IndexPageLength, resp.PerPage)
		s.Require().Len(resp.Results, 1)
		s.Zero(s.fallback)
	})

	s.Run("explicit page", func() {
		s.service.EXPECT().Index(gomock.Any(), 4).Return(oneResult(), nil)

		rec := s.get("/judgments?page=4")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("invalid page is a bad request", func() {
		rec := s.get("/judgments?page=-2")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("store failure is a bad gateway", func() {
		s.service.EXPECT().Index(gomock.Any(), 1).
			Return(nil, marklogic.NewTransportError(marklogic.ErrorTimeout, "judgments_index", "request timed out", nil))

		rec := s.get("/judgments")
		s.Equal(http.StatusBadGateway, rec.Code)
	})
}

func (s *HandlerSuite) TestBrowse() {
	s.Run("court and year", func() {
		s.service.EXPECT().Search(gomock.Any(), marklogic.SearchParameters{
			Court:    []string{"ewhc/ch"},
			DateFrom: "2022-01-01",
			DateTo:   "2022-12-31",
			Order:    "-date",
			Page:     1,
			PerPage:  10,
		}).Return(oneResult(), nil)

		rec := s.get("/ewhc/ch/2022")
		s.Require().Equal(http.StatusOK, rec.Code)

		var resp SearchResponse
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
		s.Require().NotNil(resp.Court)
		s.Equal("EWHC-Chancery", resp.Court.Code)
		s.Equal(2022, resp.Year)
		s.Zero(s.fallback)
	})

	s.Run("document paths fall through", func() {
		rec := s.get("/ewca/civ/2004/632")
		s.Equal(http.StatusTeapot, rec.Code)
		s.Equal(1, s.fallback)
	})
}

// =============================================================================
// Error mapping
// =============================================================================

func (s *HandlerSuite) TestErrors() {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"missing metadata", &xmltools.MissingMetadataError{URI: "uksc/2024/1", Field: "name"}, http.StatusNotFound, httputil.CodeContentUnavailable},
		{"malformed response", &search.MalformedSearchResponseError{Reason: "missing total"}, http.StatusBadGateway, httputil.CodeBadGateway},
		{"transport", marklogic.NewTransportError(marklogic.ErrorTimeout, "search", "request timed out", nil), http.StatusBadGateway, httputil.CodeBadGateway},
		{"unexpected", io.ErrUnexpectedEOF, http.StatusInternalServerError, httputil.CodeInternal},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.service.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rec := s.get("/judgments/results?query=x")
			s.Equal(tc.status, rec.Code)

			var body httputil.ErrorResponse
			s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
			s.Equal(tc.code, body.Error)
		})
	}
}
