package search

import (
	"context"
	"errors"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"caselaw/internal/marklogic"
	"caselaw/internal/marklogic/mocks"
	"caselaw/internal/xmltools"
)

const completeHit = `
<search:result xmlns:search="http://marklogic.com/appservices/search" index="1" uri="/ukut/lc/2022/241.xml">
    <search:snippet>
        <search:match>HH <search:highlight>Judge</search:highlight> Anthony   Thornton QC</search:match>
    </search:snippet>
    <search:extracted kind="element">
        <FRBRdate xmlns="http://docs.oasis-open.org/legaldocml/ns/akn/3.0" date="2022-09-09" name="decision"/>
        <FRBRdate xmlns="http://docs.oasis-open.org/legaldocml/ns/akn/3.0" date="2022-10-10" name="transform"/>
        <FRBRname xmlns="http://docs.oasis-open.org/legaldocml/ns/akn/3.0"
                  value="London Borough of Waltham Forest v Nasim Hussain"/>
        <uk:court xmlns:uk="https://caselaw.nationalarchives.gov.uk/akn">UKUT-LC</uk:court>
        <uk:cite xmlns:uk="https://caselaw.nationalarchives.gov.uk/akn">[2022] UKUT 241 (LC)</uk:cite>
        <uk:hash xmlns:uk="https://caselaw.nationalarchives.gov.uk/akn">
            56c551fef5be37cb1658c895c1d15c913e76b712ba3ccc88d3b6b75ea69d3e8a
        </uk:hash>
        <neutralCitation xmlns="http://docs.oasis-open.org/legaldocml/ns/akn/3.0">
            [2022] UKUT 241 (LC)
        </neutralCitation>
    </search:extracted>
</search:result>`

const sparseHit = `
<search:result xmlns:search="http://marklogic.com/appservices/search" index="1" uri="/ukut/lc/2022/241.xml">
    <search:snippet/>
    <search:extracted kind="element">
        <FRBRdate xmlns="http://docs.oasis-open.org/legaldocml/ns/akn/3.0" date="2022-09-09" name="decision"/>
        <FRBRname xmlns="http://docs.oasis-open.org/legaldocml/ns/akn/3.0"
                  value="London Borough of Waltham Forest v Nasim Hussain"/>
        <uk:cite xmlns:uk="https://caselaw.nationalarchives.gov.uk/akn"></uk:cite>
        <uk:court xmlns:uk="https://caselaw.nationalarchives.gov.uk/akn"></uk:court>
        <uk:hash xmlns:uk="https://caselaw.nationalarchives.gov.uk/akn"></uk:hash>
        <uk:court xmlns:uk="https://caselaw.nationalarchives.gov.uk/akn"></uk:court>
    </search:extracted>
</search:result>`

type BuilderSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	client  *mocks.MockClient
	builder *Builder
	ctx     context.Context
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderSuite))
}

func (s *BuilderSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.client = mocks.NewMockClient(s.ctrl)
	logger, _ := captureLogger()
	s.builder = NewBuilder(s.client, logger)
	s.ctx = context.Background()
}

func (s *BuilderSuite) expectMetadata(uri marklogic.DocumentURI) {
	s.client.EXPECT().GetLastModified(gomock.Any(), uri).Return("01-01-2022", nil).AnyTimes()
	s.client.EXPECT().GetProperty(gomock.Any(), uri, "author").Return("something fake", nil).AnyTimes()
}

func (s *BuilderSuite) parseHit(doc string) *etree.Element {
	root, err := xmltools.Parse([]byte(doc))
	s.Require().NoError(err)
	return root
}

// =============================================================================
// Field extraction
// =============================================================================

func (s *BuilderSuite) TestCompleteHit() {
	s.expectMetadata("ukut/lc/2022/241")

	result, err := s.builder.Build(s.ctx, s.parseHit(completeHit))
	s.Require().NoError(err)

	s.Equal("London Borough of Waltham Forest v Nasim Hussain", result.Name)
	s.Equal(marklogic.DocumentURI("ukut/lc/2022/241"), result.URI)
	s.Require().NotNil(result.NeutralCitation)
	s.Equal("[2022] UKUT 241 (LC)", *result.NeutralCitation)
	s.Require().NotNil(result.Court)
	s.Equal("UKUT-LC", result.Court.Code)
	s.Require().NotNil(result.Date)
	s.Equal("2022-09-09", result.Date.Format("2006-01-02"))
	s.Require().NotNil(result.TransformationDate)
	s.Equal("2022-10-10", *result.TransformationDate)
	s.Require().NotNil(result.ContentHash)
	s.Equal("56c551fef5be37cb1658c895c1d15c913e76b712ba3ccc88d3b6b75ea69d3e8a", *result.ContentHash)
	s.Equal([]string{"HH Judge Anthony Thornton QC"}, result.Matches)
	s.Require().NotNil(result.LastModified)
	s.Equal("01-01-2022", *result.LastModified)
	s.Require().NotNil(result.Author)
	s.Equal("something fake", *result.Author)
}

func (s *BuilderSuite) TestMissingOptionalElements() {
	s.expectMetadata("ukut/lc/2022/241")

	result, err := s.builder.Build(s.ctx, s.parseHit(sparseHit))
	s.Require().NoError(err)

	s.Equal("London Borough of Waltham Forest v Nasim Hussain", result.Name)
	s.Equal(marklogic.DocumentURI("ukut/lc/2022/241"), result.URI)
	s.Nil(result.NeutralCitation)
	s.Nil(result.Court)
	s.Nil(result.ContentHash)
	s.Nil(result.TransformationDate)
	s.Empty(result.Matches)
	s.NotNil(result.Matches)
}

func (s *BuilderSuite) TestFallbacks() {
	s.expectMetadata("ewhc/ch/2022/1")

	s.Run("name falls back to docTitle and citation to neutralCitation", func() {
		hit := s.parseHit(`
<search:result xmlns:search="http://marklogic.com/appservices/search" uri="/ewhc/ch/2022/1.xml">
    <search:extracted xmlns:akn="http://docs.oasis-open.org/legaldocml/ns/akn/3.0">
        <akn:docTitle>Re Estate of <akn:i>Smith</akn:i></akn:docTitle>
        <akn:neutralCitation> [2022] EWHC 1 (Ch) </akn:neutralCitation>
    </search:extracted>
</search:result>`)

		result, err := s.builder.Build(s.ctx, hit)
		s.Require().NoError(err)
		s.Equal("Re Estate of Smith", result.Name)
		s.Require().NotNil(result.NeutralCitation)
		s.Equal("[2022] EWHC 1 (Ch)", *result.NeutralCitation)
	})

	s.Run("unknown court code resolves to nil", func() {
		hit := s.parseHit(`
<search:result xmlns:search="http://marklogic.com/appservices/search" uri="/ewhc/ch/2022/1.xml">
    <search:extracted>
        <FRBRname xmlns="http://docs.oasis-open.org/legaldocml/ns/akn/3.0" value="A v B"/>
        <uk:court xmlns:uk="https://caselaw.nationalarchives.gov.uk/akn">NOT-A-COURT</uk:court>
    </search:extracted>
</search:result>`)

		result, err := s.builder.Build(s.ctx, hit)
		s.Require().NoError(err)
		s.Nil(result.Court)
	})

	s.Run("unparseable date is nil", func() {
		hit := s.parseHit(`
<search:result xmlns:search="http://marklogic.com/appservices/search" uri="/ewhc/ch/2022/1.xml">
    <search:extracted>
        <FRBRname xmlns="http://docs.oasis-open.org/legaldocml/ns/akn/3.0" value="A v B"/>
        <FRBRdate xmlns="http://docs.oasis-open.org/legaldocml/ns/akn/3.0" date="ffffff" name="decision"/>
    </search:extracted>
</search:result>`)

		result, err := s.builder.Build(s.ctx, hit)
		s.Require().NoError(err)
		s.Nil(result.Date)
	})
}

func (s *BuilderSuite) TestEmptyStoreFieldsAreNil() {
	s.client.EXPECT().GetLastModified(gomock.Any(), marklogic.DocumentURI("ukut/lc/2022/241")).Return("", nil)
	s.client.EXPECT().GetProperty(gomock.Any(), marklogic.DocumentURI("ukut/lc/2022/241"), "author").Return("", nil)

	result, err := s.builder.Build(s.ctx, s.parseHit(completeHit))
	s.Require().NoError(err)
	s.Nil(result.LastModified)
	s.Nil(result.Author)
}

// =============================================================================
// Failures
// =============================================================================

func (s *BuilderSuite) TestRequiredFields() {
	s.Run("missing uri", func() {
		hit := s.parseHit(`<search:result xmlns:search="http://marklogic.com/appservices/search"/>`)

		_, err := s.builder.Build(s.ctx, hit)

		var missing *xmltools.MissingMetadataError
		s.Require().ErrorAs(err, &missing)
		s.Equal("uri", missing.Field)
	})

	s.Run("missing name", func() {
		hit := s.parseHit(`
<search:result xmlns:search="http://marklogic.com/appservices/search" uri="/uksc/2024/1.xml">
    <search:extracted/>
</search:result>`)

		_, err := s.builder.Build(s.ctx, hit)

		var missing *xmltools.MissingMetadataError
		s.Require().ErrorAs(err, &missing)
		s.Equal("name", missing.Field)
		s.Equal("uksc/2024/1", missing.URI)
	})
}

func (s *BuilderSuite) TestTransportErrorsPropagate() {
	transportErr := marklogic.NewTransportError(marklogic.ErrorTimeout, "get_last_modified", "request timed out", context.DeadlineExceeded)
	s.client.EXPECT().GetLastModified(gomock.Any(), gomock.Any()).Return("", transportErr)

	_, err := s.builder.Build(s.ctx, s.parseHit(completeHit))

	s.Require().Error(err)
	s.True(errors.Is(err, transportErr))
	s.Equal(marklogic.ErrorTimeout, marklogic.GetCategory(err))
}
