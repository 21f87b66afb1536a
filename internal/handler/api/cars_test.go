//go:build unit

package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"carrental/internal/domain/cartype"
	"carrental/internal/handler/api"
	queriesmock "carrental/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CarsHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockCatalog      *queriesmock.MockCarTypeReader
	mockAvailability *queriesmock.MockAvailabilityQueries
	handler          *api.CarsHandler
}

func (s *CarsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCatalog = queriesmock.NewMockCarTypeReader(s.mockCtrl)
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewCarsHandler(s.mockCatalog, s.mockAvailability)

	s.router.GET("/api/cars/types", s.handler.ListTypes)
	s.router.GET("/api/cars/types/:typeId", s.handler.GetType)
	s.router.GET("/api/cars/search", s.handler.Search)
}

func (s *CarsHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCarsHandlerSuite(t *testing.T) {
	suite.Run(t, new(CarsHandlerTestSuite))
}

func (s *CarsHandlerTestSuite) get(url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *CarsHandlerTestSuite) sedan() *cartype.CarType {
	ct, err := cartype.NewCarType("SEDAN", "Sedan", "Comfortable four-door", 5000, "EUR", 3, "", nil)
	s.Require().NoError(err)
	return ct
}

func (s *CarsHandlerTestSuite) TestListTypes() {
	s.mockCatalog.EXPECT().FindAll(gomock.Any()).
		Return([]*cartype.CarType{s.sedan()}, nil).Times(1)

	rec := s.get("/api/cars/types")

	s.Equal(http.StatusOK, rec.Code)
	var got []map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got, 1)
	s.Equal("SEDAN", got[0]["typeId"])
	s.EqualValues(3, got[0]["totalQuantity"])
}

func (s *CarsHandlerTestSuite) TestGetType() {
	s.Run("without a window only the catalog entry is returned", func() {
		s.mockCatalog.EXPECT().FindByID(gomock.Any(), "SEDAN").Return(s.sedan(), nil).Times(1)

		rec := s.get("/api/cars/types/SEDAN")

		s.Equal(http.StatusOK, rec.Code)
		s.NotContains(rec.Body.String(), "available")
	})

	s.Run("with a window availability and an estimate are included", func() {
		s.mockCatalog.EXPECT().FindByID(gomock.Any(), "SEDAN").Return(s.sedan(), nil).Times(1)
		s.mockAvailability.EXPECT().
			ForType(gomock.Any(), gomock.Any(), gomock.Any(), false).
			Return(2, nil).Times(1)

		rec := s.get("/api/cars/types/SEDAN?from=2025-06-02T10:00:00Z&to=2025-06-04T10:00:00Z")

		s.Equal(http.StatusOK, rec.Code)
		var got map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.EqualValues(2, got["available"])
		// two whole days at 5000 cents
		s.EqualValues(10000, got["estimatedTotal"])
	})

	s.Run("bypassCache is forwarded to the query", func() {
		s.mockCatalog.EXPECT().FindByID(gomock.Any(), "SEDAN").Return(s.sedan(), nil).Times(1)
		s.mockAvailability.EXPECT().
			ForType(gomock.Any(), gomock.Any(), gomock.Any(), true).
			Return(3, nil).Times(1)

		rec := s.get("/api/cars/types/SEDAN?from=2025-06-02T10:00:00Z&to=2025-06-04T10:00:00Z&bypassCache=true")

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("400 when to is not after from", func() {
		s.mockCatalog.EXPECT().FindByID(gomock.Any(), "SEDAN").Return(s.sedan(), nil).Times(1)

		rec := s.get("/api/cars/types/SEDAN?from=2025-06-04T10:00:00Z&to=2025-06-02T10:00:00Z")

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *CarsHandlerTestSuite) TestSearch() {
	s.Run("returns availability and estimates per type", func() {
		s.mockAvailability.EXPECT().
			AllTypes(gomock.Any(), gomock.Any()).
			Return(map[string]int{"SEDAN": 2}, nil).Times(1)
		s.mockCatalog.EXPECT().FindAll(gomock.Any()).
			Return([]*cartype.CarType{s.sedan()}, nil).Times(1)

		rec := s.get("/api/cars/search?from=2025-06-02T10:00:00Z&to=2025-06-04T10:00:00Z")

		s.Equal(http.StatusOK, rec.Code)
		var got map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		items := got["items"].([]any)
		s.Require().Len(items, 1)
		item := items[0].(map[string]any)
		s.EqualValues(2, item["available"])
		s.EqualValues(10000, item["estimatedTotal"])
	})

	s.Run("400 when from or to is missing", func() {
		rec := s.get("/api/cars/search?from=2025-06-02T10:00:00Z")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
