//go:build unit

package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"carrental/internal/domain/booking"
	"carrental/internal/handler/api"
	"carrental/internal/usecase/commands"
	"carrental/internal/usecase/queries"
	commandsmock "carrental/tests/mock/commands"
	queriesmock "carrental/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockBookings *queriesmock.MockBookingQueries
	mockStats    *queriesmock.MockStatsQueries
	handler      *api.AdminHandler
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockBookings = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.mockStats = queriesmock.NewMockStatsQueries(s.mockCtrl)
	s.handler = api.NewAdminHandler(s.mockCommands, s.mockBookings, s.mockStats)

	s.router.GET("/api/admin/bookings", s.handler.ListBookings)
	s.router.POST("/api/admin/bookings/:id/confirm", s.handler.ConfirmBooking)
	s.router.POST("/api/admin/bookings/:id/reject", s.handler.RejectBooking)
	s.router.GET("/api/admin/stats", s.handler.Stats)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

const adminWindow = "from=2025-06-01T00:00:00Z&to=2025-06-08T00:00:00Z"

func (s *AdminHandlerTestSuite) TestListBookings() {
	s.Run("lists bookings with contact details", func() {
		phone := "+33123456789"
		s.mockBookings.EXPECT().
			ListForAdmin(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).
			Return([]queries.AdminBookingItem{{
				BookingID: uuid.New(),
				Status:    booking.StatusToConfirm.String(),
				UserEmail: "alice@example.com",
				UserPhone: &phone,
				TypeID:    "SEDAN",
			}}, nil).Times(1)

		rec := s.get("/api/admin/bookings?" + adminWindow)

		s.Equal(http.StatusOK, rec.Code)
		var got map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.EqualValues(1, got["count"])
		s.Contains(rec.Body.String(), "alice@example.com")
	})

	s.Run("status filter is forwarded", func() {
		s.mockBookings.EXPECT().
			ListForAdmin(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, status *booking.Status, _, _ time.Time) ([]queries.AdminBookingItem, error) {
				s.Require().NotNil(status)
				s.Equal(booking.StatusToConfirm, *status)
				return nil, nil
			}).Times(1)

		rec := s.get("/api/admin/bookings?status=TO_CONFIRM&" + adminWindow)

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("400 on an unknown status", func() {
		rec := s.get("/api/admin/bookings?status=TELEPORTED&" + adminWindow)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("400 when the window is missing", func() {
		rec := s.get("/api/admin/bookings")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *AdminHandlerTestSuite) TestConfirmBooking() {
	id := uuid.New()
	url := "/api/admin/bookings/" + id.String() + "/confirm"

	s.Run("confirms with the assigned car", func() {
		s.mockCommands.EXPECT().
			Confirm(gomock.Any(), id, "B-123-CD").
			Return(&commands.ConfirmResult{
				Status:                booking.StatusBooked,
				CarRegistrationNumber: "B-123-CD",
			}, nil).Times(1)

		rec := s.postJSON(url, `{"carRegistrationNumber":"B-123-CD"}`)

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "BOOKED")
		s.Contains(rec.Body.String(), "B-123-CD")
	})

	s.Run("400 without a registration number", func() {
		rec := s.postJSON(url, `{}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("400 INVALID_STATE when not pending", func() {
		s.mockCommands.EXPECT().
			Confirm(gomock.Any(), id, "B-123-CD").
			Return(nil, commands.ErrInvalidState).Times(1)

		rec := s.postJSON(url, `{"carRegistrationNumber":"B-123-CD"}`)

		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "INVALID_STATE")
	})

	s.Run("404 on an unknown booking", func() {
		s.mockCommands.EXPECT().
			Confirm(gomock.Any(), id, "B-123-CD").
			Return(nil, commands.ErrBookingNotFound).Times(1)

		rec := s.postJSON(url, `{"carRegistrationNumber":"B-123-CD"}`)

		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *AdminHandlerTestSuite) TestRejectBooking() {
	id := uuid.New()

	s.mockCommands.EXPECT().
		Reject(gomock.Any(), id).
		Return(booking.StatusRejected, nil).Times(1)

	rec := s.postJSON("/api/admin/bookings/"+id.String()+"/reject", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "REJECTED")
}

func (s *AdminHandlerTestSuite) TestStats() {
	s.Run("returns per-type utilization", func() {
		s.mockStats.EXPECT().
			UtilizationByType(gomock.Any(), gomock.Any()).
			Return([]queries.TypeStats{{
				TypeID:                 "SEDAN",
				HoursBookedPast:        24,
				HoursBookedFuture:      12,
				PastUtilizationPercent: 25,
			}}, nil).Times(1)

		rec := s.get("/api/admin/stats?" + adminWindow)

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "pastUtilizationPercent")
	})

	s.Run("400 on a reversed window", func() {
		rec := s.get("/api/admin/stats?from=2025-06-08T00:00:00Z&to=2025-06-01T00:00:00Z")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *AdminHandlerTestSuite) get(url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *AdminHandlerTestSuite) postJSON(url, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}
