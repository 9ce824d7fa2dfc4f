package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"sulfurwatch/internal/emission/handler/mocks"
	"sulfurwatch/internal/emission/models"
	"sulfurwatch/pkg/testutil"

	dErrors "sulfurwatch/pkg/domain-errors"
)

type EmissionHandlerSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	ledger *mocks.MockService
	router chi.Router
}

func TestEmissionHandlerSuite(t *testing.T) {
	suite.Run(t, new(EmissionHandlerSuite))
}

func (s *EmissionHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ledger = mocks.NewMockService(s.ctrl)
	s.router = chi.NewRouter()
	New(s.ledger, nil).Register(s.router)
}

func (s *EmissionHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *EmissionHandlerSuite) TestRecord() {
	s.Run("returns the recorded reading", func() {
		reading := models.NewReading(uuid.New(), "IMO1234567", 150, "Baltic Sea", true, time.Now())
		s.ledger.EXPECT().RecordEmission(gomock.Any(), "IMO1234567", uint64(150), "Baltic Sea", true).Return(reading, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/emissions", map[string]any{
			"vessel_id": "IMO1234567", "sulfur_content": 150, "position": "Baltic Sea", "is_eca": true,
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		testutil.AssertJSONContains(s.T(), rr, "is_compliant", false)
	})

	s.Run("unregistered vessel is unprocessable", func() {
		s.ledger.EXPECT().RecordEmission(gomock.Any(), "UNKNOWN123", uint64(10), "", false).
			Return(nil, dErrors.New(dErrors.CodeVesselNotRegistered, "vessel is not registered"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/emissions", map[string]any{
			"vessel_id": "UNKNOWN123", "sulfur_content": 10,
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "vessel_not_registered")
		testutil.AssertErrorDescription(s.T(), rr, "not registered")
	})

	s.Run("alert failure is service unavailable", func() {
		s.ledger.EXPECT().RecordEmission(gomock.Any(), "IMO1", uint64(600), "", false).
			Return(nil, dErrors.New(dErrors.CodeAlertWriteFailed, "failed to record compliance alert"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/emissions", map[string]any{
			"vessel_id": "IMO1", "sulfur_content": 600,
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusServiceUnavailable, "alert_write_failed")
	})

	s.Run("missing sulfur content is a validation error", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/emissions", map[string]any{"vessel_id": "IMO1"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("negative sulfur content is rejected", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/emissions", `{"vessel_id":"IMO1","sulfur_content":-5}`)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("client-supplied timestamp is rejected", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/emissions",
			`{"vessel_id":"IMO1","sulfur_content":5,"timestamp":"2020-01-01T00:00:00Z"}`)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *EmissionHandlerSuite) TestHistory() {
	s.Run("returns readings in order", func() {
		now := time.Now()
		readings := []*models.Reading{
			models.NewReading(uuid.New(), "IMO1", 10, "A", true, now),
			models.NewReading(uuid.New(), "IMO1", 20, "B", true, now),
		}
		s.ledger.EXPECT().GetHistory(gomock.Any(), "IMO1").Return(readings, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/vessels/IMO1/emissions"))

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[historyResponse](s.T(), rr)
		s.Require().Len(resp.Readings, 2)
		s.Equal(uint64(10), resp.Readings[0].SulfurContent)
		s.Equal(uint64(20), resp.Readings[1].SulfurContent)
	})

	s.Run("unknown vessel has empty history", func() {
		s.ledger.EXPECT().GetHistory(gomock.Any(), "UNKNOWN123").Return([]*models.Reading{}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/vessels/UNKNOWN123/emissions"))

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[historyResponse](s.T(), rr)
		s.Empty(resp.Readings)
	})
}
