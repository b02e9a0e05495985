package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/order"
)

func TestHandlePlaceOrder(t *testing.T) {
	contestID := uuid.New()

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockOrderService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			body: `{"user_id":"alice","contest_id":"` + contestID.String() + `","tier_ids":["slot-1","slot-3"],"custom_values":["102.5"]}`,
			setupMock: func(m *MockOrderService) {
				m.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(in order.PlaceOrderInput) bool {
					return in.UserID == "alice" && in.ContestID == contestID &&
						len(in.TierIDs) == 2 && len(in.CustomValues) == 1 &&
						in.CustomValues[0].Equal(decimal.RequireFromString("102.5"))
				})).Return(&domain.Order{ID: uuid.New(), Status: domain.OrderStatusPending}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"status":"pending"`,
		},
		{
			name:           "Missing Contest",
			body:           `{"user_id":"alice","tier_ids":["slot-1"]}`,
			setupMock:      func(m *MockOrderService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"contestid":"This field is required"`,
		},
		{
			name:           "Duplicate Tier",
			body:           `{"user_id":"alice","contest_id":"` + contestID.String() + `","tier_ids":["slot-1","slot-1"]}`,
			setupMock:      func(m *MockOrderService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name: "Slot Full",
			body: `{"user_id":"alice","contest_id":"` + contestID.String() + `","tier_ids":["slot-1"]}`,
			setupMock: func(m *MockOrderService) {
				m.On("PlaceOrder", mock.Anything, mock.Anything).Return(nil, domain.ErrSlotFull)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgSlotFullError,
		},
		{
			name: "Contest Not Active",
			body: `{"user_id":"alice","contest_id":"` + contestID.String() + `","tier_ids":["slot-1"]}`,
			setupMock: func(m *MockOrderService) {
				m.On("PlaceOrder", mock.Anything, mock.Anything).Return(nil, domain.ErrContestNotActive)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgContestNotActiveError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockOrderService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			NewOrderHandler(svc).HandlePlaceOrder(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleConfirmPayment(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("ConfirmPayment", mock.Anything, id, "pay_123").
			Return(&domain.Order{ID: id, Status: domain.OrderStatusProcessing}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/confirm?id="+id.String(),
			bytes.NewBufferString(`{"payment_reference":"pay_123"}`))
		w := httptest.NewRecorder()
		NewOrderHandler(svc).HandleConfirmPayment(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"processing"`)
		svc.AssertExpectations(t)
	})

	t.Run("Already Confirmed", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("ConfirmPayment", mock.Anything, id, "pay_123").Return(nil, domain.ErrInvalidOrderState)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/confirm?id="+id.String(),
			bytes.NewBufferString(`{"payment_reference":"pay_123"}`))
		w := httptest.NewRecorder()
		NewOrderHandler(svc).HandleConfirmPayment(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Missing Reference", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/confirm?id="+id.String(), bytes.NewBufferString(`{}`))
		w := httptest.NewRecorder()
		NewOrderHandler(new(MockOrderService)).HandleConfirmPayment(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "paymentreference")
	})
}

func TestHandleCancelAndGetOrder(t *testing.T) {
	id := uuid.New()
	svc := new(MockOrderService)
	svc.On("CancelOrder", mock.Anything, id).Return(&domain.Order{ID: id, Status: domain.OrderStatusCancelled}, nil)
	svc.On("GetOrder", mock.Anything, id).Return(nil, domain.ErrOrderNotFound)
	h := NewOrderHandler(svc)

	w := httptest.NewRecorder()
	h.HandleCancelOrder(w, httptest.NewRequest(http.MethodPost, "/api/v1/orders/cancel?id="+id.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"cancelled"`)

	w = httptest.NewRecorder()
	h.HandleGetOrder(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/get?id="+id.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgOrderNotFoundError)
}

func TestHandleListOrders(t *testing.T) {
	contestID := uuid.New()

	t.Run("By Contest", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("ListOrders", mock.Anything, domain.OrderFilter{ContestID: &contestID}).
			Return([]domain.Order{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

		w := httptest.NewRecorder()
		NewOrderHandler(svc).HandleListOrders(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders?contest_id="+contestID.String(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("By User", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("ListOrders", mock.Anything, domain.OrderFilter{UserID: "alice", Limit: 5}).Return([]domain.Order{}, nil)

		w := httptest.NewRecorder()
		NewOrderHandler(svc).HandleListOrders(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders?user_id=alice&limit=5", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())
	})

	t.Run("No Filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewOrderHandler(new(MockOrderService)).HandleListOrders(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgOrderFilterNeeded)
	})

	t.Run("Bad Contest ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewOrderHandler(new(MockOrderService)).HandleListOrders(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders?contest_id=nope", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
