package groupdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/splitpot/splitpot/internal/domain"
	"github.com/splitpot/splitpot/pkg/errorspkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestCreateAPI(t *testing.T) {
	testGroup := domain.Group{Name: "trip", Members: []string{"a@x.com", "b@x.com"}}

	testCases := []struct {
		name          string
		requestBody   gin.H
		buildStubs    func(service *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name: "MissingMembers",
			requestBody: gin.H{
				"name": testGroup.Name,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "InvalidMemberEmail",
			requestBody: gin.H{
				"name":    testGroup.Name,
				"members": []string{"a@x.com", "not-an-email"},
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "Duplicate",
			requestBody: gin.H{
				"name":    testGroup.Name,
				"members": testGroup.Members,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(testGroup.Name), gomock.Eq(testGroup.Members)).
					Times(1).
					Return(domain.Group{}, domain.ErrDuplicateGroup)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusConflict, recorder.Code)
			},
		},
		{
			name: "InternalError",
			requestBody: gin.H{
				"name":    testGroup.Name,
				"members": testGroup.Members,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(testGroup.Name), gomock.Eq(testGroup.Members)).
					Times(1).
					Return(domain.Group{}, errorspkg.ErrStorage)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusInternalServerError, recorder.Code)
			},
		},
		{
			name: "OK",
			requestBody: gin.H{
				"name":    testGroup.Name,
				"members": testGroup.Members,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(testGroup.Name), gomock.Eq(testGroup.Members)).
					Times(1).
					Return(testGroup, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var res response
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
				require.Equal(t, testGroup, res.Data.Group)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			handler := NewHandler(service, NewMockLedger(ctrl))

			server := gin.Default()
			url := "/groups"
			server.POST(url, handler.Create)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			tc.checkResponse(recorder)
		})
	}
}

func TestBalancesAPI(t *testing.T) {
	testCases := []struct {
		name          string
		buildStubs    func(ledger *MockLedger)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name: "EmptyGroup",
			buildStubs: func(ledger *MockLedger) {
				ledger.EXPECT().
					GroupBalances(gomock.Any(), gomock.Eq("trip")).
					Times(1).
					Return(domain.Balance{}, domain.Detail{}, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var res responseBalances
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
				require.Empty(t, res.Data.Balances)
				require.Empty(t, res.Data.Detail)
			},
		},
		{
			name: "OK",
			buildStubs: func(ledger *MockLedger) {
				balances := domain.Balance{
					"a@x.com": decimal.NewFromInt(-60),
					"b@x.com": decimal.NewFromInt(30),
					"c@x.com": decimal.NewFromInt(30),
				}
				detail := domain.Detail{
					"b@x.com": {"a@x.com": decimal.NewFromInt(30)},
					"c@x.com": {"a@x.com": decimal.NewFromInt(30)},
				}

				ledger.EXPECT().
					GroupBalances(gomock.Any(), gomock.Eq("trip")).
					Times(1).
					Return(balances, detail, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var res responseBalances
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
				require.Equal(t, "-60.00", res.Data.Balances["a@x.com"])
				require.Equal(t, "30.00", res.Data.Balances["b@x.com"])
				require.Equal(t, "30.00", res.Data.Detail["b@x.com"]["a@x.com"])
			},
		},
		{
			name: "InternalError",
			buildStubs: func(ledger *MockLedger) {
				ledger.EXPECT().
					GroupBalances(gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil, nil, errorspkg.ErrStorage)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusInternalServerError, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ledger := NewMockLedger(ctrl)
			tc.buildStubs(ledger)

			handler := NewHandler(NewMockService(ctrl), ledger)

			server := gin.Default()
			server.GET("/groups/:name/balances", handler.Balances)

			req, err := http.NewRequest(http.MethodGet, "/groups/trip/balances", nil)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			tc.checkResponse(recorder)
		})
	}
}
