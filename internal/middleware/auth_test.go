package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/voltsbank/volts-bank/pkg/randompkg"
	"github.com/voltsbank/volts-bank/pkg/tokenpkg"
)

func TestAuthMiddleware(t *testing.T) {
	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	email := randompkg.Email()

	testCases := []struct {
		name           string
		setupAuth      func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker)
		wantStatusCode int
	}{
		{
			name: "NoAuthorization",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "InvalidAuthorizationFormat",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				AddAuthorization(t, request, tokenMaker, "", email, time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "UnsupportedAuthorizationType",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				AddAuthorization(t, request, tokenMaker, "unsupported", email, time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "ExpiredToken",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				AddAuthorization(t, request, tokenMaker, AuthorizationTypeBearer, email, -time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "OK",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				AddAuthorization(t, request, tokenMaker, AuthorizationTypeBearer, email, time.Minute)
			},
			wantStatusCode: http.StatusOK,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			server := gin.New()

			authPath := "/auth"
			server.GET(authPath, AuthMiddleware(tokenMaker), func(ctx *gin.Context) {
				payload := ctx.MustGet(AuthPayloadKey).(*tokenpkg.Payload)
				require.Equal(t, email, payload.Email)
				ctx.JSON(http.StatusOK, gin.H{})
			})

			recorder := httptest.NewRecorder()
			request, err := http.NewRequest(http.MethodGet, authPath, nil)
			require.NoError(t, err)

			tc.setupAuth(t, request, tokenMaker)
			server.ServeHTTP(recorder, request)

			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}
