package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/pkg/validator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validator.RegisterGinValidations(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

var (
	testLog     = logger.Discard()
	userPayload = domain.TokenPayload{
		Type:     domain.PayloadUser,
		UserID:   7,
		Email:    "jane@example.com",
		Username: "jane",
	}
	adminPayload = domain.TokenPayload{
		Type:     domain.PayloadAdmin,
		Email:    "root@example.com",
		Username: "root",
	}
)

// apiResponse mirrors the JSON envelope for assertions.
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
	Meta *struct {
		Page       int   `json:"page"`
		PageSize   int   `json:"page_size"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

func perform(t *testing.T, router http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	resp := decode(t, w)
	require.True(t, resp.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

// withPayload stands in for Authenticate in handler tests.
func withPayload(p domain.TokenPayload) gin.HandlerFunc {
	return func(c *gin.Context) {
		setPayload(c, &p)
		c.Next()
	}
}

func sampleUser(id int64, username string) *domain.User {
	hash := "$2a$10$secret"
	birthdate := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: &hash,
		Name:         "Jane",
		LastName:     "Doe",
		Birthdate:    &birthdate,
		CreatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}
