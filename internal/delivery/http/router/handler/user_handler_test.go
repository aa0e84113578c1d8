package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"citynav/internal/delivery/http/response"
	"citynav/internal/delivery/http/validator"
	"citynav/internal/domain/entity"
	"citynav/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserUsecase struct {
	registerOut *usecase.RegisterOutput
	loginOut    *usecase.LoginOutput
	err         error

	lastRegister *usecase.RegisterUserInput
}

func (f *fakeUserUsecase) RegisterUser(_ context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	f.lastRegister = input
	if f.err != nil {
		return nil, f.err
	}

	return f.registerOut, nil
}

func (f *fakeUserUsecase) Login(_ context.Context, _ *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.loginOut, nil
}

// newTestContext builds an echo context with the production validator attached.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope
}

func TestUserHandler_RegisterUser(t *testing.T) {
	user := &entity.User{
		ID:    uuid.New(),
		Name:  "Aung",
		Email: "aung@example.com",
		Roles: entity.Roles{entity.RoleUser},
	}
	uc := &fakeUserUsecase{registerOut: &usecase.RegisterOutput{User: user}}
	h := NewUserHandler(uc, slog.Default())

	c, rec := newTestContext(http.MethodPost, "/auth/register",
		`{"name":"Aung","email":"Aung@Example.com","password":"supersecret"}`)

	require.NoError(t, h.RegisterUser(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
	require.NotNil(t, uc.lastRegister)
	assert.Equal(t, "Aung@Example.com", uc.lastRegister.Email)
}

func TestUserHandler_RegisterUser_RejectsShortPassword(t *testing.T) {
	uc := &fakeUserUsecase{}
	h := NewUserHandler(uc, slog.Default())

	c, rec := newTestContext(http.MethodPost, "/auth/register",
		`{"name":"Aung","email":"aung@example.com","password":"short"}`)

	require.NoError(t, h.RegisterUser(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
	assert.Nil(t, uc.lastRegister)
}

func TestUserHandler_Login(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "aung@example.com", Roles: entity.Roles{entity.RoleUser}}
	uc := &fakeUserUsecase{loginOut: &usecase.LoginOutput{AccessToken: "token-abc", User: user}}
	h := NewUserHandler(uc, slog.Default())

	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"email":"aung@example.com","password":"supersecret"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "token-abc", data["access_token"])
}

func TestUserHandler_Login_RequiresEmail(t *testing.T) {
	h := NewUserHandler(&fakeUserUsecase{}, slog.Default())

	c, rec := newTestContext(http.MethodPost, "/auth/login", `{"password":"supersecret"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
