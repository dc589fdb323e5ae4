package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubCatalog struct {
	err   error
	calls int
}

func (s *stubCatalog) Reload(context.Context) error {
	s.calls++
	return s.err
}

func (s *stubCatalog) Len() int { return 12 }

func TestReloadMessages(t *testing.T) {
	cat := &stubCatalog{}
	app := fiber.New()
	app.Post("/admin/messages/reload", NewAdminController(cat).ReloadMessages)

	status, body := do(t, app, http.MethodPost, "/admin/messages/reload", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 12.0, body["count"])
	assert.Equal(t, 1, cat.calls)

	cat.err = errors.New("mongo down")
	status, _ = do(t, app, http.MethodPost, "/admin/messages/reload", "")
	assert.Equal(t, http.StatusInternalServerError, status)
}
