package command_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"cerebro/internal/command"
	"cerebro/internal/command/commandtest"
	"cerebro/pkg/retrylimit"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestWithStatus(t *testing.T) {
	busy := &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusBadGateway, Status: "502 Bad Gateway"}}

	err := command.WithStatus(fmt.Errorf("delete: %w", busy))
	var h retrylimit.HTTPError
	assert.True(t, errors.As(err, &h))
	assert.Equal(t, http.StatusBadGateway, h.StatusCode())
	assert.True(t, retrylimit.DefaultClassifier(err))
	assert.ErrorIs(t, err, busy)

	plain := errors.New("dial tcp: timeout")
	assert.Same(t, plain, command.WithStatus(plain))
	assert.Nil(t, command.WithStatus(nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, command.IsNotFound(commandtest.NotFound()))
	assert.False(t, command.IsNotFound(errors.New("404")))
}
