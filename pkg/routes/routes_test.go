package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DedS3t/monopoly-auction/app/controllers"
	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/DedS3t/monopoly-auction/pkg"
	"github.com/DedS3t/monopoly-auction/platform/config"
	"github.com/DedS3t/monopoly-auction/platform/simulator"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const assignment = `{"games": 5, "players": [
	{"name": "P1", "money": 1500, "properties": ["Park Place", "Boardwalk"]},
	{"name": "P2", "money": 1500, "properties": []}
]}`

func simulateRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/simulate", strings.NewReader(assignment))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestSimulateNeedsToken(t *testing.T) {
	ctl := &controllers.Controller{
		Config:    config.Config{JWTSecret: "test", SimulationGames: 5},
		Simulator: simulator.Simulator{Workers: 2, Seed: 1},
		Log:       logrus.NewEntry(logrus.New()),
	}
	app := fiber.New()
	Register(app, ctl)

	resp, err := app.Test(simulateRequest(""), -1)
	require.NoError(t, err)
	assert.NotEqual(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(simulateRequest("not-a-token"), -1)
	require.NoError(t, err)
	assert.NotEqual(t, fiber.StatusOK, resp.StatusCode)

	token, err := pkg.NewToken("test", models.Participant{User_id: "u-1", Game_id: "ROOM", Name: "Alice"})
	require.NoError(t, err)
	resp, err = app.Test(simulateRequest(token), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
