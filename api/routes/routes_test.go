package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/midnighthq/lottery-backend/internal/config"
	"github.com/midnighthq/lottery-backend/internal/handlers"
	"github.com/midnighthq/lottery-backend/internal/repositories/memory"
	"github.com/midnighthq/lottery-backend/internal/services"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.AllowedHosts = []string{"localhost:3000"}

	participantRepo := memory.NewParticipantRepository()
	restaurantRepo := memory.NewRestaurantRepository()
	drawRepo := memory.NewDrawRepository()
	ballotRepo := memory.NewBallotRepository()

	participantService := services.NewParticipantService(participantRepo, ballotRepo, drawRepo)
	restaurantService := services.NewRestaurantService(restaurantRepo)
	drawService := services.NewDrawService(drawRepo, participantRepo, time.UTC)
	ballotService := services.NewBallotService(ballotRepo, participantRepo, drawService)
	resolverService := services.NewResolverService(drawService, ballotService)

	return SetupRouter(cfg, HandlerDependencies{
		ParticipantHandler: handlers.NewParticipantHandler(participantService),
		RestaurantHandler:  handlers.NewRestaurantHandler(restaurantService),
		DrawHandler:        handlers.NewDrawHandler(drawService, ballotService, resolverService),
		BallotHandler:      handlers.NewBallotHandler(ballotService),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", recorder.Body.String(), err)
	}
	return payload
}

func TestHealthEndpoint(t *testing.T) {
	router := setupTestRouter(t)
	recorder := doJSON(t, router, http.MethodGet, "/api/v1/health", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
}

func TestParticipantEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("create returns 201", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/api/v1/participants", gin.H{
			"name":  "Alice",
			"email": "alice@example.com",
		})
		if recorder.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
		}
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/api/v1/participants", gin.H{
			"name":  "Alice Again",
			"email": "alice@example.com",
		})
		if recorder.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d: %s", recorder.Code, recorder.Body.String())
		}
	})

	t.Run("malformed email returns 400", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/api/v1/participants", gin.H{
			"name":  "Bob",
			"email": "not-an-email",
		})
		if recorder.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", recorder.Code, recorder.Body.String())
		}
	})

	t.Run("unknown participant returns 404", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodGet, "/api/v1/participants/65f000000000000000000000", nil)
		if recorder.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d: %s", recorder.Code, recorder.Body.String())
		}
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodGet, "/api/v1/participants/not-hex", nil)
		if recorder.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", recorder.Code, recorder.Body.String())
		}
	})
}

func TestDrawLifecycleOverHTTP(t *testing.T) {
	router := setupTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/participants", gin.H{
		"name":  "Alice",
		"email": "alice@example.com",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create participant: expected 201, got %d", recorder.Code)
	}
	participantID, _ := decode(t, recorder)["id"].(string)
	if participantID == "" {
		t.Fatal("expected a participant id in the response")
	}

	t.Run("casting before the draw opens returns 404", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/api/v1/ballots", gin.H{"participant_id": participantID})
		if recorder.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d: %s", recorder.Code, recorder.Body.String())
		}
	})

	t.Run("opening today's draw returns 201, twice returns 409", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/api/v1/draws", nil)
		if recorder.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
		}
		recorder = doJSON(t, router, http.MethodPost, "/api/v1/draws", nil)
		if recorder.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d: %s", recorder.Code, recorder.Body.String())
		}
	})

	t.Run("open draw reports pending status", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodGet, "/api/v1/draws/open", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		if status := decode(t, recorder)["status"]; status != "PENDING" {
			t.Errorf("expected PENDING, got %v", status)
		}
	})

	t.Run("casting into the open draw returns 201", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/api/v1/ballots", gin.H{"participant_id": participantID})
		if recorder.Code != http.StatusCreated {
			t.Errorf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
		}
	})

	t.Run("resolution selects the only entrant", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/api/v1/draws/resolve", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		payload := decode(t, recorder)
		if payload["outcome"] != "WINNER_SELECTED" {
			t.Errorf("expected WINNER_SELECTED, got %v", payload["outcome"])
		}
		if payload["winnerId"] != participantID {
			t.Errorf("expected winner %s, got %v", participantID, payload["winnerId"])
		}
	})

	t.Run("second resolution reports the recorded winner", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/api/v1/draws/resolve", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		payload := decode(t, recorder)
		if payload["outcome"] != "ALREADY_RESOLVED" {
			t.Errorf("expected ALREADY_RESOLVED, got %v", payload["outcome"])
		}
	})
}

func TestResolveWithoutBallotsOverHTTP(t *testing.T) {
	router := setupTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/draws", nil)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create draw: expected 201, got %d", recorder.Code)
	}

	recorder = doJSON(t, router, http.MethodPost, "/api/v1/draws/resolve", nil)
	if recorder.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d: %s", recorder.Code, recorder.Body.String())
	}

	// The draw for the next day was still opened, so the ledger holds two.
	recorder = doJSON(t, router, http.MethodGet, "/api/v1/draws", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("list draws: expected 200, got %d", recorder.Code)
	}
	var draws []map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &draws); err != nil {
		t.Fatalf("decode draws: %v", err)
	}
	if len(draws) != 2 {
		t.Errorf("expected 2 draws, got %d", len(draws))
	}
}
