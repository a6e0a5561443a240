package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-compass/internal/domain"
	"career-compass/internal/llm"
	"career-compass/internal/repository"
	"career-compass/internal/service"
)

type testApp struct {
	router *gin.Engine
	store  *repository.MemoryDocumentStore
	career *service.CareerService
}

// newTestApp arma el router completo sobre un store en memoria y el oraculo indicado.
func newTestApp(oracle llm.LLMClient, origins ...string) testApp {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	store := repository.NewMemoryDocumentStore()
	client := service.NewOracleClient(oracle, logger)
	users := repository.NewDocUserRepository(store)

	userSvc := service.NewUserService(logger, users)
	quizSvc := service.NewQuizService(logger, users, repository.NewDocTranscriptRepository(store), client, nil)
	profileSvc := service.NewProfileService(logger, client, repository.NewDocProfileRepository(store))
	careerSvc := service.NewCareerService(logger, client, repository.NewDocCareerAdviceRepository(store))
	careerSvc.SetRetryPolicy(3, time.Millisecond)
	skillSvc := service.NewSkillGapService(logger, client, repository.NewDocSkillAnalysisRepository(store), service.NewMemorySkillCache(0))

	r := NewRouter(logger, RouterConfig{ServiceName: "career-compass-test", AllowedOrigins: origins},
		NewUserHandler(logger, userSvc),
		NewQuizHandler(logger, quizSvc),
		NewProfileHandler(logger, profileSvc),
		NewCareerHandler(logger, careerSvc),
		NewSkillHandler(logger, skillSvc),
	)
	return testApp{router: r, store: store, career: careerSvc}
}

func performRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var env ErrorEnvelope
	decodeBody(t, rec, &env)
	return env.Error
}

var ashaUser = map[string]string{
	"userId":   "asha",
	"name":     "Asha",
	"stage":    "Class 12",
	"locale":   "Pune",
	"language": "English",
}

func registerAsha(t *testing.T, r http.Handler) {
	t.Helper()
	rec := performRequest(r, http.MethodPost, "/users", ashaUser)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func ashaProfile() domain.TraitProfile {
	return domain.TraitProfile{
		CoreMotivators:       []string{"Helping Others"},
		ProblemSolvingStyle:  "Analytical",
		PreferredEnvironment: "Team",
		KeyAptitudes:         []string{"Empathy"},
		Interests:            []string{"Health"},
		PersonalitySummary:   "Kind and curious.",
	}
}
