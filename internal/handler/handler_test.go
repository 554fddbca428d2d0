package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"propertychat/internal/config"
	"propertychat/internal/model"
	"propertychat/internal/repository"
	"propertychat/internal/service"
	"propertychat/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router    *gin.Engine
	repo      *repository.MemoryRepository
	analytics *service.Analytics
}

// newTestServer wires the API on the seeded in-memory repository. completer may be nil,
// in which case every message goes through the keyword heuristic.
func newTestServer(t *testing.T, completer service.ChatCompleter) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewSeededMemoryRepository()
	analytics := service.NewAnalytics(repo)
	t.Cleanup(analytics.Wait)

	extractor := service.NewIntentExtractor(completer, config.DefaultLocation, time.Second)
	dispatcher := service.NewSearchDispatcher(repo, analytics, config.DefaultLocation, 20)
	chat := service.NewChatService(repo, extractor, dispatcher, session.NewMemoryTracker(time.Hour))
	properties := service.NewPropertyService(repo, analytics, nil, 20, 100)

	router := gin.New()
	RegisterRoutes(router.Group("/api"),
		NewPropertyHandler(properties),
		NewEmbeddingHandler(properties, 3),
		NewChatHandler(chat),
	)

	return &testServer{router: router, repo: repo, analytics: analytics}
}

func (s *testServer) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func TestPropertyEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantIDs    []int64
	}{
		{name: "list", path: "/api/properties", wantStatus: http.StatusOK, wantIDs: []int64{1, 2, 3, 4, 5}},
		{name: "search", path: "/api/properties/search/condo", wantStatus: http.StatusOK, wantIDs: []int64{5}},
		{name: "search with location", path: "/api/properties/search/home?location=Vancouver,%20BC&limit=2", wantStatus: http.StatusOK, wantIDs: []int64{1, 2}},
		{name: "search elsewhere", path: "/api/properties/search/home?location=Toronto", wantStatus: http.StatusOK, wantIDs: []int64{}},
		{name: "by location", path: "/api/properties/location/Vancouver?limit=1", wantStatus: http.StatusOK, wantIDs: []int64{1}},
		{name: "bad limit", path: "/api/properties/location/Vancouver?limit=ten", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodGet, tt.path, "", nil)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantIDs == nil {
				return
			}

			var got []model.Property
			decode(t, w, &got)
			ids := []int64{}
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestGetProperty(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/api/properties/2", "", map[string]string{"X-Session-Id": "s9"})
	require.Equal(t, http.StatusOK, w.Code)
	var p model.Property
	decode(t, w, &p)
	assert.Equal(t, "1456 Fraser Street", p.Address)

	w = s.do(http.MethodGet, "/api/properties/3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/properties/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var msg map[string]string
	decode(t, w, &msg)
	assert.NotEmpty(t, msg["message"])

	w = s.do(http.MethodGet, "/api/properties/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.analytics.Wait()
	views := s.repo.PropertyViews()
	require.Len(t, views, 2)
	sessions := []string{views[0].SessionID, views[1].SessionID}
	assert.ElementsMatch(t, []string{"s9", "anonymous"}, sessions)
}

func TestChatEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/api/chat", `{"message":"Any condo for sale?","sessionId":"s1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp model.ChatResponse
	decode(t, w, &resp)
	assert.True(t, resp.SearchPerformed)
	require.NotNil(t, resp.Message)
	assert.False(t, resp.Message.IsUser)
	assert.Equal(t, "s1", resp.Message.SessionID)
	assert.NotNil(t, resp.Properties)

	w = s.do(http.MethodGet, "/api/chat/s1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []model.ChatMessage
	decode(t, w, &history)
	require.Len(t, history, 2)
	assert.True(t, history[0].IsUser)
	assert.False(t, history[1].IsUser)

	w = s.do(http.MethodGet, "/api/sessions/s1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sess model.Session
	decode(t, w, &sess)
	assert.Equal(t, "s1", sess.SessionID)

	w = s.do(http.MethodGet, "/api/sessions/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatEndpoint_Validation(t *testing.T) {
	s := newTestServer(t, nil)

	for _, body := range []string{
		`{}`,
		`{"message":"hi"}`,
		`{"sessionId":"s1"}`,
		`{"message":"   ","sessionId":"s1"}`,
		`not json`,
	} {
		w := s.do(http.MethodPost, "/api/chat", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)

		var msg map[string]string
		decode(t, w, &msg)
		assert.NotEmpty(t, msg["message"], body)
	}

	w := s.do(http.MethodGet, "/api/chat/s1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

// llmServer answers every chat completion with content
func llmServer(t *testing.T, content string) *service.OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := service.ChatCompletionResponse{
			Choices: []service.ChatChoice{{Message: service.ChatMessage{Role: "assistant", Content: content}}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	return service.NewOpenAIClient(&config.OpenAIConfig{
		APIKey:  "test",
		APIBase: srv.URL,
		Timeout: 5,
		Enabled: true,
	})
}

func TestChatEndpoint_CondosOnCommercialDrive(t *testing.T) {
	s := newTestServer(t, llmServer(t, `{"response":"Here you go!","shouldSearchProperties":true,"searchQuery":"condo","searchLocation":"Commercial Drive","intent":"search_properties"}`))

	var condoID int64
	for _, p := range []model.Property{
		{Address: "1820 Commercial Drive", City: "Vancouver", Neighborhood: "Commercial Drive", Description: "Corner suite.", PropertyType: "condo"},
		{Address: "1788 Commercial Drive", City: "Vancouver", Neighborhood: "Commercial Drive", Description: "Heritage house.", PropertyType: "house"},
	} {
		p := p
		created, err := s.repo.CreateProperty(t.Context(), &p)
		require.NoError(t, err)
		if p.PropertyType == "condo" {
			condoID = created.ID
		}
	}

	body, _ := json.Marshal(model.ChatRequest{Message: "Show me condos in Commercial Drive", SessionID: "s1", UserLocation: "Vancouver, BC"})
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp model.ChatResponse
	decode(t, w, &resp)
	assert.True(t, resp.SearchPerformed)
	assert.Equal(t, "Here you go!", resp.Message.Message)
	require.Len(t, resp.Properties, 1)
	assert.Equal(t, condoID, resp.Properties[0].ID)
	assert.Equal(t, "condo", resp.Properties[0].PropertyType)
}

func TestEmbeddingEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/api/properties/embeddings", `{"embeddings":[{"propertyId":1,"embedding":[0.1,0.2,0.3]}]}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp model.EmbeddingBatchResponse
	decode(t, w, &resp)
	assert.Equal(t, 1, resp.Success)
	assert.Zero(t, resp.Failed)

	w = s.do(http.MethodPost, "/api/properties/embeddings", `{"embeddings":[{"propertyId":1,"embedding":[0.1,0.2,0.3]},{"propertyId":77,"embedding":[1,2,3]}]}`, nil)
	require.Equal(t, http.StatusPartialContent, w.Code, w.Body.String())
	decode(t, w, &resp)
	assert.Equal(t, 1, resp.Success)
	assert.Equal(t, 1, resp.Failed)

	w = s.do(http.MethodPost, "/api/properties/embeddings", `{"embeddings":[{"propertyId":1,"embedding":[0.1]}]}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/properties/embeddings", `{"embeddings":[]}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
