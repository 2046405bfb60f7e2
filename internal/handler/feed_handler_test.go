package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"candidature-api/internal/domain"
	"candidature-api/internal/metrics"
	"candidature-api/internal/realtime"
	"candidature-api/internal/response"
	"candidature-api/internal/session"
)

func setupFeedServer(t *testing.T, hub realtime.Hub, m *metrics.Metrics, candidature *domain.Candidature, sess *session.Session) *httptest.Server {
	t.Helper()
	svc := &MockCandidatureService{
		GetCandidatureFunc: func(_ context.Context, sess *session.Session, id uuid.UUID) (*domain.Candidature, error) {
			if id != candidature.ID {
				return nil, notFound()
			}
			if !sess.CanAccessRegion(candidature.Region) {
				return nil, response.NewForbiddenError("Candidature is outside your region", "")
			}
			return candidature, nil
		},
	}
	h := NewFeedHandler(hub, svc, m, zap.NewNop())
	r := gin.New()
	r.Use(withSession(sess))
	r.GET("/candidatures/:id/feed", h.Subscribe)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestFeedHandler_StreamsPublishedEvents(t *testing.T) {
	hub := realtime.NewLocalHub()
	candidature := &domain.Candidature{BaseModel: domain.BaseModel{ID: uuid.New()}, Region: domain.Bilingual{FR: "Sfax", AR: "صفاقس"}}
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), nil)
	srv := setupFeedServer(t, hub, m, candidature, adminSession())

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/candidatures/"+candidature.ID.String()+"/feed"), nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	payload := `{"type":"submission.created","candidatureId":"` + candidature.ID.String() + `"}`
	require.NoError(t, hub.Publish(context.Background(), candidature.ID.String(), []byte(payload)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	msgType, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, msgType)
	assert.JSONEq(t, payload, string(msg))

	gauge := &dto.Metric{}
	require.NoError(t, m.FeedConnections.Write(gauge))
	assert.Equal(t, float64(1), gauge.GetGauge().GetValue())
}

func TestFeedHandler_Rejections(t *testing.T) {
	candidature := &domain.Candidature{BaseModel: domain.BaseModel{ID: uuid.New()}, Region: domain.Bilingual{FR: "Sfax", AR: "صفاقس"}}
	tunis := &session.Session{UserID: uuid.New(), Role: session.RoleRegionalCoordinator, Region: "Tunis"}
	sfaxAR := &session.Session{UserID: uuid.New(), Role: session.RoleRegionalCoordinator, Region: "صفاقس"}

	tests := []struct {
		name       string
		sess       *session.Session
		path       string
		wantStatus int
	}{
		{"no session", nil, "/candidatures/" + candidature.ID.String() + "/feed", http.StatusUnauthorized},
		{"invalid id", adminSession(), "/candidatures/nope/feed", http.StatusBadRequest},
		{"unknown candidature", adminSession(), "/candidatures/" + uuid.NewString() + "/feed", http.StatusNotFound},
		{"other region", tunis, "/candidatures/" + candidature.ID.String() + "/feed", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := setupFeedServer(t, realtime.NewLocalHub(), nil, candidature, tt.sess)

			_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, tt.path), nil)
			require.ErrorIs(t, err, websocket.ErrBadHandshake)
			require.NotNil(t, resp)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	t.Run("region matched in arabic", func(t *testing.T) {
		srv := setupFeedServer(t, realtime.NewLocalHub(), nil, candidature, sfaxAR)

		conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/candidatures/"+candidature.ID.String()+"/feed"), nil)
		require.NoError(t, err)
		conn.Close()
	})
}
