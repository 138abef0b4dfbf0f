package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dkeye/planningpoker/internal/app"
	"github.com/dkeye/planningpoker/internal/config"
	"github.com/dkeye/planningpoker/internal/core"
	"github.com/dkeye/planningpoker/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

type RouterTestSuite struct {
	suite.Suite
	hub    *app.Hub
	engine *gin.Engine
	srv    *httptest.Server
	cancel context.CancelFunc
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	dir := s.T().TempDir()
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>poker</html>"), 0o600))
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o600))

	cfg := &config.Config{
		Mode:       "test",
		StaticPath: dir,
		Secret:     "0123456789abcdef0123456789abcdef",
		ReadLimit:  4096,
		PongWait:   10 * time.Second,
		PingPeriod: 5 * time.Second,
		WriteWait:  time.Second,
		SendBuffer: 16,
	}

	next := 0
	names := domain.NewNameCatalog([]string{"Ada", "Alan", "Grace"}, domain.WithIntN(func(n int) int {
		i := next % n
		next++
		return i
	}))
	s.hub = app.NewHub(names, nil)

	var ctx context.Context
	ctx, s.cancel = context.WithCancel(context.Background())
	s.engine = SetupRouter(ctx, cfg, s.hub)
	s.srv = httptest.NewServer(s.engine)
}

func (s *RouterTestSuite) TearDownTest() {
	s.hub.CloseAll()
	s.srv.Close()
	s.cancel()
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.engine.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) dial() *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.srv.URL, "http") + "/api/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	return conn
}

func (s *RouterTestSuite) send(conn *websocket.Conn, event string, data any) {
	env := map[string]any{"type": event}
	if data != nil {
		env["data"] = data
	}
	s.Require().NoError(conn.WriteJSON(env))
}

func (s *RouterTestSuite) read(conn *websocket.Conn) app.Envelope {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	var env app.Envelope
	s.Require().NoError(conn.ReadJSON(&env))
	return env
}

func (s *RouterTestSuite) readParticipants(conn *websocket.Conn) app.ParticipantsPayload {
	env := s.read(conn)
	s.Require().Equal(app.EventParticipants, env.Type)
	var p app.ParticipantsPayload
	s.Require().NoError(json.Unmarshal(env.Data, &p))
	return p
}

func (s *RouterTestSuite) readPeople(conn *websocket.Conn, event string) domain.People {
	env := s.read(conn)
	s.Require().Equal(event, env.Type)
	var p domain.People
	s.Require().NoError(json.Unmarshal(env.Data, &p))
	return p
}

func (s *RouterTestSuite) TestHealth() {
	rec := s.get("/health")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"status":"ok"`)
	s.Contains(rec.Header().Get("Set-Cookie"), "PokerSessions=")
}

func (s *RouterTestSuite) TestPagesAndStatic() {
	for _, path := range []string{"/", "/room/team1"} {
		rec := s.get(path)
		s.Equal(http.StatusOK, rec.Code, path)
		s.Contains(rec.Body.String(), "poker", path)
	}

	rec := s.get("/static/app.js")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("public, max-age=604800", rec.Header().Get("Cache-Control"))
}

func (s *RouterTestSuite) TestNotFound() {
	rec := s.get("/nope")
	s.Equal(http.StatusNotFound, rec.Code)
	s.JSONEq(`{"error":"not found"}`, rec.Body.String())
}

func (s *RouterTestSuite) TestRoomsAndStats() {
	_, err := s.hub.Connect("x", noopConn{})
	s.Require().NoError(err)
	s.hub.JoinRoom("x", "team1")

	rec := s.get("/api/rooms")
	s.Equal(http.StatusOK, rec.Code)
	var rooms []core.RoomInfo
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &rooms))
	s.Equal([]core.RoomInfo{{Name: "team1", MemberCount: 1}}, rooms)

	rec = s.get("/api/stats")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"connections":1,"rooms":1,"frames_sent":1,"frames_dropped":0}`, rec.Body.String())
}

func (s *RouterTestSuite) TestPlanningRoundOverWebsocket() {
	a := s.dial()
	defer a.Close()

	s.send(a, app.EventRoom, "team1")
	joined := s.readParticipants(a)
	aID := joined.ID
	s.Require().NotEmpty(aID)
	s.Equal(domain.People{aID: {Name: "Ada"}}, joined.People)

	s.send(a, app.EventNewUserStory, "STORY-42")
	story := s.read(a)
	s.Equal(app.EventNewUserStory, story.Type)
	s.JSONEq(`"STORY-42"`, string(story.Data))

	b := s.dial()
	defer b.Close()
	s.send(b, app.EventRoom, "team1")
	bJoined := s.readParticipants(b)
	bID := bJoined.ID
	s.Len(bJoined.People, 2)
	replay := s.read(b)
	s.Equal(app.EventNewUserStory, replay.Type)
	s.JSONEq(`"STORY-42"`, string(replay.Data))

	notice := s.readParticipants(a)
	s.Equal("Alan", notice.Connect)

	s.send(a, app.EventCardSelected, map[string]any{"room": "team1", "card": "5"})
	want := domain.People{aID: {Name: "Ada", Card: `"5"`}, bID: {Name: "Alan"}}
	s.Equal(want, s.readPeople(a, app.EventCardSelected))
	s.Equal(want, s.readPeople(b, app.EventCardSelected))

	s.send(b, app.EventCardSelected, map[string]any{"room": "team1", "card": 8})
	want = domain.People{aID: {Name: "Ada", Card: `"5"`}, bID: {Name: "Alan", Card: "8"}}
	s.Equal(want, s.readPeople(a, app.EventCardSelected))
	s.Equal(want, s.readPeople(b, app.EventCardSelected))

	s.send(a, app.EventRevealCards, nil)
	s.Equal(app.EventRevealCards, s.read(a).Type)
	s.Equal(app.EventRevealCards, s.read(b).Type)

	s.send(b, app.EventPlayAgain, nil)
	for _, conn := range []*websocket.Conn{a, b} {
		env := s.read(conn)
		s.Require().Equal(app.EventPlayAgain, env.Type)
		var p app.PlayAgainPayload
		s.Require().NoError(json.Unmarshal(env.Data, &p))
		s.Equal(domain.People{aID: {Name: "Ada"}, bID: {Name: "Alan"}}, p.People)
	}

	s.Require().NoError(b.Close())
	gone := s.readParticipants(a)
	s.Equal("Alan", gone.Disconnect)
	s.Equal(domain.People{aID: {Name: "Ada"}}, gone.People)
	s.Equal(domain.People{aID: {Name: "Ada"}}, s.hub.MembersOf("team1"))
}

func (s *RouterTestSuite) TestMalformedFramesAreDropped() {
	a := s.dial()
	defer a.Close()

	s.Require().NoError(a.WriteMessage(websocket.TextMessage, []byte("not json")))
	s.send(a, "bogus", nil)
	s.send(a, app.EventRoom, 42)
	s.send(a, app.EventCardSelected, nil)
	s.send(a, app.EventPing, nil)

	s.Equal(app.EventPong, s.read(a).Type)
	st := s.hub.Stats()
	s.Equal(1, st.Connections)
	s.Zero(st.Rooms)
}

type noopConn struct{}

func (noopConn) TrySend(core.Frame) error { return nil }

func (noopConn) Close() {}
