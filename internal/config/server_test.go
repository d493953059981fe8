package config

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"BatiDetect/internal/api/navigation"
	"BatiDetect/internal/entity"
	"BatiDetect/pkg/asset"
	"BatiDetect/pkg/detector"
	"BatiDetect/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// newTestServer serves every asset from a temp dir. The .jpg paths hold
// PNG bytes, which the decoder accepts regardless of extension.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	root := t.TempDir()
	for _, ref := range entity.Assets() {
		c := color.Color(color.NRGBA{B: 200, A: 255})
		if ref == entity.AssetDemoMask {
			c = color.White
		}
		writePNG(t, filepath.Join(root, filepath.FromSlash(ref.Path)), 8, 8, c)
	}

	db, err := sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	srv, err := NewServer(
		WithFiber(NewFiber(logger)),
		WithLogger(logger),
		WithValidator(NewValidator()),
		WithUtils(),
		WithMiddleware(),
		WithSessionStore(session.NewMemory(time.Minute)),
		WithAssetStore(asset.NewLocal(root)),
		WithDetector(detector.NewStub()),
		WithJournalDB(db),
		WithHTMLView(),
	)
	require.NoError(t, err)
	require.NoError(t, srv.RegisterHandler())
	srv.Mount()
	return srv
}

type client struct {
	t      *testing.T
	app    *fiber.App
	cookie *http.Cookie
}

func (c *client) do(req *http.Request) (*http.Response, string) {
	c.t.Helper()

	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	resp, err := c.app.Test(req, 5000)
	require.NoError(c.t, err)

	for _, ck := range resp.Cookies() {
		if ck.Name == "session_id" {
			c.cookie = ck
		}
	}

	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, string(body)
}

func (c *client) get(path string) (*http.Response, string) {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) postJSON(path, payload string) (*http.Response, string) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *client) postForm(path string, form url.Values) (*http.Response, string) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func TestHealthCheck(t *testing.T) {
	c := &client{t: t, app: newTestServer(t).App()}

	resp, body := c.get("/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"message":"Server is Healthy!"}`, body)
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestAppPagesOverHTML(t *testing.T) {
	c := &client{t: t, app: newTestServer(t).App()}

	resp, body := c.get("/app")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	require.Contains(t, body, "<h1>Contexte et Exploration</h1>")
	require.Contains(t, body, `src="/assets/aerial"`)
	require.NotNil(t, c.cookie)

	resp, body = c.get("/app?page=inconnue")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body, "Page inconnue.")
	require.Contains(t, body, "<h1>Contexte et Exploration</h1>")

	resp, body = c.get("/app?page=modele")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "<h1>Modele selectione</h1>")

	resp, body = c.postForm("/app/action", url.Values{
		"page":      {"modele"},
		"mode":      {"manual"},
		"action":    {"analyze"},
		"latitude":  {"48,8566"},
		"longitude": {"2.3522"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Analyse en cours...")
	require.Contains(t, body, "3 bâtiments détectés dont 1 illégal sur le secteur géré par 48.856600, 2.352200.")

	// The selection survives a plain reload.
	_, body = c.get("/app")
	require.Contains(t, body, "<h1>Modele selectione</h1>")
	require.Contains(t, body, `value="48.856600"`)

	resp, body = c.postForm("/app/action", url.Values{
		"action":    {"analyze"},
		"latitude":  {"123"},
		"longitude": {"2"},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body, "Coordonnées invalides")
}

func TestStaleTabActionRunsOnItsPage(t *testing.T) {
	c := &client{t: t, app: newTestServer(t).App()}

	c.get("/app?page=modele")
	// Another tab of the same session moves on to the demo.
	_, body := c.get("/app?page=demo")
	require.Contains(t, body, "Démarrer la démo")

	resp, body := c.postForm("/app/action", url.Values{
		"page":      {"modele"},
		"action":    {"analyze"},
		"latitude":  {"48.8566"},
		"longitude": {"2.3522"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "<h1>Modele selectione</h1>")
	require.Contains(t, body, "3 bâtiments détectés dont 1 illégal sur le secteur géré par 48.856600, 2.352200.")
	require.NotContains(t, body, "Cette action n&#39;est pas disponible")

	_, body = c.get("/app")
	require.Contains(t, body, "<h1>Modele selectione</h1>")
}

func TestDemoOverHTML(t *testing.T) {
	c := &client{t: t, app: newTestServer(t).App()}

	c.get("/app?page=demo")
	resp, body := c.postForm("/app/action", url.Values{"page": {"demo"}, "action": {"start_demo"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Masque de détection")
	require.Contains(t, body, `src="/assets/demo_mask"`)
	require.Contains(t, body, "Détection fictive terminée")
}

func TestSessionAPIMapFlow(t *testing.T) {
	c := &client{t: t, app: newTestServer(t).App()}

	resp, body := c.get("/api/v1/pages")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pages navigation.PagesResponse
	require.NoError(t, jsoniter.UnmarshalFromString(body, &pages))
	require.Len(t, pages.Data, 3)
	require.Equal(t, "modele", pages.Data[1].Slug)

	steps := []string{
		`{"kind":"navigate","page":"modele"}`,
		`{"kind":"set_mode","mode":"map"}`,
		`{"kind":"analyze"}`,
		`{"kind":"map_click","latitude":40,"longitude":-3}`,
		`{"kind":"analyze"}`,
	}

	var view navigation.ViewResponse
	for _, step := range steps {
		resp, body = c.postJSON("/api/v1/session/actions", step)
		require.Equal(t, http.StatusOK, resp.StatusCode, body)
		view = navigation.ViewResponse{}
		require.NoError(t, jsoniter.UnmarshalFromString(body, &view))
		require.Equal(t, entity.PageModelSelection, view.Data.Page)
	}

	blocks := view.Data.Blocks
	n := len(blocks)
	require.Equal(t, "Coordonnées sélectionnées : 40.000000, -3.000000", blocks[n-2].Text)
	require.Equal(t, "Résultat simulé : 3 bâtiments détectés dont 1 illégal sur le secteur géré par 40.000000, -3.000000.", blocks[n-1].Text)

	resp, body = c.get("/api/v1/session")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var state navigation.SessionResponse
	require.NoError(t, jsoniter.UnmarshalFromString(body, &state))
	require.Equal(t, entity.InputModeMap, state.Data.Mode)
	require.Equal(t, &entity.Coordinate{Latitude: 40, Longitude: -3}, state.Data.LastClick)

	// Only the clicked analysis reached the detector.
	resp, body = c.get("/api/v1/detection/analyses?session=mine")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, strings.Count(body, `"input_mode":"map"`))
}

func TestSessionAPIRejectsBadActions(t *testing.T) {
	c := &client{t: t, app: newTestServer(t).App()}

	resp, _ := c.postJSON("/api/v1/session/actions", `{"kind":"navigate","page":"Accueil"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = c.postJSON("/api/v1/session/actions", `{"kind":"fly"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = c.postJSON("/api/v1/session/actions", `{"kind":"start_demo"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = c.postJSON("/api/v1/session/actions", `not json`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDetectionAPI(t *testing.T) {
	c := &client{t: t, app: newTestServer(t).App()}

	resp, body := c.postJSON("/api/v1/detection/analyze", `{"latitude":48.8566,"longitude":2.3522}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	require.Contains(t, body, "48.856600, 2.352200.")
	require.Contains(t, body, `"simulated":true`)

	resp, _ = c.postJSON("/api/v1/detection/analyze", `{"latitude":95,"longitude":2}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = c.postJSON("/api/v1/detection/analyze", `{"longitude":2}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = c.get("/api/v1/detection/analyses")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, `"input_mode":"manual"`)
}

func TestAssetRoutes(t *testing.T) {
	c := &client{t: t, app: newTestServer(t).App()}

	resp, body := c.get("/assets/demo_mask")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	_, err := png.Decode(strings.NewReader(body))
	require.NoError(t, err)

	resp, _ = c.get("/assets/nope")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = c.get("/assets/overlay/demo.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	overlay, err := png.Decode(strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, 8, overlay.Bounds().Dx())

	resp, body = c.get("/api/v1/assets")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 4, strings.Count(body, `"available":true`))
}

func TestSessionWebSocket(t *testing.T) {
	srv := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.App().Listener(ln) }()
	t.Cleanup(func() { _ = srv.App().Shutdown() })

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/api/v1/session/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	exchange := func(action string) navigation.ViewResponse {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(action)))
		_, message, err := conn.ReadMessage()
		require.NoError(t, err)

		var resp navigation.ViewResponse
		require.NoError(t, jsoniter.Unmarshal(message, &resp))
		return resp
	}

	resp := exchange(`{"kind":"navigate","page":"demo"}`)
	require.Empty(t, resp.Error)
	require.Equal(t, entity.PageDetectionDemo, resp.Data.Page)

	resp = exchange(`{"kind":"start_demo"}`)
	require.Empty(t, resp.Error)
	require.Equal(t, entity.BlockSuccess, resp.Data.Blocks[len(resp.Data.Blocks)-1].Kind)

	resp = exchange(`{"kind":"navigate","page":"Accueil"}`)
	require.Nil(t, resp.Data)
	require.Equal(t, "Page inconnue.", resp.Error)

	// Rejections read the same as the banner on the HTML page.
	resp = exchange(`{"kind":"set_coordinate","latitude":95,"longitude":2}`)
	require.Nil(t, resp.Data)
	require.Contains(t, resp.Error, "Coordonnées invalides")

	resp = exchange(`{"kind":"analyze"}`)
	require.Nil(t, resp.Data)
	require.Equal(t, "Cette action n'est pas disponible sur cette page.", resp.Error)

	resp = exchange(`not json`)
	require.Equal(t, "Action invalide.", resp.Error)
}
