package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"postboard/config"
	"postboard/internal/delivery/http/middleware"
	"postboard/internal/delivery/http/router"
	"postboard/internal/delivery/http/router/handler"
	"postboard/internal/delivery/http/view"
	"postboard/internal/infra/auth"
	"postboard/internal/infra/persistence/postgres"
	"postboard/internal/infra/upload"
	"postboard/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
	"golang.org/x/crypto/bcrypt"
)

const cookieName = "token"

type testApp struct {
	t    *testing.T
	echo *echo.Echo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{}
	cfg.Env.Debug = true
	cfg.HTTP.MaxRequestBodySize = "10MB"
	cfg.Session.Secret = "integration-secret"
	cfg.Session.CookieName = cookieName
	cfg.Uploads.PublicPrefix = "/uploads/"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := postgres.OpenSQLite(filepath.Join(t.TempDir(), "postboard.db"))
	require.NoError(t, err)
	require.NoError(t, postgres.NewMigrator(db).Migrate(context.Background()))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })
	media := upload.NewBlobStorage(bucket, cfg.Uploads.PublicPrefix, logger)

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	users := postgres.NewUserRepository(db)
	posts := postgres.NewPostRepository(db)

	account := impl.NewAccountService(impl.AccountServiceParams{
		UserRepo:     users,
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: tokens,
		Logger:       logger,
	})
	profile := impl.NewProfileService(impl.ProfileServiceParams{
		UserRepo: users,
		PostRepo: posts,
		Media:    media,
		Logger:   logger,
	})
	postUsecase := impl.NewPostService(impl.PostServiceParams{
		UserRepo: users,
		PostRepo: posts,
		Media:    media,
		Logger:   logger,
	})

	e, err := NewEcho(ServerParams{
		Cfg:             cfg,
		Logger:          logger,
		ErrorMiddleware: middleware.NewErrorMiddleware(logger),
		RouterParams: router.RouterParams{
			Config:         cfg,
			AuthHandler:    handler.NewAuthHandler(account, cfg, logger),
			ProfileHandler: handler.NewProfileHandler(profile, logger),
			PostHandler:    handler.NewPostHandler(postUsecase, logger),
			MediaHandler:   handler.NewMediaHandler(media),
			AuthMiddleware: middleware.NewAuthMiddleware(tokens, cfg, logger),
		},
	})
	require.NoError(t, err)

	return &testApp{t: t, echo: e}
}

func (a *testApp) do(req *http.Request, token string) *httptest.ResponseRecorder {
	a.t.Helper()

	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	return rec
}

func (a *testApp) postForm(path string, form url.Values, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	return a.do(req, token)
}

func (a *testApp) postMultipart(path string, fields map[string]string, fileField, fileName string, content []byte, token string) *httptest.ResponseRecorder {
	a.t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(a.t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(a.t, err)
		_, err = part.Write(content)
		require.NoError(a.t, err)
	}
	require.NoError(a.t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())

	return a.do(req, token)
}

func (a *testApp) get(path, token string, jsonClient bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if jsonClient {
		req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	}

	return a.do(req, token)
}

func (a *testApp) register(email, password string) string {
	a.t.Helper()

	rec := a.postForm("/register", url.Values{
		"email":    {email},
		"password": {password},
		"name":     {"Alice"},
		"username": {"alice"},
		"age":      {"30"},
	}, "")
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	return sessionCookie(a.t, rec).Value
}

func (a *testApp) profile(token string) view.ProfilePage {
	a.t.Helper()

	rec := a.get("/profile", token, true)
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Data view.ProfilePage `json:"data"`
	}
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope.Data
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == cookieName {
			return cookie
		}
	}
	require.FailNow(t, "session cookie not set")

	return nil
}

func hasSessionCookie(rec *httptest.ResponseRecorder) bool {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == cookieName {
			return true
		}
	}

	return false
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/health", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestPublicPages(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/", "/register", "/login"} {
		rec := app.get(path, "", false)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML, path)
		assert.Contains(t, rec.Body.String(), "<form", path)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp(t)

	token := app.register("a@x.com", "pw")
	assert.NotEmpty(t, token)

	t.Run("register response", func(t *testing.T) {
		rec := app.postForm("/register", url.Values{
			"email":    {"b@x.com"},
			"password": {"pw"},
		}, "")
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "User created successfully", rec.Body.String())
		cookie := sessionCookie(t, rec)
		assert.Equal(t, "/", cookie.Path)
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := app.postForm("/register", url.Values{
			"email":    {"a@x.com"},
			"password": {"other"},
		}, "")
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "User already exists", rec.Body.String())
		assert.False(t, hasSessionCookie(rec))
	})

	t.Run("password over 72 bytes", func(t *testing.T) {
		rec := app.postForm("/register", url.Values{
			"email":    {"long@x.com"},
			"password": {strings.Repeat("p", 100)},
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, hasSessionCookie(rec))

		// Multibyte runes pass the form's length check but not bcrypt's byte limit.
		rec = app.postForm("/register", url.Values{
			"email":    {"runes@x.com"},
			"password": {strings.Repeat("密", 30)},
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, hasSessionCookie(rec))
	})

	t.Run("invalid email", func(t *testing.T) {
		rec := app.postForm("/register", url.Values{
			"email":    {"not-an-email"},
			"password": {"pw"},
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, hasSessionCookie(rec))
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := app.postForm("/login", url.Values{
			"email":    {"a@x.com"},
			"password": {"nope"},
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Wrong password", rec.Body.String())
		assert.False(t, hasSessionCookie(rec))
	})

	t.Run("unknown email", func(t *testing.T) {
		rec := app.postForm("/login", url.Values{
			"email":    {"missing@x.com"},
			"password": {"pw"},
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Something went wrong", rec.Body.String())
		assert.False(t, hasSessionCookie(rec))
	})

	t.Run("success redirects to profile", func(t *testing.T) {
		rec := app.postForm("/login", url.Values{
			"email":    {"a@x.com"},
			"password": {"pw"},
		}, "")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/profile", rec.Header().Get(echo.HeaderLocation))

		page := app.profile(sessionCookie(t, rec).Value)
		assert.Equal(t, "a@x.com", page.User.Email)
	})

	t.Run("logout clears cookie", func(t *testing.T) {
		rec := app.get("/logout", token, false)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
		assert.Less(t, sessionCookie(t, rec).MaxAge, 0)
	})
}

func TestGate(t *testing.T) {
	app := newTestApp(t)

	t.Run("no cookie", func(t *testing.T) {
		rec := app.get("/profile", "", false)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
		assert.False(t, hasSessionCookie(rec))
	})

	t.Run("tampered token", func(t *testing.T) {
		rec := app.get("/profile", "not.a.token", false)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
		assert.Less(t, sessionCookie(t, rec).MaxAge, 0)
	})

	t.Run("gated post routes", func(t *testing.T) {
		rec := app.postForm("/post", url.Values{"title": {"t"}}, "")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	})
}

func TestPostLifecycle(t *testing.T) {
	app := newTestApp(t)
	alice := app.register("alice@x.com", "pw")
	bob := app.register("bob@x.com", "pw")

	rec := app.postMultipart("/post", map[string]string{
		"title":   "Hello",
		"content": "first post",
	}, "image", "my photo.png", []byte("png-bytes"), alice)
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	assert.Equal(t, "/profile", rec.Header().Get(echo.HeaderLocation))

	page := app.profile(alice)
	require.Len(t, page.Posts, 1)
	post := page.Posts[0]
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, []string{post.ID.String()}, uuidStrings(page.User.PostIDs))
	require.True(t, strings.HasPrefix(post.ImagePath, "/uploads/"), post.ImagePath)
	assert.True(t, strings.HasSuffix(post.ImagePath, "-my_photo.png"), post.ImagePath)

	t.Run("image is served", func(t *testing.T) {
		rec := app.get(post.ImagePath, "", false)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "png-bytes", rec.Body.String())
		assert.Contains(t, rec.Header().Get("Cache-Control"), "immutable")
	})

	t.Run("html profile shows post", func(t *testing.T) {
		rec := app.get("/profile", alice, false)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "first post")
	})

	t.Run("like toggles", func(t *testing.T) {
		likePath := "/post/" + post.ID.String() + "/like"

		rec := app.postForm(likePath, nil, bob)
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, 1, app.profile(alice).Posts[0].LikeCount)

		rec = app.postForm(likePath, nil, bob)
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, 0, app.profile(alice).Posts[0].LikeCount)
	})

	t.Run("non owner cannot edit or delete", func(t *testing.T) {
		rec := app.get("/post/"+post.ID.String()+"/edit", bob, false)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = app.postForm("/post/"+post.ID.String()+"/edit", url.Values{"title": {"pwned"}}, bob)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = app.postForm("/post/"+post.ID.String()+"/delete", nil, bob)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		// An invalid payload does not change the answer for a non-owner.
		rec = app.postForm("/post/"+post.ID.String()+"/edit", url.Values{"title": {strings.Repeat("x", 300)}}, bob)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		req := httptest.NewRequest(http.MethodPost, "/post/"+post.ID.String()+"/edit", strings.NewReader("--broken"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEMultipartForm+"; boundary=nope")
		rec = app.do(req, bob)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		assert.Equal(t, "Hello", app.profile(alice).Posts[0].Title)
	})

	t.Run("owner edits and keeps image", func(t *testing.T) {
		rec := app.get("/post/"+post.ID.String()+"/edit", alice, false)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Hello")

		rec = app.postForm("/post/"+post.ID.String()+"/edit", url.Values{"title": {strings.Repeat("x", 300)}}, alice)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = app.postMultipart("/post/"+post.ID.String()+"/edit", map[string]string{
			"title":   "Hello again",
			"content": "edited",
		}, "", "", nil, alice)
		require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())

		edited := app.profile(alice).Posts[0]
		assert.Equal(t, "Hello again", edited.Title)
		assert.Equal(t, "edited", edited.Content)
		assert.Equal(t, post.ImagePath, edited.ImagePath)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		rec := app.postForm("/post/not-a-uuid/like", nil, alice)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Post not found", rec.Body.String())
	})

	t.Run("owner deletes", func(t *testing.T) {
		rec := app.postForm("/post/"+post.ID.String()+"/delete", nil, alice)
		require.Equal(t, http.StatusFound, rec.Code)

		page := app.profile(alice)
		assert.Empty(t, page.Posts)
		assert.Empty(t, page.User.PostIDs)

		rec = app.postForm("/post/"+post.ID.String()+"/like", nil, bob)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAvatarUpload(t *testing.T) {
	app := newTestApp(t)
	token := app.register("a@x.com", "pw")

	t.Run("missing file redirects", func(t *testing.T) {
		rec := app.postMultipart("/profile/avatar", nil, "", "", nil, token)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/profile", rec.Header().Get(echo.HeaderLocation))
		assert.Empty(t, app.profile(token).User.AvatarPath)
	})

	t.Run("stores and links avatar", func(t *testing.T) {
		rec := app.postMultipart("/profile/avatar", nil, "avatar", "../me.jpg", []byte("jpeg"), token)
		require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())

		avatar := app.profile(token).User.AvatarPath
		require.True(t, strings.HasPrefix(avatar, "/uploads/"), avatar)
		assert.NotContains(t, strings.TrimPrefix(avatar, "/uploads/"), "/")

		rec = app.get(avatar, "", false)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "jpeg", rec.Body.String())
	})

	t.Run("unknown media", func(t *testing.T) {
		rec := app.get("/uploads/1-2-missing.png", "", false)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func uuidStrings[T interface{ String() string }](ids []T) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}

	return out
}
