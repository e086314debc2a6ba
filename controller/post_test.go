package controller

import (
	"io"
	"testing"

	"social_posting_ms/domain"
	"social_posting_ms/dtos/request"
	"social_posting_ms/middleware"
	"social_posting_ms/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"net/http/httptest"
)

// stubPostService records calls and replays scripted results.
type stubPostService struct {
	posts   []domain.Post
	post    *domain.Post
	err     error
	created struct {
		authorID uint
		content  string
	}
}

func (s *stubPostService) Create(authorID uint, content string) (*domain.Post, error) {
	s.created.authorID = authorID
	s.created.content = content
	if s.err != nil {
		return nil, s.err
	}
	return s.post, nil
}

func (s *stubPostService) List() ([]domain.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.posts, nil
}

func (s *stubPostService) Like(id uint) (*domain.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.post, nil
}

func (s *stubPostService) Dislike(id uint) (*domain.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.post, nil
}

// newPostApp wires the post routes behind a stand-in session middleware
// that plants the same claim value the real one extracts from the JWT.
func newPostApp(svc *stubPostService, userId any) *fiber.App {
	ctrl := NewPostController(svc)
	app := fiber.New()
	group := app.Group("/", func(c *fiber.Ctx) error {
		if userId != nil {
			c.Locals("userId", userId)
		}
		return c.Next()
	})
	group.Get("/home", ctrl.List)
	group.Post("/posts", middleware.ValidateBody[request.CreatePostRequest](), ctrl.Create)
	group.Post("/posts/:id/like", ctrl.Like)
	group.Post("/posts/:id/dislike", ctrl.Dislike)
	return app
}

func TestListRoute(t *testing.T) {
	svc := &stubPostService{posts: []domain.Post{{Id: 1, Content: "hello"}}}
	app := newPostApp(svc, float64(1))

	req := httptest.NewRequest(fiber.MethodGet, "/home", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"content":"hello"`)
}

func TestCreateRoute(t *testing.T) {
	svc := &stubPostService{post: &domain.Post{Id: 1, AuthorID: 3, Content: "hi"}}
	app := newPostApp(svc, float64(3))

	resp := postJSON(t, app, "/posts", `{"content":"hi"}`)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, uint(3), svc.created.authorID)
	assert.Equal(t, "hi", svc.created.content)
}

func TestCreateRoute_MissingSession(t *testing.T) {
	svc := &stubPostService{post: &domain.Post{Id: 1}}
	app := newPostApp(svc, nil)

	resp := postJSON(t, app, "/posts", `{"content":"hi"}`)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCreateRoute_EmptyContent(t *testing.T) {
	svc := &stubPostService{}
	app := newPostApp(svc, float64(1))

	resp := postJSON(t, app, "/posts", `{"content":""}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReactRoutes(t *testing.T) {
	for _, path := range []string{"/posts/7/like", "/posts/7/dislike"} {
		svc := &stubPostService{post: &domain.Post{Id: 7, Reaction: domain.ReactionLike}}
		app := newPostApp(svc, float64(1))

		resp := postJSON(t, app, path, "")

		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func TestReactRoute_BadID(t *testing.T) {
	app := newPostApp(&stubPostService{}, float64(1))

	resp := postJSON(t, app, "/posts/abc/like", "")

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReactRoute_UnknownPost(t *testing.T) {
	app := newPostApp(&stubPostService{err: repository.ErrPostNotFound}, float64(1))

	resp := postJSON(t, app, "/posts/99/like", "")

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
