package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"harnect/internal/media"
	"harnect/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, fields map[string]string, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="media"; filename=%q`, filename))
		header.Set("Content-Type", "image/png")
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(payload)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func smallPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func TestCreateContent(t *testing.T) {
	author := &models.User{Handle: "alice"}
	author.ID = 7

	tests := []struct {
		name       string
		fields     map[string]string
		filename   string
		mockSetup  func(m *testMocks)
		wantStatus int
	}{
		{
			name:     "post with caption",
			fields:   map[string]string{"kind": "post", "caption": "first light"},
			filename: "shot.png",
			mockSetup: func(m *testMocks) {
				m.users.On("GetByID", mock.Anything, uint(7)).Return(author, nil)
				m.content.On("Create", mock.Anything, mock.AnythingOfType("*models.ContentItem")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*models.ContentItem).ID = 3
					}).
					Return(nil)
				m.content.On("GetByID", mock.Anything, uint(3), uint(7)).
					Return(&models.ContentItem{ID: 3, AuthorID: 7, Kind: "post", Caption: "first light"}, nil)
			},
			wantStatus: fiber.StatusCreated,
		},
		{
			name:       "missing media file",
			fields:     map[string]string{"kind": "post"},
			mockSetup:  func(m *testMocks) {},
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "disallowed extension",
			fields:     map[string]string{"kind": "post"},
			filename:   "payload.exe",
			mockSetup:  func(m *testMocks) {},
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:     "invalid kind",
			fields:   map[string]string{"kind": "reel"},
			filename: "shot.png",
			mockSetup: func(m *testMocks) {
			},
			wantStatus: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newTestServer()
			store, err := media.NewStore(t.TempDir(), 1)
			require.NoError(t, err)
			s.media = store
			tt.mockSetup(m)

			app := fiber.New()
			app.Use(asUser(7))
			app.Post("/api/content", s.CreateContent)

			body, contentType := multipartUpload(t, tt.fields, tt.filename, smallPNG(t))
			req := httptest.NewRequest("POST", "/api/content", body)
			req.Header.Set("Content-Type", contentType)

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == fiber.StatusCreated {
				var item models.ContentItem
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&item))
				assert.Equal(t, uint(3), item.ID)
				assert.Equal(t, "first light", item.Caption)
			}
			m.content.AssertExpectations(t)
			m.users.AssertExpectations(t)
		})
	}
}

func TestDeleteContent(t *testing.T) {
	tests := []struct {
		name       string
		mockSetup  func(m *testMocks)
		wantStatus int
	}{
		{
			name: "owner deletes",
			mockSetup: func(m *testMocks) {
				m.content.On("GetByID", mock.Anything, uint(3), uint(0)).
					Return(&models.ContentItem{ID: 3, AuthorID: 7, Kind: "post", MediaRef: "x.png"}, nil)
				m.content.On("DeleteCascade", mock.Anything, uint(3)).Return(nil)
			},
			wantStatus: fiber.StatusOK,
		},
		{
			name: "not the owner",
			mockSetup: func(m *testMocks) {
				m.content.On("GetByID", mock.Anything, uint(3), uint(0)).
					Return(&models.ContentItem{ID: 3, AuthorID: 9, Kind: "post"}, nil)
			},
			wantStatus: fiber.StatusForbidden,
		},
		{
			name: "item missing",
			mockSetup: func(m *testMocks) {
				m.content.On("GetByID", mock.Anything, uint(3), uint(0)).
					Return(nil, models.NewNotFoundError("content", 3))
			},
			wantStatus: fiber.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newTestServer()
			tt.mockSetup(m)

			app := fiber.New()
			app.Use(asUser(7))
			app.Delete("/api/content/:id", s.DeleteContent)

			resp, err := app.Test(httptest.NewRequest("DELETE", "/api/content/3", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			m.content.AssertExpectations(t)
		})
	}
}

func TestGetFeed(t *testing.T) {
	s, m := newTestServer()
	m.content.On("ListFeed", mock.Anything, "post", 20, 0, uint(0)).
		Return([]*models.ContentItem{
			{ID: 2, Kind: "post", Caption: "newer"},
			{ID: 1, Kind: "post", Caption: "older"},
		}, nil)

	app := fiber.New()
	app.Get("/api/feed", s.GetFeed)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/feed", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []models.ContentItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 2)
	assert.Equal(t, uint(2), items[0].ID)
	m.content.AssertExpectations(t)
}

func TestGetStoriesUsesStoryKind(t *testing.T) {
	s, m := newTestServer()
	m.content.On("ListFeed", mock.Anything, "story", 20, 0, uint(0)).
		Return([]*models.ContentItem{}, nil)

	app := fiber.New()
	app.Get("/api/stories", s.GetStories)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/stories", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	m.content.AssertExpectations(t)
}

func TestGetContentNotFound(t *testing.T) {
	s, m := newTestServer()
	m.content.On("GetByID", mock.Anything, uint(99), uint(0)).
		Return(nil, models.NewNotFoundError("content", 99))

	app := fiber.New()
	app.Get("/api/content/:id", s.GetContent)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/content/99", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	m.content.AssertExpectations(t)
}

func TestGetUserContent(t *testing.T) {
	author := &models.User{Handle: "alice"}
	author.ID = 7

	s, m := newTestServer()
	m.users.On("GetByHandle", mock.Anything, "alice").Return(author, nil)
	m.content.On("ListByAuthor", mock.Anything, uint(7), 20, 0, uint(0)).
		Return([]*models.ContentItem{{ID: 1, AuthorID: 7, Kind: "post"}}, nil)

	app := fiber.New()
	app.Get("/api/users/:handle/content", s.GetUserContent)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/users/alice/content", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	m.content.AssertExpectations(t)
	m.users.AssertExpectations(t)
}
