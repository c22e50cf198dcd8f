package canvas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCourseFiles(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 101, "display_name": "Ch3.pdf", "url": "https://lms.example/dl/101", "html_url": "https://lms.example/files/101"},
			{"id": 102, "display_name": "Lec5.pdf"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-token")
	defer c.Close()

	files, err := c.ListCourseFiles(context.Background(), "123")
	require.NoError(t, err)

	assert.Equal(t, "/courses/123/files", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	require.Len(t, files, 2)
	assert.Equal(t, File{ID: 101, DisplayName: "Ch3.pdf", URL: "https://lms.example/dl/101", HTMLURL: "https://lms.example/files/101"}, files[0])
	assert.Equal(t, int64(102), files[1].ID)
}

func TestListCourseFiles_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-token")
	defer c.Close()

	_, err := c.ListCourseFiles(context.Background(), "123")
	assert.Error(t, err)
}

func TestListCourseFiles_EmptyCourse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	defer c.Close()

	files, err := c.ListCourseFiles(context.Background(), "123")
	require.NoError(t, err)
	assert.Empty(t, files)
}
