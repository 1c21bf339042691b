package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPathUUID(t *testing.T) {
	id := uuid.New()

	t.Run("valid", func(t *testing.T) {
		r := newJSONRequest(t, http.MethodGet, "/", nil, nil, "id", id.String())
		got, err := getPathUUID(r, "id")
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("missing", func(t *testing.T) {
		r := newJSONRequest(t, http.MethodGet, "/", nil, nil, "other", id.String())
		_, err := getPathUUID(r, "id")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("malformed", func(t *testing.T) {
		r := newJSONRequest(t, http.MethodGet, "/", nil, nil, "id", "not-a-uuid")
		_, err := getPathUUID(r, "id")
		assert.ErrorIs(t, err, errInvalidParam)
	})

	t.Run("pathUUID writes 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := newJSONRequest(t, http.MethodGet, "/", nil, nil, "id", "123")
		_, ok := pathUUID(w, r, "id")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid id", decodeErrorResponse(t, w).Error)
	})
}

func TestPageFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    store.Page
		wantErr bool
	}{
		{"defaults", "", store.Page{Limit: store.DefaultPageLimit}, false},
		{"explicit", "?limit=5&offset=10", store.Page{Limit: 5, Offset: 10}, false},
		{"limit clamped", "?limit=1000", store.Page{Limit: store.MaxPageLimit}, false},
		{"zero limit uses default", "?limit=0", store.Page{Limit: store.DefaultPageLimit}, false},
		{"non numeric limit", "?limit=ten", store.Page{}, true},
		{"negative offset", "?offset=-1", store.Page{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/items"+tc.query, nil)
			got, err := pageFromRequest(r)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOptionalUUIDQuery(t *testing.T) {
	id := uuid.New()

	got, err := optionalUUIDQuery(httptest.NewRequest(http.MethodGet, "/orders", nil), "buyer_id")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = optionalUUIDQuery(httptest.NewRequest(http.MethodGet, "/orders?buyer_id="+id.String(), nil), "buyer_id")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, *got)

	_, err = optionalUUIDQuery(httptest.NewRequest(http.MethodGet, "/orders?buyer_id=x", nil), "buyer_id")
	assert.ErrorIs(t, err, errInvalidParam)
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := newJSONRequest(t, http.MethodPost, "/", map[string]string{"title": "Hi", "body": "There"}, nil)
		var req PostRequest
		assert.True(t, decodeAndValidate(w, r, &req))
		assert.Equal(t, "Hi", req.Title)
	})

	t.Run("empty body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := newJSONRequest(t, http.MethodPost, "/", nil, nil)
		var req PostRequest
		assert.False(t, decodeAndValidate(w, r, &req))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Request body is required", decodeErrorResponse(t, w).Error)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := newJSONRequest(t, http.MethodPost, "/", `{"title":`, nil)
		var req PostRequest
		assert.False(t, decodeAndValidate(w, r, &req))
		assert.Equal(t, "Invalid request format", decodeErrorResponse(t, w).Error)
	})

	t.Run("unknown field", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := newJSONRequest(t, http.MethodPost, "/", `{"title":"a","body":"b","extra":1}`, nil)
		var req PostRequest
		assert.False(t, decodeAndValidate(w, r, &req))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := newJSONRequest(t, http.MethodPost, "/", map[string]string{"title": "Hi"}, nil)
		var req PostRequest
		assert.False(t, decodeAndValidate(w, r, &req))
		assert.Equal(t, "Invalid body: required field", decodeErrorResponse(t, w).Error)
	})
}
