package funparams

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespond(t *testing.T) {
	t.Run("ErrorResultWireShape", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, Respond(w, NotAValidNumber("id")))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.JSONEq(t,
			`{"status": 400, "errors": [{"type": "invalid_type", "param": "id", "title": "The parameter 'id' is not a valid number"}]}`,
			w.Body.String())
	})

	t.Run("WrappedErrorResult", func(t *testing.T) {
		w := httptest.NewRecorder()
		wrapped := fmt.Errorf("validation: %w", MissingParameter("id"))
		require.NoError(t, Respond(w, wrapped))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var er ErrorResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &er))
		assert.Equal(t, TypeMissingParameter, er.Errors[0].Type)
	})

	t.Run("PlainValue", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, Respond(w, map[string]any{"ok": true}))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok": true}`, w.Body.String())
	})
}

func TestHandler(t *testing.T) {
	p := RequireAll(
		Integer("id"),
		Optional(NonEmpty(String("note"))),
	)
	k := Grouped(func(m map[Symbol]any) any {
		return map[string]any{"id": m["id"], "note": m["note"]}
	})

	r := chi.NewRouter()
	r.Post("/items/{id}", Handler(p, k))

	t.Run("Success", func(t *testing.T) {
		body := `{"note": "hello"}`
		req := httptest.NewRequest(http.MethodPost, "/items/42", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id": 42, "note": "hello"}`, w.Body.String())
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/items/nope", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var er ErrorResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &er))
		assert.Equal(t, 400, er.Status)
		require.Len(t, er.Errors, 1)
		assert.Equal(t, TypeInvalidType, er.Errors[0].Type)
		assert.Equal(t, "id", er.Errors[0].Param)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/items/42", strings.NewReader(`{`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
