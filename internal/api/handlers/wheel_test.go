package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/picklewheel/picklewheel/internal/api/handlers"
	"github.com/picklewheel/picklewheel/internal/identity"
	"github.com/picklewheel/picklewheel/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWheelAPI_FrontendSecret(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := ts.IssueToken(t, identity.Identity{Subject: "google-sub-secret"})

	tests := []struct {
		name           string
		secret         string
		expectedStatus int
	}{
		{
			name:           "missing secret",
			secret:         "",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "wrong secret",
			secret:         "wrong",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "correct secret",
			secret:         ts.Config.FrontendSecret,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, ts.APIURL("/wheels"), nil)
			require.NoError(t, err)
			req.Header.Set("Authorization", "Bearer "+token)
			if tt.secret != "" {
				req.Header.Set("X-Frontend-Secret", tt.secret)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestWheelAPI_Authentication(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing token", token: ""},
		{name: "garbage token", token: "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.Request(t, http.MethodGet, "/wheels", tt.token, nil)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestWheelAPI_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := ts.IssueToken(t, identity.Identity{Subject: "google-sub-create", Email: "create@example.com"})

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name: "valid wheel",
			body: map[string]interface{}{
				"name":    "Lunch",
				"options": []string{"Pizza", "Tacos"},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing name",
			body: map[string]interface{}{
				"options": []string{"Pizza"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing options",
			body: map[string]interface{}{
				"name": "No options",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate name",
			body: map[string]interface{}{
				"name":    "Lunch",
				"options": []string{"Burgers"},
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.Request(t, http.MethodPost, "/wheels", token, tt.body)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				var wheel handlers.WheelResponse
				testutil.AssertJSONResponse(t, resp, &wheel)
				assert.Equal(t, "Lunch", wheel.Name)
				assert.Equal(t, []string{"Pizza", "Tacos"}, wheel.Options)
				assert.Equal(t, 0, wheel.Spins)
				assert.False(t, wheel.IsPublic)
			}
		})
	}
}

func TestWheelAPI_OwnershipScoping(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ownerToken := ts.IssueToken(t, identity.Identity{Subject: "google-sub-owner"})
	otherToken := ts.IssueToken(t, identity.Identity{Subject: "google-sub-other"})

	resp := ts.Request(t, http.MethodPost, "/wheels", ownerToken, map[string]interface{}{
		"name":    "Private",
		"options": []string{"A", "B"},
	})
	var wheel handlers.WheelResponse
	testutil.AssertJSONResponse(t, resp, &wheel)
	resp.Body.Close()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/wheels/" + wheel.ID},
		{http.MethodPut, "/wheels/" + wheel.ID},
		{http.MethodDelete, "/wheels/" + wheel.ID},
		{http.MethodPost, "/wheels/" + wheel.ID + "/spin"},
	}

	for _, p := range paths {
		t.Run(fmt.Sprintf("%s %s", p.method, p.path), func(t *testing.T) {
			var body interface{}
			if p.method == http.MethodPut {
				body = map[string]interface{}{"isPublic": true}
			}

			resp := ts.Request(t, p.method, p.path, otherToken, body)
			defer resp.Body.Close()

			testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Wheel not found")
		})
	}

	// Owner still sees the wheel untouched.
	resp = ts.Request(t, http.MethodGet, "/wheels/"+wheel.ID, ownerToken, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWheelAPI_Update(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := ts.IssueToken(t, identity.Identity{Subject: "google-sub-update"})

	create := func(name string) handlers.WheelResponse {
		resp := ts.Request(t, http.MethodPost, "/wheels", token, map[string]interface{}{
			"name":    name,
			"options": []string{"One", "Two"},
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var wheel handlers.WheelResponse
		testutil.AssertJSONResponse(t, resp, &wheel)
		return wheel
	}

	first := create("First")
	second := create("Second")

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		resp := ts.Request(t, http.MethodPut, "/wheels/"+first.ID, token, map[string]interface{}{
			"isPublic": true,
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated handlers.WheelResponse
		testutil.AssertJSONResponse(t, resp, &updated)
		assert.True(t, updated.IsPublic)
		assert.Equal(t, "First", updated.Name)
		assert.Equal(t, []string{"One", "Two"}, updated.Options)
		assert.Equal(t, 0, updated.Spins)
	})

	t.Run("rename onto a sibling conflicts", func(t *testing.T) {
		resp := ts.Request(t, http.MethodPut, "/wheels/"+second.ID, token, map[string]interface{}{
			"name": "First",
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("rename onto itself succeeds", func(t *testing.T) {
		resp := ts.Request(t, http.MethodPut, "/wheels/"+second.ID, token, map[string]interface{}{
			"name": "Second",
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestWheelAPI_EndToEnd(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := ts.IssueToken(t, identity.Identity{Subject: "google-sub-e2e", Email: "e2e@example.com"})

	// Create
	resp := ts.Request(t, http.MethodPost, "/wheels", token, map[string]interface{}{
		"name":    "Lunch",
		"options": []string{"Pizza", "Tacos"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var wheel handlers.WheelResponse
	testutil.AssertJSONResponse(t, resp, &wheel)
	resp.Body.Close()
	assert.Equal(t, 0, wheel.Spins)

	// Spin three times
	for i := 1; i <= 3; i++ {
		resp := ts.Request(t, http.MethodPost, "/wheels/"+wheel.ID+"/spin", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var spin handlers.SpinResponse
		testutil.AssertJSONResponse(t, resp, &spin)
		resp.Body.Close()

		assert.Equal(t, i, spin.Spins)
		assert.Contains(t, []string{"Pizza", "Tacos"}, spin.Result)
		assert.Equal(t, spin.Options[spin.ResultIndex], spin.Result)
	}

	// Listed with updated counters
	resp = ts.Request(t, http.MethodGet, "/wheels", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var wheels []handlers.WheelResponse
	testutil.AssertJSONResponse(t, resp, &wheels)
	resp.Body.Close()
	require.Len(t, wheels, 1)
	assert.Equal(t, 3, wheels[0].Spins)

	// Delete
	resp = ts.Request(t, http.MethodDelete, "/wheels/"+wheel.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// Gone
	resp = ts.Request(t, http.MethodGet, "/wheels/"+wheel.ID, token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
