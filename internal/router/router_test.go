package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption-hub/internal/router"
)

func TestHTTP_EndToEnd_ApprovalRewardsAndCompetitors(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	staffID := "staff-1"
	aliceID := "alice"
	bobID := "bob"

	// 1) Staff registra el animal
	animalID := createID(t, ts.URL, "POST", "/animals", staffID, map[string]any{
		"name":    "Luna",
		"species": "dog",
	})

	// 2) Dos usuarios solicitan la adopción
	aliceReq := createID(t, ts.URL, "POST", "/animals/"+animalID+"/adoption-requests", aliceID, map[string]any{
		"answers": map[string]string{"home": "house"},
	})
	bobReq := createID(t, ts.URL, "POST", "/animals/"+animalID+"/adoption-requests", bobID, nil)

	// 3) Una segunda solicitud abierta del mismo usuario es conflicto
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/adoption-requests", aliceID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate open request, got %d", st)
		}
	}

	// 4) Staff aprueba la de Alice
	{
		st, body := doReq(t, ts.URL, "PATCH", "/adoption-requests/"+aliceReq+"/status", staffID, map[string]any{
			"status": "APPROVED",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 approve, got %d body=%s", st, string(body))
		}
		var resp struct {
			AnimalStatus string   `json:"animal_status"`
			AutoRejected []string `json:"auto_rejected"`
			PointsAdded  int64    `json:"points_added"`
			Unlocked     []string `json:"unlocked"`
			Noop         bool     `json:"noop"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.AnimalStatus != "ADOPTED" {
			t.Fatalf("expected animal ADOPTED, got %q", resp.AnimalStatus)
		}
		if len(resp.AutoRejected) != 1 || resp.AutoRejected[0] != bobReq {
			t.Fatalf("expected bob's request auto-rejected, got %v", resp.AutoRejected)
		}
		if resp.PointsAdded != 50 || len(resp.Unlocked) != 1 || resp.Unlocked[0] != "animal_hero" {
			t.Fatalf("expected animal_hero +50, got points=%d unlocked=%v", resp.PointsAdded, resp.Unlocked)
		}
	}

	// 5) Reintento: sin efecto ni premio
	{
		st, body := doReq(t, ts.URL, "PATCH", "/adoption-requests/"+aliceReq+"/status", staffID, map[string]any{
			"status": "APPROVED",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 retry, got %d body=%s", st, string(body))
		}
		var resp struct {
			PointsAdded int64 `json:"points_added"`
			Noop        bool  `json:"noop"`
		}
		_ = json.Unmarshal(body, &resp)
		if !resp.Noop || resp.PointsAdded != 0 {
			t.Fatalf("expected noop retry, got %s", string(body))
		}
	}

	// 6) Aprobar la de Bob ahora es conflicto
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/adoption-requests/"+bobReq+"/status", staffID, map[string]any{
			"status": "APPROVED",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 approving competitor, got %d", st)
		}
	}

	// 7) La solicitud de Bob quedó REJECTED
	{
		st, body := doReq(t, ts.URL, "GET", "/adoption-requests/"+bobReq, bobID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get request, got %d", st)
		}
		var resp struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "REJECTED" {
			t.Fatalf("expected REJECTED, got %q", resp.Status)
		}
	}

	// 8) Perfil y ranking
	{
		st, body := doReq(t, ts.URL, "GET", "/me/rewards", aliceID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 my rewards, got %d body=%s", st, string(body))
		}
		var resp struct {
			Points       int64 `json:"points"`
			Achievements []struct {
				Code string `json:"code"`
			} `json:"achievements"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Points != 50 || len(resp.Achievements) != 1 {
			t.Fatalf("expected 50 points and 1 achievement, got %s", string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/ranking", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 ranking, got %d", st)
		}
		var resp []struct {
			Position int    `json:"position"`
			UserID   string `json:"user_id"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp) != 1 || resp[0].UserID != aliceID || resp[0].Position != 1 {
			t.Fatalf("expected alice alone in ranking, got %s", string(body))
		}
	}
}

func TestHTTP_GamificationToggleOff_NoRewards(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	donorID := "donor-1"
	staffID := "staff-1"

	{
		st, body := doReq(t, ts.URL, "PUT", "/admin/gamification", staffID, map[string]any{"enabled": false})
		if st != http.StatusOK {
			t.Fatalf("expected 200 toggle off, got %d body=%s", st, string(body))
		}
	}

	donationID := createID(t, ts.URL, "POST", "/donations", donorID, map[string]any{"amount": "250.00"})

	st, body := doReq(t, ts.URL, "PATCH", "/donations/"+donationID+"/status", staffID, map[string]any{"status": "CONFIRMED"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 confirm, got %d body=%s", st, string(body))
	}
	var resp struct {
		PointsAdded int64    `json:"points_added"`
		Unlocked    []string `json:"unlocked"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.PointsAdded != 0 || len(resp.Unlocked) != 0 {
		t.Fatalf("expected no rewards with gamification off, got %s", string(body))
	}

	// Daily login tampoco premia
	st, body = doReq(t, ts.URL, "POST", "/me/daily-login", donorID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 daily login, got %d body=%s", st, string(body))
	}
	var login struct {
		Rewarded bool `json:"rewarded"`
	}
	_ = json.Unmarshal(body, &login)
	if login.Rewarded {
		t.Fatalf("expected no daily login reward with gamification off")
	}
}

func TestHTTP_RequiresIdentity(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	cases := []struct {
		method, path string
	}{
		{"POST", "/me/daily-login"},
		{"GET", "/me/rewards"},
		{"GET", "/me/adoption-requests"},
		{"PATCH", "/adoption-requests/x/status"},
	}
	for _, c := range cases {
		st, _ := doReq(t, ts.URL, c.method, c.path, "", map[string]any{"status": "APPROVED"})
		if st != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", c.method, c.path, st)
		}
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	for _, p := range []string{"/health", "/metrics"} {
		st, _ := doReq(t, ts.URL, "GET", p, "", nil)
		if st != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", p, st)
		}
	}
}

func createID(t *testing.T, baseURL, method, path, userID string, payload any) string {
	t.Helper()

	st, body := doReq(t, baseURL, method, path, userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 %s %s, got %d body=%s", method, path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("%s %s: missing id body=%s", method, path, string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
