package hrapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/madwell/signin-backend-go/internal/domain/pto"
	"github.com/madwell/signin-backend-go/internal/pkg/oauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const calendarJSON = `{
  "requestList": [
    {
      "employeeId": 1042,
      "name": "Smith, A",
      "leaveType": "PTO",
      "leaveTypeDescription": "Paid time off",
      "status": "Approved",
      "startDate": "2024-06-11T00:00:00",
      "endDate": "2024-06-12",
      "leaveDates": ["2024-06-11", " 2024-06-12 "]
    },
    {
      "employeeId": "E-7",
      "name": "Jones, B",
      "leaveType": "PTO",
      "leaveTypeDescription": "Paid time off",
      "status": "Pending",
      "leaveDates": ["2024-06-13"]
    }
  ]
}`

func newTestClient(t *testing.T, cfg Config, handler http.HandlerFunc) pto.Calendar {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.URL = server.URL
	if cfg.Backoff == 0 {
		cfg.Backoff = time.Millisecond
	}
	return NewClient(cfg, server.Client())
}

func TestClient_Fetch(t *testing.T) {
	var gotUser, gotPass, gotAgent string
	var gotAuth bool
	client := newTestClient(t, Config{Username: "svc", Password: "hunter2"}, func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotAuth = r.BasicAuth()
		gotAgent = r.UserAgent()
		_, _ = w.Write([]byte(calendarJSON))
	})

	records, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.True(t, gotAuth)
	assert.Equal(t, "svc", gotUser)
	assert.Equal(t, "hunter2", gotPass)
	assert.Equal(t, userAgent, gotAgent)

	smith := records[0]
	assert.Equal(t, "1042", smith.EmployeeID)
	assert.Equal(t, "Smith, A", smith.Name)
	assert.Equal(t, "Approved", smith.Status)
	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), smith.StartDate)
	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), smith.EndDate)
	assert.Equal(t, []time.Time{
		time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
	}, smith.LeaveDates)

	assert.Equal(t, "E-7", records[1].EmployeeID)
	assert.True(t, records[1].StartDate.IsZero())
}

func TestClient_ApprovedStatuses(t *testing.T) {
	client := newTestClient(t, Config{ApprovedStatuses: []string{" approved "}}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(calendarJSON))
	})

	records, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Smith, A", records[0].Name)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, Config{MaxRetries: 2}, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(calendarJSON))
	})

	records, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, Config{MaxRetries: 1}, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Fetch(context.Background())
	assert.ErrorIs(t, err, pto.ErrUnexpectedStatus)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_ClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, Config{MaxRetries: 3}, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Fetch(context.Background())
	assert.ErrorIs(t, err, pto.ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_MalformedPayload(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{"not json", "<html>", pto.ErrMalformedPayload},
		{"missing request list", `{"items": []}`, pto.ErrMalformedPayload},
		{"bad leave date", `{"requestList": [{"name": "Smith, A", "leaveDates": ["06/11/2024"]}]}`, pto.ErrInvalidLeaveDate},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			client := newTestClient(t, Config{MaxRetries: 2}, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(c.body))
			})

			_, err := client.Fetch(context.Background())
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestClient_EmptyRequestList(t *testing.T) {
	client := newTestClient(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"requestList": []}`))
	})

	records, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClient_CancelledContext(t *testing.T) {
	client := newTestClient(t, Config{MaxRetries: 5, Backoff: time.Hour}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Fetch(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_OAuth2(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"Bearer","expires_in":3600}`))
	})
	var gotAuthHeader string
	mux.HandleFunc("/pto", func(w http.ResponseWriter, r *http.Request) {
		gotAuthHeader = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(calendarJSON))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	httpClient := oauth.NewClientCredentialsClient(context.Background(), oauth.ClientCredentials{
		ClientID:     "client",
		ClientSecret: "secret",
		TokenURL:     server.URL + "/oauth/token",
	}, server.Client())

	client := NewClient(Config{
		URL:      server.URL + "/pto",
		AuthMode: AuthModeOAuth2,
		Username: "ignored",
		Password: "ignored",
	}, httpClient)

	records, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "Bearer tok-123", gotAuthHeader)
}
