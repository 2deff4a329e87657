package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nvarad/finsight/internal/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *session.Session) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	sess := &session.Session{}
	return New(srv.URL, 5*time.Second, sess, zap.NewNop()), sess
}

func TestLoginInstallsToken(t *testing.T) {
	t.Parallel()
	c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login/", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access":"tok123","refresh":"ref","user":{"id":7,"username":"asha","role":"analyst"}}`))
	})

	u, err := c.Login(context.Background(), "asha", "pw")
	require.NoError(t, err)
	require.Equal(t, int64(7), u.ID)
	require.True(t, sess.Active())
	require.Equal(t, "tok123", sess.Token())
}

func TestAnalyticsSummaryEnumeratesIDs(t *testing.T) {
	t.Parallel()
	c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/balance-sheets/analytics_summary/", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		q := r.URL.Query()
		require.Equal(t, "3", q.Get("company"))
		require.Equal(t, []string{"10", "11", "12"}, q["ids"])
		w.Write([]byte(`{"analytics":[{"period":"2023"}],"kpis":{},"periods_count":1}`))
	})
	sess.Init("tok", session.User{ID: 1})

	s, err := c.AnalyticsSummary(context.Background(), 3, []int64{10, 11, 12})
	require.NoError(t, err)
	require.Equal(t, 1, s.PeriodsCount)
	require.Equal(t, "2023", s.Analytics[0].Period)
}

func TestAnalyticsSummaryEmptySelectionSendsNoIDs(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, present := r.URL.Query()["ids"]
		require.False(t, present)
		w.Write([]byte(`{"analytics":[],"kpis":{},"periods_count":0}`))
	})

	s, err := c.AnalyticsSummary(context.Background(), 3, nil)
	require.NoError(t, err)
	require.Zero(t, s.PeriodsCount)
}

func TestListEndpointsUnwrapPaginationEnvelope(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":2,"next":null,"results":[{"id":1,"name":"Acme"},{"id":2,"name":"Beta","parent_company":1}]}`))
	})

	companies, err := c.Companies(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 2)
	require.Equal(t, "Beta", companies[1].Name)
	require.Equal(t, int64(1), *companies[1].ParentCompany)
}

func TestBareArrayStillDecodes(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "5", r.URL.Query().Get("company"))
		w.Write([]byte(`[{"id":9,"year":2023,"quarter":"2"}]`))
	})

	refs, err := c.BalanceSheets(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	require.Equal(t, "2023 Q2", refs[0].Label())
}

func TestErrorDetailSurfaces(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"You do not have access to this company."}`))
	})

	_, err := c.Companies(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "You do not have access to this company.")
}

func TestSendChatQueryCarriesSelection(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/query/", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"id":4,"query":"how is liquidity?","response":"Current ratio improved."}`))
	})

	msg, err := c.SendChatQuery(context.Background(), 3, "how is liquidity?", []int64{10, 11})
	require.NoError(t, err)
	require.Equal(t, "Current ratio improved.", msg.Response)
}

func TestPeriodLabels(t *testing.T) {
	t.Parallel()
	require.Equal(t, "2023", BalanceSheetRef{Year: 2023}.Label())
	require.Equal(t, "2021 Q4", BalanceSheetRef{Year: 2021, Quarter: "4"}.Label())
}
