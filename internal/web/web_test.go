package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathdrills/internal/activity"
	"github.com/abhisek/mathdrills/internal/llm"
	"github.com/abhisek/mathdrills/internal/problemgen"
	"github.com/abhisek/mathdrills/internal/session"
	"github.com/abhisek/mathdrills/internal/tutor"
)

type harness struct {
	t       *testing.T
	srv     *httptest.Server
	client  *http.Client
	backend *session.MemoryBackend
	catalog *activity.Catalog
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func counterSeeds() func() uint64 {
	var n uint64
	return func() uint64 {
		n++
		return n
	}
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	backend := session.NewMemoryBackend(time.Hour)
	catalog := activity.Default()
	opts = append([]Option{
		WithLogger(quietLogger()),
		WithEngineOptions(session.WithSeedSource(counterSeeds())),
	}, opts...)
	s, err := New(catalog, backend, opts...)
	require.NoError(t, err)

	srv := httptest.NewServer(s.Routes())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &harness{t: t, srv: srv, client: &http.Client{Jar: jar}, backend: backend, catalog: catalog}
}

func (h *harness) get(path string) (int, string) {
	h.t.Helper()
	resp, err := h.client.Get(h.srv.URL + path)
	require.NoError(h.t, err)
	return readBody(h.t, resp)
}

func (h *harness) post(path string, form url.Values) (int, string) {
	h.t.Helper()
	resp, err := h.client.PostForm(h.srv.URL+path, form)
	require.NoError(h.t, err)
	return readBody(h.t, resp)
}

func readBody(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

// stored loads the single learner's session for activityID.
func (h *harness) stored(activityID string) *session.Session {
	h.t.Helper()
	learners := h.backend.Learners()
	require.Len(h.t, learners, 1)
	act, err := h.catalog.Get(activityID)
	require.NoError(h.t, err)
	s, err := session.Load(context.Background(), h.backend.Scope(learners[0]), session.NewEngine(act))
	require.NoError(h.t, err)
	return s
}

func numericAnswer(t *testing.T, q *problemgen.Question) string {
	t.Helper()
	p, ok := q.Payload.(*problemgen.Numeric)
	require.True(t, ok, "payload %T", q.Payload)
	return p.Value
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	status, body := h.get("/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body)

	down := newHarness(t, WithHealthCheck(func(context.Context) error { return errors.New("db closed") }))
	status, _ = down.get("/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestHome(t *testing.T) {
	h := newHarness(t)
	status, body := h.get("/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Times Tables")
	assert.Contains(t, body, `href="/a/partial-products"`)
}

func TestUnknownActivity(t *testing.T) {
	h := newHarness(t)
	status, body := h.get("/a/long-division")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "long-division")

	status, _ = h.post("/a/long-division/answer", url.Values{"answer": {"1"}})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestActivity_StableAcrossReloads(t *testing.T) {
	h := newHarness(t)
	status, first := h.get("/a/times-tables")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, first, "Check answer")

	q := h.stored("times-tables").Active
	require.NotNil(t, q)
	assert.Contains(t, first, q.Prompt)

	_, second := h.get("/a/times-tables")
	assert.Contains(t, second, q.Prompt)
	assert.Equal(t, q.Seed, h.stored("times-tables").Active.Seed)
}

func TestAnswer_Empty(t *testing.T) {
	h := newHarness(t)
	h.get("/a/times-tables")
	before := h.stored("times-tables")

	status, body := h.post("/a/times-tables/answer", url.Values{"answer": {"   "}})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, "Please enter an answer")
	assert.Contains(t, body, before.Active.Prompt)

	after := h.stored("times-tables")
	assert.Equal(t, 0, after.TotalAttempted)
	assert.False(t, after.AnswerSubmitted)
	assert.Equal(t, before.Active.Seed, after.Active.Seed)
}

func TestAnswer_CorrectThenNext(t *testing.T) {
	h := newHarness(t)
	h.get("/a/times-tables")
	q := h.stored("times-tables").Active

	status, body := h.post("/a/times-tables/answer", url.Values{"answer": {numericAnswer(t, q)}})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Correct!")
	assert.Contains(t, body, "1/1 correct")
	assert.NotContains(t, body, "Explain it another way")

	// Resubmitting does not grade twice.
	h.post("/a/times-tables/answer", url.Values{"answer": {"0"}})
	s := h.stored("times-tables")
	assert.Equal(t, 1, s.TotalAttempted)
	assert.True(t, s.LastCorrect)

	_, body = h.post("/a/times-tables/next", nil)
	assert.Contains(t, body, "Check answer")
	s = h.stored("times-tables")
	assert.False(t, s.ShowFeedback)
	assert.NotEqual(t, q.Seed, s.Active.Seed)
}

func TestAnswer_UnparseableIsWrong(t *testing.T) {
	h := newHarness(t)
	h.get("/a/times-tables")

	_, body := h.post("/a/times-tables/answer", url.Values{"answer": {"twelve-ish"}})
	assert.Contains(t, body, "Not quite")
	assert.Contains(t, body, "Your answer: twelve-ish")
	assert.Contains(t, body, "Explain it another way")

	s := h.stored("times-tables")
	assert.Equal(t, 1, s.TotalAttempted)
	assert.Equal(t, 0, s.TotalCorrect)
}

func TestNext_BeforeAnswerKeepsQuestion(t *testing.T) {
	h := newHarness(t)
	h.get("/a/times-tables")
	seed := h.stored("times-tables").Active.Seed

	h.post("/a/times-tables/next", nil)
	assert.Equal(t, seed, h.stored("times-tables").Active.Seed)
}

func TestAnswer_NoStoredSessionIsNotGraded(t *testing.T) {
	h := newHarness(t)
	noFollow := &http.Client{
		Jar: h.client.Jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	// A form posted after the stored session is gone, e.g. after a restart.
	resp, err := noFollow.PostForm(h.srv.URL+"/a/times-tables/answer", url.Values{"answer": {"42"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/a/times-tables", resp.Header.Get("Location"))
	assert.Empty(t, h.backend.Learners())

	status, body := h.get("/a/times-tables")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Check answer")
	s := h.stored("times-tables")
	assert.Equal(t, 0, s.TotalAttempted)
	assert.False(t, s.AnswerSubmitted)
}

func TestAnswer_ExpiredSessionIsNotGraded(t *testing.T) {
	h := newHarness(t)
	h.get("/a/times-tables")
	learners := h.backend.Learners()
	require.Len(t, learners, 1)
	require.NoError(t, session.Forget(context.Background(), h.backend.Scope(learners[0]), "times-tables"))

	_, body := h.post("/a/times-tables/answer", url.Values{"answer": {"0"}})
	assert.Contains(t, body, "Check answer")
	assert.NotContains(t, body, "Not quite")
	assert.Equal(t, 0, h.stored("times-tables").TotalAttempted)
}

func TestExplain(t *testing.T) {
	mock := llm.NewMock(llm.Reply{Content: `{"explanation":"Skip count by the first number.","tip":"Check your times table."}`})
	h := newHarness(t, WithTutor(tutor.New(mock, tutor.WithLogger(quietLogger()))))
	h.get("/a/times-tables")

	_, body := h.post("/a/times-tables/answer", url.Values{"answer": {"0"}})
	require.Contains(t, body, "Not quite")

	_, body = h.post("/a/times-tables/explain", nil)
	assert.Contains(t, body, "Another way to see it")
	assert.Contains(t, body, "Skip count by the first number.")
	assert.NotContains(t, body, "Explain it another way")

	// Asking again does not call the provider twice.
	h.post("/a/times-tables/explain", nil)
	assert.Len(t, mock.Requests(), 1)

	s := h.stored("times-tables")
	assert.Equal(t, 1, s.TotalAttempted)
	assert.Equal(t, 0, s.TotalCorrect)
}

func TestRestart(t *testing.T) {
	h := newHarness(t)
	h.get("/a/times-tables")
	h.post("/a/times-tables/answer", url.Values{"answer": {"0"}})

	status, body := h.post("/a/times-tables/restart", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "0/0 correct")
	assert.Equal(t, 0, h.stored("times-tables").TotalAttempted)
}

func TestLearnerCookie(t *testing.T) {
	h := newHarness(t)
	h.get("/")
	h.get("/a/rounding")
	h.get("/a/times-tables")
	assert.Len(t, h.backend.Learners(), 1)

	// A second browser gets its own learner.
	other := &http.Client{}
	resp, err := other.Get(h.srv.URL + "/a/rounding")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Len(t, h.backend.Learners(), 2)

	// A forged cookie is replaced.
	req, _ := http.NewRequest(http.MethodGet, h.srv.URL+"/a/rounding", nil)
	req.AddCookie(&http.Cookie{Name: "mathdrills", Value: "forged"})
	req.Header.Set("X-Request-ID", "req-123")
	resp, err = other.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))
	assert.Len(t, h.backend.Learners(), 3)
}

func TestRendersEveryActivity(t *testing.T) {
	h := newHarness(t)
	for _, a := range h.catalog.All() {
		status, body := h.get("/a/" + a.ID)
		assert.Equal(t, http.StatusOK, status, a.ID)
		assert.True(t, strings.Contains(body, "Check answer"), "%s: no submit button", a.ID)
	}
}

type countingSweeper struct{ calls chan struct{} }

func (c countingSweeper) Sweep(context.Context) (int, error) {
	select {
	case c.calls <- struct{}{}:
	default:
	}
	return 1, nil
}

func TestRunSweeper(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sw := countingSweeper{calls: make(chan struct{}, 1)}
	done := make(chan struct{})
	go func() {
		RunSweeper(ctx, sw, 5*time.Millisecond, quietLogger())
		close(done)
	}()

	select {
	case <-sw.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper never ran")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestServe_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- Serve(ctx, ln, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("up"))
		}), quietLogger())
	}()

	resp, err := http.Get("http://" + ln.Addr().String())
	require.NoError(t, err)
	_, body := readBody(t, resp)
	assert.Equal(t, "up", body)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
