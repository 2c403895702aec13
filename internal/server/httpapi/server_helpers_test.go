package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akuzmin/notehub/internal/model"
	"github.com/akuzmin/notehub/internal/service"
	"github.com/akuzmin/notehub/internal/token"
)

type fakeAuth struct {
	registerSess model.Session
	registerErr  error
	loginSess    model.Session
	loginErr     error

	gotFullName, gotEmail, gotPassword, gotIP string
}

var _ service.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) Register(_ context.Context, fullName, email, password string) (model.Session, error) {
	f.gotFullName, f.gotEmail, f.gotPassword = fullName, email, password
	return f.registerSess, f.registerErr
}

func (f *fakeAuth) Login(_ context.Context, email, password, ip string) (model.Session, error) {
	f.gotEmail, f.gotPassword, f.gotIP = email, password, ip
	return f.loginSess, f.loginErr
}

type fakeNoteSvc struct {
	notes []model.Note
	note  *model.Note
	err   error

	gotOwner uuid.UUID
	gotID    uuid.UUID
	gotDraft model.NoteDraft
}

var _ service.NoteService = (*fakeNoteSvc)(nil)

func (f *fakeNoteSvc) List(_ context.Context, ownerID uuid.UUID) ([]model.Note, error) {
	f.gotOwner = ownerID
	return f.notes, f.err
}

func (f *fakeNoteSvc) Create(_ context.Context, ownerID uuid.UUID, draft model.NoteDraft) (*model.Note, error) {
	f.gotOwner, f.gotDraft = ownerID, draft
	return f.note, f.err
}

func (f *fakeNoteSvc) Update(_ context.Context, ownerID, noteID uuid.UUID, draft model.NoteDraft) (*model.Note, error) {
	f.gotOwner, f.gotID, f.gotDraft = ownerID, noteID, draft
	return f.note, f.err
}

func (f *fakeNoteSvc) Delete(_ context.Context, ownerID, noteID uuid.UUID) error {
	f.gotOwner, f.gotID = ownerID, noteID
	return f.err
}

func (f *fakeNoteSvc) TogglePin(_ context.Context, ownerID, noteID uuid.UUID) (*model.Note, error) {
	f.gotOwner, f.gotID = ownerID, noteID
	return f.note, f.err
}

type fakePinger struct{ err error }

func (f *fakePinger) Ping(context.Context) error { return f.err }

func newTestServer(t *testing.T, auth service.AuthService, notes service.NoteService) (*Server, *token.Issuer) {
	t.Helper()
	iss := token.NewIssuer([]byte("test-key"), time.Minute)
	return New(auth, notes, iss, &fakePinger{}, zap.NewNop()), iss
}

func doJSON(t *testing.T, s *Server, method, target, bearer, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}

func sampleNote(owner uuid.UUID) *model.Note {
	return &model.Note{
		ID:        uuid.Must(uuid.NewV4()),
		OwnerID:   owner,
		Seq:       1,
		Title:     "t",
		Content:   "c",
		Tags:      []string{"a"},
		CreatedAt: time.Now(),
	}
}

func errStatus(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantKind string) {
	t.Helper()
	require.Equal(t, wantStatus, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	require.Equal(t, wantKind, body.Error)
	require.NotEmpty(t, body.Message)
}
