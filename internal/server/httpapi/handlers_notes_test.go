package httpapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/akuzmin/notehub/internal/errs"
	"github.com/akuzmin/notehub/internal/model"
	"github.com/akuzmin/notehub/internal/token"
)

func issueFor(t *testing.T, iss *token.Issuer, uid uuid.UUID) string {
	t.Helper()
	tok, _, err := iss.Issue(uid, "Ann")
	require.NoError(t, err)
	return tok
}

func TestNotes_RequireAuth(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t, &fakeAuth{}, &fakeNoteSvc{})

	// No header at all.
	rec := doJSON(t, s, http.MethodGet, "/notes", "", "")
	errStatus(t, rec, http.StatusUnauthorized, "missing_token")

	// Garbage token.
	rec = doJSON(t, s, http.MethodGet, "/notes", "garbage", "")
	errStatus(t, rec, http.StatusUnauthorized, "token_invalid")
}

func TestNotes_RequireAuth_Expired(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t, &fakeAuth{}, &fakeNoteSvc{})

	// Same key as the server's issuer, but already past expiry.
	expired := token.NewIssuer([]byte("test-key"), -time.Minute)
	tok, _, err := expired.Issue(uuid.Must(uuid.NewV4()), "Ann")
	require.NoError(t, err)

	rec := doJSON(t, s, http.MethodGet, "/notes", tok, "")
	errStatus(t, rec, http.StatusUnauthorized, "token_expired")
}

func TestListNotes_ScopedToCaller(t *testing.T) {
	t.Parallel()
	uid := uuid.Must(uuid.NewV4())
	notes := &fakeNoteSvc{notes: []model.Note{*sampleNote(uid)}}
	s, iss := newTestServer(t, &fakeAuth{}, notes)

	rec := doJSON(t, s, http.MethodGet, "/notes", issueFor(t, iss, uid), "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, uid, notes.gotOwner)

	var resp struct {
		Notes []noteResponse `json:"notes"`
	}
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Notes, 1)
	require.Equal(t, "t", resp.Notes[0].Title)
	require.NotNil(t, resp.Notes[0].Tags)
}

func TestCreateNote_OwnerComesFromToken(t *testing.T) {
	t.Parallel()
	uid := uuid.Must(uuid.NewV4())
	notes := &fakeNoteSvc{note: sampleNote(uid)}
	s, iss := newTestServer(t, &fakeAuth{}, notes)

	rec := doJSON(t, s, http.MethodPost, "/notes", issueFor(t, iss, uid),
		`{"title":"t","content":"c","tags":["a"]}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, uid, notes.gotOwner)
	require.Equal(t, "t", notes.gotDraft.Title)
	require.Nil(t, notes.gotDraft.IsPinned)
}

func TestCreateNote_ValidationError(t *testing.T) {
	t.Parallel()
	uid := uuid.Must(uuid.NewV4())
	notes := &fakeNoteSvc{err: errs.Validation("title", "title is required")}
	s, iss := newTestServer(t, &fakeAuth{}, notes)

	rec := doJSON(t, s, http.MethodPost, "/notes", issueFor(t, iss, uid),
		`{"title":"  ","content":"c"}`)

	errStatus(t, rec, http.StatusBadRequest, "validation")
}

func TestUpdateNote_PinFlagPassedThrough(t *testing.T) {
	t.Parallel()
	uid := uuid.Must(uuid.NewV4())
	n := sampleNote(uid)
	notes := &fakeNoteSvc{note: n}
	s, iss := newTestServer(t, &fakeAuth{}, notes)

	rec := doJSON(t, s, http.MethodPut, "/notes/"+n.ID.String(), issueFor(t, iss, uid),
		`{"title":"t2","content":"c2","isPinned":true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, n.ID, notes.gotID)
	require.NotNil(t, notes.gotDraft.IsPinned)
	require.True(t, *notes.gotDraft.IsPinned)
}

func TestUpdateNote_NotFound(t *testing.T) {
	t.Parallel()
	uid := uuid.Must(uuid.NewV4())
	notes := &fakeNoteSvc{err: errs.ErrNotFound}
	s, iss := newTestServer(t, &fakeAuth{}, notes)

	rec := doJSON(t, s, http.MethodPut, "/notes/"+uuid.Must(uuid.NewV4()).String(), issueFor(t, iss, uid),
		`{"title":"t","content":"c"}`)

	errStatus(t, rec, http.StatusNotFound, "not_found")
}

func TestDeleteNote_OK_and_BadID(t *testing.T) {
	t.Parallel()
	uid := uuid.Must(uuid.NewV4())
	notes := &fakeNoteSvc{}
	s, iss := newTestServer(t, &fakeAuth{}, notes)
	tok := issueFor(t, iss, uid)

	id := uuid.Must(uuid.NewV4())
	rec := doJSON(t, s, http.MethodDelete, "/notes/"+id.String(), tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, id, notes.gotID)
	require.Equal(t, uid, notes.gotOwner)

	// A malformed id must behave exactly like a missing note.
	rec = doJSON(t, s, http.MethodDelete, "/notes/not-a-uuid", tok, "")
	errStatus(t, rec, http.StatusNotFound, "not_found")
}

func TestTogglePin_ReturnsUpdatedNote(t *testing.T) {
	t.Parallel()
	uid := uuid.Must(uuid.NewV4())
	n := sampleNote(uid)
	n.IsPinned = true
	notes := &fakeNoteSvc{note: n}
	s, iss := newTestServer(t, &fakeAuth{}, notes)

	rec := doJSON(t, s, http.MethodPatch, "/notes/"+n.ID.String()+"/pin", issueFor(t, iss, uid), "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Note noteResponse `json:"note"`
	}
	decodeBody(t, rec, &resp)
	require.True(t, resp.Note.IsPinned)
}
