package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	ferrors "github.com/matzehuels/friendgraph/pkg/errors"
	"github.com/matzehuels/friendgraph/pkg/network/query"
	"github.com/matzehuels/friendgraph/pkg/social"
)

// Validation messages returned in "result".
const (
	MsgInvalidRequest = "Invalid request data!"
	MsgEnterName      = "Please enter a valid name!"
	MsgEnterUsername  = "Please enter a username!"
	MsgEnterBothUsers = "Please provide both usernames!"
	MsgEnterBothNames = "Enter both user names!"
	MsgEnterUsernames = "Enter both usernames!"
	MsgInvalidName    = "User names cannot contain spaces or control characters."
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// response is the body of every reply.
type response struct {
	Result      string             `json:"result"`
	Outcome     social.Kind        `json:"outcome,omitempty"`
	Users       []string           `json:"users,omitempty"`
	Friends     []string           `json:"friends,omitempty"`
	Path        []string           `json:"path,omitempty"`
	Suggestions []query.Suggestion `json:"suggestions,omitempty"`
	Error       ferrors.Code       `json:"error,omitempty"`
}

// nameRequest is the body of single-user routes. Name is a pointer so a
// missing field can be told apart from a blank one.
type nameRequest struct {
	Name *string `json:"name"`
}

type name struct {
	Name string `validate:"required"`
}

type pairRequest struct {
	User1 string `json:"user1" validate:"required"`
	User2 string `json:"user2" validate:"required"`
}

type pathRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// =============================================================================
// Mutations
// =============================================================================

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	n, ok := s.decodeName(w, r, MsgEnterName)
	if !ok {
		return
	}
	out, err := s.svc.AddUser(r.Context(), n)
	s.writeOutcome(w, out, err)
}

func (s *Server) handleRemoveUser(w http.ResponseWriter, r *http.Request) {
	n, ok := s.decodeName(w, r, MsgEnterUsername)
	if !ok {
		return
	}
	out, err := s.svc.RemoveUser(r.Context(), n)
	s.writeOutcome(w, out, err)
}

func (s *Server) handleAddFriend(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if !s.decode(w, r, &req, MsgEnterBothUsers, &req.User1, &req.User2) {
		return
	}
	out, err := s.svc.AddFriendship(r.Context(), req.User1, req.User2)
	s.writeOutcome(w, out, err)
}

func (s *Server) handleRemoveFriend(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if !s.decode(w, r, &req, MsgEnterUsernames, &req.User1, &req.User2) {
		return
	}
	out, err := s.svc.RemoveFriendship(r.Context(), req.User1, req.User2)
	s.writeOutcome(w, out, err)
}

// =============================================================================
// Queries
// =============================================================================

func (s *Server) handleShowFriends(w http.ResponseWriter, r *http.Request) {
	n, ok := s.decodeName(w, r, MsgEnterUsername)
	if !ok {
		return
	}
	friends, err := s.svc.ShowFriends(r.Context(), n)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if friends == nil {
		friends = []string{}
	}
	s.writeJSON(w, http.StatusOK, response{Result: social.FriendsReport(n, friends), Friends: friends})
}

func (s *Server) handleFindPath(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if !s.decode(w, r, &req, MsgEnterBothNames, &req.Start, &req.End) {
		return
	}
	path, err := s.svc.ShortestPath(r.Context(), req.Start, req.End)
	if errors.Is(err, query.ErrNoPath) {
		s.writeJSON(w, http.StatusOK, response{Result: social.MsgNoConnection})
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, response{Result: social.PathReport(path), Path: path})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	n, ok := s.decodeName(w, r, MsgEnterUsername)
	if !ok {
		return
	}
	suggestions, err := s.svc.Recommend(r.Context(), n)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, response{Result: social.SuggestionsReport(n, suggestions), Suggestions: suggestions})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, response{Result: "ok"})
}

// =============================================================================
// Decoding
// =============================================================================

// decodeName decodes a single-user body. A missing name field is an
// invalid request; a blank one gets blankMsg.
func (s *Server) decodeName(w http.ResponseWriter, r *http.Request, blankMsg string) (string, bool) {
	var req nameRequest
	if !s.readJSON(w, r, &req) {
		return "", false
	}
	if req.Name == nil {
		s.writeJSON(w, http.StatusBadRequest, response{Result: MsgInvalidRequest, Error: ferrors.ErrCodeInvalidInput})
		return "", false
	}
	n := name{Name: strings.TrimSpace(*req.Name)}
	if err := s.validate.Struct(n); err != nil {
		s.writeJSON(w, http.StatusBadRequest, response{Result: blankMsg, Error: ferrors.ErrCodeInvalidInput})
		return "", false
	}
	return n.Name, true
}

// decode decodes a two-user body into req, trims the given fields and
// validates req. Blank fields get blankMsg.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, req any, blankMsg string, fields ...*string) bool {
	if !s.readJSON(w, r, req) {
		return false
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, response{Result: blankMsg, Error: ferrors.ErrCodeInvalidInput})
		return false
	}
	return true
}

// readJSON decodes the body as a non-empty JSON object. Anything else,
// including {} and null, is answered with the invalid-request message.
func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	var raw json.RawMessage
	var fields map[string]json.RawMessage
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(body).Decode(&raw)
	if err == nil {
		err = json.Unmarshal(raw, &fields)
	}
	if err == nil && len(fields) == 0 {
		err = errors.New("empty request object")
	}
	if err == nil {
		err = json.Unmarshal(raw, v)
	}
	if err != nil {
		s.logger.Debug("bad request body", "path", r.URL.Path, "err", err)
		s.writeJSON(w, http.StatusBadRequest, response{Result: MsgInvalidRequest, Error: ferrors.ErrCodeInvalidInput})
		return false
	}
	return true
}

// =============================================================================
// Encoding
// =============================================================================

func (s *Server) writeOutcome(w http.ResponseWriter, out social.Outcome, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, response{Result: out.Report(), Outcome: out.Kind, Users: out.Users})
}

// writeError maps engine errors to replies. Unknown users are a reported
// outcome, not a failure.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := ferrors.GetCode(err)
	switch code {
	case ferrors.ErrCodeUserNotFound:
		s.writeJSON(w, http.StatusOK, response{Result: social.MsgUserNotFound, Outcome: social.UserNotFound})
	case ferrors.ErrCodeInvalidName:
		s.writeJSON(w, http.StatusBadRequest, response{Result: MsgInvalidName, Error: code})
	case ferrors.ErrCodeStoreUnavailable, ferrors.ErrCodeLocked:
		s.logger.Error("store failure", "err", err)
		s.writeJSON(w, http.StatusServiceUnavailable, response{Result: "Error: " + ferrors.UserMessage(err), Error: code})
	default:
		if code == "" {
			code = ferrors.ErrCodeInternal
		}
		s.logger.Error("request failed", "err", err)
		s.writeJSON(w, http.StatusInternalServerError, response{Result: "Error: " + ferrors.UserMessage(err), Error: code})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}
