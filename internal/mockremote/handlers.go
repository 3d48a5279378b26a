// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockremote

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/liongatetechnology/authapp/internal/appwrite"
	"github.com/liongatetechnology/authapp/internal/logging"
	"github.com/liongatetechnology/authapp/internal/util"
)

// validUserID matches the IDs the hosted service accepts.
var validUserID = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,35}$`)

type createAccountBody struct {
	UserID   string `json:"userId" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=8,max=256"`
	Name     string `json:"name" validate:"max=128"`
}

type createSessionBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// fieldMessages maps a failed struct field to the remote's wording.
var fieldMessages = map[string]string{
	"UserID":   msgInvalidUserID,
	"Email":    msgInvalidEmail,
	"Password": msgInvalidPassword,
	"Name":     msgInvalidName,
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var body createAccountBody
	if rerr := s.decode(w, r, &body); rerr != nil {
		writeRemoteError(w, rerr)
		return
	}
	user, rerr := s.createAccount(body)
	if rerr != nil {
		writeRemoteError(w, rerr)
		return
	}
	s.log.Debug().
		Str(logging.FieldUserID, user.ID).
		Str(logging.FieldEmail, util.MaskEmail(user.Email)).
		Msg("account created")
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if s.sessionFromRequest(r) != nil {
		writeError(w, http.StatusUnauthorized, appwrite.TypeUserSessionExists, msgSessionExists)
		return
	}

	var body createSessionBody
	if rerr := s.decode(w, r, &body); rerr != nil {
		writeRemoteError(w, rerr)
		return
	}

	s.mu.RLock()
	acct := s.accounts[s.emails[normalizeEmailKey(body.Email)]]
	s.mu.RUnlock()

	// Unknown email and wrong password answer identically.
	if acct == nil || bcrypt.CompareHashAndPassword(acct.passwordHash, prehash(body.Password)) != nil {
		writeError(w, http.StatusUnauthorized, appwrite.TypeUserInvalidCredentials, msgInvalidCredentials)
		return
	}

	now := s.now()
	sess := &session{
		secret: randomHex(32),
		meta: appwrite.Session{
			ID:        appwrite.UniqueID(),
			CreatedAt: timestamp(now),
			UserID:    acct.user.ID,
			Expire:    timestamp(now.Add(SessionLength)),
			Provider:  "email",
			Current:   true,
		},
	}
	s.mu.Lock()
	s.sessions[sess.secret] = sess
	s.mu.Unlock()

	w.Header().Set(appwrite.HeaderFallbackCookies, s.FallbackCookie(sess.secret))
	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName(),
		Value:    sess.secret,
		Path:     "/",
		Expires:  now.Add(SessionLength),
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Secure:   r.TLS != nil,
	})
	s.log.Debug().Str(logging.FieldUserID, acct.user.ID).Msg("session created")
	writeJSON(w, http.StatusCreated, sess.meta)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(r)
	if sess == nil {
		writeError(w, http.StatusUnauthorized, appwrite.TypeGeneralUnauthorized, msgGuestScope)
		return
	}
	s.mu.RLock()
	acct, ok := s.accounts[sess.meta.UserID]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusUnauthorized, appwrite.TypeGeneralUnauthorized, msgGuestScope)
		return
	}
	writeJSON(w, http.StatusOK, acct.user)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(r)
	if sess == nil {
		writeError(w, http.StatusUnauthorized, appwrite.TypeGeneralUnauthorized, msgGuestScope)
		return
	}

	id := mux.Vars(r)["sessionId"]
	if id == appwrite.CurrentSession {
		id = sess.meta.ID
	}

	s.mu.Lock()
	deleted := false
	for secret, candidate := range s.sessions {
		if candidate.meta.ID == id && candidate.meta.UserID == sess.meta.UserID {
			delete(s.sessions, secret)
			deleted = true
			break
		}
	}
	s.mu.Unlock()

	if !deleted {
		writeError(w, http.StatusNotFound, appwrite.TypeUserSessionNotFound, msgSessionNotFound)
		return
	}
	s.log.Debug().Str(logging.FieldUserID, sess.meta.UserID).Msg("session deleted")
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// ACCOUNT STORE
// ============================================================================

func (s *Server) createAccount(body createAccountBody) (*appwrite.User, *appwrite.RemoteError) {
	if rerr := s.check(body); rerr != nil {
		return nil, rerr
	}

	id := body.UserID
	if id == uniqueIDPlaceholder {
		id = appwrite.UniqueID()
	}
	if !validUserID.MatchString(id) {
		return nil, newRemoteError(http.StatusBadRequest, appwrite.TypeGeneralArgumentInvalid, msgInvalidUserID)
	}

	hash, err := bcrypt.GenerateFromPassword(prehash(body.Password), s.bcryptCost)
	if err != nil {
		return nil, newRemoteError(http.StatusInternalServerError, appwrite.TypeGeneralServerError, "Server Error")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmailKey(body.Email)
	if _, taken := s.accounts[id]; taken {
		return nil, newRemoteError(http.StatusConflict, appwrite.TypeUserAlreadyExists, msgUserExists)
	}
	if _, taken := s.emails[key]; taken {
		return nil, newRemoteError(http.StatusConflict, appwrite.TypeUserAlreadyExists, msgUserExists)
	}

	now := timestamp(s.now())
	acct := &account{
		passwordHash: hash,
		user: appwrite.User{
			ID:           id,
			CreatedAt:    now,
			UpdatedAt:    now,
			Name:         body.Name,
			Email:        body.Email,
			Registration: now,
			Status:       true,
			Prefs:        map[string]any{},
		},
	}
	s.accounts[id] = acct
	s.emails[key] = id

	user := acct.user
	return &user, nil
}

// decode reads a JSON body and validates it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) *appwrite.RemoteError {
	// SECURITY: Limit request body size
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return newRemoteError(http.StatusBadRequest, appwrite.TypeGeneralArgumentInvalid, msgInvalidBody)
	}
	return s.check(dst)
}

// check runs struct validation and reports the first failing field.
func (s *Server) check(v any) *appwrite.RemoteError {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := fieldMessages[verrs[0].Field()]; ok {
			return newRemoteError(http.StatusBadRequest, appwrite.TypeGeneralArgumentInvalid, msg)
		}
	}
	return newRemoteError(http.StatusBadRequest, appwrite.TypeGeneralArgumentInvalid, err.Error())
}

// prehash folds a password to a fixed length so bcrypt's 72-byte input
// limit never truncates or rejects it.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}
