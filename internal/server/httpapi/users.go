package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/todokeeper/internal/server/services"
)

type registerRequest struct {
	UserName        string `json:"username"`
	FullName        string `json:"fullname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (req registerRequest) validate() error {
	var v validator
	if v.required("username", req.UserName) {
		v.maxLen("username", req.UserName, maxUserName)
	}
	if v.required("fullname", req.FullName) {
		v.maxLen("fullname", req.FullName, maxFullName)
	}
	if v.required("email", req.Email) {
		v.maxLen("email", req.Email, maxEmail)
		v.check(validEmail(req.Email), "email is not a valid address")
	}
	if v.required("password", req.Password) {
		v.check(len(req.Password) >= minPassword, "password is too short")
		v.check(len(req.Password) <= maxPasswordBytes, "password is too long")
	}
	v.required("confirmPassword", req.ConfirmPassword)
	return v.err()
}

type loginRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

type checkUserRequest struct {
	UserName string `json:"username"`
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	pair, err := h.users.Register(r.Context(), services.RegisterInput{
		UserName:        req.UserName,
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	h.metrics.tokenPairIssued()
	writeJSON(w, http.StatusOK, pair)
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var v validator
	v.required("username", req.UserName)
	v.required("password", req.Password)
	if err := v.err(); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	pair, err := h.users.Login(r.Context(), req.UserName, req.Password)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	h.metrics.tokenPairIssued()
	writeJSON(w, http.StatusOK, pair)
}

// refreshToken runs behind the refresh-token middleware, which already
// checked the bearer token.
func (h *handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	pair, err := h.users.RefreshToken(r.Context(), tokenFrom(r.Context()))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	h.metrics.tokenPairIssued()
	writeJSON(w, http.StatusOK, pair)
}

func (h *handler) checkUser(w http.ResponseWriter, r *http.Request) {
	var req checkUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var v validator
	v.required("username", req.UserName)
	if err := v.err(); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.users.CheckUser(r.Context(), req.UserName); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, empty)
}
