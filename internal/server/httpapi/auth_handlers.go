package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/libhub/internal/server/models"
	"github.com/dmitrijs2005/libhub/internal/server/services"
	"github.com/go-chi/chi/v5"
)

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Role      *string `json:"role"`
	Status    *string `json:"status"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type authResponse struct {
	User  *models.PublicUser `json:"user"`
	Token string             `json:"token"`
}

type userResponse struct {
	User *models.PublicUser `json:"user"`
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	res, err := a.users.Register(r.Context(), services.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.logger.Info(r.Context(), "user registered", "user_id", res.User.ID, "role", res.User.Role)
	writeOK(w, http.StatusCreated, "Registration successful", authResponse{User: res.User.Public(), Token: res.Token})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	res, err := a.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, "Login successful", authResponse{User: res.User.Public(), Token: res.Token})
}

func (a *API) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	u, err := a.users.GetProfile(r.Context(), identity(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Profile retrieved", userResponse{User: u.Public()})
}

func (a *API) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	u, err := a.users.UpdateProfile(r.Context(), identity(r), services.ProfilePatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		Status:    req.Status,
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Profile updated", userResponse{User: u.Public()})
}

func (a *API) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.users.ListUsers(r.Context(), identity(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Users retrieved", map[string]any{"users": models.PublicUsers(users)})
}

func (a *API) handleSetUserStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	userID := chi.URLParam(r, "id")
	u, err := a.users.SetUserStatus(r.Context(), identity(r), userID, models.Status(req.Status))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.logger.Info(r.Context(), "user status changed", "user_id", userID, "status", req.Status, "by", identity(r).UserID)
	writeOK(w, http.StatusOK, "User status updated", userResponse{User: u.Public()})
}
