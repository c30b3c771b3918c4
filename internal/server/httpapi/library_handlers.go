package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/libhub/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type libraryRequest struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"imageUrl"`
}

type libraryResponse struct {
	Library *models.Library `json:"library"`
}

func (a *API) handleListLibraries(w http.ResponseWriter, r *http.Request) {
	libs, err := a.libraries.List(r.Context(), identity(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if libs == nil {
		libs = []*models.Library{}
	}
	writeOK(w, http.StatusOK, "Libraries retrieved", map[string]any{"libraries": libs})
}

func (a *API) handleActiveLibrary(w http.ResponseWriter, r *http.Request) {
	lib, err := a.libraries.GetActive(r.Context(), identity(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if lib == nil {
		writeOK(w, http.StatusOK, "No active library", libraryResponse{})
		return
	}
	writeOK(w, http.StatusOK, "Active library retrieved", libraryResponse{Library: lib})
}

func (a *API) handleCreateLibrary(w http.ResponseWriter, r *http.Request) {
	var req libraryRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	var name string
	if req.Name != nil {
		name = *req.Name
	}

	lib, err := a.libraries.Create(r.Context(), identity(r), name, req.ImageURL)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.logger.Info(r.Context(), "library created", "library_id", lib.ID, "user_id", lib.UserID)
	writeOK(w, http.StatusCreated, "Library created successfully", libraryResponse{Library: lib})
}

func (a *API) handleSwitchLibrary(w http.ResponseWriter, r *http.Request) {
	lib, err := a.libraries.Switch(r.Context(), identity(r), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Library switched successfully", libraryResponse{Library: lib})
}

func (a *API) handleUpdateLibrary(w http.ResponseWriter, r *http.Request) {
	var req libraryRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	lib, err := a.libraries.Update(r.Context(), identity(r), chi.URLParam(r, "id"), models.LibraryPatch{
		Name:     req.Name,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Library updated successfully", libraryResponse{Library: lib})
}

func (a *API) handleDeleteLibrary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.libraries.Delete(r.Context(), identity(r), id); err != nil {
		a.writeError(w, r, err)
		return
	}

	a.logger.Info(r.Context(), "library deleted", "library_id", id, "user_id", identity(r).UserID)
	writeOK(w, http.StatusOK, "Library deleted successfully", nil)
}
