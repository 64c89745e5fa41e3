package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/rs/zerolog/log"

	"github.com/driftboard/driftboard-backend/models"
	"github.com/driftboard/driftboard-backend/repository"
	"github.com/driftboard/driftboard-backend/responses"
	"github.com/driftboard/driftboard-backend/utils"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

func validUsername(username string) bool {
	return len(username) >= 3 && len(username) <= 50 && usernamePattern.MatchString(username)
}

// CheckUsername reports whether a username is still free. Public, so the
// signup form can check before the user has a session.
func (api *API) CheckUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("u")
	if !validUsername(username) {
		utils.HandleError(w, responses.BadRequestError{Msg: "Username must be 3-50 characters of a-z, 0-9 or underscore."})
		return
	}

	available, err := api.Store.UsernameAvailable(r.Context(), username)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check username availability")
		utils.HandleError(w, responses.InternalServerError{Msg: "An error occurred while processing your request."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(map[string]bool{"available": available}))
}

func (api *API) Me(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	profile, err := api.Store.GetUser(r.Context(), c.UID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.HandleError(w, responses.NotFoundError{Msg: "Profile not found. Create a session first."})
			return
		}
		log.Error().Err(err).Msg("Failed to load profile")
		utils.HandleError(w, responses.InternalServerError{Msg: "An error occurred while processing your request."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(profile))
}

func (api *API) UpdateMe(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var body struct {
		Username    string `json:"username"`
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.HandleError(w, responses.BadRequestError{Msg: "Invalid request."})
		return
	}

	if !validUsername(body.Username) {
		utils.HandleError(w, responses.BadRequestError{Msg: "Username must be 3-50 characters of a-z, 0-9 or underscore."})
		return
	}
	if len(body.DisplayName) > 100 {
		utils.HandleError(w, responses.BadRequestError{Msg: "Display name must be at most 100 characters."})
		return
	}

	if err := api.Store.UpdateProfile(r.Context(), c.UID, body.Username, body.DisplayName); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			utils.HandleError(w, responses.ConflictError{Msg: "Username is already taken."})
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			utils.HandleError(w, responses.NotFoundError{Msg: "Profile not found. Create a session first."})
			return
		}
		log.Error().Err(err).Msg("Failed to update profile")
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to update profile."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(map[string]string{"message": "Profile updated successfully."}))
}
