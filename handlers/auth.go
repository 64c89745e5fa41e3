package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/driftboard/driftboard-backend/auth"
	"github.com/driftboard/driftboard-backend/common"
	"github.com/driftboard/driftboard-backend/models"
	"github.com/driftboard/driftboard-backend/repository"
	"github.com/driftboard/driftboard-backend/responses"
	"github.com/driftboard/driftboard-backend/utils"
)

// claims pulls the verified identity the auth middleware stored on the
// request. Reaching a secured handler without it is a wiring bug.
func claims(r *http.Request) (*auth.Claims, error) {
	c, ok := common.ClaimsFromContext(r.Context())
	if !ok {
		return nil, responses.UnauthorizedError{Msg: "Not authenticated."}
	}
	return c, nil
}

// projectID parses the {projectID} path variable.
func projectID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["projectID"])
	if err != nil {
		return uuid.Nil, responses.BadRequestError{Msg: "Invalid project id."}
	}
	return id, nil
}

// role resolves the caller's role on a project, mapping non-membership to
// a not-found error so outsiders cannot probe which projects exist.
func (api *API) role(r *http.Request, id uuid.UUID, userID string) (string, error) {
	role, err := api.Store.Role(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", responses.NotFoundError{Msg: "Project not found."}
		}
		log.Error().Err(err).Msg("Failed to look up project role")
		return "", responses.InternalServerError{Msg: "An error occurred while processing your request."}
	}
	return role, nil
}

// Session verifies the caller's identity token (already done by the
// middleware) and makes sure a profile row exists for it. The first call
// after sign-up seeds the username from the email local part.
func (api *API) Session(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	username := ""
	if at := strings.Index(c.Email, "@"); at > 0 {
		username = c.Email[:at]
	}
	user := models.User{ID: c.UID, Username: username, Email: c.Email, DisplayName: c.Name}
	if err := api.Store.UpsertUser(r.Context(), user); err != nil {
		log.Error().Err(err).Str("uid", c.UID).Msg("Failed to upsert user")
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to create session."})
		return
	}

	profile, err := api.Store.GetUser(r.Context(), c.UID)
	if err != nil {
		log.Error().Err(err).Str("uid", c.UID).Msg("Failed to load profile")
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to create session."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(profile))
}
