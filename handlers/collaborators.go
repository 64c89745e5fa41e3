package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/driftboard/driftboard-backend/models"
	"github.com/driftboard/driftboard-backend/notifier"
	"github.com/driftboard/driftboard-backend/repository"
	"github.com/driftboard/driftboard-backend/responses"
	"github.com/driftboard/driftboard-backend/utils"
)

func (api *API) ListCollaborators(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	id, err := projectID(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	if _, err := api.role(r, id, c.UID); err != nil {
		utils.HandleError(w, err)
		return
	}

	collaborators, err := api.Store.ListCollaborators(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list collaborators")
		utils.HandleError(w, responses.InternalServerError{Msg: "An error occurred while processing your request."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(collaborators))
}

func (api *API) AddCollaborator(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	id, err := projectID(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	role, err := api.role(r, id, c.UID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if role != models.RoleOwner {
		utils.HandleError(w, responses.ForbiddenError{Msg: "Only the owner can add collaborators."})
		return
	}

	var body struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.HandleError(w, responses.BadRequestError{Msg: "Invalid request."})
		return
	}
	if !models.ValidRole(body.Role) {
		utils.HandleError(w, responses.BadRequestError{Msg: "Role must be editor or viewer."})
		return
	}

	user, err := api.Store.GetUserByUsername(r.Context(), body.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.HandleError(w, responses.NotFoundError{Msg: "No user with that username."})
			return
		}
		log.Error().Err(err).Msg("Failed to look up user")
		utils.HandleError(w, responses.InternalServerError{Msg: "An error occurred while processing your request."})
		return
	}

	collaborator := models.Collaborator{ProjectID: id, UserID: user.ID, Role: body.Role}
	if err := api.Store.AddCollaborator(r.Context(), collaborator); err != nil {
		log.Error().Err(err).Msg("Failed to add collaborator")
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to add collaborator."})
		return
	}

	if project, err := api.Store.GetProject(r.Context(), id); err == nil {
		notifier.SendCollaboratorInvite(user.Email, project.Name, body.Role)
	}

	utils.HandleSuccess(w, models.SuccessResponse(map[string]string{"message": "Collaborator added successfully."}))
}

func (api *API) UpdateCollaboratorRole(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	id, err := projectID(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	targetID := mux.Vars(r)["userID"]

	role, err := api.role(r, id, c.UID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if role != models.RoleOwner {
		utils.HandleError(w, responses.ForbiddenError{Msg: "Only the owner can change collaborator roles."})
		return
	}

	targetRole, err := api.role(r, id, targetID)
	if err != nil {
		utils.HandleError(w, responses.NotFoundError{Msg: "Collaborator not found."})
		return
	}
	if targetRole == models.RoleOwner {
		utils.HandleError(w, responses.ForbiddenError{Msg: "The owner's role cannot be changed."})
		return
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.HandleError(w, responses.BadRequestError{Msg: "Invalid request."})
		return
	}
	if !models.ValidRole(body.Role) {
		utils.HandleError(w, responses.BadRequestError{Msg: "Role must be editor or viewer."})
		return
	}

	if err := api.Store.UpdateCollaboratorRole(r.Context(), id, targetID, body.Role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.HandleError(w, responses.NotFoundError{Msg: "Collaborator not found."})
			return
		}
		log.Error().Err(err).Msg("Failed to update collaborator role")
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to update collaborator."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(map[string]string{"message": "Collaborator updated successfully."}))
}

func (api *API) RemoveCollaborator(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	id, err := projectID(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	targetID := mux.Vars(r)["userID"]

	role, err := api.role(r, id, c.UID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	// Collaborators may remove themselves; everyone else needs the owner.
	if role != models.RoleOwner && targetID != c.UID {
		utils.HandleError(w, responses.ForbiddenError{Msg: "Only the owner can remove other collaborators."})
		return
	}

	targetRole, err := api.role(r, id, targetID)
	if err != nil {
		utils.HandleError(w, responses.NotFoundError{Msg: "Collaborator not found."})
		return
	}
	if targetRole == models.RoleOwner {
		utils.HandleError(w, responses.ForbiddenError{Msg: "The owner cannot be removed."})
		return
	}

	if err := api.Store.RemoveCollaborator(r.Context(), id, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.HandleError(w, responses.NotFoundError{Msg: "Collaborator not found."})
			return
		}
		log.Error().Err(err).Msg("Failed to remove collaborator")
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to remove collaborator."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(map[string]string{"message": "Collaborator removed successfully."}))
}
