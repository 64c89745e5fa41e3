package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/driftboard/driftboard-backend/models"
	"github.com/driftboard/driftboard-backend/repository"
	"github.com/driftboard/driftboard-backend/responses"
	"github.com/driftboard/driftboard-backend/utils"
)

func validProjectName(name string) bool {
	return len(name) >= 1 && len(name) <= 100
}

func (api *API) CreateProject(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.HandleError(w, responses.BadRequestError{Msg: "Invalid request."})
		return
	}
	if !validProjectName(body.Name) {
		utils.HandleError(w, responses.BadRequestError{Msg: "Project name must be between 1 and 100 characters."})
		return
	}

	project := models.Project{ID: uuid.New(), OwnerID: c.UID, Name: body.Name}
	if err := api.Store.CreateProject(r.Context(), project); err != nil {
		log.Error().Err(err).Msg("Failed to create project")
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to create project."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(project))
}

func (api *API) ListProjects(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	projects, err := api.Store.ListProjects(r.Context(), c.UID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list projects")
		utils.HandleError(w, responses.InternalServerError{Msg: "An error occurred while processing your request."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(projects))
}

func (api *API) GetProject(w http.ResponseWriter, r *http.Request) {
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

	project, err := api.Store.GetProject(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.HandleError(w, responses.NotFoundError{Msg: "Project not found."})
			return
		}
		log.Error().Err(err).Msg("Failed to load project")
		utils.HandleError(w, responses.InternalServerError{Msg: "An error occurred while processing your request."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(project))
}

func (api *API) UpdateProject(w http.ResponseWriter, r *http.Request) {
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
	if !models.CanEdit(role) {
		utils.HandleError(w, responses.ForbiddenError{Msg: "Viewers cannot modify a project."})
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.HandleError(w, responses.BadRequestError{Msg: "Invalid request."})
		return
	}
	if !validProjectName(body.Name) {
		utils.HandleError(w, responses.BadRequestError{Msg: "Project name must be between 1 and 100 characters."})
		return
	}

	if err := api.Store.UpdateProject(r.Context(), id, body.Name); err != nil {
		log.Error().Err(err).Msg("Failed to update project")
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to update project."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(map[string]string{"message": "Project updated successfully."}))
}

func (api *API) DeleteProject(w http.ResponseWriter, r *http.Request) {
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
		utils.HandleError(w, responses.ForbiddenError{Msg: "Only the owner can delete a project."})
		return
	}

	if err := api.Store.DeleteProject(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("Failed to delete project")
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to delete project."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(map[string]string{"message": "Project deleted successfully."}))
}
