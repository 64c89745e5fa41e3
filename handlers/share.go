package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/driftboard/driftboard-backend/models"
	"github.com/driftboard/driftboard-backend/repository"
	"github.com/driftboard/driftboard-backend/responses"
	"github.com/driftboard/driftboard-backend/utils"
)

const shareLinkTTL = 72 * time.Hour

func generateShareToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(tokenBytes), nil
}

// CreateShareLink mints a redeemable invite token for a project. An
// optional passcode is stored as a bcrypt hash, never in the clear.
func (api *API) CreateShareLink(w http.ResponseWriter, r *http.Request) {
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
		utils.HandleError(w, responses.ForbiddenError{Msg: "Only the owner can share a project."})
		return
	}

	var body struct {
		Role     string `json:"role"`
		Passcode string `json:"passcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.HandleError(w, responses.BadRequestError{Msg: "Invalid request."})
		return
	}
	if !models.ValidRole(body.Role) {
		utils.HandleError(w, responses.BadRequestError{Msg: "Role must be editor or viewer."})
		return
	}

	passcodeHash := ""
	if body.Passcode != "" {
		if len(body.Passcode) < 3 || len(body.Passcode) > 50 {
			utils.HandleError(w, responses.BadRequestError{Msg: "Passcode must be between 3 and 50 characters."})
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(body.Passcode), bcrypt.DefaultCost)
		if err != nil {
			utils.HandleError(w, responses.InternalServerError{Msg: "Failed to hash passcode."})
			return
		}
		passcodeHash = string(hashed)
	}

	token, err := generateShareToken()
	if err != nil {
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to generate share token."})
		return
	}

	link := models.ShareLink{
		Token:        token,
		ProjectID:    id,
		Role:         body.Role,
		PasscodeHash: passcodeHash,
		ExpiresAt:    time.Now().Add(shareLinkTTL),
	}
	if err := api.Store.CreateShareLink(r.Context(), link); err != nil {
		log.Error().Err(err).Msg("Failed to store share link")
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to create share link."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(map[string]interface{}{
		"token":      token,
		"role":       link.Role,
		"expires_at": link.ExpiresAt,
	}))
}

// JoinProject redeems a share link for the caller, making them a
// collaborator with the link's role. Redeeming twice is harmless.
func (api *API) JoinProject(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	token := mux.Vars(r)["token"]

	link, err := api.Store.GetShareLink(r.Context(), token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.HandleError(w, responses.NotFoundError{Msg: "Share link not found."})
			return
		}
		log.Error().Err(err).Msg("Failed to load share link")
		utils.HandleError(w, responses.InternalServerError{Msg: "An error occurred while processing your request."})
		return
	}

	if time.Now().After(link.ExpiresAt) {
		utils.HandleError(w, responses.NotFoundError{Msg: "Share link has expired."})
		return
	}

	if link.PasscodeHash != "" {
		var body struct {
			Passcode string `json:"passcode"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Passcode == "" {
			utils.HandleError(w, responses.UnauthorizedError{Msg: "This share link requires a passcode."})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(link.PasscodeHash), []byte(body.Passcode)); err != nil {
			utils.HandleError(w, responses.UnauthorizedError{Msg: "Invalid passcode."})
			return
		}
	}

	collaborator := models.Collaborator{ProjectID: link.ProjectID, UserID: c.UID, Role: link.Role}
	if err := api.Store.AddCollaborator(r.Context(), collaborator); err != nil {
		log.Error().Err(err).Msg("Failed to add collaborator from share link")
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to join project."})
		return
	}

	project, err := api.Store.GetProject(r.Context(), link.ProjectID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load joined project")
		utils.HandleError(w, responses.InternalServerError{Msg: "An error occurred while processing your request."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(project))
}
