package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/driftboard/driftboard-backend/models"
	"github.com/driftboard/driftboard-backend/responses"
	"github.com/driftboard/driftboard-backend/utils"
)

// AppendStrokes saves a batch of drawn strokes to the board's replay log.
func (api *API) AppendStrokes(w http.ResponseWriter, r *http.Request) {
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
		utils.HandleError(w, responses.ForbiddenError{Msg: "Viewers cannot draw on a project."})
		return
	}

	var body struct {
		Strokes []models.Stroke `json:"strokes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.HandleError(w, responses.BadRequestError{Msg: "Invalid request."})
		return
	}
	if len(body.Strokes) == 0 {
		utils.HandleError(w, responses.BadRequestError{Msg: "No strokes in request."})
		return
	}

	now := time.Now().UTC()
	for i := range body.Strokes {
		body.Strokes[i].ProjectID = id.String()
		body.Strokes[i].ClientID = c.UID
		if body.Strokes[i].CreatedAt.IsZero() {
			body.Strokes[i].CreatedAt = now
		}
	}

	if err := api.Strokes.Append(r.Context(), body.Strokes); err != nil {
		log.Error().Err(err).Msg("Failed to store strokes")
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to save strokes."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(map[string]int{"saved": len(body.Strokes)}))
}

// ListStrokes replays a board's strokes in the order they were drawn.
func (api *API) ListStrokes(w http.ResponseWriter, r *http.Request) {
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

	strokes, err := api.Strokes.List(r.Context(), id.String())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load strokes")
		utils.HandleError(w, responses.InternalServerError{Msg: "An error occurred while processing your request."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(strokes))
}
