package notifier

import (
	"github.com/rs/zerolog/log"
)

// SendCollaboratorInvite records an invite notification. Actual delivery
// is handled by an external mailer in deployments that have one; here the
// event is logged so the pipeline stays observable.
func SendCollaboratorInvite(userEmail, projectName, role string) {
	log.Info().
		Str("email", userEmail).
		Str("project", projectName).
		Str("role", role).
		Msg("Simulated invite email sent to user")
}
