package appcontext

import (
	"github.com/navigatingnc/bid-management-system/internal/auth"
	"github.com/navigatingnc/bid-management-system/internal/config"
	"github.com/navigatingnc/bid-management-system/internal/gateway"
	"github.com/navigatingnc/bid-management-system/pkg/proposaldoc"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Gateway issues the REST calls against the bid-management backend.
	Gateway *gateway.Client

	// MailSession signs and verifies the remembered mail-account cookie.
	MailSession auth.MailSessionInterface

	// Renderer generates proposal PDFs. Nil when no font is configured,
	// in which case the proposal screen reports generation as unavailable.
	Renderer *proposaldoc.Renderer
}
