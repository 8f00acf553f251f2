package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	appcontext "github.com/navigatingnc/bid-management-system/internal/app_context"
	"github.com/navigatingnc/bid-management-system/internal/auth"
	"github.com/navigatingnc/bid-management-system/internal/config"
	"github.com/navigatingnc/bid-management-system/internal/controller"
	"github.com/navigatingnc/bid-management-system/internal/env"
	"github.com/navigatingnc/bid-management-system/internal/gateway"
	"github.com/navigatingnc/bid-management-system/internal/middleware"
	ratelimiter "github.com/navigatingnc/bid-management-system/internal/rate_limiter"
	"github.com/navigatingnc/bid-management-system/internal/route"
	"github.com/navigatingnc/bid-management-system/internal/util"
	"github.com/navigatingnc/bid-management-system/internal/view"
	"github.com/navigatingnc/bid-management-system/pkg/proposaldoc"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	logger.Debugf("Configuration: %+v \n", cfg)

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("strNotEmpty", util.StrNotEmpty); err != nil {
			return
		}
		if err := v.RegisterValidation("cmax", util.CustomMax); err != nil {
			return
		}
	}

	api := gateway.NewClient(cfg.API, logger)
	logger.Infof("Backend API at %s", api.BaseURL())

	mailSession := auth.NewMailSession(cfg.Session, logger)

	var renderer *proposaldoc.Renderer
	if cfg.Proposal.FontPath != "" {
		r, err := proposaldoc.NewRenderer(cfg.Proposal.FontPath, cfg.Proposal.OutputDir)
		if err != nil {
			logger.Panic(err)
		}
		renderer = r
	} else {
		logger.Warn("PROPOSAL_FONT_PATH not set, proposal PDF generation disabled")
	}

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)
	app := appcontext.Application{
		Config:      &cfg,
		Logger:      logger,
		Gateway:     api,
		MailSession: mailSession,
		Renderer:    renderer,
	}

	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.ENV == "production" {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.SetHTMLTemplate(view.Templates())

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With", "Accept"}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.RequestIDMiddleware)
	r.Use(_middleware.RateLimiterMiddleware)

	_controller := controller.NewController(&app)

	root := r.Group("/")

	route.Dashboard(root, _controller.Dashboard)
	route.Projects(root, _controller.Project)
	route.Documents(root, _controller.Document)
	route.Estimates(root, _controller.Estimate)
	route.Proposals(root, _controller.Proposal)
	route.Emails(root, _controller.Email)

	if err := r.Run("0.0.0.0:" + app.Config.Port); err != nil {
		logger.Panic("Error running server: %v \n", err)
	}
}
