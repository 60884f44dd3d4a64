// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"sliders/internal/delivery/http/middleware"
	"sliders/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	VerificationHandler *handler.VerificationHandler
	ClaimHandler        *handler.ClaimHandler
	ResultsHandler      *handler.ResultsHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	verificationHandler *handler.VerificationHandler
	claimHandler        *handler.ClaimHandler
	resultsHandler      *handler.ResultsHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		verificationHandler: params.VerificationHandler,
		claimHandler:        params.ClaimHandler,
		resultsHandler:      params.ResultsHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Claim redemption is public: the token itself is the credential, and
	// redeemers arrive from QR codes without a session. GET serves scanned
	// QR links, POST serves API clients.
	e.GET("/claim", r.claimHandler.RedeemClaim)
	e.POST("/claim", r.claimHandler.RedeemClaim)

	// Public athlete profile data
	e.GET("/athletes/:id/results", r.resultsHandler.ListAthleteResults)

	// Identity claim routes that require authentication
	identityGroup := e.Group("/identities")
	identityGroup.Use(r.authMiddleware.Authenticate)
	{
		identityGroup.POST("", r.verificationHandler.StartIdentityClaim)
		identityGroup.GET("", r.verificationHandler.ListIdentities)
		identityGroup.POST("/:id/check", r.verificationHandler.CheckIdentityProof)
		identityGroup.POST("/:id/claim-link", r.claimHandler.MintClaimLink)
	}

	// Coach domain challenge routes that require authentication
	challengeGroup := e.Group("/challenges")
	challengeGroup.Use(r.authMiddleware.Authenticate)
	{
		challengeGroup.POST("", r.verificationHandler.StartDomainChallenge)
		challengeGroup.POST("/:id/check", r.verificationHandler.CheckDomainChallenge)
	}

	// Result submission routes that require authentication
	resultGroup := e.Group("/results")
	resultGroup.Use(r.authMiddleware.Authenticate)
	{
		resultGroup.POST("", r.resultsHandler.SubmitResult)
		resultGroup.POST("/ingest", r.resultsHandler.IngestProofURL)
	}

	// Review routes that require authentication and the "reviewer" role
	reviewGroup := e.Group("/review")
	reviewGroup.Use(r.authMiddleware.Authenticate)
	reviewGroup.Use(r.authMiddleware.RequireRole("reviewer"))
	{
		reviewGroup.POST("/results/:id/approve", r.resultsHandler.ApproveResult)
		reviewGroup.POST("/results/:id/reject", r.resultsHandler.RejectResult)
	}
}
