package server

import (
	"license-store/internal/config"
	"license-store/internal/handler"
	appmiddleware "license-store/internal/middleware"
	"license-store/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo               *echo.Echo
	orderHandler       *handler.OrderHandler
	stateDelayHandler  *handler.StateDelayHandler
	activationHandler  *handler.ActivationHandler
	licenseKeyHandler  *handler.LicenseKeyHandler
	sellerHandler      *handler.SellerAccountHandler
	checkoutHandler    *handler.CheckoutHandler
	warrantyHandler    *handler.WarrantyHandler
	replacementHandler *handler.ReplacementHandler
	productHandler     *handler.ProductHandler
	jwtSecret          string
}

type Services struct {
	Order         service.OrderService
	StateDelay    service.StateDelayService
	Activation    service.ActivationService
	LicenseKey    service.LicenseKeyService
	SellerAccount service.SellerAccountService
	Sync          service.SyncService
	Checkout      service.CheckoutService
	Warranty      service.WarrantyService
	Replacement   service.ReplacementService
	Product       service.ProductService
}

func NewServer(cfg *config.Config, services Services) *Server {
	e := echo.New()

	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:               e,
		orderHandler:       handler.NewOrderHandler(services.Order),
		stateDelayHandler:  handler.NewStateDelayHandler(services.StateDelay),
		activationHandler:  handler.NewActivationHandler(services.Activation),
		licenseKeyHandler:  handler.NewLicenseKeyHandler(services.LicenseKey),
		sellerHandler:      handler.NewSellerAccountHandler(services.SellerAccount, services.Sync),
		checkoutHandler:    handler.NewCheckoutHandler(services.Checkout),
		warrantyHandler:    handler.NewWarrantyHandler(services.Warranty),
		replacementHandler: handler.NewReplacementHandler(services.Replacement),
		productHandler:     handler.NewProductHandler(services.Product),
		jwtSecret:          cfg.Auth.JWTSecret,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- storefront --------
	api.GET("/products", s.productHandler.List)
	api.GET("/products/:fsn", s.productHandler.Get)
	api.POST("/checkout", s.checkoutHandler.Checkout)
	api.POST("/checkout/verify", s.checkoutHandler.Verify)
	api.POST("/warranty", s.warrantyHandler.Register)
	api.POST("/replacement-request", s.replacementHandler.Submit)

	// -------- activation --------
	activate := api.Group("/activate")
	activate.POST("/verify-order", s.activationHandler.VerifyOrder)
	activate.POST("/generate", s.activationHandler.GenerateKey)

	// -------- admin --------
	admin := api.Group("/admin", appmiddleware.AdminAuth(s.jwtSecret))

	admin.POST("/orders", s.orderHandler.CreateManual)
	admin.POST("/orders/bulk", s.orderHandler.CreateBulk)
	admin.GET("/orders", s.orderHandler.List)
	admin.GET("/orders/:id", s.orderHandler.Get)
	admin.PUT("/orders/:id/status", s.orderHandler.UpdateStatus)
	admin.DELETE("/orders/:id", s.orderHandler.Delete)

	admin.GET("/fba-state-delays", s.stateDelayHandler.List)
	admin.POST("/fba-state-delays", s.stateDelayHandler.Create)
	admin.PUT("/fba-state-delays/:id", s.stateDelayHandler.Update)
	admin.DELETE("/fba-state-delays/:id", s.stateDelayHandler.Delete)

	admin.POST("/license-keys", s.licenseKeyHandler.Add)
	admin.GET("/license-keys", s.licenseKeyHandler.List)
	admin.DELETE("/license-keys", s.licenseKeyHandler.Delete)
	admin.DELETE("/license-keys/:id", s.licenseKeyHandler.Delete)

	admin.GET("/seller-accounts", s.sellerHandler.List)
	admin.POST("/seller-accounts", s.sellerHandler.Create)
	admin.POST("/seller-accounts/test", s.sellerHandler.TestCredentials)
	admin.GET("/seller-accounts/:id", s.sellerHandler.Get)
	admin.PUT("/seller-accounts/:id", s.sellerHandler.Update)
	admin.POST("/seller-accounts/:id/priority", s.sellerHandler.NudgePriority)
	admin.DELETE("/seller-accounts/:id", s.sellerHandler.Delete)
	admin.POST("/sync", s.sellerHandler.Sync)

	admin.GET("/warranty", s.warrantyHandler.List)
	admin.PUT("/warranty/:id/status", s.warrantyHandler.UpdateStatus)
	admin.POST("/warranty/:id/resend-email", s.warrantyHandler.ResendEmail)

	admin.GET("/replacement-requests", s.replacementHandler.List)
	admin.POST("/replacement-requests/:id/approve", s.replacementHandler.Approve)
	admin.POST("/replacement-requests/:id/reject", s.replacementHandler.Reject)
	admin.POST("/replacement-requests/:id/resubmit", s.replacementHandler.RequestResubmission)

	admin.POST("/products", s.productHandler.Create)
	admin.PUT("/products/:fsn", s.productHandler.Update)
	admin.DELETE("/products/:fsn", s.productHandler.Delete)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
