package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bibliotek/library-api/internal/errs"
	"github.com/bibliotek/library-api/pkg/auth"
	md "github.com/bibliotek/library-api/pkg/middleware"
	"github.com/bibliotek/library-api/pkg/validate"
)

type Services struct {
	Book      BookService
	Borrower  BorrowerService
	Borrowing BorrowingService
	Report    ReportService
	Auth      AuthService
}

type Handler struct {
	svc    Services
	tokens *auth.Manager
	log    *zap.Logger
}

func New(svc Services, tokens *auth.Manager, log *zap.Logger) *Handler {
	return &Handler{
		svc:    svc,
		tokens: tokens,
		log:    log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	authed := api.Group("", md.JwtAuthentication(h.tokens))
	authed.GET("/auth/me", h.Me)

	authed.POST("/books", h.CreateBook)
	authed.GET("/books", h.ListBooks)
	authed.GET("/books/search", h.SearchBooks)
	authed.GET("/books/:id", h.GetBook)
	authed.PUT("/books/:id", h.UpdateBook)
	authed.DELETE("/books/:id", h.DeleteBook)

	authed.POST("/borrowers", h.CreateBorrower)
	authed.GET("/borrowers", h.ListBorrowers)
	authed.GET("/borrowers/:id", h.GetBorrower)
	authed.PUT("/borrowers/:id", h.UpdateBorrower)
	authed.DELETE("/borrowers/:id", h.DeleteBorrower)

	authed.POST("/borrowings/checkout", h.Checkout)
	authed.POST("/borrowings/:id/return", h.Return)
	authed.GET("/borrowings/borrower/:borrowerID", h.GetBorrowerBooks)
	authed.GET("/borrowings/overdue", h.GetOverdue)
	authed.GET("/borrowings", h.ListBorrowings)

	authed.GET("/reports/overdue/last-month", h.OverdueLastMonth)
	authed.GET("/reports/all/last-month", h.AllLastMonth)
	authed.GET("/reports/period", h.ByPeriod)
	authed.GET("/reports/export/overdue/last-month", h.ExportOverdueLastMonth)
	authed.GET("/reports/export/all/last-month", h.ExportAllLastMonth)
	authed.GET("/reports/export/period", h.ExportPeriod)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps the domain error taxonomy onto HTTP statuses.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, errs.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func queryInt(c echo.Context, name string) int {
	v, _ := strconv.Atoi(c.QueryParam(name))
	return v
}
