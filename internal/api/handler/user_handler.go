package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/userhub/user-api/internal/core/ports"
	"github.com/userhub/user-api/internal/pkg/metrics"
)

// UserHandler translates HTTP requests into user use case calls.
type UserHandler struct {
	create  ports.CreateUserUseCase
	getAll  ports.GetAllUsersUseCase
	getByID ports.GetUserByIDUseCase
	log     zerolog.Logger
	// exposeErrors puts unexpected error text in responses. Off in production.
	exposeErrors bool
}

func NewUserHandler(
	create ports.CreateUserUseCase,
	getAll ports.GetAllUsersUseCase,
	getByID ports.GetUserByIDUseCase,
	log zerolog.Logger,
	exposeErrors bool,
) *UserHandler {
	return &UserHandler{
		create:       create,
		getAll:       getAll,
		getByID:      getByID,
		log:          log,
		exposeErrors: exposeErrors,
	}
}

// Create handles POST /api/v1/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User to create; role defaults to \"user\""
// @Success      201   {object}  userEnvelope
// @Failure      400   {object}  errorEnvelope
// @Failure      409   {object}  errorEnvelope
// @Failure      500   {object}  errorEnvelope
// @Router       /api/v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		metrics.RequestErrorsTotal.WithLabelValues("create_user", kindValidation).Inc()
		return Fail(c, http.StatusBadRequest, "invalid payload")
	}

	user, err := h.create.Execute(c.Request().Context(), ports.CreateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		return h.fail(c, "create_user", err)
	}

	return Success(c, http.StatusCreated, "User created successfully", user)
}

// List handles GET /api/v1/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  userListEnvelope
// @Failure      500  {object}  errorEnvelope
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.getAll.Execute(c.Request().Context())
	if err != nil {
		return h.fail(c, "get_all_users", err)
	}
	return Success(c, http.StatusOK, "Users retrieved successfully", users)
}

// Get handles GET /api/v1/users/:id.
//
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userEnvelope
// @Failure      404  {object}  errorEnvelope
// @Failure      500  {object}  errorEnvelope
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.getByID.Execute(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, "get_user_by_id", err)
	}
	return Success(c, http.StatusOK, "User retrieved successfully", user)
}

func (h *UserHandler) fail(c echo.Context, operation string, err error) error {
	status, kind, msg := resolveError(err, h.exposeErrors)
	metrics.RequestErrorsTotal.WithLabelValues(operation, kind).Inc()

	if status >= http.StatusInternalServerError {
		h.log.Error().
			Err(err).
			Str("operation", operation).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Msg("unexpected error")
	}
	return Fail(c, status, msg)
}
