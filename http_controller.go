package authgate

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// RegisterAuthRoutes mounts the login and registration endpoints.
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {
	controller := NewAuthController(opts...)

	app.
		Post(controller.Routes.Login, controller.LoginPost).
		SetName("auth.login")

	app.
		Post(controller.Routes.Register, controller.RegistrationCreate).
		SetName("auth.register")
}

type AuthControllerRoutes struct {
	Login    string
	Register string
}

type AuthController struct {
	Debug  bool
	Logger Logger
	Auther Authenticator
	Store  CredentialStore
	Routes *AuthControllerRoutes
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Login:    "/api/auth/login",
			Register: "/api/auth/register",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	if c.Store == nil {
		panic("Missing CredentialStore in auth controller...")
	}

	return c
}

func WithAuthenticator(auther Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithCredentialStore(store CredentialStore) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Store = store
		return c
	}
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// LoginRequest payload
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

// GetIdentifier returns the identifier
func (r LoginRequest) GetIdentifier() string {
	return r.Identifier
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Secret
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Identifier,
			validation.Required,
		),
		validation.Field(
			&r.Secret,
			validation.Required,
		),
	)
}

// LoginPost exchanges credentials for a signed token. The response body is
// the raw token string. Unknown identifiers and wrong passwords share one
// response so the endpoint cannot be used to enumerate accounts.
func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload: %s", err)
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"error": "failed to parse request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	if a.Debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	token, err := a.Auther.Login(ctx.Context(), payload.GetIdentifier(), payload.GetPassword())
	if err != nil {
		if isCredentialRejection(err) {
			a.Logger.Info("login rejected for identifier %q", payload.GetIdentifier())
			return ctx.JSON(router.StatusUnauthorized, errorBody(ErrBadCredential))
		}

		a.Logger.Error("login error: %s", err)
		return ctx.JSON(router.StatusInternalServerError, map[string]string{
			"error": "An unexpected server error occurred",
		})
	}

	return ctx.Status(router.StatusOK).SendString(token)
}

func isCredentialRejection(err error) bool {
	return goerrors.Is(err, ErrIdentityNotFound) || goerrors.Is(err, ErrBadCredential)
}

func isConflict(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.Category == goerrors.CategoryConflict
}

// RegistrationCreatePayload is the registration payload
type RegistrationCreatePayload struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Validate will validate the payload
func (r RegistrationCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 100)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.Password)),
		),
	)
}

func (a *AuthController) RegistrationCreate(ctx router.Context) error {
	payload := new(RegistrationCreatePayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register parse payload: %s", err)
		return ctx.JSON(fiber.StatusBadRequest, map[string]string{
			"error": "failed to parse request body",
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register validate payload: %s", err)
		return ctx.JSON(fiber.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	req := RegisterUserMessage{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
	}

	registerUser := RegisterUserHandler{Store: a.Store}

	user, err := registerUser.Execute(ctx.Context(), req)
	if err != nil {
		a.Logger.Error("register user: %s", err)

		if isConflict(err) {
			return ctx.JSON(fiber.StatusConflict, map[string]string{
				"error": "Account already exists",
			})
		}

		return ctx.JSON(fiber.StatusInternalServerError, map[string]string{
			"error": "An unexpected server error occurred",
		})
	}

	return ctx.JSON(fiber.StatusCreated, map[string]string{
		"id":       user.ID.String(),
		"username": user.Username,
	})
}

// ValidateStringEquals will check that both values match
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("values must match")
		}
		return nil
	}
}
