package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/trooper-recruit/engage-api/internal/models"
	"github.com/trooper-recruit/engage-api/internal/usecase"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Controller interface {
	Health(c echo.Context) error
	Register(c echo.Context) error
	Participation(c echo.Context) error
	Referral(c echo.Context) error
	Download(c echo.Context) error
	Apply(c echo.Context) error
	CompleteApplication(c echo.Context) error
	GetUser(c echo.Context) error
	Leaderboard(c echo.Context) error
	Chat(c echo.Context) error
}

type controller struct {
	users       usecase.UserUsecase
	leaderboard usecase.LeaderboardUsecase
	chat        usecase.ChatUsecase
}

func NewController(
	users usecase.UserUsecase,
	leaderboard usecase.LeaderboardUsecase,
	chat usecase.ChatUsecase,
) Controller {
	return &controller{
		users:       users,
		leaderboard: leaderboard,
		chat:        chat,
	}
}

type UserResponse struct {
	Success bool                   `json:"success"`
	User    *models.UserWithBadges `json:"user"`
}

type UsersResponse struct {
	Success bool                     `json:"success"`
	Users   []*models.UserWithBadges `json:"users"`
}

type ChatResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
	Source  string `json:"source"`
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "engage-api",
	})
}

type RegisterRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	IsApplying bool   `json:"is_applying"`
}

func (h *controller) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Register(c.Request().Context(), usecase.RegisterParams{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		IsApplying: req.IsApplying,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserResponse{Success: true, User: user})
}

type UserIDRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

func (h *controller) Participation(c echo.Context) error {
	return h.userAction(c, h.users.RecordParticipation)
}

func (h *controller) Referral(c echo.Context) error {
	return h.userAction(c, h.users.RecordReferral)
}

func (h *controller) Download(c echo.Context) error {
	return h.userAction(c, h.users.RecordDownload)
}

func (h *controller) Apply(c echo.Context) error {
	return h.userAction(c, h.users.Apply)
}

func (h *controller) CompleteApplication(c echo.Context) error {
	return h.userAction(c, h.users.CompleteApplication)
}

func (h *controller) userAction(c echo.Context, action func(context.Context, primitive.ObjectID) (*models.UserWithBadges, error)) error {
	var req UserIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}

	user, err := action(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserResponse{Success: true, User: user})
}

func (h *controller) GetUser(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}

	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserResponse{Success: true, User: user})
}

type LeaderboardRequest struct {
	Type  string `query:"type"`
	Limit int    `query:"limit"`
}

func (h *controller) Leaderboard(c echo.Context) error {
	var req LeaderboardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if req.Type != "" && req.Type != usecase.BoardParticipation && req.Type != usecase.BoardApplicants {
		return echo.NewHTTPError(http.StatusBadRequest, "type must be participation or applicants")
	}

	users, err := h.leaderboard.TopUsers(c.Request().Context(), req.Type, req.Limit)
	if err != nil {
		return err
	}
	if users == nil {
		users = []*models.UserWithBadges{}
	}
	return c.JSON(http.StatusOK, UsersResponse{Success: true, Users: users})
}

type ChatRequest struct {
	Question string `json:"question" validate:"required"`
	UserID   string `json:"user_id"`
}

func (h *controller) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID := primitive.NilObjectID
	if req.UserID != "" {
		var err error
		userID, err = primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
		}
	}

	answer, err := h.chat.Ask(c.Request().Context(), c.RealIP(), userID, req.Question)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ChatResponse{Success: true, Text: answer.Text, Source: answer.Source})
}
