package controller

import (
	"io"

	"interview-assistant-be/internal/pkg/apperror"
	"interview-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type profileController struct {
	profileService service.IProfileService
}

func NewProfileController(profileService service.IProfileService) IProfileController {
	return &profileController{
		profileService: profileService,
	}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload_profile", c.Upload)
}

func (c *profileController) Upload(ctx *fiber.Ctx) error {
	sessionId := ctx.FormValue("session_id")
	if sessionId == "" {
		return apperror.Validation("session_id is required")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperror.Validation("file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperror.Wrap(apperror.KindValidation, "Could not read uploaded file", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apperror.Wrap(apperror.KindValidation, "Could not read uploaded file", err)
	}

	res, err := c.profileService.Upload(
		ctx.UserContext(),
		sessionId,
		fileHeader.Filename,
		fileHeader.Header.Get(fiber.HeaderContentType),
		data,
	)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
