package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
)

// DataResponse wraps a single record.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// CreatedResponse carries the identifier of a newly created record.
type CreatedResponse struct {
	ID string `json:"id"`
}

// ErrorResponse is the body of every classified failure.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// SendData sends {"data": data} with the given status.
func SendData(c *fiber.Ctx, status int, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(DataResponse{Data: data})
}

// SendJSON sends payload as is. List endpoints use it for {data, pagination}.
func SendJSON(c *fiber.Ctx, payload interface{}) error {
	return c.Status(fiber.StatusOK).JSON(payload)
}

// SendCreated sends 201 {"id": id}.
func SendCreated(c *fiber.Ctx, id string) error {
	return c.Status(fiber.StatusCreated).JSON(CreatedResponse{ID: id})
}

// SendNoContent sends an empty 204.
func SendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// SendError renders an application error with its status.
func SendError(c *fiber.Ctx, err *apperror.Error) error {
	if err == nil {
		err = apperror.Internal()
	}
	return c.Status(err.Status).JSON(ErrorResponse{
		Code:    err.Code,
		Message: err.Message,
		Errors:  err.Errors,
	})
}

// SendNotFound is used for unmatched routes.
func SendNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not Found."})
}
