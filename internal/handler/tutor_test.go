package handler_test

import (
	"context"
	"testing"

	"medquiz/internal/domain"
	"medquiz/internal/dto"
	"medquiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTutorHandler_Ask(t *testing.T) {
	var gotReq *dto.TutorRequest
	tutor := &MockTutorService{AskFunc: func(ctx context.Context, req *dto.TutorRequest) (*dto.TutorResponse, error) {
		gotReq = req
		return &dto.TutorResponse{Answer: "Afterload is the resistance the ventricle ejects against.", Source: "openai"}, nil
	}}
	app := newTestApp(testDeps{tutor: tutor})

	resp, err := app.Test(newJSONRequest("POST", "/api/tutor/ask", `{"question":"What is afterload?","notes":"CVS notes"}`), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, &dto.TutorRequest{Question: "What is afterload?", Notes: "CVS notes"}, gotReq)

	var body dto.TutorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "openai", body.Source)
	assert.Contains(t, body.Answer, "Afterload")
}

func TestTutorHandler_Ask_Rejected(t *testing.T) {
	app := newTestApp(testDeps{})

	t.Run("missing question", func(t *testing.T) {
		resp, err := app.Test(newJSONRequest("POST", "/api/tutor/ask", `{"notes":"CVS notes"}`), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var errBody middleware.ValidationErrorResponse
		decodeBody(t, resp, &errBody)
		assert.Equal(t, string(domain.CodeValidation), errBody.Code)
		require.Len(t, errBody.Errors, 1)
		assert.Equal(t, "question", errBody.Errors[0].Field)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := app.Test(newJSONRequest("POST", "/api/tutor/ask", `{"question":`), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var errBody middleware.ErrorResponse
		decodeBody(t, resp, &errBody)
		assert.Equal(t, string(domain.CodeInvalidInput), errBody.Code)
	})
}
