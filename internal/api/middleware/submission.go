package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/altai/formrelay/internal/api/constants"
	"github.com/altai/formrelay/internal/api/dto/common"
	"github.com/altai/formrelay/internal/models"
	"github.com/altai/formrelay/internal/utils"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize bounds a lead form post
const DefaultMaxBodySize int64 = 1 << 20

var (
	errMalformedBody = errors.New("request body is not a JSON object")
	errTrailingData  = errors.New("unexpected data after JSON object")
)

// DecodeSubmission reads a JSON, url-encoded or multipart body into a
// *models.Submission stored under constants.ContextKeySubmission. A body
// that cannot be decoded is an internal error, matching what the site has
// always received for it.
func DecodeSubmission(maxBodySize int64) gin.HandlerFunc {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}

	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)

		submission, err := decode(c.Request, maxBodySize)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				utils.HandleAPIError(c, err, http.StatusRequestEntityTooLarge, common.MsgBodyTooLarge)
				return
			}
			utils.HandleAPIError(c, err, http.StatusInternalServerError, common.MsgInternalError)
			return
		}

		c.Set(constants.ContextKeySubmission, submission)
		c.Next()
	}
}

func decode(r *http.Request, maxBodySize int64) (*models.Submission, error) {
	contentType := r.Header.Get("Content-Type")

	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxBodySize); err != nil {
			return nil, err
		}
		return models.SubmissionFromValues(r.PostForm), nil

	case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return models.SubmissionFromValues(r.PostForm), nil

	default:
		// Anything else is parsed as JSON, like the serverless function did
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()

		var body map[string]any
		if err := dec.Decode(&body); err != nil {
			return nil, err
		}
		if body == nil {
			return nil, errMalformedBody
		}
		// The object must be the whole body
		if _, err := dec.Token(); err != io.EOF {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, err
			}
			return nil, errTrailingData
		}
		return models.SubmissionFromMap(body), nil
	}
}
