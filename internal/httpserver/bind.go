package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

var validate = validatorv10.New()

// bindAndValidate binds the JSON body into out and runs struct validation.
// On failure it writes a 400 response and returns false so the handler can
// short-circuit.
func bindAndValidate(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body", "detail": err.Error()})
		return false
	}
	if err := validate.Struct(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "fields": validationErrorsToMap(err)})
		return false
	}
	return true
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}
